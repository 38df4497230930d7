package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrc "github.com/skip2/go-qrcode"

	"qrcode-system/internal/pkg/logger"
	"qrcode-system/internal/service"
)

// 二维码图片的边长（像素）
const qrImageSize = 512

// QRCodeImage 返回二维码图片
// 图片编码的是本服务的扫码入口地址而不是最终目的地，
// 商家改配置后已经印出去的码依然有效
// 扫码的顾客没有会话，这里不做店铺归属校验
func QRCodeImage(c *gin.Context) {
	id, ok := parseQRCodeID(c)
	if !ok {
		return
	}

	qr, err := service.QRCode.Read(id, "", false)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	png, err := qrc.Encode(service.QRCode.ScanURL(qr.ID), qrc.Medium, qrImageSize)
	if err != nil {
		logger.Errorf("生成二维码图片失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code": 500,
			"msg":  "生成二维码图片失败",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="qr_code_%d.png"`, qr.ID))
	c.Data(http.StatusOK, "image/png", png)
}

// ScanQRCode 处理扫码请求，累加计数后重定向到解析出的目的地
func ScanQRCode(c *gin.Context) {
	id, ok := parseQRCodeID(c)
	if !ok {
		return
	}

	dest, err := service.QRCode.HandleScan(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, dest)
}

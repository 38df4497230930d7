package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qrcode-system/internal/model"
	"qrcode-system/internal/pkg/logger"
	"qrcode-system/internal/service"
)

// parseQRCodeID 解析路径里的二维码ID
func parseQRCodeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  "参数错误",
		})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError 把服务层错误映射为响应
// 不存在和不属于当前店铺统一返回404；其余错误记日志，对外不暴露细节
func handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"code": 404,
			"msg":  "二维码不存在",
		})
		return
	}

	logger.Errorf("请求处理失败: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code": 500,
		"msg":  "服务器内部错误",
	})
}

// CreateQRCode 创建二维码
// 店铺域名取自会话，防止客户端伪造归属
func CreateQRCode(c *gin.Context) {
	shopDomain := c.GetString("shopDomain")

	var in service.QRCodeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  "参数错误",
		})
		return
	}

	if errs := service.ValidateQRCode(&in, shopDomain, true); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":   422,
			"msg":    "参数校验失败",
			"errors": errs,
		})
		return
	}

	id, err := service.QRCode.Create(shopDomain, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	qr, err := service.QRCode.Read(id, shopDomain, true)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := service.QRCode.Hydrate(shopDomain, []model.QRCode{*qr})
	c.JSON(http.StatusCreated, gin.H{
		"code": 201,
		"data": resp[0],
	})
}

// GetQRCode 获取单个二维码
func GetQRCode(c *gin.Context) {
	id, ok := parseQRCodeID(c)
	if !ok {
		return
	}
	shopDomain := c.GetString("shopDomain")

	qr, err := service.QRCode.Read(id, shopDomain, true)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := service.QRCode.Hydrate(shopDomain, []model.QRCode{*qr})
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": resp[0],
	})
}

// ListQRCodes 获取当前店铺的二维码列表
func ListQRCodes(c *gin.Context) {
	shopDomain := c.GetString("shopDomain")

	codes, err := service.QRCode.List(shopDomain)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := service.QRCode.Hydrate(shopDomain, codes)
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": resp,
	})
}

// UpdateQRCode 整体更新二维码的可变字段
func UpdateQRCode(c *gin.Context) {
	id, ok := parseQRCodeID(c)
	if !ok {
		return
	}
	shopDomain := c.GetString("shopDomain")

	// 先做归属校验，跨店铺的记录按不存在处理
	if _, err := service.QRCode.Read(id, shopDomain, true); err != nil {
		handleServiceError(c, err)
		return
	}

	var in service.QRCodeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  "参数错误",
		})
		return
	}

	if errs := service.ValidateQRCode(&in, shopDomain, false); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":   422,
			"msg":    "参数校验失败",
			"errors": errs,
		})
		return
	}

	if err := service.QRCode.Update(id, in); err != nil {
		handleServiceError(c, err)
		return
	}

	qr, err := service.QRCode.Read(id, shopDomain, true)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := service.QRCode.Hydrate(shopDomain, []model.QRCode{*qr})
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": resp[0],
	})
}

// DeleteQRCode 删除二维码
func DeleteQRCode(c *gin.Context) {
	id, ok := parseQRCodeID(c)
	if !ok {
		return
	}
	shopDomain := c.GetString("shopDomain")

	if _, err := service.QRCode.Read(id, shopDomain, true); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := service.QRCode.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "删除成功",
	})
}

// GetShopData 获取店铺信息和可选折扣列表，供二维码表单使用
func GetShopData(c *gin.Context) {
	shopDomain := c.GetString("shopDomain")

	data, err := service.QRCode.ShopData(shopDomain)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": data,
	})
}

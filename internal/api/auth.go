package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qrcode-system/internal/config"
	"qrcode-system/internal/middleware"
	"qrcode-system/internal/service"
)

// ExchangeToken 令牌置换
// 携带应用共享密钥换取店铺会话token
// 正式的OAuth握手在外部完成，这里只负责把店铺身份签进token
func ExchangeToken(c *gin.Context) {
	var req struct {
		Shop   string `json:"shop"`
		Secret string `json:"secret"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  "参数错误",
		})
		return
	}

	apiSecret := config.GlobalConfig.Shopify.APISecret
	if apiSecret == "" || req.Secret != apiSecret {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": 401,
			"msg":  "密钥错误",
		})
		return
	}

	shopDomain := req.Shop
	if !strings.HasPrefix(shopDomain, "http://") && !strings.HasPrefix(shopDomain, "https://") {
		shopDomain = "https://" + shopDomain
	}
	if !service.ValidShopDomain(shopDomain) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  "店铺域名格式错误",
		})
		return
	}

	token, err := middleware.GenerateToken(shopDomain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code": 500,
			"msg":  "生成token失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": gin.H{
			"token":      token,
			"expires_in": config.GlobalConfig.JWT.ExpireTime,
		},
	})
}

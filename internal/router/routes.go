package router

import (
	"github.com/gin-gonic/gin"

	"qrcode-system/internal/api"
	"qrcode-system/internal/middleware"
)

// SetupRoutes 配置所有路由
func SetupRoutes(r *gin.Engine) {
	// 健康检查接口（不需要任何中间件）
	r.GET("/api/v1/health", api.SimpleHealthCheck)

	// 公开路由：扫码的顾客没有会话，不走任何认证
	setupPublicRoutes(r)

	// 商家API路由
	setupAPIRoutes(r)
}

// setupPublicRoutes 设置公开路由
func setupPublicRoutes(r *gin.Engine) {
	qrcodes := r.Group("/qrcodes")
	{
		qrcodes.GET("/:id/image", api.QRCodeImage) // 二维码图片
		qrcodes.GET("/:id/scan", api.ScanQRCode)   // 扫码跳转
	}
}

// setupAPIRoutes 设置商家API路由
func setupAPIRoutes(r *gin.Engine) {
	apiGroup := r.Group("/api/v1")
	apiGroup.Use(middleware.RequestID())
	apiGroup.Use(middleware.Cors())

	// 令牌置换（不需要会话）
	apiGroup.POST("/auth/token", api.ExchangeToken)

	// 需要店铺会话的路由
	authorized := apiGroup.Group("/")
	authorized.Use(middleware.Session())
	{
		qrcodes := authorized.Group("/qrcodes")
		{
			qrcodes.POST("", api.CreateQRCode)       // 创建二维码
			qrcodes.GET("", api.ListQRCodes)         // 获取二维码列表
			qrcodes.GET("/:id", api.GetQRCode)       // 获取单个二维码
			qrcodes.PATCH("/:id", api.UpdateQRCode)  // 更新二维码
			qrcodes.DELETE("/:id", api.DeleteQRCode) // 删除二维码
		}

		// 店铺信息和可选折扣，供二维码表单使用
		authorized.GET("/shop-data", api.GetShopData)
	}
}

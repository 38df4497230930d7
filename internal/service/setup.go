package service

import (
	"fmt"

	"qrcode-system/internal/config"
	"qrcode-system/internal/pkg/catalog"
	"qrcode-system/internal/pkg/database"
)

// QRCode 二维码服务实例，由 Setup 显式构造
var QRCode *QRCodeService

// Setup 构造各服务实例
// 必须在 database.Setup 完成建表之后、路由注册之前调用，
// 服务本身不做任何延迟初始化或就绪检查
func Setup() {
	cfg := config.GlobalConfig.Shopify
	publicHost := fmt.Sprintf("%s://%s", cfg.HostScheme, cfg.HostName)

	QRCode = NewQRCodeService(
		database.DB,
		catalog.NewAdminClient(cfg.APIVersion, cfg.AccessToken),
		publicHost,
	)
}

package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"qrcode-system/internal/model"
	"qrcode-system/internal/pkg/catalog"
	"qrcode-system/internal/pkg/producturl"
)

var (
	// ErrNotFound 记录不存在，或归属校验开启时不属于当前店铺
	// 两种情况对外不做区分，避免跨店铺探测记录是否存在
	ErrNotFound = errors.New("二维码不存在")

	// ErrUnrecognizedDestination 库里的跳转目标不在枚举范围内
	// 说明上游数据已被破坏，按请求级致命错误处理，不做兜底跳转
	ErrUnrecognizedDestination = errors.New("无法识别的跳转目标")
)

// QRCodeService 二维码记录的存储和扫码处理
type QRCodeService struct {
	db         *gorm.DB
	catalog    catalog.Client
	publicHost string // 本服务对外地址，扫码和图片链接都指向这里
}

// NewQRCodeService 构造服务实例
// 调用方必须保证db已完成建表，实例交给请求处理器后不再做就绪检查
func NewQRCodeService(db *gorm.DB, cat catalog.Client, publicHost string) *QRCodeService {
	return &QRCodeService{
		db:         db,
		catalog:    cat,
		publicHost: publicHost,
	}
}

// Create 持久化一条已通过校验的记录，返回分配的ID
// 扫码计数从0开始
func (s *QRCodeService) Create(shopDomain string, in QRCodeInput) (uint, error) {
	qr := &model.QRCode{
		ShopDomain:   shopDomain,
		Title:        in.Title,
		ProductID:    in.ProductID,
		VariantID:    in.VariantID,
		Handle:       in.Handle,
		DiscountID:   in.DiscountID,
		DiscountCode: in.DiscountCode,
		Destination:  in.Destination,
		Scans:        0,
	}

	if err := s.db.Create(qr).Error; err != nil {
		return 0, fmt.Errorf("创建二维码记录失败: %v", err)
	}

	return qr.ID, nil
}

// Read 按ID读取记录
// checkDomain 为真时校验店铺归属，公开的扫码/图片路径没有会话，传假跳过
func (s *QRCodeService) Read(id uint, shopDomain string, checkDomain bool) (*model.QRCode, error) {
	var qr model.QRCode
	if err := s.db.First(&qr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询二维码失败: %v", err)
	}

	if checkDomain && qr.ShopDomain != shopDomain {
		return nil, ErrNotFound
	}

	return &qr, nil
}

// List 列出指定店铺的全部记录
func (s *QRCodeService) List(shopDomain string) ([]model.QRCode, error) {
	var codes []model.QRCode
	if err := s.db.Where("shop_domain = ?", shopDomain).Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("查询二维码列表失败: %v", err)
	}
	return codes, nil
}

// Update 整体替换可变字段
// id、店铺域名、扫码计数和创建时间不在替换范围内
func (s *QRCodeService) Update(id uint, in QRCodeInput) error {
	result := s.db.Model(&model.QRCode{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":         in.Title,
			"product_id":    in.ProductID,
			"variant_id":    in.VariantID,
			"handle":        in.Handle,
			"discount_id":   in.DiscountID,
			"discount_code": in.DiscountCode,
			"destination":   in.Destination,
		})

	if result.Error != nil {
		return fmt.Errorf("更新二维码失败: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete 删除记录，无级联状态
func (s *QRCodeService) Delete(id uint) error {
	if err := s.db.Delete(&model.QRCode{}, id).Error; err != nil {
		return fmt.Errorf("删除二维码失败: %v", err)
	}
	return nil
}

// IncrementScans 扫码计数加一
// 递增在数据库端用单条算术更新完成，并发扫码不会丢计数
// 这是唯一允许修改扫码计数的路径
func (s *QRCodeService) IncrementScans(id uint) error {
	err := s.db.Model(&model.QRCode{}).
		Where("id = ?", id).
		UpdateColumn("scans", gorm.Expr("scans + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("更新扫码计数失败: %v", err)
	}
	return nil
}

// HandleScan 处理一次扫码：读取记录、累加计数、解析跳转地址
// 计数写入成功后才返回跳转地址，保证计数与扫码一一对应
func (s *QRCodeService) HandleScan(id uint) (string, error) {
	qr, err := s.Read(id, "", false)
	if err != nil {
		return "", err
	}

	if err := s.IncrementScans(qr.ID); err != nil {
		return "", err
	}

	switch qr.Destination {
	case model.DestinationProduct:
		return producturl.ProductViewURL(qr.ShopDomain, qr.Handle, qr.DiscountCode)
	case model.DestinationCheckout:
		return producturl.ProductCheckoutURL(qr.ShopDomain, qr.VariantID,
			producturl.DefaultPurchaseQuantity, qr.DiscountCode)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedDestination, qr.Destination)
	}
}

// ScanURL 扫码入口地址，二维码图片编码的就是它
// 图片间接指向本服务而不是最终目的地，改配置不会让印出去的码失效
func (s *QRCodeService) ScanURL(id uint) string {
	return fmt.Sprintf("%s/qrcodes/%d/scan", s.publicHost, id)
}

// ShopData 查询店铺信息和可选折扣列表
func (s *QRCodeService) ShopData(shopDomain string) (*catalog.ShopData, error) {
	return s.catalog.ShopData(shopDomain)
}

package model

import (
	"time"
)

// 扫码跳转目标
const (
	DestinationProduct  = "product"  // 商品展示页
	DestinationCheckout = "checkout" // 结算页
)

// QRCode 商品二维码记录
// ShopDomain 来自会话，创建后不可变更；Scans 只能通过扫码计数语句递增
type QRCode struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ShopDomain   string    `gorm:"size:511;index;not null" json:"shopDomain"`
	Title        string    `gorm:"size:511;not null" json:"title"`
	ProductID    string    `gorm:"size:255;not null" json:"productId"`
	VariantID    string    `gorm:"size:255;not null" json:"variantId"`
	Handle       string    `gorm:"size:255;not null" json:"handle"`
	DiscountID   string    `gorm:"size:255;not null" json:"discountId"`   // 空字符串表示无折扣
	DiscountCode string    `gorm:"size:255;not null" json:"discountCode"` // 与 DiscountID 同生同灭
	Destination  string    `gorm:"size:255;not null" json:"destination"`
	Scans        int       `json:"scans"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

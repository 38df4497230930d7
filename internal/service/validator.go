package service

import (
	"regexp"
	"strings"

	"qrcode-system/internal/model"
	"qrcode-system/internal/pkg/gid"
)

// QRCodeInput 创建/更新二维码时提交的候选记录
type QRCodeInput struct {
	Title        string `json:"title"`
	ProductID    string `json:"productId"`
	VariantID    string `json:"variantId"`
	Handle       string `json:"handle"`
	DiscountID   string `json:"discountId"`
	DiscountCode string `json:"discountCode"`
	Destination  string `json:"destination"`
}

// 店铺域名形如 https://example-shop.myshopify.com
var shopDomainRe = regexp.MustCompile(`^https?://[A-Za-z0-9][A-Za-z0-9.-]*\.[A-Za-z]{2,}$`)

// ValidShopDomain 判断店铺域名是否符合预期形状
func ValidShopDomain(s string) bool {
	return shopDomainRe.MatchString(s)
}

// ValidateQRCode 校验并规范化候选记录，一次性返回所有字段错误
// withShopDomain 仅在创建时为真，更新时店铺域名不在校验范围内
// 无副作用，校验通过时返回空map
func ValidateQRCode(in *QRCodeInput, shopDomain string, withShopDomain bool) map[string]string {
	errs := make(map[string]string)

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		errs["title"] = "标题不能为空"
	}

	if in.ProductID == "" {
		errs["productId"] = "商品不能为空"
	} else if !gid.IsProduct(in.ProductID) {
		errs["productId"] = "商品ID格式错误"
	}

	if in.VariantID == "" {
		errs["variantId"] = "商品变体不能为空"
	} else if !gid.IsVariant(in.VariantID) {
		errs["variantId"] = "商品变体ID格式错误"
	}

	in.Handle = strings.TrimSpace(in.Handle)
	if in.Handle == "" {
		errs["handle"] = "商品标识不能为空"
	}

	// 跳转目标只认两个枚举值，其他值一律报错，绝不静默纠正
	if in.Destination == "" {
		errs["destination"] = "跳转目标不能为空"
	} else if in.Destination != model.DestinationProduct && in.Destination != model.DestinationCheckout {
		errs["destination"] = "跳转目标只能是 product 或 checkout"
	}

	// 折扣ID可以为空，但填了就必须符合全局ID格式
	if in.DiscountID != "" && !gid.IsDiscount(in.DiscountID) {
		errs["discountId"] = "折扣ID格式错误"
	}

	if withShopDomain {
		if shopDomain == "" {
			errs["shopDomain"] = "店铺域名不能为空"
		} else if !ValidShopDomain(shopDomain) {
			errs["shopDomain"] = "店铺域名格式错误"
		}
	}

	return errs
}

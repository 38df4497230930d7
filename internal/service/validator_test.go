package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateValid(t *testing.T) {
	in := validInput()
	in.DiscountID = "gid://shopify/DiscountCodeNode/789"
	in.DiscountCode = "SAVE10"

	errs := ValidateQRCode(&in, "https://shop.test", true)
	assert.Empty(t, errs)
}

func TestValidateNormalizesTitle(t *testing.T) {
	in := validInput()
	in.Title = "  Widget promo  "

	errs := ValidateQRCode(&in, "https://shop.test", true)
	assert.Empty(t, errs)
	assert.Equal(t, "Widget promo", in.Title)
}

func TestValidateAllMissingReportedTogether(t *testing.T) {
	in := QRCodeInput{}

	errs := ValidateQRCode(&in, "", true)

	// 所有缺失字段一次性全部报出
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "productId")
	assert.Contains(t, errs, "variantId")
	assert.Contains(t, errs, "handle")
	assert.Contains(t, errs, "destination")
	assert.Contains(t, errs, "shopDomain")
	assert.Len(t, errs, 6)
}

func TestValidateMalformedIDs(t *testing.T) {
	in := QRCodeInput{
		Title:        "Widget promo",
		ProductID:    "123",
		VariantID:    "gid://shopify/Product/456",
		Handle:       "widget",
		DiscountID:   "not-a-gid",
		Destination:  "somewhere",
		DiscountCode: "SAVE10",
	}

	errs := ValidateQRCode(&in, "https://shop.test", true)

	assert.Contains(t, errs, "productId")
	assert.Contains(t, errs, "variantId")
	assert.Contains(t, errs, "discountId")
	assert.Contains(t, errs, "destination")
	assert.Len(t, errs, 4)
}

func TestValidateBlankTitle(t *testing.T) {
	in := validInput()
	in.Title = "   "

	errs := ValidateQRCode(&in, "https://shop.test", true)
	assert.Contains(t, errs, "title")
}

func TestValidateOptionalDiscount(t *testing.T) {
	// 折扣ID为空是合法的，表示不使用折扣
	in := validInput()

	errs := ValidateQRCode(&in, "https://shop.test", true)
	assert.Empty(t, errs)
}

func TestValidateUpdateSkipsShopDomain(t *testing.T) {
	in := validInput()

	// 更新时店铺域名不在校验范围内
	errs := ValidateQRCode(&in, "", false)
	assert.Empty(t, errs)
}

func TestValidateShopDomainShape(t *testing.T) {
	in := validInput()

	errs := ValidateQRCode(&in, "not a domain", true)
	assert.Contains(t, errs, "shopDomain")

	assert.True(t, ValidShopDomain("https://example-shop.myshopify.com"))
	assert.False(t, ValidShopDomain("example-shop.myshopify.com"))
}

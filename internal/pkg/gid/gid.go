package gid

import (
	"errors"
	"regexp"
)

// 外部商品目录使用带命名空间的全局ID，形如 gid://shopify/Product/1234567890
var (
	productRe  = regexp.MustCompile(`^gid://shopify/Product/[0-9]+$`)
	variantRe  = regexp.MustCompile(`^gid://shopify/ProductVariant/([0-9]+)$`)
	discountRe = regexp.MustCompile(`^gid://shopify/DiscountCodeNode/[0-9]+$`)
)

// ErrMalformed 全局ID不符合预期格式
var ErrMalformed = errors.New("全局ID格式错误")

// IsProduct 判断是否为合法的商品全局ID
func IsProduct(id string) bool {
	return productRe.MatchString(id)
}

// IsVariant 判断是否为合法的商品变体全局ID
func IsVariant(id string) bool {
	return variantRe.MatchString(id)
}

// IsDiscount 判断是否为合法的折扣全局ID
func IsDiscount(id string) bool {
	return discountRe.MatchString(id)
}

// VariantNumericID 提取变体全局ID末尾的数字ID
// 格式不匹配时返回 ErrMalformed，绝不把原始字符串原样放行
func VariantNumericID(id string) (string, error) {
	m := variantRe.FindStringSubmatch(id)
	if m == nil {
		return "", ErrMalformed
	}
	return m[1], nil
}

package producturl

import (
	"fmt"
	"net/url"

	"qrcode-system/internal/pkg/gid"
)

// DefaultPurchaseQuantity 扫码下单的默认购买数量
const DefaultPurchaseQuantity = 1

// ProductViewURL 生成商品展示页链接
// 带折扣码时先经过店铺的折扣入口，再由 redirect 参数转回商品页
func ProductViewURL(host, productHandle, discountCode string) (string, error) {
	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("店铺域名无效: %v", err)
	}

	productPath := "/products/" + productHandle

	if discountCode != "" {
		u.Path = "/discount/" + discountCode
		q := u.Query()
		q.Set("redirect", productPath)
		u.RawQuery = q.Encode()
	} else {
		u.Path = productPath
	}

	return u.String(), nil
}

// ProductCheckoutURL 生成携带指定商品变体的结算链接
// 店铺的 /cart/{变体数字ID}:{数量} 路径会直接进入结算流程
func ProductCheckoutURL(host, variantID string, quantity int, discountCode string) (string, error) {
	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("店铺域名无效: %v", err)
	}

	id, err := gid.VariantNumericID(variantID)
	if err != nil {
		return "", fmt.Errorf("变体ID %q 无法解析: %w", variantID, err)
	}

	if quantity <= 0 {
		quantity = DefaultPurchaseQuantity
	}

	u.Path = fmt.Sprintf("/cart/%s:%d", id, quantity)

	if discountCode != "" {
		q := u.Query()
		q.Set("discount", discountCode)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

package producturl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrcode-system/internal/pkg/gid"
)

func TestProductViewURL(t *testing.T) {
	got, err := ProductViewURL("https://shop.test", "widget", "")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/products/widget", got)
}

func TestProductViewURLWithDiscount(t *testing.T) {
	got, err := ProductViewURL("https://shop.test", "widget", "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/discount/SAVE10?redirect=%2Fproducts%2Fwidget", got)
}

func TestProductCheckoutURL(t *testing.T) {
	got, err := ProductCheckoutURL("https://shop.test", "gid://shopify/ProductVariant/456", 1, "")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/cart/456:1", got)
}

func TestProductCheckoutURLWithDiscount(t *testing.T) {
	got, err := ProductCheckoutURL("https://shop.test", "gid://shopify/ProductVariant/456", 0, "SAVE10")
	require.NoError(t, err)
	// 数量缺省为1
	assert.Equal(t, "https://shop.test/cart/456:1?discount=SAVE10", got)
}

func TestProductCheckoutURLQuantity(t *testing.T) {
	got, err := ProductCheckoutURL("https://shop.test", "gid://shopify/ProductVariant/456", 3, "")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/cart/456:3", got)
}

func TestProductCheckoutURLMalformedVariant(t *testing.T) {
	_, err := ProductCheckoutURL("https://shop.test", "not-a-gid", 1, "")
	assert.ErrorIs(t, err, gid.ErrMalformed)
}

package gid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantNumericID(t *testing.T) {
	id, err := VariantNumericID("gid://shopify/ProductVariant/456")
	assert.NoError(t, err)
	assert.Equal(t, "456", id)
}

func TestVariantNumericIDMalformed(t *testing.T) {
	cases := []string{
		"",
		"456",
		"gid://shopify/Product/456",
		"gid://shopify/ProductVariant/abc",
		"gid://other/ProductVariant/456",
		"gid://shopify/ProductVariant/456/extra",
	}

	for _, c := range cases {
		id, err := VariantNumericID(c)
		assert.ErrorIs(t, err, ErrMalformed, "input: %q", c)
		assert.Empty(t, id, "input: %q", c)
	}
}

func TestPatternChecks(t *testing.T) {
	assert.True(t, IsProduct("gid://shopify/Product/123"))
	assert.False(t, IsProduct("gid://shopify/ProductVariant/123"))

	assert.True(t, IsVariant("gid://shopify/ProductVariant/123"))
	assert.False(t, IsVariant("gid://shopify/Product/123"))

	assert.True(t, IsDiscount("gid://shopify/DiscountCodeNode/123"))
	assert.False(t, IsDiscount("gid://shopify/Discount/123"))
}

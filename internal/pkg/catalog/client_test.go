package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodesFiltersMissingIDs(t *testing.T) {
	var gotToken string
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		gotPath = r.URL.Path

		var body struct {
			Variables struct {
				IDs []string `json:"ids"`
			} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Variables.IDs, 2)

		// 不存在的ID会返回null节点
		fmt.Fprint(w, `{
			"data": {
				"nodes": [
					{
						"id": "gid://shopify/Product/123",
						"title": "Widget",
						"handle": "widget",
						"images": {"edges": [{"node": {"url": "https://cdn.test/widget.png"}}]}
					},
					null
				]
			}
		}`)
	}))
	defer srv.Close()

	c := NewAdminClient("2023-10", "token-abc")
	nodes, err := c.Nodes(srv.URL, []string{
		"gid://shopify/Product/123",
		"gid://shopify/Product/999",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-abc", gotToken)
	assert.Equal(t, "/admin/api/2023-10/graphql.json", gotPath)

	require.Len(t, nodes, 1)
	node := nodes["gid://shopify/Product/123"]
	assert.Equal(t, "Widget", node.Title)
	assert.Equal(t, "widget", node.Handle)
	assert.Equal(t, "https://cdn.test/widget.png", node.Image)
	_, ok := nodes["gid://shopify/Product/999"]
	assert.False(t, ok)
}

func TestNodesEmptyIDsSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("空ID列表不应该发起请求")
	}))
	defer srv.Close()

	c := NewAdminClient("2023-10", "token-abc")
	nodes, err := c.Nodes(srv.URL, nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestNodesGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors": [{"message": "Invalid API key or access token"}]}`)
	}))
	defer srv.Close()

	c := NewAdminClient("2023-10", "bad-token")
	_, err := c.Nodes(srv.URL, []string{"gid://shopify/Product/123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key or access token")
}

func TestShopData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data": {
				"shop": {"url": "https://shop.test"},
				"codeDiscountNodes": {
					"edges": [
						{
							"node": {
								"id": "gid://shopify/DiscountCodeNode/789",
								"codeDiscount": {
									"codes": {"edges": [{"node": {"code": "SAVE10"}}]}
								}
							}
						}
					]
				}
			}
		}`)
	}))
	defer srv.Close()

	c := NewAdminClient("2023-10", "token-abc")
	data, err := c.ShopData(srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.test", data.URL)
	require.Len(t, data.Discounts, 1)
	assert.Equal(t, "gid://shopify/DiscountCodeNode/789", data.Discounts[0].ID)
	assert.Equal(t, "SAVE10", data.Discounts[0].Code)
}

func TestQueryBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewAdminClient("2023-10", "token-abc")
	_, err := c.ShopData(srv.URL)
	assert.Error(t, err)
}

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Node 商品目录中的一个节点（商品、变体或折扣）
// 不存在的ID不会出现在查询结果里
type Node struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Image  string `json:"image"`
}

// Discount 可用的折扣码
type Discount struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// ShopData 店铺信息和可选折扣列表，用于二维码表单
type ShopData struct {
	URL       string     `json:"url"`
	Discounts []Discount `json:"discounts"`
}

// Client 外部商品目录的查询接口
type Client interface {
	// Nodes 按ID批量查询节点，一次请求查完，返回按ID索引的结果
	Nodes(shopDomain string, ids []string) (map[string]Node, error)
	// ShopData 查询店铺地址和前25个折扣码
	ShopData(shopDomain string) (*ShopData, error)
}

// 批量节点查询，折扣在数据库里只存ID，展示数据在读取时实时查询，避免数据过期
const nodesQuery = `
  query nodes($ids: [ID!]!) {
    nodes(ids: $ids) {
      ... on Product {
        id
        handle
        title
        images(first: 1) {
          edges {
            node {
              url
            }
          }
        }
      }
      ... on ProductVariant {
        id
      }
      ... on DiscountCodeNode {
        id
      }
    }
  }
`

const shopDataQuery = `
  query shopData($first: Int!) {
    shop {
      url
    }
    codeDiscountNodes(first: $first) {
      edges {
        node {
          id
          codeDiscount {
            ... on DiscountCodeBasic {
              codes(first: 1) {
                edges {
                  node {
                    code
                  }
                }
              }
            }
            ... on DiscountCodeBxgy {
              codes(first: 1) {
                edges {
                  node {
                    code
                  }
                }
              }
            }
            ... on DiscountCodeFreeShipping {
              codes(first: 1) {
                edges {
                  node {
                    code
                  }
                }
              }
            }
          }
        }
      }
    }
  }
`

// AdminClient 调用 GraphQL Admin API 的目录客户端
type AdminClient struct {
	apiVersion  string
	accessToken string
	httpClient  *http.Client
}

func NewAdminClient(apiVersion, accessToken string) *AdminClient {
	return &AdminClient{
		apiVersion:  apiVersion,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type imageEdges struct {
	Edges []struct {
		Node struct {
			URL string `json:"url"`
		} `json:"node"`
	} `json:"edges"`
}

type codeEdges struct {
	Edges []struct {
		Node struct {
			Code string `json:"code"`
		} `json:"node"`
	} `json:"edges"`
}

func (c *AdminClient) Nodes(shopDomain string, ids []string) (map[string]Node, error) {
	if len(ids) == 0 {
		return map[string]Node{}, nil
	}

	var result struct {
		Data struct {
			Nodes []*struct {
				ID     string     `json:"id"`
				Title  string     `json:"title"`
				Handle string     `json:"handle"`
				Images imageEdges `json:"images"`
			} `json:"nodes"`
		} `json:"data"`
	}

	err := c.query(shopDomain, nodesQuery, map[string]interface{}{"ids": ids}, &result)
	if err != nil {
		return nil, err
	}

	// 不存在的ID返回null节点，过滤掉
	nodes := make(map[string]Node, len(result.Data.Nodes))
	for _, n := range result.Data.Nodes {
		if n == nil || n.ID == "" {
			continue
		}
		node := Node{
			ID:     n.ID,
			Title:  n.Title,
			Handle: n.Handle,
		}
		if len(n.Images.Edges) > 0 {
			node.Image = n.Images.Edges[0].Node.URL
		}
		nodes[n.ID] = node
	}

	return nodes, nil
}

func (c *AdminClient) ShopData(shopDomain string) (*ShopData, error) {
	var result struct {
		Data struct {
			Shop struct {
				URL string `json:"url"`
			} `json:"shop"`
			CodeDiscountNodes struct {
				Edges []struct {
					Node struct {
						ID           string `json:"id"`
						CodeDiscount struct {
							Codes codeEdges `json:"codes"`
						} `json:"codeDiscount"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"codeDiscountNodes"`
		} `json:"data"`
	}

	err := c.query(shopDomain, shopDataQuery, map[string]interface{}{"first": 25}, &result)
	if err != nil {
		return nil, err
	}

	data := &ShopData{URL: result.Data.Shop.URL}
	for _, edge := range result.Data.CodeDiscountNodes.Edges {
		discount := Discount{ID: edge.Node.ID}
		if codes := edge.Node.CodeDiscount.Codes.Edges; len(codes) > 0 {
			discount.Code = codes[0].Node.Code
		}
		data.Discounts = append(data.Discounts, discount)
	}

	return data, nil
}

// query 向目录服务发起一次GraphQL请求并解析响应
func (c *AdminClient) query(shopDomain, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("序列化查询失败: %v", err)
	}

	endpoint := fmt.Sprintf("%s/admin/api/%s/graphql.json", shopDomain, c.apiVersion)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("构建请求失败: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求目录服务失败: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("目录服务返回异常状态: %d", resp.StatusCode)
	}

	// 先检查GraphQL层面的错误
	var probe struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %v", err)
	}
	if err := json.Unmarshal(raw, &probe); err == nil && len(probe.Errors) > 0 {
		return fmt.Errorf("目录查询失败: %s", probe.Errors[0].Message)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("解析目录响应失败: %v", err)
	}

	return nil
}

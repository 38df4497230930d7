package service

import (
	"fmt"
	"time"

	"qrcode-system/internal/model"
	"qrcode-system/internal/pkg/logger"
)

// ProductInfo 从商品目录实时查到的商品展示数据
type ProductInfo struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Image  string `json:"image,omitempty"`
	Handle string `json:"handle,omitempty"`
}

// QRCodeResponse 对外返回的二维码记录
// 商品ID被实时查询的商品数据取代，imageUrl是读取时派生的，不落库
type QRCodeResponse struct {
	ID           uint         `json:"id"`
	ShopDomain   string       `json:"shopDomain"`
	Title        string       `json:"title"`
	VariantID    string       `json:"variantId"`
	Handle       string       `json:"handle"`
	DiscountID   string       `json:"discountId"`
	DiscountCode string       `json:"discountCode"`
	Destination  string       `json:"destination"`
	Scans        int          `json:"scans"`
	CreatedAt    time.Time    `json:"createdAt"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Product      *ProductInfo `json:"product,omitempty"`
}

// Hydrate 用商品目录的实时数据充实记录
// 目录查询一次批量完成；商品已删除时用占位数据代替；
// 折扣已删除时把记录里的折扣ID和折扣码一并清空并落库（自愈写入），
// 两个字段永远同生同灭
func (s *QRCodeService) Hydrate(shopDomain string, codes []model.QRCode) []QRCodeResponse {
	resps := make([]QRCodeResponse, 0, len(codes))
	if len(codes) == 0 {
		return resps
	}

	// 收集全部商品、变体和折扣ID，一次查完，不做逐条查询
	var ids []string
	for _, qr := range codes {
		ids = append(ids, qr.ProductID, qr.VariantID)
		if qr.DiscountID != "" {
			ids = append(ids, qr.DiscountID)
		}
	}

	nodes, err := s.catalog.Nodes(shopDomain, ids)
	catalogOK := err == nil
	if err != nil {
		// 目录查询失败时降级：返回库内字段，不附加展示数据，也不动折扣字段
		// 清空折扣需要"折扣确实已删除"的确凿证据，查询失败不算
		logger.Warnf("商品目录查询失败，跳过数据充实: %v", err)
	}

	for _, qr := range codes {
		resp := s.toResponse(qr)

		if !catalogOK {
			resps = append(resps, resp)
			continue
		}

		if product, ok := nodes[qr.ProductID]; ok {
			resp.Product = &ProductInfo{
				ID:     product.ID,
				Title:  product.Title,
				Image:  product.Image,
				Handle: product.Handle,
			}
		} else {
			// 商品已在目录中删除，用占位数据让前端能正确展示这条记录
			resp.Product = &ProductInfo{Title: "Deleted product"}
		}

		if qr.DiscountID != "" {
			if _, ok := nodes[qr.DiscountID]; !ok {
				s.resetDiscount(qr.ID)
				resp.DiscountID = ""
				resp.DiscountCode = ""
			}
		}

		resps = append(resps, resp)
	}

	return resps
}

// resetDiscount 折扣已被商家删除，清空记录里的折扣字段
// 单条UPDATE同时清两个字段，不存在只清一半的中间态
func (s *QRCodeService) resetDiscount(id uint) {
	err := s.db.Model(&model.QRCode{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"discount_id":   "",
			"discount_code": "",
		}).Error
	if err != nil {
		logger.Errorf("清空二维码 %d 的折扣字段失败: %v", id, err)
	}
}

// toResponse 把库内记录转成响应结构，附加派生的图片链接
// 图片链接生成失败不影响读取本身，记录日志后继续
func (s *QRCodeService) toResponse(qr model.QRCode) QRCodeResponse {
	resp := QRCodeResponse{
		ID:           qr.ID,
		ShopDomain:   qr.ShopDomain,
		Title:        qr.Title,
		VariantID:    qr.VariantID,
		Handle:       qr.Handle,
		DiscountID:   qr.DiscountID,
		DiscountCode: qr.DiscountCode,
		Destination:  qr.Destination,
		Scans:        qr.Scans,
		CreatedAt:    qr.CreatedAt,
	}

	if s.publicHost == "" {
		logger.Warnf("未配置对外地址，无法生成二维码 %d 的图片链接", qr.ID)
	} else {
		resp.ImageURL = fmt.Sprintf("%s/qrcodes/%d/image", s.publicHost, qr.ID)
	}

	return resp
}

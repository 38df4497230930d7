package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"qrcode-system/internal/model"
	"qrcode-system/internal/pkg/catalog"
)

// fakeCatalog 测试用的目录客户端
type fakeCatalog struct {
	nodes map[string]catalog.Node
	err   error
	calls int
}

func (f *fakeCatalog) Nodes(shopDomain string, ids []string) (map[string]catalog.Node, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.nodes, nil
}

func (f *fakeCatalog) ShopData(shopDomain string) (*catalog.ShopData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.ShopData{URL: shopDomain}, nil
}

func newTestService(t *testing.T, cat catalog.Client) *QRCodeService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库跟随连接存亡，串行化连接池避免sqlite表锁
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.QRCode{}))

	if cat == nil {
		cat = &fakeCatalog{nodes: map[string]catalog.Node{}}
	}

	return NewQRCodeService(db, cat, "https://qr.example.com")
}

func validInput() QRCodeInput {
	return QRCodeInput{
		Title:       "Widget promo",
		ProductID:   "gid://shopify/Product/123",
		VariantID:   "gid://shopify/ProductVariant/456",
		Handle:      "widget",
		Destination: model.DestinationProduct,
	}
}

func TestCreateAndRead(t *testing.T) {
	s := newTestService(t, nil)
	in := validInput()

	id, err := s.Create("https://shop.test", in)
	require.NoError(t, err)
	assert.NotZero(t, id)

	qr, err := s.Read(id, "https://shop.test", true)
	require.NoError(t, err)
	assert.Equal(t, in.Title, qr.Title)
	assert.Equal(t, in.ProductID, qr.ProductID)
	assert.Equal(t, in.VariantID, qr.VariantID)
	assert.Equal(t, in.Handle, qr.Handle)
	assert.Equal(t, in.Destination, qr.Destination)
	assert.Equal(t, "https://shop.test", qr.ShopDomain)
	assert.Equal(t, 0, qr.Scans)
	assert.False(t, qr.CreatedAt.IsZero())
}

func TestReadUnknown(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.Read(999, "https://shop.test", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadCrossShop(t *testing.T) {
	s := newTestService(t, nil)

	id, err := s.Create("https://shop-a.test", validInput())
	require.NoError(t, err)

	// 开启归属校验时，别人店铺的记录和不存在的记录不可区分
	_, err = s.Read(id, "https://shop-b.test", true)
	assert.ErrorIs(t, err, ErrNotFound)

	// 公开路径跳过归属校验
	qr, err := s.Read(id, "", false)
	require.NoError(t, err)
	assert.Equal(t, "https://shop-a.test", qr.ShopDomain)
}

func TestListScopedToShop(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.Create("https://shop-a.test", validInput())
	require.NoError(t, err)
	_, err = s.Create("https://shop-a.test", validInput())
	require.NoError(t, err)
	_, err = s.Create("https://shop-b.test", validInput())
	require.NoError(t, err)

	codes, err := s.List("https://shop-a.test")
	require.NoError(t, err)
	assert.Len(t, codes, 2)
	for _, qr := range codes {
		assert.Equal(t, "https://shop-a.test", qr.ShopDomain)
	}
}

func TestUpdateKeepsImmutableFields(t *testing.T) {
	s := newTestService(t, nil)

	id, err := s.Create("https://shop.test", validInput())
	require.NoError(t, err)
	require.NoError(t, s.IncrementScans(id))

	before, err := s.Read(id, "", false)
	require.NoError(t, err)

	in := validInput()
	in.Title = "New title"
	in.Destination = model.DestinationCheckout
	require.NoError(t, s.Update(id, in))

	qr, err := s.Read(id, "https://shop.test", true)
	require.NoError(t, err)
	assert.Equal(t, "New title", qr.Title)
	assert.Equal(t, model.DestinationCheckout, qr.Destination)

	// 扫码计数、店铺归属和创建时间不随更新改变
	assert.Equal(t, 1, qr.Scans)
	assert.Equal(t, "https://shop.test", qr.ShopDomain)
	assert.Equal(t, before.CreatedAt, qr.CreatedAt)
}

func TestUpdateUnknown(t *testing.T) {
	s := newTestService(t, nil)

	err := s.Update(999, validInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestService(t, nil)

	id, err := s.Create("https://shop.test", validInput())
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))

	_, err = s.Read(id, "", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncrementScansConcurrent(t *testing.T) {
	s := newTestService(t, nil)

	id, err := s.Create("https://shop.test", validInput())
	require.NoError(t, err)

	// 并发扫码不丢计数：递增是数据库端的单条算术更新
	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, s.IncrementScans(id))
		}()
	}
	wg.Wait()

	qr, err := s.Read(id, "", false)
	require.NoError(t, err)
	assert.Equal(t, n, qr.Scans)
}

func TestHandleScanProduct(t *testing.T) {
	s := newTestService(t, nil)

	in := validInput()
	in.DiscountID = "gid://shopify/DiscountCodeNode/789"
	in.DiscountCode = "SAVE10"
	id, err := s.Create("https://shop.test", in)
	require.NoError(t, err)

	dest, err := s.HandleScan(id)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/discount/SAVE10?redirect=%2Fproducts%2Fwidget", dest)

	qr, err := s.Read(id, "", false)
	require.NoError(t, err)
	assert.Equal(t, 1, qr.Scans)
}

func TestHandleScanCheckout(t *testing.T) {
	s := newTestService(t, nil)

	in := validInput()
	in.Destination = model.DestinationCheckout
	id, err := s.Create("https://shop.test", in)
	require.NoError(t, err)

	dest, err := s.HandleScan(id)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/cart/456:1", dest)

	qr, err := s.Read(id, "", false)
	require.NoError(t, err)
	assert.Equal(t, 1, qr.Scans)
}

func TestHandleScanUnknown(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.HandleScan(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandleScanUnrecognizedDestination(t *testing.T) {
	s := newTestService(t, nil)

	id, err := s.Create("https://shop.test", validInput())
	require.NoError(t, err)

	// 绕过校验直接破坏库里的跳转目标，模拟上游数据损坏
	err = s.db.Model(&model.QRCode{}).
		Where("id = ?", id).
		UpdateColumn("destination", "banana").Error
	require.NoError(t, err)

	_, err = s.HandleScan(id)
	assert.ErrorIs(t, err, ErrUnrecognizedDestination)
}

func TestScanURL(t *testing.T) {
	s := newTestService(t, nil)
	assert.Equal(t, "https://qr.example.com/qrcodes/7/scan", s.ScanURL(7))
}

package service

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaciL4/Shop-Website/internal/catalogue"
	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
)

const svcProductsJSON = `[
  {"id": 1, "name": "Basic Tee", "category": "Men", "price": 19.99, "sku": "M-001", "stock": 10},
  {"id": 2, "name": "Summer Dress", "category": "Women", "price": 49.50, "sku": "W-001", "stock": 5},
  {"id": 3, "name": "Leather Belt", "category": "Accessories", "price": 15.00, "sku": "A-001", "stock": 0}
]`

const svcCategoriesXML = `<?xml version="1.0" encoding="UTF-8"?>
<categories>
  <category><name>Men</name><description>Menswear</description></category>
  <category><name>Women</name><description>Womenswear</description></category>
  <category><name>Accessories</name><description>Extras</description></category>
</categories>`

const svcReviewsJSON = `[]`

// testCatalogue 基于临时目录的固定目录数据，供各服务测试共用
func testCatalogue(t *testing.T) *catalogue.Store {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}
	cat := catalogue.NewStore(catalogue.Sources{
		Products:   write("products.json", svcProductsJSON),
		Categories: write("categories.xml", svcCategoriesXML),
		Reviews:    write("reviews.json", svcReviewsJSON),
	})
	require.NoError(t, cat.Load(context.Background()))
	return cat
}

func TestCartAddMerge(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()

	svc.Add(store, 1, 2)
	lines := svc.Add(store, 1, 3)

	// 同一商品累加为单行
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, 5, lines[0].Qty)
}

func TestCartAddDefaultsQtyToOne(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()

	lines := svc.Add(store, 2, 0)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Qty)
}

func TestCartAddUnknownProductNoop(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()

	svc.Add(store, 1, 1)
	lines := svc.Add(store, 999, 1)

	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ID)
	// 存储也未被污染
	assert.Len(t, svc.Load(store), 1)
}

func TestCartSetQuantityRemovesAtZero(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()

	svc.Add(store, 1, 2)
	svc.Add(store, 2, 1)

	lines := svc.SetQuantity(store, 1, 0)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ID)

	lines = svc.SetQuantity(store, 2, -3)
	assert.Empty(t, lines)
}

func TestCartNoNonPositiveLinesEverPersisted(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()

	svc.Add(store, 1, 2)
	svc.Add(store, 1, -5)
	svc.SetQuantity(store, 2, -1)

	for _, l := range svc.Load(store) {
		assert.Greater(t, l.Qty, 0)
	}
}

func TestCartRemove(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()

	svc.Add(store, 1, 1)
	svc.Add(store, 2, 1)

	lines := svc.Remove(store, 1)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ID)

	// 不存在的商品是空操作
	lines = svc.Remove(store, 999)
	assert.Len(t, lines, 1)
}

func TestCartLoadCorruptedCookie(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()
	store.Set(CartCookie, "not-json{", CartTTL)

	assert.Empty(t, svc.Load(store))
}

func TestCartTotals(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()

	svc.Add(store, 1, 2) // 2 × 19.99
	svc.Add(store, 2, 1) // 1 × 49.50

	totals := svc.Totals(svc.Load(store))
	assert.InDelta(t, 89.48, totals.Subtotal, 1e-9)
	assert.InDelta(t, totals.Subtotal*TaxRate, totals.Tax, 1e-9)
	assert.InDelta(t, totals.Subtotal+totals.Tax, totals.Total, 1e-9)
}

func TestCartTotalsSkipsUnresolvedLines(t *testing.T) {
	svc := NewCartService(testCatalogue(t))
	store := cookies.NewMemory()

	// 模拟目录下架后残留的行项目
	store.Set(CartCookie, `[{"id":1,"qty":1},{"id":777,"qty":4}]`, CartTTL)

	totals := svc.Totals(svc.Load(store))
	assert.InDelta(t, 19.99, totals.Subtotal, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 89.48, Round2(89.4799999))
	assert.Equal(t, 0.1, Round2(0.10000001))
	assert.True(t, math.Abs(Round2(2.675)-2.68) <= 0.01)
}

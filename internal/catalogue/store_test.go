package catalogue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProductsJSON = `[
  {"id": 1, "name": "Classic Oxford Shirt", "category": "Men", "price": 49.9,
   "description": "Crisp cotton shirt.", "image": "/img/1.jpg", "sku": "MEN-001", "stock": 24},
  {"id": 2, "name": "Floral Midi Dress", "category": "Women", "price": 79.0,
   "description": "Lightweight midi dress.", "image": "/img/2.jpg", "sku": "WMN-002", "stock": 15},
  {"id": 3, "name": "Garden Gloves", "category": "Home & Garden", "price": 9.5,
   "description": "Sturdy gloves.", "image": "/img/3.jpg", "sku": "HG-003", "stock": 50},
  {"id": 4, "name": "Linen Summer Shirt", "category": "Men", "price": 39.9,
   "description": "Breathable linen shirt.", "image": "/img/4.jpg", "sku": "MEN-004", "stock": 13}
]`

const testCategoriesXML = `<?xml version="1.0" encoding="UTF-8"?>
<categories>
  <category><name>Men</name><description>For men.</description></category>
  <category><name>Women</name><description>For women.</description></category>
</categories>`

const testReviewsJSON = `[
  {"product_id": 1, "reviews": [
    {"review_id": 101, "user": "Marcus", "rating": 5, "title": "Great", "comment": "Love it."},
    {"review_id": 102, "user": "Dana", "rating": 4, "title": "Good", "comment": "Solid."}
  ]},
  {"product_id": 99, "reviews": [
    {"review_id": 103, "user": "Ghost", "rating": 1, "title": "?", "comment": "orphan review"}
  ]}
]`

func writeFixtures(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}
	return Sources{
		Products:   write("products.json", testProductsJSON),
		Categories: write("categories.xml", testCategoriesXML),
		Reviews:    write("reviews.json", testReviewsJSON),
	}
}

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(writeFixtures(t))
	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, StateReady, s.State())
	return s
}

func TestLoadNormalization(t *testing.T) {
	s := loadedStore(t)

	p, ok := s.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, "Classic Oxford Shirt", p.Title)
	assert.Equal(t, p.Name, p.Title)
	assert.Equal(t, "men", p.CategorySlug)
	assert.Len(t, p.Reviews, 2)
	assert.Equal(t, "Marcus", p.Reviews[0].Author)
	assert.Equal(t, int64(1), p.Reviews[0].ProductID)

	// 分类记录缺失时现场计算 slug
	hg, ok := s.GetByID(3)
	require.True(t, ok)
	assert.Equal(t, "home-and-garden", hg.CategorySlug)

	// 扁平索引只包含挂到商品上的评价，孤儿评价被丢弃
	assert.Len(t, s.AllReviews(), 2)
	assert.Len(t, s.Categories(), 2)
}

func TestLoadIdempotent(t *testing.T) {
	src := writeFixtures(t)
	s := NewStore(src)
	require.NoError(t, s.Load(context.Background()))
	first := s.Products()

	// 再次加载不应重新拉取：换掉数据源文件也不影响已就绪的目录
	require.NoError(t, os.WriteFile(src.Products, []byte("[]"), 0o644))
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, first, s.Products())
}

func TestLoadFailurePolicy(t *testing.T) {
	src := writeFixtures(t)
	src.Reviews = filepath.Join(t.TempDir(), "missing.json")
	s := NewStore(src)

	// 任一数据源失败则整体失败，不发布部分数据
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateUninitialized, s.State())
	assert.Empty(t, s.Products())
	_, ok := s.GetByID(1)
	assert.False(t, ok)
}

func TestLoadRetryAfterFailure(t *testing.T) {
	good := writeFixtures(t)
	src := good
	src.Products = filepath.Join(t.TempDir(), "missing.json")
	s := NewStore(src)
	require.Error(t, s.Load(context.Background()))

	// 修复数据源后重试成功
	s.src = good
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, StateReady, s.State())
}

func TestConcurrentLoadSingleFetch(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		switch r.URL.Path {
		case "/products.json":
			w.Write([]byte(testProductsJSON))
		case "/categories.xml":
			w.Write([]byte(testCategoriesXML))
		case "/reviews.json":
			w.Write([]byte(testReviewsJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := NewStore(Sources{
		Products:   server.URL + "/products.json",
		Categories: server.URL + "/categories.xml",
		Reviews:    server.URL + "/reviews.json",
	})

	// 并发 Load 共享同一次拉取，三个数据源各只命中一次
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Load(context.Background()))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestGetByID(t *testing.T) {
	s := loadedStore(t)

	_, ok := s.GetByID(999)
	assert.False(t, ok)

	// 字符串形式先做数值强转
	p, ok := s.LookupID(" 2 ")
	require.True(t, ok)
	assert.Equal(t, int64(2), p.ID)

	_, ok = s.LookupID("not-a-number")
	assert.False(t, ok)
}

func TestReviewsEmpty(t *testing.T) {
	s := loadedStore(t)
	assert.Empty(t, s.Reviews(2))
	assert.NotNil(t, s.Reviews(2))
	assert.Empty(t, s.Reviews(999))
}

func TestList(t *testing.T) {
	s := loadedStore(t)

	all := s.List(Query{})
	assert.Equal(t, 4, all.Total)
	assert.Equal(t, 1, all.TotalPages)

	men := s.List(Query{CategorySlug: "men"})
	assert.Equal(t, 2, men.Total)

	cheap := s.List(Query{MaxPrice: 40})
	assert.Equal(t, 2, cheap.Total)

	search := s.List(Query{Keyword: "SHIRT"})
	assert.Equal(t, 2, search.Total)

	// 描述也参与关键字匹配
	desc := s.List(Query{Keyword: "breathable"})
	assert.Equal(t, 1, desc.Total)

	asc := s.List(Query{Sort: SortPriceAsc})
	require.Len(t, asc.Items, 4)
	assert.Equal(t, int64(3), asc.Items[0].ID)
	desc2 := s.List(Query{Sort: SortPriceDesc})
	assert.Equal(t, int64(2), desc2.Items[0].ID)
}

func TestListPagination(t *testing.T) {
	s := loadedStore(t)
	page1 := s.List(Query{PerPage: 3, Page: 1})
	assert.Len(t, page1.Items, 3)
	assert.Equal(t, 2, page1.TotalPages)
	page2 := s.List(Query{PerPage: 3, Page: 2})
	assert.Len(t, page2.Items, 1)

	// 页码越界回落到最后一页
	clamped := s.List(Query{PerPage: 3, Page: 99})
	assert.Equal(t, 2, clamped.Page)
}

func TestRelatedAndFeatured(t *testing.T) {
	s := loadedStore(t)
	p, _ := s.GetByID(1)
	related := s.Related(p, 8)
	require.Len(t, related, 1)
	assert.Equal(t, int64(4), related[0].ID)

	featured := s.Featured(2)
	assert.Len(t, featured, 2)
}

func TestSuggest(t *testing.T) {
	s := loadedStore(t)

	got := s.Suggest("shirt", 10)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Highlighted, "<mark>Shirt</mark>")

	assert.Empty(t, s.Suggest("", 10))
	assert.Empty(t, s.Suggest("zzz", 10))

	one := s.Suggest("shirt", 1)
	assert.Len(t, one, 1)
}

func TestCategoryBySlug(t *testing.T) {
	s := loadedStore(t)

	c, ok := s.CategoryBySlug("men")
	require.True(t, ok)
	assert.Equal(t, "Men", c.Name)

	_, ok = s.CategoryBySlug("nope")
	assert.False(t, ok)
}

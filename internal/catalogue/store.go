package catalogue

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/KaciL4/Shop-Website/internal/datamodels/category"
	"github.com/KaciL4/Shop-Website/internal/datamodels/product"
)

// State 目录加载状态
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// Store 商品目录：一次性加载并归一化商品/分类/评价，会话期内只读。
// Load 幂等；加载中的重复调用通过 singleflight 共享同一次拉取，
// 不会触发重复请求。任一数据源失败则整体失败，状态回到未初始化，
// 不发布部分数据，后续调用可以重试。
type Store struct {
	src Sources

	group singleflight.Group

	mu         sync.RWMutex
	state      State
	products   []*product.Product
	byID       map[int64]*product.Product
	categories []*category.Category
	reviews    []*product.Review // 全量评价的扁平索引
}

// NewStore 创建目录存储
func NewStore(src Sources) *Store {
	return &Store{
		src:  src,
		byID: make(map[int64]*product.Product),
	}
}

// State 当前状态
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load 加载目录。已就绪时立即返回，不重新拉取
func (s *Store) Load(ctx context.Context) error {
	if s.State() == StateReady {
		return nil
	}
	_, err, _ := s.group.Do("load", func() (interface{}, error) {
		// 排队期间上一次调用可能已经完成
		if s.State() == StateReady {
			return nil, nil
		}
		return nil, s.doLoad(ctx)
	})
	return err
}

func (s *Store) doLoad(ctx context.Context) error {
	s.setState(StateLoading)

	var (
		rawProducts []rawProduct
		rawCats     []rawCategory
		rawRevs     []rawProductReviews
	)

	// 三个数据源并发拉取，全部完成后才进入归一化
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rawProducts, err = fetchProducts(gctx, s.src.Products)
		return err
	})
	g.Go(func() (err error) {
		rawCats, err = fetchCategories(gctx, s.src.Categories)
		return err
	})
	g.Go(func() (err error) {
		rawRevs, err = fetchReviews(gctx, s.src.Reviews)
		return err
	})
	if err := g.Wait(); err != nil {
		s.setState(StateUninitialized)
		zap.L().Error("catalogue load failed", zap.Error(err))
		return err
	}

	s.normalize(rawProducts, rawCats, rawRevs)
	zap.L().Info("catalogue loaded",
		zap.Int("products", len(rawProducts)),
		zap.Int("categories", len(rawCats)))
	return nil
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// normalize 归一化并一次性发布目录数据
func (s *Store) normalize(rawProducts []rawProduct, rawCats []rawCategory, rawRevs []rawProductReviews) {
	cats := make([]*category.Category, 0, len(rawCats))
	slugByName := make(map[string]string, len(rawCats))
	for _, rc := range rawCats {
		c := &category.Category{
			Name:        rc.Name,
			Description: rc.Description,
			Slug:        category.Slugify(rc.Name),
		}
		cats = append(cats, c)
		slugByName[rc.Name] = c.Slug
	}

	products := make([]*product.Product, 0, len(rawProducts))
	byID := make(map[int64]*product.Product, len(rawProducts))
	for _, rp := range rawProducts {
		slug, ok := slugByName[rp.Category]
		if !ok {
			// 没有匹配的分类记录时按名称现场计算
			slug = category.Slugify(rp.Category)
		}
		p := &product.Product{
			ID:           rp.ID,
			Name:         rp.Name,
			Title:        rp.Name,
			Description:  rp.Description,
			Price:        rp.Price,
			CategoryName: rp.Category,
			CategorySlug: slug,
			Image:        rp.Image,
			SKU:          rp.SKU,
			Stock:        rp.Stock,
			Reviews:      []*product.Review{},
		}
		products = append(products, p)
		byID[p.ID] = p
	}

	// 评价按 product_id 挂到对应商品
	for _, pr := range rawRevs {
		p, ok := byID[pr.ProductID]
		if !ok {
			continue
		}
		for _, rr := range pr.Reviews {
			p.Reviews = append(p.Reviews, &product.Review{
				ID:        rr.ReviewID,
				ProductID: pr.ProductID,
				Author:    rr.User,
				Rating:    rr.Rating,
				Title:     rr.Title,
				Text:      rr.Comment,
			})
		}
	}

	// 扁平评价索引由各商品评价列表推导
	var flat []*product.Review
	for _, p := range products {
		flat = append(flat, p.Reviews...)
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.categories = cats
	s.reviews = flat
	s.state = StateReady
	s.mu.Unlock()
}

// GetByID 按整型 ID 精确查找，未找到返回 (nil, false)，不返回错误
func (s *Store) GetByID(id int64) (*product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// LookupID 按任意字符串形式的 ID 查找，先做数值强转再比较
func (s *Store) LookupID(raw string) (*product.Product, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, false
	}
	return s.GetByID(id)
}

// Reviews 某商品的评价列表，不存在时返回空切片而不是错误
func (s *Store) Reviews(productID int64) []*product.Review {
	p, ok := s.GetByID(productID)
	if !ok || len(p.Reviews) == 0 {
		return []*product.Review{}
	}
	return p.Reviews
}

// AllReviews 全量评价扁平索引
func (s *Store) AllReviews() []*product.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews
}

// Categories 全部分类
func (s *Store) Categories() []*category.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

// Products 全部商品（加载顺序）
func (s *Store) Products() []*product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// CategoryBySlug 按 slug 查分类
func (s *Store) CategoryBySlug(slug string) (*category.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return nil, false
}

// DefaultPerPage 商品列表每页条数
const DefaultPerPage = 50

// 列表排序方式
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Query 商品列表查询条件
type Query struct {
	CategorySlug string
	MaxPrice     float64 // 0 表示不限价
	Keyword      string  // 标题/描述不区分大小写子串匹配
	Sort         string
	Page         int // 从 1 开始
	PerPage      int
}

// PageResult 分页结果
type PageResult struct {
	Items      []*product.Product `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// List 过滤、排序、分页商品列表
func (s *Store) List(q Query) PageResult {
	s.mu.RLock()
	filtered := make([]*product.Product, 0, len(s.products))
	kw := strings.ToLower(strings.TrimSpace(q.Keyword))
	for _, p := range s.products {
		if q.CategorySlug != "" && p.CategorySlug != q.CategorySlug {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		if kw != "" &&
			!strings.Contains(strings.ToLower(p.Title), kw) &&
			!strings.Contains(strings.ToLower(p.Description), kw) {
			continue
		}
		filtered = append(filtered, p)
	}
	s.mu.RUnlock()

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(filtered)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return PageResult{
		Items:      filtered[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

// Related 同原始分类的关联商品（不含自身），最多 limit 个
func (s *Store) Related(p *product.Product, limit int) []*product.Product {
	if limit <= 0 {
		limit = 8
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	related := make([]*product.Product, 0, limit)
	for _, other := range s.products {
		if other.ID == p.ID || other.CategoryName != p.CategoryName {
			continue
		}
		related = append(related, other)
		if len(related) >= limit {
			break
		}
	}
	return related
}

// Featured 首页精选：没有精选标记时取前 n 个商品
func (s *Store) Featured(n int) []*product.Product {
	if n <= 0 {
		n = 8
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.products) {
		n = len(s.products)
	}
	return s.products[:n]
}

// Suggestion 搜索建议条目，Highlighted 用 <mark> 标记命中片段
type Suggestion struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Highlighted string `json:"highlighted"`
}

// Suggest 按名称做不区分大小写的子串匹配，最多返回 limit 条
func (s *Store) Suggest(q string, limit int) []Suggestion {
	if limit <= 0 {
		limit = 10
	}
	kw := strings.ToLower(strings.TrimSpace(q))
	if kw == "" {
		return []Suggestion{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Suggestion, 0, limit)
	for _, p := range s.products {
		idx := strings.Index(strings.ToLower(p.Name), kw)
		if idx < 0 {
			continue
		}
		hit := p.Name[idx : idx+len(kw)]
		out = append(out, Suggestion{
			ID:          p.ID,
			Name:        p.Name,
			Highlighted: p.Name[:idx] + "<mark>" + hit + "</mark>" + p.Name[idx+len(kw):],
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

package product

// Product 商品模型
// 由商品目录加载时从原始数据归一化得到，会话期内只读
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`  // 原始名称
	Title       string  `json:"title"` // 展示标题，加载时从 Name 复制
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	// CategoryName 原始分类名；CategorySlug 由分类记录解析，
	// 无匹配分类时按名称现场计算
	CategoryName string    `json:"categoryName"`
	CategorySlug string    `json:"categorySlug"`
	Image        string    `json:"image"`
	SKU          string    `json:"sku"`
	Stock        int       `json:"stock"`
	Reviews      []*Review `json:"reviews"`
}

// InStock 是否有库存
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Review 商品评价，归一化时按商品 ID 挂到对应商品上
type Review struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"` // 1-5
	Title     string `json:"title"`
	Text      string `json:"text"`
}

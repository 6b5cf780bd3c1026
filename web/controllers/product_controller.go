package controllers

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/KaciL4/Shop-Website/internal/catalogue"
)

// ProductController 商品目录相关接口：列表、详情、评价、关联商品、
// 分类、精选、搜索建议。目录加载是惰性的，每个接口先做一次幂等 Load
type ProductController struct {
	Catalogue *catalogue.Store
}

// NewProductController 构造函数
func NewProductController(cat *catalogue.Store) *ProductController {
	return &ProductController{Catalogue: cat}
}

func (c *ProductController) ensureLoaded(ctx iris.Context) bool {
	if err := c.Catalogue.Load(ctx.Request().Context()); err != nil {
		ctx.StopWithJSON(503, iris.Map{"code": 503, "msg": "catalogue unavailable: " + err.Error()})
		return false
	}
	return true
}

// List 处理 GET /api/products
// 支持 category（slug）、q（关键字）、max_price、sort、page 参数
func (c *ProductController) List(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	maxPrice, _ := strconv.ParseFloat(ctx.URLParam("max_price"), 64)
	page, _ := strconv.Atoi(ctx.URLParam("page"))

	result := c.Catalogue.List(catalogue.Query{
		CategorySlug: ctx.URLParam("category"),
		Keyword:      ctx.URLParam("q"),
		MaxPrice:     maxPrice,
		Sort:         ctx.URLParam("sort"),
		Page:         page,
	})
	ctx.JSON(iris.Map{"code": 0, "data": result})
}

// Detail 处理 GET /api/products/{id}
func (c *ProductController) Detail(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	// 按字符串取参后做数值强转，与前端传参方式保持宽容
	p, ok := c.Catalogue.LookupID(ctx.Params().Get("id"))
	if !ok {
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": p})
}

// Reviews 处理 GET /api/products/{id}/reviews
// 没有评价时返回空列表，不报错
func (c *ProductController) Reviews(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	pid, _ := ctx.Params().GetInt64("id")
	ctx.JSON(iris.Map{"code": 0, "data": c.Catalogue.Reviews(pid)})
}

// Related 处理 GET /api/products/{id}/related
func (c *ProductController) Related(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	p, ok := c.Catalogue.LookupID(ctx.Params().Get("id"))
	if !ok {
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": c.Catalogue.Related(p, 8)})
}

// Categories 处理 GET /api/categories
func (c *ProductController) Categories(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": c.Catalogue.Categories()})
}

// CategoryDetail 处理 GET /api/categories/{slug}，分类页头部信息
func (c *ProductController) CategoryDetail(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	cat, ok := c.Catalogue.CategoryBySlug(ctx.Params().Get("slug"))
	if !ok {
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "category not found"})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": cat})
}

// Featured 处理 GET /api/featured，首页精选商品
func (c *ProductController) Featured(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": c.Catalogue.Featured(8)})
}

// Suggest 处理 GET /api/search/suggest?q=
// 最多 10 条，命中片段用 <mark> 标记，供搜索框下拉提示
func (c *ProductController) Suggest(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": c.Catalogue.Suggest(ctx.URLParam("q"), 10)})
}

package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/KaciL4/Shop-Website/internal/catalogue"
	"github.com/KaciL4/Shop-Website/internal/datamodels/cart"
	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
	"github.com/KaciL4/Shop-Website/internal/service"
)

// CartController 购物车接口。
// 每个请求都从 cookie 重新加载快照并整体回写，跨标签页 last-write-wins
type CartController struct {
	Cart      *service.CartService
	Catalogue *catalogue.Store
}

// NewCartController 构造函数
func NewCartController(cartSvc *service.CartService, cat *catalogue.Store) *CartController {
	return &CartController{Cart: cartSvc, Catalogue: cat}
}

func (c *CartController) ensureLoaded(ctx iris.Context) bool {
	if err := c.Catalogue.Load(ctx.Request().Context()); err != nil {
		ctx.StopWithJSON(503, iris.Map{"code": 503, "msg": "catalogue unavailable: " + err.Error()})
		return false
	}
	return true
}

func (c *CartController) respond(ctx iris.Context, lines []cart.Line) {
	totals := c.Cart.Totals(lines)
	ctx.JSON(iris.Map{
		"code": 0,
		"data": iris.Map{
			"items":  lines,
			"count":  cart.Count(lines),
			"totals": totals,
		},
	})
}

// Get 处理 GET /api/cart
func (c *CartController) Get(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	c.respond(ctx, c.Cart.Load(cookies.NewCookieStore(ctx)))
}

// Add 处理 POST /api/cart，body: {id, qty}
// 商品不存在时静默不变更（与前端版本一致），仍返回当前购物车
func (c *CartController) Add(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	var req struct {
		ID  int64 `json:"id"`
		Qty int   `json:"qty"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	store := cookies.NewCookieStore(ctx)
	c.respond(ctx, c.Cart.Add(store, req.ID, req.Qty))
}

// Update 处理 PUT /api/cart/{id}，body: {qty}
// 数量 <= 0 时移除该行
func (c *CartController) Update(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	pid, _ := ctx.Params().GetInt64("id")
	var req struct {
		Qty int `json:"qty"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	store := cookies.NewCookieStore(ctx)
	c.respond(ctx, c.Cart.SetQuantity(store, pid, req.Qty))
}

// Remove 处理 DELETE /api/cart/{id}
func (c *CartController) Remove(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	pid, _ := ctx.Params().GetInt64("id")
	store := cookies.NewCookieStore(ctx)
	c.respond(ctx, c.Cart.Remove(store, pid))
}

// Totals 处理 GET /api/cart/totals
func (c *CartController) Totals(ctx iris.Context) {
	if !c.ensureLoaded(ctx) {
		return
	}
	lines := c.Cart.Load(cookies.NewCookieStore(ctx))
	ctx.JSON(iris.Map{"code": 0, "data": c.Cart.Totals(lines)})
}

package controllers

import (
	"errors"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/sessions"

	"github.com/KaciL4/Shop-Website/internal/catalogue"
	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
	"github.com/KaciL4/Shop-Website/internal/service"
)

// CheckoutController 结账与确认页接口。
// 订单快照保存在会话中，确认页可重复读取
type CheckoutController struct {
	Checkout  *service.CheckoutService
	Catalogue *catalogue.Store
	Sessions  *sessions.Sessions
}

// NewCheckoutController 构造函数
func NewCheckoutController(checkout *service.CheckoutService, cat *catalogue.Store, sess *sessions.Sessions) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Catalogue: cat, Sessions: sess}
}

// Submit 处理 POST /api/checkout，body 为客户字段。
// 空购物车或字段缺失时返回校验失败，状态不变；
// 成功时返回订单并清空购物车，导航到确认页由前端负责
func (c *CheckoutController) Submit(ctx iris.Context) {
	if err := c.Catalogue.Load(ctx.Request().Context()); err != nil {
		ctx.StopWithJSON(503, iris.Map{"code": 503, "msg": "catalogue unavailable: " + err.Error()})
		return
	}
	var fields service.CustomerFields
	if err := ctx.ReadJSON(&fields); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}

	cartStore := cookies.NewCookieStore(ctx)
	sessStore := cookies.NewSessionStore(c.Sessions.Start(ctx))

	o, err := c.Checkout.Submit(cartStore, sessStore, fields)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": ve.Error(), "missing": ve.Missing})
		case errors.Is(err, service.ErrEmptyCart):
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "your cart is empty"})
		default:
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
		}
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": o})
}

// LastOrder 处理 GET /api/order/last，确认页读取。
// 没有历史订单是正常结果，返回 data: null
func (c *CheckoutController) LastOrder(ctx iris.Context) {
	sessStore := cookies.NewSessionStore(c.Sessions.Start(ctx))
	o, ok := c.Checkout.LastOrder(sessStore)
	if !ok {
		ctx.JSON(iris.Map{"code": 0, "msg": "no recent order", "data": nil})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": o})
}

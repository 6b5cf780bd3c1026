package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
	"github.com/KaciL4/Shop-Website/internal/service"
)

// WishlistController 心愿单接口
type WishlistController struct {
	Wishlist *service.WishlistService
}

// NewWishlistController 构造函数
func NewWishlistController(w *service.WishlistService) *WishlistController {
	return &WishlistController{Wishlist: w}
}

// List 处理 GET /api/wishlist
func (c *WishlistController) List(ctx iris.Context) {
	store := cookies.NewCookieStore(ctx)
	ctx.JSON(iris.Map{"code": 0, "data": c.Wishlist.List(store)})
}

// Add 处理 POST /api/wishlist，body: {id}
// 已存在时返回明确的提示信号，状态不变
func (c *WishlistController) Add(ctx iris.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	store := cookies.NewCookieStore(ctx)
	if !c.Wishlist.Add(store, req.ID) {
		ctx.JSON(iris.Map{"code": 0, "msg": "already in wishlist", "data": c.Wishlist.List(store)})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "msg": "added to wishlist", "data": c.Wishlist.List(store)})
}

// Remove 处理 DELETE /api/wishlist/{id}
func (c *WishlistController) Remove(ctx iris.Context) {
	store := cookies.NewCookieStore(ctx)
	c.Wishlist.Remove(store, ctx.Params().Get("id"))
	ctx.JSON(iris.Map{"code": 0, "data": c.Wishlist.List(store)})
}

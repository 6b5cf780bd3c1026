package server

import (
	"context"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/sessions"
	"go.uber.org/zap"

	"github.com/KaciL4/Shop-Website/internal/catalogue"
	"github.com/KaciL4/Shop-Website/internal/config"
	"github.com/KaciL4/Shop-Website/internal/infra/reqres"
	"github.com/KaciL4/Shop-Website/internal/middleware"
	"github.com/KaciL4/Shop-Website/internal/service"
	webcontrollers "github.com/KaciL4/Shop-Website/web/controllers"
)

// RegisterRoutes 注册所有 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 基础设施：目录存储、演示鉴权客户端、会话管理
	cat := catalogue.NewStore(catalogue.SourcesFromConfig(&cfg.Catalogue))
	authClient := reqres.NewClient(&cfg.AuthAPI)
	sess := sessions.New(sessions.Config{
		Cookie:  cfg.Session.CookieName,
		Expires: time.Duration(cfg.Session.ExpiresHours) * time.Hour,
	})

	// 服务
	cartSvc := service.NewCartService(cat)
	wishlistSvc := service.NewWishlistService()
	checkoutSvc := service.NewCheckoutService(cartSvc)
	authSvc := service.NewAuthService(authClient)

	// 控制器
	productCtrl := webcontrollers.NewProductController(cat)
	cartCtrl := webcontrollers.NewCartController(cartSvc, cat)
	wishlistCtrl := webcontrollers.NewWishlistController(wishlistSvc)
	checkoutCtrl := webcontrollers.NewCheckoutController(checkoutSvc, cat, sess)
	userCtrl := webcontrollers.NewUserController(authSvc)

	// 预热目录：失败只记日志，首个请求会触发重试（Load 幂等）
	go func() {
		if err := cat.Load(context.Background()); err != nil {
			zap.L().Warn("catalogue warmup failed", zap.Error(err))
		}
	}()

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// 商品目录（公开）
	api.Get("/products", productCtrl.List)
	api.Get("/products/{id:int64}", productCtrl.Detail)
	api.Get("/products/{id:int64}/reviews", productCtrl.Reviews)
	api.Get("/products/{id:int64}/related", productCtrl.Related)
	api.Get("/categories", productCtrl.Categories)
	api.Get("/categories/{slug}", productCtrl.CategoryDetail)
	api.Get("/featured", productCtrl.Featured)
	api.Get("/search/suggest", productCtrl.Suggest)

	// 登录/注册走外部演示 API，加限流保护上游
	api.Post("/login", middleware.AuthRateLimit(), userCtrl.PostLogin)
	api.Post("/register", middleware.AuthRateLimit(), userCtrl.PostRegister)
	api.Get("/logout", userCtrl.Logout)

	// 心愿单不要求登录（与前端版本一致）
	api.Get("/wishlist", wishlistCtrl.List)
	api.Post("/wishlist", wishlistCtrl.Add)
	api.Delete("/wishlist/{id}", wishlistCtrl.Remove)

	// 需要登录的接口：购物车、结账、确认、资料
	authAPI := api.Party("/", middleware.RequireAuth(authSvc))
	authAPI.Get("/cart", cartCtrl.Get)
	authAPI.Post("/cart", cartCtrl.Add)
	authAPI.Put("/cart/{id:int64}", cartCtrl.Update)
	authAPI.Delete("/cart/{id:int64}", cartCtrl.Remove)
	authAPI.Get("/cart/totals", cartCtrl.Totals)
	authAPI.Post("/checkout", checkoutCtrl.Submit)
	authAPI.Get("/order/last", checkoutCtrl.LastOrder)
	authAPI.Get("/profile", userCtrl.GetProfile)
	authAPI.Post("/profile", userCtrl.PostProfile)
}

package middleware

import (
	"net/url"

	"github.com/kataras/iris/v12"

	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
	"github.com/KaciL4/Shop-Website/internal/service"
)

// RequireAuth 登录校验：未登录访问购物车/结账/资料接口时返回 401，
// 附带回跳提示（登录页 + redirect 参数），而不是就地报错
func RequireAuth(authSvc *service.AuthService) iris.Handler {
	return func(ctx iris.Context) {
		store := cookies.NewCookieStore(ctx)
		token, ok := authSvc.Auth(store)
		if !ok {
			ctx.StopWithJSON(401, iris.Map{
				"code":     401,
				"msg":      "please login first",
				"redirect": "/login?redirect=" + url.QueryEscape(ctx.Path()),
			})
			return
		}
		ctx.Values().Set("auth_email", token.Email)
		ctx.Next()
	}
}

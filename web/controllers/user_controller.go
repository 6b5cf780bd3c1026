package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/KaciL4/Shop-Website/internal/datamodels/profile"
	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
	"github.com/KaciL4/Shop-Website/internal/service"
)

// UserController 负责登录/注册/登出与资料接口。
// 鉴权走第三方演示 API，本地只管理 cookie 登录态
type UserController struct {
	Auth *service.AuthService
}

// NewUserController 构造函数，供路由层复用同一套逻辑
func NewUserController(authSvc *service.AuthService) *UserController {
	return &UserController{Auth: authSvc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostLogin 处理 POST /api/login
// 远端失败时把错误消息原样透出，不做重试
func (c *UserController) PostLogin(ctx iris.Context) {
	var req credentialsRequest
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	store := cookies.NewCookieStore(ctx)
	if err := c.Auth.Login(ctx.Request().Context(), store, req.Email, req.Password); err != nil {
		ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "msg": "login success"})
}

// PostRegister 处理 POST /api/register
func (c *UserController) PostRegister(ctx iris.Context) {
	var req credentialsRequest
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	store := cookies.NewCookieStore(ctx)
	if err := c.Auth.Register(ctx.Request().Context(), store, req.Email, req.Password); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "msg": "register success"})
}

// Logout 处理 GET /api/logout，清理登录态
func (c *UserController) Logout(ctx iris.Context) {
	c.Auth.Logout(cookies.NewCookieStore(ctx))
	ctx.JSON(iris.Map{"code": 0, "msg": "logged out"})
}

// GetProfile 处理 GET /api/profile
// 缺失字段用演示 API 补全，补全失败回落默认资料
func (c *UserController) GetProfile(ctx iris.Context) {
	store := cookies.NewCookieStore(ctx)
	token, _ := c.Auth.Auth(store)
	p := c.Auth.Profile(ctx.Request().Context(), store)
	ctx.JSON(iris.Map{
		"code": 0,
		"data": iris.Map{
			"email":   token.Email,
			"profile": p,
		},
	})
}

// PostProfile 处理 POST /api/profile，保存用户编辑后的资料
func (c *UserController) PostProfile(ctx iris.Context) {
	var p profile.Profile
	if err := ctx.ReadJSON(&p); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	store := cookies.NewCookieStore(ctx)
	c.Auth.SaveProfile(store, p)
	ctx.JSON(iris.Map{"code": 0, "msg": "profile saved"})
}

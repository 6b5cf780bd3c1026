package main

import (
	stdlog "log"
	"strings"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/KaciL4/Shop-Website/internal/auth"
	"github.com/KaciL4/Shop-Website/internal/config"
	"github.com/KaciL4/Shop-Website/pkg/log"
)

// 预置的演示用户，行为对齐 ReqRes：只有已定义的用户能登录/注册成功
type demoUser struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

var demoUsers = []demoUser{
	{ID: 1, Email: "george.bluth@reqres.in", FirstName: "George", LastName: "Bluth", Avatar: "https://reqres.in/img/faces/1-image.jpg"},
	{ID: 2, Email: "janet.weaver@reqres.in", FirstName: "Janet", LastName: "Weaver", Avatar: "https://reqres.in/img/faces/2-image.jpg"},
	{ID: 3, Email: "emma.wong@reqres.in", FirstName: "Emma", LastName: "Wong", Avatar: "https://reqres.in/img/faces/3-image.jpg"},
	{ID: 4, Email: "eve.holt@reqres.in", FirstName: "Eve", LastName: "Holt", Avatar: "https://reqres.in/img/faces/4-image.jpg"},
}

func findUser(email string) (*demoUser, bool) {
	e := strings.ToLower(strings.TrimSpace(email))
	for i := range demoUsers {
		if demoUsers[i].Email == e {
			return &demoUsers[i], true
		}
	}
	return nil, false
}

// authmock：本地替身演示鉴权 API。
// 复刻前端依赖的远端契约：POST {email,password}，
// 成功返回 {token}（这里签发真实 JWT），失败返回 {error}
func main() {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	log.InitLogger()

	app := iris.New()

	handleCredentials := func(register bool) iris.Handler {
		return func(ctx iris.Context) {
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := ctx.ReadJSON(&req); err != nil {
				ctx.StopWithJSON(400, iris.Map{"error": err.Error()})
				return
			}
			if strings.TrimSpace(req.Email) == "" {
				ctx.StopWithJSON(400, iris.Map{"error": "Missing email or username"})
				return
			}
			if req.Password == "" {
				ctx.StopWithJSON(400, iris.Map{"error": "Missing password"})
				return
			}
			u, ok := findUser(req.Email)
			if !ok {
				if register {
					ctx.StopWithJSON(400, iris.Map{"error": "Note: Only defined users succeed registration"})
				} else {
					ctx.StopWithJSON(400, iris.Map{"error": "user not found"})
				}
				return
			}
			token, err := auth.GenerateToken(&cfg.JWT, u.ID, u.Email)
			if err != nil {
				ctx.StopWithJSON(500, iris.Map{"error": err.Error()})
				return
			}
			if register {
				ctx.JSON(iris.Map{"id": u.ID, "token": token})
				return
			}
			ctx.JSON(iris.Map{"token": token})
		}
	}

	app.Post("/api/login", handleCredentials(false))
	app.Post("/api/register", handleCredentials(true))

	app.Get("/api/users/{id:int}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt("id")
		for _, u := range demoUsers {
			if u.ID == id {
				ctx.JSON(iris.Map{"data": u})
				return
			}
		}
		ctx.StopWithJSON(404, iris.Map{})
	})

	addr := cfg.AuthMockServer.Addr()
	zap.L().Info("authmock server listening", zap.String("addr", addr))
	if err := app.Run(iris.Addr(addr), iris.WithoutServerError(iris.ErrServerClosed)); err != nil {
		zap.L().Fatal("failed to run authmock server", zap.Error(err))
	}
}

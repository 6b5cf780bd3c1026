package main

import (
	"context"
	"fmt"
	stdlog "log"

	"github.com/KaciL4/Shop-Website/internal/catalogue"
	"github.com/KaciL4/Shop-Website/internal/config"
	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
	"github.com/KaciL4/Shop-Website/internal/service"
	"github.com/KaciL4/Shop-Website/pkg/log"
)

// 简单 demo：离线跑通 目录加载 -> 加购 -> 改数量 -> 结账 的完整流程，
// 持久化用内存存储代替 cookie/session，便于不起服务手工验证
func main() {
	log.InitLogger()

	cfg := config.DefaultConfig()
	cat := catalogue.NewStore(catalogue.SourcesFromConfig(&cfg.Catalogue))
	if err := cat.Load(context.Background()); err != nil {
		stdlog.Fatalf("catalogue load failed: %v", err)
	}

	cartSvc := service.NewCartService(cat)
	checkoutSvc := service.NewCheckoutService(cartSvc)

	cartStore := cookies.NewMemory()
	sessStore := cookies.NewMemory()

	products := cat.Products()
	fmt.Printf("目录加载完成：%d 个商品，%d 个分类\n", len(products), len(cat.Categories()))
	if len(products) < 2 {
		stdlog.Fatal("fixture 商品不足，无法演示")
	}

	// 加购两个商品并调整数量
	cartSvc.Add(cartStore, products[0].ID, 2)
	cartSvc.Add(cartStore, products[1].ID, 1)
	lines := cartSvc.SetQuantity(cartStore, products[1].ID, 3)
	totals := cartSvc.Totals(lines)
	fmt.Printf("购物车 %d 行，小计 $%.2f，税 $%.2f，合计 $%.2f\n",
		len(lines), service.Round2(totals.Subtotal), service.Round2(totals.Tax), service.Round2(totals.Total))

	// 提交结账
	o, err := checkoutSvc.Submit(cartStore, sessStore, service.CustomerFields{
		Name:    "Demo User",
		Email:   "demo@example.com",
		Phone:   "(555) 000-0000",
		Address: "1 Demo Street",
		City:    "Demoville",
		Postal:  "00000",
	})
	if err != nil {
		stdlog.Fatalf("checkout failed: %v", err)
	}
	fmt.Printf("下单成功：%s，合计 $%.2f\n", o.OrderNumber, service.Round2(o.Total))

	// 确认页读取 + 购物车已清空
	if last, ok := checkoutSvc.LastOrder(sessStore); ok {
		fmt.Printf("确认页订单：%s（%d 个行项目）\n", last.OrderNumber, len(last.Items))
	}
	fmt.Printf("结账后购物车行数：%d\n", len(cartSvc.Load(cartStore)))
}

package service

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/KaciL4/Shop-Website/internal/catalogue"
	"github.com/KaciL4/Shop-Website/internal/datamodels/cart"
	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
)

const (
	// CartCookie 购物车持久化键，JSON 数组 [{id, qty}]
	CartCookie = "myshop_cart"
	// CartTTL 购物车从最后一次写入起保留 7 天，过期后读取为空
	CartTTL = 7 * 24 * time.Hour
	// TaxRate 固定税率 10%
	TaxRate = 0.10
)

// CartService 购物车账本。
// 每个变更操作都从存储重新加载快照、改完整体回写，不做跨调用缓存，
// 保证购物车页面跨页面加载/多标签页时始终反映最新持久化状态
type CartService struct {
	catalogue *catalogue.Store
}

// NewCartService 创建购物车服务
func NewCartService(cat *catalogue.Store) *CartService {
	return &CartService{catalogue: cat}
}

// Load 读取当前购物车快照。键不存在/数据损坏/已过期都返回空购物车
func (s *CartService) Load(store cookies.Store) []cart.Line {
	var lines []cart.Line
	if !cookies.ReadJSON(store, CartCookie, &lines) {
		return []cart.Line{}
	}
	if lines == nil {
		lines = []cart.Line{}
	}
	return lines
}

func (s *CartService) save(store cookies.Store, lines []cart.Line) {
	cookies.WriteJSON(store, CartCookie, lines, CartTTL)
}

// dropNonPositive 过滤掉数量 <= 0 的行项目，持久化前必经
func dropNonPositive(lines []cart.Line) []cart.Line {
	out := lines[:0]
	for _, l := range lines {
		if l.Qty > 0 {
			out = append(out, l)
		}
	}
	return out
}

// Add 加购：商品不存在时静默失败（只记日志，状态不变）；
// 已有行项目累加数量，否则追加新行
func (s *CartService) Add(store cookies.Store, productID int64, qty int) []cart.Line {
	lines := s.Load(store)

	if _, ok := s.catalogue.GetByID(productID); !ok {
		zap.L().Warn("add to cart: product not found",
			zap.Int64("product_id", productID))
		return lines
	}
	if qty == 0 {
		qty = 1
	}

	merged := false
	for i := range lines {
		if lines[i].ID == productID {
			lines[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, cart.Line{ID: productID, Qty: qty})
	}

	lines = dropNonPositive(lines)
	s.save(store, lines)
	return lines
}

// SetQuantity 覆盖指定行项目数量；结果 <= 0 时直接移除该行
func (s *CartService) SetQuantity(store cookies.Store, productID int64, qty int) []cart.Line {
	lines := s.Load(store)
	for i := range lines {
		if lines[i].ID == productID {
			lines[i].Qty = qty
			break
		}
	}
	lines = dropNonPositive(lines)
	s.save(store, lines)
	return lines
}

// Remove 无条件删除指定行项目，不存在时是空操作
func (s *CartService) Remove(store cookies.Store, productID int64) []cart.Line {
	lines := s.Load(store)
	out := lines[:0]
	for _, l := range lines {
		if l.ID != productID {
			out = append(out, l)
		}
	}
	s.save(store, out)
	return out
}

// Clear 清空购物车（结账提交后调用）
func (s *CartService) Clear(store cookies.Store) {
	s.save(store, []cart.Line{})
}

// Totals 汇总金额：小计 = Σ(数量 × 商品单价)，
// 目录里已解析不到的行项目跳过；税 = 小计 × 10%。
// 全程浮点累加，只在展示时舍入
func (s *CartService) Totals(lines []cart.Line) cart.Totals {
	subtotal := 0.0
	for _, l := range lines {
		p, ok := s.catalogue.GetByID(l.ID)
		if !ok {
			continue
		}
		subtotal += p.Price * float64(l.Qty)
	}
	tax := subtotal * TaxRate
	return cart.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Round2 展示用两位小数舍入
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

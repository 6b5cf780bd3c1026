package service

import (
	"strings"
	"time"

	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
)

const (
	// WishlistCookie 心愿单持久化键，JSON 字符串数组
	WishlistCookie = "wishlist"
	// WishlistTTL 心愿单保留 30 天
	WishlistTTL = 30 * 24 * time.Hour
)

// WishlistService 心愿单账本：商品 ID 的去重集合。
// 所有 ID 在比较和存储前统一归一成字符串，
// 避免不同调用方传数字/字符串导致的类型错配
type WishlistService struct{}

// NewWishlistService 创建心愿单服务
func NewWishlistService() *WishlistService {
	return &WishlistService{}
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

// List 当前心愿单里的商品 ID 列表
func (s *WishlistService) List(store cookies.Store) []string {
	var ids []string
	if !cookies.ReadJSON(store, WishlistCookie, &ids) {
		return []string{}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, normalizeID(id))
	}
	return out
}

func (s *WishlistService) save(store cookies.Store, ids []string) {
	cookies.WriteJSON(store, WishlistCookie, ids, WishlistTTL)
}

// Add 加入心愿单。已存在时不变更并返回 false，调用方据此提示用户
func (s *WishlistService) Add(store cookies.Store, productID string) bool {
	pid := normalizeID(productID)
	ids := s.List(store)
	for _, id := range ids {
		if id == pid {
			return false
		}
	}
	ids = append(ids, pid)
	s.save(store, ids)
	return true
}

// Remove 从心愿单移除，不存在时是空操作
func (s *WishlistService) Remove(store cookies.Store, productID string) {
	pid := normalizeID(productID)
	ids := s.List(store)
	out := ids[:0]
	for _, id := range ids {
		if id != pid {
			out = append(out, id)
		}
	}
	s.save(store, out)
}

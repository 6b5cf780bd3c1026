package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KaciL4/Shop-Website/internal/datamodels/profile"
	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
	"github.com/KaciL4/Shop-Website/internal/infra/reqres"
)

const (
	// AuthCookie 登录态持久化键，JSON {token, email}
	AuthCookie = "myshop_auth"
	// ProfileCookie 用户资料持久化键，JSON {name, phone, avatar}
	ProfileCookie = "myshop_profile"
	// AuthTTL 登录态与资料保留 7 天
	AuthTTL = 7 * 24 * time.Hour
)

// AuthToken 登录态内容
type AuthToken struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// AuthService 演示鉴权与资料：token 来自第三方演示 API，
// 本地只负责 cookie 持久化，不提供任何真实安全保证
type AuthService struct {
	client *reqres.Client
}

// NewAuthService 创建鉴权服务
func NewAuthService(client *reqres.Client) *AuthService {
	return &AuthService{client: client}
}

// Login 调用演示 API 登录，成功后把 token+email 写入 cookie
func (s *AuthService) Login(ctx context.Context, store cookies.Store, email, password string) error {
	token, err := s.client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	cookies.WriteJSON(store, AuthCookie, AuthToken{Token: token, Email: strings.TrimSpace(email)}, AuthTTL)
	return nil
}

// Register 调用演示 API 注册，成功后直接写入登录态
func (s *AuthService) Register(ctx context.Context, store cookies.Store, email, password string) error {
	token, err := s.client.Register(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	cookies.WriteJSON(store, AuthCookie, AuthToken{Token: token, Email: strings.TrimSpace(email)}, AuthTTL)
	return nil
}

// Logout 清除登录态
func (s *AuthService) Logout(store cookies.Store) {
	store.Delete(AuthCookie)
}

// Auth 读取当前登录态，cookie 缺失或损坏都视为未登录
func (s *AuthService) Auth(store cookies.Store) (AuthToken, bool) {
	var t AuthToken
	if !cookies.ReadJSON(store, AuthCookie, &t) || t.Token == "" {
		return AuthToken{}, false
	}
	return t, true
}

// IsLoggedIn 是否已登录
func (s *AuthService) IsLoggedIn(store cookies.Store) bool {
	_, ok := s.Auth(store)
	return ok
}

// Profile 读取资料。cookie 里缺的字段用演示 API 的用户记录补全并回写；
// 补全请求失败时回落到默认资料，不向用户报错
func (s *AuthService) Profile(ctx context.Context, store cookies.Store) profile.Profile {
	var p profile.Profile
	cookies.ReadJSON(store, ProfileCookie, &p)
	if p.Name != "" && p.Phone != "" && p.Avatar != "" {
		return p
	}

	user, err := s.client.FetchUser(ctx)
	if err != nil {
		zap.L().Warn("profile enrichment failed, using defaults", zap.Error(err))
		return p.WithDefaults()
	}
	if p.Name == "" {
		p.Name = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	if p.Avatar == "" {
		p.Avatar = user.Avatar
	}
	p = p.WithDefaults()
	cookies.WriteJSON(store, ProfileCookie, p, AuthTTL)
	return p
}

// SaveProfile 保存用户编辑后的资料
func (s *AuthService) SaveProfile(store cookies.Store, p profile.Profile) {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	cookies.WriteJSON(store, ProfileCookie, p, AuthTTL)
}

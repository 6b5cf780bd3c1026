package reqres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/KaciL4/Shop-Website/internal/config"
)

// RemoteError 演示 API 返回的业务错误（HTTP 4xx/5xx 的 error 字段）
// 直接作为用户可见消息展示，不做重试
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Client ReqRes 风格演示鉴权 API 客户端。
// login/register POST {email,password}，成功返回 {token}，
// 失败返回 {error}；另有单个用户查询用于资料补全。
// 可配置 CORS 代理前缀，与浏览器版本保持同一访问方式
type Client struct {
	baseURL     string
	proxyPrefix string
	userID      int
	http        *http.Client
}

// NewClient 按配置构造客户端
func NewClient(cfg *config.AuthAPIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &Client{
		baseURL:     cfg.BaseURL,
		proxyPrefix: cfg.ProxyPrefix,
		userID:      cfg.ProfileUserID,
		http:        &http.Client{Timeout: timeout},
	}
}

// endpoint 拼出最终请求地址，代理前缀直接拼在完整 URL 之前
// （allorigins / corsproxy 的约定）
func (c *Client) endpoint(path string) string {
	return c.proxyPrefix + c.baseURL + path
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

func (c *Client) postCredentials(ctx context.Context, path, email, password string) (string, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var tr tokenResponse
	// 响应体解析失败时只能靠状态码兜底
	_ = json.Unmarshal(raw, &tr)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if tr.Error != "" {
			return "", &RemoteError{Message: tr.Error}
		}
		return "", &RemoteError{Message: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
	}
	if tr.Token == "" {
		return "", &RemoteError{Message: "no token in response"}
	}
	return tr.Token, nil
}

// Login 登录
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.postCredentials(ctx, "/api/login", email, password)
}

// Register 注册
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	return c.postCredentials(ctx, "/api/register", email, password)
}

// UserRecord 演示用户记录，用于资料补全
type UserRecord struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

type userResponse struct {
	Data UserRecord `json:"data"`
}

// FetchUser 拉取配置指定的演示用户
func (c *Client) FetchUser(ctx context.Context) (*UserRecord, error) {
	path := fmt.Sprintf("/api/users/%d", c.userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{Message: fmt.Sprintf("user fetch failed with status %d", resp.StatusCode)}
	}
	var ur userResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, err
	}
	return &ur.Data, nil
}

package cookies

import (
	"net/http"
	"net/url"
	"time"

	"github.com/kataras/iris/v12"
)

// CookieStore 基于单次请求上下文的 cookie 实现。
// 值做 URL 转义后写入，读取时反转义（JSON 含有 cookie 非法字符）。
// 同一请求内写入的值通过 overlay 保证后续读取能看到。
type CookieStore struct {
	ctx     iris.Context
	written map[string]*string // nil 表示已删除
}

// NewCookieStore 包装当前请求上下文
func NewCookieStore(ctx iris.Context) *CookieStore {
	return &CookieStore{
		ctx:     ctx,
		written: make(map[string]*string),
	}
}

func (c *CookieStore) Get(name string) (string, bool) {
	if v, ok := c.written[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	raw := c.ctx.GetCookie(name)
	if raw == "" {
		return "", false
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		// 无法解码按无数据处理
		return "", false
	}
	return decoded, true
}

func (c *CookieStore) Set(name, value string, ttl time.Duration) {
	c.ctx.SetCookie(&http.Cookie{
		Name:    name,
		Value:   url.QueryEscape(value),
		Path:    "/",
		Expires: time.Now().Add(ttl),
		MaxAge:  int(ttl / time.Second),
	})
	v := value
	c.written[name] = &v
}

func (c *CookieStore) Delete(name string) {
	c.ctx.SetCookie(&http.Cookie{
		Name:    name,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	c.written[name] = nil
}

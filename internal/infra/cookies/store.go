package cookies

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Store 客户端键值存储抽象：生产实现基于请求的 cookie，
// 会话数据基于 iris session，测试使用内存实现。
// 值一律是文本；每次变更操作都先读最新快照、改完整体回写，
// 不做跨请求的内存缓存（跨标签页的并发写是 last-write-wins）。
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string, ttl time.Duration)
	Delete(name string)
}

// ReadJSON 读取并反序列化 JSON 值。
// 键不存在或数据损坏都按"无数据"处理返回 false，持久化解析错误绝不向上冒泡
func ReadJSON(s Store, name string, v interface{}) bool {
	raw, ok := s.Get(name)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		zap.L().Warn("discard corrupted stored value",
			zap.String("key", name), zap.Error(err))
		return false
	}
	return true
}

// WriteJSON 序列化并写入 JSON 值
func WriteJSON(s Store, name string, v interface{}, ttl time.Duration) {
	body, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("marshal stored value failed",
			zap.String("key", name), zap.Error(err))
		return
	}
	s.Set(name, string(body), ttl)
}

package cookies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTTL(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	m.SetClock(func() time.Time { return now })

	m.Set("cart", `[{"id":1,"qty":2}]`, 7*24*time.Hour)
	v, ok := m.Get("cart")
	require.True(t, ok)
	assert.Equal(t, `[{"id":1,"qty":2}]`, v)

	// 过期后读取为不存在
	now = now.Add(7*24*time.Hour + time.Second)
	_, ok = m.Get("cart")
	assert.False(t, ok)
}

func TestMemoryNoTTL(t *testing.T) {
	m := NewMemory()
	m.Set("order", "{}", 0)
	_, ok := m.Get("order")
	assert.True(t, ok)

	m.Delete("order")
	_, ok = m.Get("order")
	assert.False(t, ok)
}

func TestReadJSONMissing(t *testing.T) {
	m := NewMemory()
	var v []int
	assert.False(t, ReadJSON(m, "nope", &v))
}

func TestReadJSONCorrupted(t *testing.T) {
	m := NewMemory()
	m.Set("cart", "{not json", time.Hour)

	// 损坏数据按无数据处理，不报错
	var v []int
	assert.False(t, ReadJSON(m, "cart", &v))
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := NewMemory()
	type line struct {
		ID  int64 `json:"id"`
		Qty int   `json:"qty"`
	}
	WriteJSON(m, "cart", []line{{ID: 3, Qty: 5}}, time.Hour)

	var got []line
	require.True(t, ReadJSON(m, "cart", &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, 5, got[0].Qty)
}

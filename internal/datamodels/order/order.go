package order

import (
	"fmt"
	"math/rand"

	"github.com/KaciL4/Shop-Website/internal/datamodels/cart"
)

// Order 订单快照
// 提交结账时从购物车复制生成，只在当前会话内保留，供确认页读取
type Order struct {
	OrderNumber string      `json:"orderNumber"`
	Total       float64     `json:"total"`
	Items       []cart.Line `json:"items"`
}

// NewOrderNumber 生成订单号：ORD- 前缀 + [100000, 999999] 区间的随机 6 位数
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d", rand.Intn(900000)+100000)
}

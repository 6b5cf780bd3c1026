package cart

// Line 购物车行项目，购物车即 (商品ID -> 数量) 的有序列表
// 约束：持久化的行项目数量恒为正数，数量 <= 0 的行会被移除
type Line struct {
	ID  int64 `json:"id"`
	Qty int   `json:"qty"`
}

// Totals 购物车金额汇总
// 金额用浮点累加，只在展示时做两位小数舍入，避免逐行舍入误差累积
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Count 角标计数：所有行项目数量之和
func Count(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Qty
	}
	return total
}

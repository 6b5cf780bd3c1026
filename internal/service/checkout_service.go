package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/KaciL4/Shop-Website/internal/datamodels/cart"
	"github.com/KaciL4/Shop-Website/internal/datamodels/order"
	"github.com/KaciL4/Shop-Website/internal/infra/cookies"
)

// LastOrderKey 会话中保存订单确认快照的键
const LastOrderKey = "myshop_last_order"

// ErrEmptyCart 空购物车不允许提交结账
var ErrEmptyCart = errors.New("cart is empty")

// CustomerFields 结账表单的必填客户信息
type CustomerFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Postal  string `json:"postal"`
}

// ValidationError 校验失败，列出缺失的字段名
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// CheckoutService 结账流程：校验、生成订单快照、清空购物车
type CheckoutService struct {
	cart *CartService
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(cartSvc *CartService) *CheckoutService {
	return &CheckoutService{cart: cartSvc}
}

// Validate 所有必填字段去掉首尾空白后必须非空，
// 任一缺失返回列出缺失项的 ValidationError
func (s *CheckoutService) Validate(fields CustomerFields) error {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("name", fields.Name)
	check("email", fields.Email)
	check("phone", fields.Phone)
	check("address", fields.Address)
	check("city", fields.City)
	check("postal", fields.Postal)

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Submit 提交结账。
// 前置条件：购物车非空（空购物车在页面侧就被拦下，这里再兜底检查）、
// 客户字段全部有效。校验失败时状态不变。
// 成功时：按当前购物车计算总额，生成订单号，按值拷贝行项目快照，
// 写入会话（覆盖上一单），清空购物车
func (s *CheckoutService) Submit(cartStore, sessionStore cookies.Store, fields CustomerFields) (*order.Order, error) {
	lines := s.cart.Load(cartStore)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := s.Validate(fields); err != nil {
		return nil, err
	}

	totals := s.cart.Totals(lines)
	items := make([]cart.Line, len(lines))
	copy(items, lines)

	o := &order.Order{
		OrderNumber: order.NewOrderNumber(),
		Total:       totals.Total,
		Items:       items,
	}
	cookies.WriteJSON(sessionStore, LastOrderKey, o, 0)
	s.cart.Clear(cartStore)

	zap.L().Info("order submitted",
		zap.String("order_number", o.OrderNumber),
		zap.Int("lines", len(items)))
	return o, nil
}

// LastOrder 确认页读取最近一单。
// 读取不清除，重复读取/返回导航看到同一单；没有订单是正常结果
func (s *CheckoutService) LastOrder(sessionStore cookies.Store) (*order.Order, bool) {
	var o order.Order
	if !cookies.ReadJSON(sessionStore, LastOrderKey, &o) {
		return nil, false
	}
	return &o, true
}

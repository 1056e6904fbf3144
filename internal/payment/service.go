package payment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"resume-assist-go/internal/storage"
	"resume-assist-go/internal/storage/models"
)

const (
	PayMethodWechat = "wechat"
	PayMethodAlipay = "alipay"

	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

var (
	ErrInvalidProduct   = errors.New("无效的产品类型")
	ErrInvalidPayMethod = errors.New("不支持的支付方式")
	ErrOrderNotFound    = errors.New("订单不存在")
	ErrOrderAlreadyPaid = errors.New("订单已支付")
)

// Product 会员套餐
type Product struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	DurationDays    int      `json:"duration_days"`
	MembershipLevel int      `json:"membership_level"`
	Features        []string `json:"features"`
}

var products = []Product{
	{
		ID: 1, Name: "专业版会员(月卡)", Price: 19.9, DurationDays: 30, MembershipLevel: 1,
		Features: []string{"AI分析不限次数", "全部简历模板", "面试题生成", "岗位匹配分析"},
	},
	{
		ID: 2, Name: "专业版会员(年卡)", Price: 199.0, DurationDays: 365, MembershipLevel: 1,
		Features: []string{"AI分析不限次数", "全部简历模板", "面试题生成", "岗位匹配分析", "年卡专享价"},
	},
	{
		ID: 3, Name: "尊享版会员(终身)", Price: 499.0, DurationDays: 36500, MembershipLevel: 2,
		Features: []string{"专业版全部功能", "终身有效", "新功能优先体验", "专属客服"},
	},
}

// Products 可购买的套餐列表
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

func productByID(id int) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Service 模拟支付服务。订单落库是真实的，
// 支付参数和回调签名是演示用的假数据。
type Service struct {
	store       *storage.SQLite
	wechatAppID string
	alipayAppID string
	now         func() time.Time
}

func NewService(store *storage.SQLite) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateOrderResult 下单结果，pay_params按支付方式不同
type CreateOrderResult struct {
	OrderNo     string            `json:"order_no"`
	ProductName string            `json:"product_name"`
	Amount      float64           `json:"amount"`
	PayMethod   string            `json:"pay_method"`
	PayParams   map[string]string `json:"pay_params"`
}

// CreateOrder 创建支付订单并生成模拟支付参数
func (s *Service) CreateOrder(ctx context.Context, userID string, productID int, payMethod string) (*CreateOrderResult, error) {
	product, ok := productByID(productID)
	if !ok {
		return nil, ErrInvalidProduct
	}
	if payMethod == "" {
		payMethod = PayMethodWechat
	}
	if payMethod != PayMethodWechat && payMethod != PayMethodAlipay {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayMethod, payMethod)
	}

	orderNo := s.generateOrderNo()
	order := &models.Order{
		OrderNo:     orderNo,
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Amount:      product.Price,
		PayMethod:   payMethod,
		Status:      OrderStatusPending,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}

	var payParams map[string]string
	if payMethod == PayMethodWechat {
		payParams = s.wechatPayParams(orderNo)
	} else {
		payParams = s.alipayParams(orderNo, product.Price)
	}

	log.Info().Str("order_no", orderNo).Str("user_id", userID).
		Int("product_id", product.ID).Str("pay_method", payMethod).
		Msg("创建支付订单")

	return &CreateOrderResult{
		OrderNo:     orderNo,
		ProductName: product.Name,
		Amount:      product.Price,
		PayMethod:   payMethod,
		PayParams:   payParams,
	}, nil
}

// 订单号格式：JA + 时间戳(秒) + 4位随机数
func (s *Service) generateOrderNo() string {
	return "JA" + s.now().Format("20060102150405") + strconv.Itoa(1000+rand.Intn(9000))
}

func (s *Service) wechatPayParams(orderNo string) map[string]string {
	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	nonceStr := randomNonce(32)
	prepayID := "wx" + orderNo
	signStr := fmt.Sprintf("appId=%s&nonceStr=%s&package=prepay_id=%s&timeStamp=%s",
		s.wechatAppID, nonceStr, prepayID, timestamp)
	sum := md5.Sum([]byte(signStr))

	return map[string]string{
		"timeStamp": timestamp,
		"nonceStr":  nonceStr,
		"package":   "prepay_id=" + prepayID,
		"signType":  "RSA",
		"paySign":   hex.EncodeToString(sum[:]),
		"appId":     s.wechatAppID,
		"prepayId":  prepayID,
	}
}

func (s *Service) alipayParams(orderNo string, amount float64) map[string]string {
	// total_amount单位是分
	totalAmount := int(amount * 100)
	return map[string]string{
		"orderStr": fmt.Sprintf("app_id=%s&method=alipay.trade.create&out_trade_no=%s&total_amount=%d",
			s.alipayAppID, orderNo, totalAmount),
		"appId":     s.alipayAppID,
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
	}
}

const nonceChars = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomNonce(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = nonceChars[rand.Intn(len(nonceChars))]
	}
	return string(out)
}

// NotifyResult 支付成功后的会员开通信息
type NotifyResult struct {
	OrderNo         string    `json:"order_no"`
	ProductName     string    `json:"product_name"`
	MembershipLevel int       `json:"membership_level"`
	ExpireTime      time.Time `json:"expire_time"`
}

// HandleNotify 处理支付回调：标记订单已支付并开通会员。
// 重复回调返回ErrOrderAlreadyPaid，不会叠加会员时长。
func (s *Service) HandleNotify(ctx context.Context, orderNo, transactionID string) (*NotifyResult, error) {
	order, err := s.store.GetOrderByNo(ctx, orderNo)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	if order.Status == OrderStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}

	product, ok := productByID(order.ProductID)
	if !ok {
		return nil, ErrInvalidProduct
	}

	paidAt := s.now()
	if err := s.store.MarkOrderPaid(ctx, orderNo, paidAt); err != nil {
		return nil, err
	}

	expireAt := paidAt.AddDate(0, 0, product.DurationDays)
	if err := s.store.UpdateUserMembership(ctx, order.UserID, product.MembershipLevel, &expireAt); err != nil {
		return nil, fmt.Errorf("开通会员失败: %w", err)
	}

	log.Info().Str("order_no", orderNo).Str("transaction_id", transactionID).
		Str("user_id", order.UserID).Int("membership_level", product.MembershipLevel).
		Time("expire_time", expireAt).Msg("支付成功，会员已开通")

	return &NotifyResult{
		OrderNo:         orderNo,
		ProductName:     product.Name,
		MembershipLevel: product.MembershipLevel,
		ExpireTime:      expireAt,
	}, nil
}

// QueryOrder 查询订单状态
func (s *Service) QueryOrder(ctx context.Context, orderNo string) (*models.Order, error) {
	order, err := s.store.GetOrderByNo(ctx, orderNo)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	return order, nil
}

// ListOrders 用户的历史订单，按创建时间倒序
func (s *Service) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.ListOrdersByUser(ctx, userID)
}

package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"

	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/logger"
	"resume-assist-go/internal/payment"
)

// PaymentHandler 会员购买相关接口，支付网关为模拟实现
type PaymentHandler struct {
	svc *payment.Service
}

func NewPaymentHandler(svc *payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type createOrderRequest struct {
	ProductType int    `json:"product_type"`
	PayType     string `json:"pay_type"`
}

type notifyRequest struct {
	OrderNo       string `json:"order_no"`
	TransactionID string `json:"transaction_id"`
}

// Products 返回可购买的会员产品
func (h *PaymentHandler) Products(c context.Context, ctx *app.RequestContext) {
	OK(ctx, map[string]interface{}{"products": payment.Products()})
}

// CreateOrder 创建支付订单并返回模拟支付参数
func (h *PaymentHandler) CreateOrder(c context.Context, ctx *app.RequestContext) {
	userID := CurrentUserID(ctx)
	if userID == "" {
		Fail(ctx, constants.ErrCodeUnauthorized, "请先登录")
		return
	}

	var req createOrderRequest
	if err := ctx.BindJSON(&req); err != nil {
		Fail(ctx, constants.ErrCodeInvalidArgument, "请求体格式错误")
		return
	}

	result, err := h.svc.CreateOrder(c, userID, req.ProductType, req.PayType)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidProduct),
			errors.Is(err, payment.ErrInvalidPayMethod):
			Fail(ctx, constants.ErrCodeInvalidArgument, err.Error())
		default:
			logger.Ctx(c).Error().Err(err).Str("user_id", userID).Msg("创建订单失败")
			Fail(ctx, constants.ErrCodeInternal, "创建订单失败")
		}
		return
	}
	OK(ctx, result)
}

// Notify 模拟支付网关回调，标记订单已支付并开通会员
func (h *PaymentHandler) Notify(c context.Context, ctx *app.RequestContext) {
	var req notifyRequest
	if err := ctx.BindJSON(&req); err != nil || req.OrderNo == "" {
		Fail(ctx, constants.ErrCodeInvalidArgument, "缺少order_no参数")
		return
	}

	result, err := h.svc.HandleNotify(c, req.OrderNo, req.TransactionID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrOrderNotFound):
			Fail(ctx, constants.ErrCodeNotFound, err.Error())
		case errors.Is(err, payment.ErrOrderAlreadyPaid):
			Fail(ctx, constants.ErrCodeInvalidArgument, err.Error())
		default:
			logger.Ctx(c).Error().Err(err).Str("order_no", req.OrderNo).Msg("处理支付回调失败")
			Fail(ctx, constants.ErrCodeInternal, "处理支付回调失败")
		}
		return
	}
	OK(ctx, result)
}

// QueryOrder 查询订单支付状态
func (h *PaymentHandler) QueryOrder(c context.Context, ctx *app.RequestContext) {
	orderNo := ctx.Param("order_no")
	order, err := h.svc.QueryOrder(c, orderNo)
	if err != nil {
		if errors.Is(err, payment.ErrOrderNotFound) {
			Fail(ctx, constants.ErrCodeNotFound, err.Error())
			return
		}
		logger.Ctx(c).Error().Err(err).Str("order_no", orderNo).Msg("查询订单失败")
		Fail(ctx, constants.ErrCodeInternal, "查询订单失败")
		return
	}
	OK(ctx, map[string]interface{}{
		"order_no":   order.OrderNo,
		"pay_status": order.Status,
		"amount":     order.Amount,
		"paid_at":    order.PaidAt,
	})
}

// ListOrders 列出当前用户的全部订单
func (h *PaymentHandler) ListOrders(c context.Context, ctx *app.RequestContext) {
	userID := CurrentUserID(ctx)
	if userID == "" {
		Fail(ctx, constants.ErrCodeUnauthorized, "请先登录")
		return
	}

	orders, err := h.svc.ListOrders(c, userID)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("user_id", userID).Msg("查询订单列表失败")
		Fail(ctx, constants.ErrCodeInternal, "查询订单列表失败")
		return
	}
	OK(ctx, map[string]interface{}{"orders": orders})
}

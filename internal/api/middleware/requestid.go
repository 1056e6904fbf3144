package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"

	"resume-assist-go/internal/logger"
)

// RequestIDHeader 请求ID的传递头
const RequestIDHeader = "X-Request-ID"

// RequestID 为每个请求分配ID并注入日志上下文。
// 客户端带了X-Request-ID时沿用，方便跨服务串联。
func RequestID() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		requestID := string(ctx.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(RequestIDHeader, requestID)

		reqLogger := logger.Logger.With().Str("request_id", requestID).Logger()
		c = reqLogger.WithContext(c)
		ctx.Next(c)
	}
}

package middleware

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-assist-go/internal/api/handler"
	"resume-assist-go/internal/auth"
	"resume-assist-go/internal/constants"
	"resume-assist-go/internal/logger"
)

const bearerPrefix = "Bearer "

// RequireAuth 校验Authorization头的Bearer Token。
// 校验通过后把用户ID写入RequestContext，失败直接终止请求。
func RequireAuth(tokens *auth.TokenManager) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		userID, err := verifyBearer(tokens, ctx)
		if err != nil {
			abortUnauthorized(ctx, err)
			return
		}
		ctx.Set(handler.CtxKeyUserID, userID)
		ctx.Next(c)
	}
}

// OptionalAuth 尝试解析Bearer Token，没带或无效都放行。
// 用于游客可用、登录后有额外语义的接口。
func OptionalAuth(tokens *auth.TokenManager) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		header := string(ctx.GetHeader("Authorization"))
		if header != "" {
			userID, err := verifyBearer(tokens, ctx)
			if err == nil {
				ctx.Set(handler.CtxKeyUserID, userID)
			} else {
				logger.Ctx(c).Debug().Err(err).Msg("忽略无效的Bearer Token")
			}
		}
		ctx.Next(c)
	}
}

func verifyBearer(tokens *auth.TokenManager, ctx *app.RequestContext) (string, error) {
	header := string(ctx.GetHeader("Authorization"))
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", auth.ErrInvalidToken
	}
	return tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
}

func abortUnauthorized(ctx *app.RequestContext, err error) {
	message := "请先登录"
	if err == auth.ErrTokenExpired {
		message = "登录已过期，请重新登录"
	}
	ctx.JSON(consts.StatusOK, utils.H{
		"success": false,
		"error": utils.H{
			"code":    constants.ErrCodeUnauthorized,
			"message": message,
		},
	})
	ctx.Abort()
}

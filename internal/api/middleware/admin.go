package middleware

import (
	"context"
	"crypto/subtle"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"resume-assist-go/internal/constants"
)

// AdminGuard 管理密钥校验，保护配置保存和统计清零等管理操作。
// 密钥从X-Admin-Key请求头读取。未配置密钥时拒绝所有管理请求。
func AdminGuard(apiKey string) app.HandlerFunc {
	return keyauth.New(
		keyauth.WithKeyLookUp("header:X-Admin-Key", ""),
		keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
			if apiKey == "" {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1, nil
		}),
		keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
			ctx.JSON(consts.StatusOK, utils.H{
				"success": false,
				"error": utils.H{
					"code":    constants.ErrCodeUnauthorized,
					"message": "管理密钥无效，请先登录管理端",
				},
			})
			ctx.Abort()
		}),
	)
}

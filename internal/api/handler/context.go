package handler

import (
	"github.com/cloudwego/hertz/pkg/app"
)

// CtxKeyUserID 认证中间件写入RequestContext的用户ID键
const CtxKeyUserID = "user_id"

// CurrentUserID 返回当前请求的用户ID，未登录时为空串
func CurrentUserID(ctx *app.RequestContext) string {
	if v, ok := ctx.Get(CtxKeyUserID); ok {
		if userID, ok := v.(string); ok {
			return userID
		}
	}
	return ""
}

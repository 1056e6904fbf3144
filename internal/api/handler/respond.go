package handler

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// 统一响应信封。业务错误也返回HTTP 200，成功与否由success字段表达，
// 错误码放在error.code里，前端按码分支处理。

// OK 返回成功响应
func OK(ctx *app.RequestContext, data interface{}) {
	ctx.JSON(consts.StatusOK, utils.H{
		"success": true,
		"data":    data,
	})
}

// Fail 返回业务错误响应
func Fail(ctx *app.RequestContext, code string, message string) {
	ctx.JSON(consts.StatusOK, utils.H{
		"success": false,
		"error": utils.H{
			"code":    code,
			"message": message,
		},
	})
}

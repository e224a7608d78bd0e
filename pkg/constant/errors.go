package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrInternalServer 表示服务器内部错误，可以由 Handler 转换为 500
	ErrInternalServer = errors.New("内部服务器错误")

	// ErrInvalidPublicID 表示无效的公共ID，可以由 Handler 转换为 400
	ErrInvalidPublicID = errors.New("无效的公共ID")

	// ErrViewExpired 表示页面状态已过期或不存在，需要用户刷新页面
	ErrViewExpired = errors.New("页面已过期，请刷新后重试")

	// ErrInvalidFormToken 表示表单令牌缺失或校验失败，可以由 Handler 转换为 403
	ErrInvalidFormToken = errors.New("表单已失效，请刷新页面后重试")
)

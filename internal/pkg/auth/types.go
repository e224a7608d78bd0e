package auth

import "github.com/golang-jwt/jwt/v5"

// FormTokenField 是页面表单中携带令牌的隐藏字段名
const FormTokenField = "_token"

// FormTokenKey 是在 gin.Context 中存储当前页面表单令牌的键
const FormTokenKey = "form_token"

// FormClaims 定义了表单令牌的 Claims，令牌与浏览器的页面 ID 绑定
type FormClaims struct {
	ViewID string `json:"view_id"`
	jwt.RegisteredClaims
}

package model

import "strconv"

// Author 是网关 users 集合中的作者，只读参考数据
type Author struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DisplayName 优先显示名称，没有名称时显示邮箱
func (a Author) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}

// Key 返回作者 ID 的字符串形式，用于下拉框的 value
func (a Author) Key() string {
	return strconv.Itoa(a.ID)
}

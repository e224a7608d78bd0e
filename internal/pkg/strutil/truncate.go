package strutil

import "unicode/utf8"

// Truncate 安全地将UTF-8字符串截断到指定的长度，并在需要时添加省略号。
func Truncate(s string, maxLength int) string {
	if maxLength < 0 || utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	return string([]rune(s)[:maxLength]) + "..."
}

// Len 返回字符串的字符数（按 rune 计）
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

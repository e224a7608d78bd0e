/*
 * @Description: 时区工具 - 页面上的日期统一按 UTC+8 显示
 */
package utils

import "time"

// ChinaTimezone 中国标准时间 UTC+8
var ChinaTimezone = time.FixedZone("CST", 8*60*60)

// DateLayout 页面使用的中文日期格式
const DateLayout = "2006年1月2日"

// ToChina 将时间转换为中国时区
func ToChina(t time.Time) time.Time {
	return t.In(ChinaTimezone)
}

// FormatDate 按中国时区格式化日期，零值返回空字符串
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return ToChina(t).Format(DateLayout)
}

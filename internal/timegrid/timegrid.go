// Package timegrid 定义课表的固定时间网格：合法星期集合（周一至周六）、
// HH:MM 文本时间表示，以及所有时段排序共用的比较规则。
//
// 比较规则是补零后的字典序比较，不做数值解析：格式不规范的输入按字符串比较的
// 结果排序，而不是报错。
package timegrid

import "strings"

const (
	Monday   = 1
	Saturday = 6
)

// Days 全部合法星期，周一=1 … 周六=6，无周日
var Days = []int{1, 2, 3, 4, 5, 6}

var dayNames = map[int]string{
	1: "周一",
	2: "周二",
	3: "周三",
	4: "周四",
	5: "周五",
	6: "周六",
}

// ValidDay 判断星期值是否在 1..6 内
func ValidDay(d int) bool {
	return d >= Monday && d <= Saturday
}

// DayName 返回星期的中文名称，非法值返回空串
func DayName(d int) string {
	return dayNames[d]
}

// Pad 将一位数小时补零（"8:00" → "08:00"），其余输入原样返回
func Pad(t string) string {
	if i := strings.IndexByte(t, ':'); i == 1 {
		return "0" + t
	}
	return t
}

// Compare 按补零后的字典序比较两个时间文本，返回 -1 / 0 / 1
func Compare(a, b string) int {
	return strings.Compare(Pad(a), Pad(b))
}

// Spellings 返回与 t 等价的全部写法（补零形式在前），用于按时间做等值匹配。
// "8:00" 与 "08:00" 都返回 ["08:00", "8:00"]；两位小时只有一种写法。
func Spellings(t string) []string {
	p := Pad(t)
	if len(p) > 2 && p[0] == '0' && p[2] == ':' {
		return []string{p, p[1:]}
	}
	return []string{p}
}

// Before 判断 a 是否严格早于 b
func Before(a, b string) bool {
	return Compare(a, b) < 0
}

// WellFormed 判断是否为 H:MM 或 HH:MM（小时 0-23，分钟 00-59）。
// 仅供请求参数校验使用；存储层与视图层从不解析时间。
func WellFormed(t string) bool {
	p := Pad(t)
	if len(p) != 5 || p[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	hour := int(p[0]-'0')*10 + int(p[1]-'0')
	minute := int(p[3]-'0')*10 + int(p[4]-'0')
	return hour <= 23 && minute <= 59
}

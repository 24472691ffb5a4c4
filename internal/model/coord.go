package model

import (
	"regexp"
	"strconv"
	"strings"
)

// 孔位坐标：行字母 + 列序号，如 A1、H12、P24
// 覆盖 96 孔（A1..H12）与 384 孔（A1..P24）两种规格
var wellCoordRe = regexp.MustCompile(`^[A-Pa-p][0-9]{1,2}$`)

// IsWellCoord 检查字符串是否为合法孔位坐标
func IsWellCoord(s string) bool {
	_, _, ok := ParseWellCoord(s)
	return ok
}

// NormalizeWellCoord 规范化孔位坐标（去空格、转大写）
// 非法坐标返回空串
func NormalizeWellCoord(s string) string {
	s = strings.TrimSpace(s)
	if !IsWellCoord(s) {
		return ""
	}
	return strings.ToUpper(s)
}

// ParseWellCoord 解析孔位坐标为行字母与列序号
func ParseWellCoord(s string) (row byte, col int, ok bool) {
	s = strings.TrimSpace(s)
	if !wellCoordRe.MatchString(s) {
		return 0, 0, false
	}
	row = strings.ToUpper(s[:1])[0]
	col, err := strconv.Atoi(s[1:])
	if err != nil || col < 1 || col > 24 {
		return 0, 0, false
	}
	return row, col, true
}

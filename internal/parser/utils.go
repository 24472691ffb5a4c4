package parser

import (
	"strconv"
	"strings"
)

// cellText 越界安全地取单元格文本（去首尾空格）
func cellText(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber 单元格文本转数值
// 容忍千分位逗号；无法解析时 ok 为 false，绝不折算为 0
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseCycle 单元格文本转循环数（正整数）
func parseCycle(s string) (int, bool) {
	f, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	c := int(f)
	if float64(c) != f || c < 1 {
		return 0, false
	}
	return c, true
}

// noValueTokens 表示“无检出/无数值”的哨兵词
// 哨兵一律按“无值”处理，绝不折算为 0
var noValueTokens = map[string]bool{
	"":                true,
	"N":               true,
	"NA":              true,
	"N/A":             true,
	"NOCT":            true,
	"NOAMP":           true,
	"NOAMPLIFICATION": true,
	"UNDETERMINED":    true,
	"-":               true,
}

// isNoValueToken 检查单元格文本是否为哨兵词
func isNoValueToken(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return noValueTokens[s]
}

// findHeaderRow 在前 within 行内查找同时包含所有标记词的行
// 返回行下标，找不到返回 -1
func findHeaderRow(grid Grid, within int, tokens ...string) int {
	limit := len(grid)
	if within < limit {
		limit = within
	}
	for idx := 0; idx < limit; idx++ {
		joined := strings.Join(grid[idx], " ")
		matched := true
		for _, token := range tokens {
			if !strings.Contains(joined, token) {
				matched = false
				break
			}
		}
		if matched {
			return idx
		}
	}
	return -1
}

// headerIndex 在表头行中查找与名称完全一致的列
func headerIndex(header []string, name string) int {
	for idx := range header {
		if cellText(header, idx) == name {
			return idx
		}
	}
	return -1
}

// headerIndexContains 在表头行中查找包含任一子串的列
func headerIndexContains(header []string, substrings ...string) int {
	for idx := range header {
		cell := cellText(header, idx)
		if cell == "" {
			continue
		}
		for _, sub := range substrings {
			if strings.Contains(cell, sub) {
				return idx
			}
		}
	}
	return -1
}

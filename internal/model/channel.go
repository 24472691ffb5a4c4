package model

import "strings"

// KnownChannels 常见荧光通道词表，用于表格内容的启发式定位
// 通道词表是开放的：未收录的标签原样保留
var KnownChannels = []string{"FAM", "VIC", "CY5", "ROX", "CY3", "HEX"}

// structuralTokens 表格结构列名，绝不允许作为通道名出现
var structuralTokens = map[string]bool{
	"Well":          true,
	"Cycle":         true,
	"Channel":       true,
	"Value":         true,
	"Amplification": true,
	"RawValue":      true,
}

// CanonicalChannel 厂商通道标签折算为统一通道名
// JOE 是 VIC 的旧称，始终折算；HEX 保留为独立通道（查询时再与 VIC 互换）
func CanonicalChannel(label string) string {
	label = strings.TrimSpace(label)
	if strings.EqualFold(label, "JOE") {
		return "VIC"
	}
	return label
}

// IsStructuralToken 检查名称是否为结构列名
func IsStructuralToken(name string) bool {
	return structuralTokens[name]
}

// SubstituteChannel 查询时的等价通道
// HEX 与 VIC 互为替代；其余通道无替代，返回空串
func SubstituteChannel(name string) string {
	switch name {
	case "HEX":
		return "VIC"
	case "VIC":
		return "HEX"
	}
	return ""
}

package parser

import "strings"

// 厂商A导出文件的特征工作表名
var vendorAMarkers = []string{"实验数据", "扩增曲线"}

// DetectVendor 根据工作表名称识别厂商格式
// 多表签名按特异性从高到低依次匹配，保证同一文件的识别结果确定；
// 识别永不报错，无法判断时回落到通用格式
func DetectVendor(sheetNames []string) VendorTag {
	names := make(map[string]bool, len(sheetNames))
	for _, name := range sheetNames {
		names[strings.TrimSpace(name)] = true
	}

	// 7500 格式：Sample Setup + Results，或三张特征表齐全
	if (names["Sample Setup"] && names["Results"]) ||
		(names["Amplification Data"] && names["Results"] && names["Raw Data"]) {
		return Vendor7500
	}

	for _, name := range sheetNames {
		for _, marker := range vendorAMarkers {
			if strings.Contains(name, marker) {
				return VendorA
			}
		}
	}

	return VendorGeneric
}

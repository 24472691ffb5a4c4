package parser

import (
	"strings"

	"qpcr/internal/model"
)

// 厂商A“实验数据”表的固定列偏移（0 起算）
const (
	vendorAWellCol    = 0  // 反应孔
	vendorAChannelCol = 6  // 染色（通道名）
	vendorACtCol      = 12 // Ct
	vendorAAmpStart   = 39 // 扩增数据块默认起始列（AN 列）
	vendorACycles     = 42 // 扩增/原始数据块各 42 个循环
)

// scanVendorA 厂商A格式扫描
// “实验数据”表以“反应孔”标记行为锚点，列偏移固定、带小范围回退搜索；
// 该表缺失或无数据时退回“扩增曲线”表做通用启发式提取
func scanVendorA(wb *Workbook) *ScanResult {
	result := NewScanResult()

	for _, name := range wb.SheetNames {
		if strings.Contains(name, "实验数据") {
			grid := wb.Sheets[name]
			extractExperimentInfo(grid, result.ExperimentInfo)
			scanVendorASheet(grid, result)
			break
		}
	}

	if result.Empty() {
		for _, name := range wb.SheetNames {
			if strings.Contains(name, "扩增曲线") {
				result.Rows = append(result.Rows, scanGenericSheet(wb.Sheets[name])...)
				break
			}
		}
	}

	return result
}

// scanVendorASheet 解析“实验数据”表的密集结果区
// 每行对应一个（孔位, 通道）组合；孔位列不符合坐标格式的行直接忽略
func scanVendorASheet(grid Grid, result *ScanResult) {
	headerRow := findHeaderRow(grid, 20, "反应孔")
	if headerRow < 0 {
		return
	}

	header := grid[headerRow]
	sampleCol := headerIndexContains(header, "样本名称", "样品名称", "样本", "样品", "Sample")
	ampStart := findVendorADataStart(grid, headerRow)
	rawStart := ampStart + vendorACycles + 1 // 扩增块与原始块之间隔一列

	for idx := headerRow + 1; idx < len(grid); idx++ {
		line := grid[idx]

		well := model.NormalizeWellCoord(cellText(line, vendorAWellCol))
		if well == "" {
			continue
		}
		channel := cellText(line, vendorAChannelCol)
		if channel == "" {
			continue
		}

		aux := result.Aux(well)
		aux.DeclareChannel(channel)
		if sampleCol >= 0 && aux.SampleName == "" {
			aux.SampleName = cellText(line, sampleCol)
		}
		if ct := cellText(line, vendorACtCol); !isNoValueToken(ct) {
			if v, ok := parseNumber(ct); ok {
				if _, exists := aux.Cts[channel]; !exists {
					aux.Cts[channel] = v
				}
			}
		}

		result.Rows = append(result.Rows, scanFixedBlock(line, well, channel, ampStart, RowAmplification)...)
		result.Rows = append(result.Rows, scanFixedBlock(line, well, channel, rawStart, RowRaw)...)
	}
}

// scanFixedBlock 从固定宽度的数据块提取 42 个循环的信号值
// 单元格缺失或无法解析时保留位置（Valid=false），序列长度不因此缩短；
// 整块无有效数值时视为该孔该通道无此类曲线
func scanFixedBlock(line []string, well, channel string, start int, kind RowKind) []Row {
	rows := make([]Row, 0, vendorACycles)
	anyValid := false
	for i := 0; i < vendorACycles; i++ {
		cell := cellText(line, start+i)
		row := Row{Cycle: i + 1, Well: well, Channel: channel, Kind: kind}
		if !isNoValueToken(cell) {
			if v, ok := parseNumber(cell); ok {
				row.Value = v
				row.Valid = true
				anyValid = true
			}
		}
		rows = append(rows, row)
	}
	if !anyValid {
		return nil
	}
	return rows
}

// findVendorADataStart 定位扩增数据块起始列
// 模板存在轻微漂移：先在表头行 35-44 列内找“1.0”循环标号，
// 再检查下一行同窗口内的首个数值列，最后落回固定列 39
func findVendorADataStart(grid Grid, headerRow int) int {
	header := grid[headerRow]
	for col := 35; col < 45; col++ {
		switch cellText(header, col) {
		case "1.0", "1.00", "1":
			return col
		}
	}

	if headerRow+1 < len(grid) {
		next := grid[headerRow+1]
		for col := 35; col < 45; col++ {
			if v, ok := parseNumber(cellText(next, col)); ok && v > -100 && v < 10000 {
				return col
			}
		}
	}

	return vendorAAmpStart
}

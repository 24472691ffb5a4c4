package parser

import (
	"strings"

	"qpcr/internal/model"
)

// 启发式定位的搜索窗口（行数）
const genericSearchRows = 50

// scanGeneric 通用兜底扫描
// 在每张工作表的前 50 行内寻找包含已知通道名的行，通道行下一行中
// 取值为 1-50 的小整数所在列视为循环数列；取第一张产出数据的工作表
func scanGeneric(wb *Workbook) *ScanResult {
	result := NewScanResult()

	for _, name := range wb.SheetNames {
		grid := wb.Sheets[name]
		extractExperimentInfo(grid, result.ExperimentInfo)

		if !result.Empty() {
			continue
		}
		result.Rows = append(result.Rows, scanGenericSheet(grid)...)
	}

	return result
}

// scanGenericSheet 从单张工作表提取曲线数据
// 通用格式没有孔位列，Well 留空由转换阶段落入默认孔位
func scanGenericSheet(grid Grid) []Row {
	channelRow, channels := findChannelRow(grid)
	if channelRow < 0 {
		return nil
	}
	cycleCol := findCycleColumn(grid, channelRow, channels)
	if cycleCol < 0 {
		return nil
	}

	var rows []Row
	for idx := channelRow + 1; idx < len(grid); idx++ {
		line := grid[idx]
		cycle, ok := parseCycle(cellText(line, cycleCol))
		if !ok || cycle > 50 {
			continue
		}

		for _, ch := range channels {
			cell := cellText(line, ch.col)
			row := Row{Cycle: cycle, Channel: ch.name, Kind: RowAmplification}
			// 哨兵词（NoCt、N/A 等）按“无值”处理，不折算为 0
			if !isNoValueToken(cell) {
				if v, ok := parseNumber(cell); ok {
					row.Value = v
					row.Valid = true
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

type channelColumn struct {
	col  int
	name string
}

// findChannelRow 在搜索窗口内查找包含已知通道名的行及各通道所在列
func findChannelRow(grid Grid) (int, []channelColumn) {
	limit := min(genericSearchRows, len(grid))
	for idx := 0; idx < limit; idx++ {
		var cols []channelColumn
		for colIdx := range grid[idx] {
			cell := strings.ToUpper(cellText(grid[idx], colIdx))
			if cell == "" {
				continue
			}
			for _, known := range model.KnownChannels {
				if strings.Contains(cell, known) {
					cols = append(cols, channelColumn{col: colIdx, name: known})
					break
				}
			}
		}
		if len(cols) > 0 {
			return idx, cols
		}
	}
	return -1, nil
}

// findCycleColumn 查找循环数列
// 首选通道行下一行中出现 1-50 小整数的列（通道列除外）；
// 找不到时在窗口内回查首列
func findCycleColumn(grid Grid, channelRow int, channels []channelColumn) int {
	isChannelCol := make(map[int]bool, len(channels))
	for _, ch := range channels {
		isChannelCol[ch.col] = true
	}

	if channelRow+1 < len(grid) {
		line := grid[channelRow+1]
		for colIdx := range line {
			if isChannelCol[colIdx] {
				continue
			}
			if c, ok := parseCycle(cellText(line, colIdx)); ok && c <= 50 {
				return colIdx
			}
		}
	}

	limit := min(channelRow+1+genericSearchRows, len(grid))
	for idx := channelRow + 1; idx < limit; idx++ {
		if c, ok := parseCycle(cellText(grid[idx], 0)); ok && c <= 50 {
			return 0
		}
	}
	return -1
}

// 实验信息的关键词与统一键名
var experimentInfoKeys = []struct {
	markers []string
	key     string
}{
	{[]string{"开始时间", "起始时间"}, "开始时间"},
	{[]string{"结束时间", "完成时间"}, "结束时间"},
	{[]string{"实验名称"}, "实验名称"},
}

// extractExperimentInfo 从工作表前部提取实验信息（键在首列、值在次列）
// 已有的键不覆盖
func extractExperimentInfo(grid Grid, into map[string]string) {
	limit := min(20, len(grid))
	for idx := 0; idx < limit; idx++ {
		first := cellText(grid[idx], 0)
		if first == "" {
			continue
		}
		for _, entry := range experimentInfoKeys {
			for _, marker := range entry.markers {
				if strings.Contains(first, marker) {
					if value := cellText(grid[idx], 1); value != "" {
						if _, ok := into[entry.key]; !ok {
							into[entry.key] = value
						}
					}
					break
				}
			}
		}
	}
}

package parser

import (
	"qpcr/internal/model"
)

// 7500 导出文件的特征工作表名
const (
	sheet7500Setup   = "Sample Setup"
	sheet7500Multi   = "Multicomponent Data"
	sheet7500Amp     = "Amplification Data"
	sheet7500Results = "Results"
	sheet7500Raw     = "Raw Data"
)

// Results 表的 Ct 列固定在第 6 列（G 列）
// 不同导出版本该列表头文本不可靠，是全流程中唯一优先固定偏移的位置
const results7500CtCol = 6

// ΔRn 列的表头写法因导出版本而异
var deltaRnHeaders = []string{"ΔRn", "Delta Rn", "dRn"}

// scanVendor7500 7500 格式扫描
// 最多读取四张命名工作表：Sample Setup（孔位/通道/样本分配）、
// Multicomponent Data 或 Amplification Data（循环曲线）、
// Results（Ct）、Raw Data（原始信号兜底）；列角色按表头文本发现
func scanVendor7500(wb *Workbook) *ScanResult {
	result := NewScanResult()

	if grid, ok := wb.Sheet(sheet7500Setup); ok {
		scan7500Setup(grid, result)
	}

	// 曲线优先取 Multicomponent Data，缺失或无数据时取 Amplification Data
	if grid, ok := wb.Sheet(sheet7500Multi); ok {
		scan7500Curves(grid, result)
	}
	if result.Empty() {
		if grid, ok := wb.Sheet(sheet7500Amp); ok {
			scan7500Curves(grid, result)
		}
	}

	if grid, ok := wb.Sheet(sheet7500Results); ok {
		scan7500Results(grid, result)
	}

	if !result.hasRawRows() {
		if grid, ok := wb.Sheet(sheet7500Raw); ok {
			scan7500RawFallback(grid, result)
		}
	}

	return result
}

func (r *ScanResult) hasRawRows() bool {
	for _, row := range r.Rows {
		if row.Kind == RowRaw {
			return true
		}
	}
	return false
}

// scan7500Setup 解析 Sample Setup 表
// 表头之前的键值行是实验信息；表体给出孔位的通道与样本分配
func scan7500Setup(grid Grid, result *ScanResult) {
	headerRow := findHeaderRow(grid, 10, "Well", "Target Name")

	// 表头之前的行才可能是实验信息键值对
	limit := min(7, len(grid))
	if headerRow >= 0 && headerRow < limit {
		limit = headerRow
	}
	for idx := 0; idx < limit; idx++ {
		key := cellText(grid[idx], 0)
		value := cellText(grid[idx], 1)
		if key == "" || value == "" {
			continue
		}
		if _, ok := result.ExperimentInfo[key]; !ok {
			result.ExperimentInfo[key] = value
		}
	}

	if headerRow < 0 {
		return
	}
	header := grid[headerRow]
	wellCol := headerIndex(header, "Well")
	targetCol := headerIndex(header, "Target Name")
	sampleCol := headerIndex(header, "Sample Name")
	if wellCol < 0 || targetCol < 0 {
		return
	}

	for idx := headerRow + 1; idx < len(grid); idx++ {
		line := grid[idx]
		well := model.NormalizeWellCoord(cellText(line, wellCol))
		if well == "" {
			continue
		}
		channel := model.CanonicalChannel(cellText(line, targetCol))
		if channel == "" {
			continue
		}

		aux := result.Aux(well)
		aux.DeclareChannel(channel)
		if sampleCol >= 0 && aux.SampleName == "" {
			aux.SampleName = cellText(line, sampleCol)
		}
	}
}

// scan7500Curves 解析曲线表（Multicomponent Data / Amplification Data）
// 列配置随运行设置变化，Well/Cycle/Target Name/Rn/ΔRn 一律按表头发现；
// 扩增值优先 ΔRn、其次 Rn；两列同时存在时 Rn 兼作原始曲线
func scan7500Curves(grid Grid, result *ScanResult) {
	headerRow := findHeaderRow(grid, 10, "Well", "Cycle")
	if headerRow < 0 {
		return
	}
	header := grid[headerRow]
	wellCol := headerIndex(header, "Well")
	cycleCol := headerIndex(header, "Cycle")
	targetCol := headerIndex(header, "Target Name")
	rnCol := headerIndex(header, "Rn")
	deltaRnCol := headerIndexContains(header, deltaRnHeaders...)
	if wellCol < 0 || cycleCol < 0 || targetCol < 0 {
		return
	}
	if rnCol < 0 && deltaRnCol < 0 {
		return
	}

	for idx := headerRow + 1; idx < len(grid); idx++ {
		line := grid[idx]

		well := model.NormalizeWellCoord(cellText(line, wellCol))
		if well == "" {
			continue
		}
		cycle, ok := parseCycle(cellText(line, cycleCol))
		if !ok {
			continue
		}
		channel := model.CanonicalChannel(cellText(line, targetCol))
		if channel == "" {
			continue
		}

		amp := Row{Cycle: cycle, Well: well, Channel: channel, Kind: RowAmplification}
		if deltaRnCol >= 0 {
			if v, ok := parseNumber(cellText(line, deltaRnCol)); ok {
				amp.Value = v
				amp.Valid = true
			}
		}
		if !amp.Valid && rnCol >= 0 {
			if v, ok := parseNumber(cellText(line, rnCol)); ok {
				amp.Value = v
				amp.Valid = true
			}
		}
		result.Rows = append(result.Rows, amp)

		if deltaRnCol >= 0 && rnCol >= 0 {
			raw := Row{Cycle: cycle, Well: well, Channel: channel, Kind: RowRaw}
			if v, ok := parseNumber(cellText(line, rnCol)); ok {
				raw.Value = v
				raw.Valid = true
			}
			result.Rows = append(result.Rows, raw)
		}
	}
}

// scan7500Results 解析 Results 表，收集仪器报告的 Ct
// 哨兵词（Undetermined、N/A 等）表示未检出，直接丢弃；范围校验在转换阶段
func scan7500Results(grid Grid, result *ScanResult) {
	headerRow := findHeaderRow(grid, 10, "Well", "Target Name")
	if headerRow < 0 {
		return
	}
	header := grid[headerRow]
	wellCol := headerIndex(header, "Well")
	targetCol := headerIndex(header, "Target Name")
	if wellCol < 0 || targetCol < 0 || len(header) <= results7500CtCol {
		return
	}

	for idx := headerRow + 1; idx < len(grid); idx++ {
		line := grid[idx]

		well := model.NormalizeWellCoord(cellText(line, wellCol))
		if well == "" {
			continue
		}
		channel := model.CanonicalChannel(cellText(line, targetCol))
		if channel == "" {
			continue
		}

		ct := cellText(line, results7500CtCol)
		if isNoValueToken(ct) {
			continue
		}
		if v, ok := parseNumber(ct); ok {
			aux := result.Aux(well)
			if _, exists := aux.Cts[channel]; !exists {
				aux.Cts[channel] = v
			}
		}
	}
}

// scan7500RawFallback 解析 Raw Data 表作为原始信号兜底
// Cycle 列之后与通道词表吻合的表头列视为各通道的原始值列
func scan7500RawFallback(grid Grid, result *ScanResult) {
	headerRow := findHeaderRow(grid, 10, "Well", "Cycle")
	if headerRow < 0 {
		return
	}
	header := grid[headerRow]
	wellCol := headerIndex(header, "Well")
	cycleCol := headerIndex(header, "Cycle")
	if wellCol < 0 || cycleCol < 0 {
		return
	}

	known := make(map[string]bool, len(model.KnownChannels))
	for _, ch := range model.KnownChannels {
		known[ch] = true
	}
	var channels []channelColumn
	for colIdx := range header {
		name := model.CanonicalChannel(cellText(header, colIdx))
		if known[name] {
			channels = append(channels, channelColumn{col: colIdx, name: name})
		}
	}
	if len(channels) == 0 {
		return
	}

	for idx := headerRow + 1; idx < len(grid); idx++ {
		line := grid[idx]

		well := model.NormalizeWellCoord(cellText(line, wellCol))
		if well == "" {
			continue
		}
		cycle, ok := parseCycle(cellText(line, cycleCol))
		if !ok {
			continue
		}

		for _, ch := range channels {
			row := Row{Cycle: cycle, Well: well, Channel: ch.name, Kind: RowRaw}
			if v, ok := parseNumber(cellText(line, ch.col)); ok {
				row.Value = v
				row.Valid = true
			}
			result.Rows = append(result.Rows, row)
		}
	}
}

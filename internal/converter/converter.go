// Package converter 将扫描器的中间结果折算为统一数据模型，并在折算
// 过程中强制执行模型不变量：循环序列全通道共享、序列长度确定性修复、
// Ct 范围门限、结构列名拒收。
package converter

import (
	"sort"

	"qpcr/internal/model"
	"qpcr/internal/parser"
)

// 通用格式没有孔位列，数据落入默认孔位
const defaultWell = "A1"

// Convert 按厂商格式把中间结果折算为 PlateRun
// 折算只做修复、绝不报错；空的中间结果产出空模型
func Convert(tag parser.VendorTag, scan *parser.ScanResult) *model.PlateRun {
	plate := model.NewPlateRun()
	if scan == nil {
		return plate
	}

	for k, v := range scan.ExperimentInfo {
		plate.ExperimentInfo[k] = v
	}

	fallbackWell := ""
	if tag == parser.VendorGeneric {
		fallbackWell = defaultWell
	}
	foldRows(plate, scan.Rows, fallbackWell)
	attachAux(plate, scan)

	plate.ResolvePlateType()
	return plate
}

type groupKey struct {
	well    string
	channel string
}

type group struct {
	amp []parser.Row
	raw []parser.Row
}

// foldRows 按（孔位, 通道）分组折算曲线数据
// 分组保持首次出现顺序，保证“先出现的组确定孔位循环序列”可复现
func foldRows(plate *model.PlateRun, rows []parser.Row, fallbackWell string) {
	groups := make(map[groupKey]*group)
	var order []groupKey

	for _, row := range rows {
		well := row.Well
		if well == "" {
			well = fallbackWell
		}
		if well == "" {
			continue
		}

		channel := model.CanonicalChannel(row.Channel)
		// 结构列名出现在通道位置说明上游扫描出错，整组拒收
		if channel == "" || model.IsStructuralToken(channel) {
			continue
		}

		key := groupKey{well: well, channel: channel}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		if row.Kind == parser.RowRaw {
			g.raw = append(g.raw, row)
		} else {
			g.amp = append(g.amp, row)
		}
	}

	for _, key := range order {
		g := groups[key]
		well := plate.EnsureWell(key.well)

		if len(g.amp) > 0 {
			cycles, values := alignGroup(g.amp)
			if len(well.Cycles) == 0 {
				well.Cycles = cycles
			}
			well.Channels[key.channel] = repairLength(values, len(well.Cycles))
		}
		// 原始曲线独立折算，不依赖同孔同通道是否已有扩增数据
		if len(g.raw) > 0 {
			cycles, values := alignGroup(g.raw)
			if len(well.Cycles) == 0 {
				well.Cycles = cycles
			}
			well.RawChannels[key.channel] = repairLength(values, len(well.Cycles))
		}
	}
}

// alignGroup 组内按循环数排序，产出严格递增的循环序列及对应信号值
// 无效值（哨兵或无法解析）折算为 0.0 占位；重复循环先到者生效
func alignGroup(rows []parser.Row) ([]int, []float64) {
	sorted := make([]parser.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cycle < sorted[j].Cycle })

	cycles := make([]int, 0, len(sorted))
	values := make([]float64, 0, len(sorted))
	for _, row := range sorted {
		if n := len(cycles); n > 0 && cycles[n-1] == row.Cycle {
			continue
		}
		cycles = append(cycles, row.Cycle)
		v := 0.0
		if row.Valid {
			v = row.Value
		}
		values = append(values, v)
	}
	return cycles, values
}

// repairLength 信号序列与既定循环数的确定性修复：尾部截断或尾部补零
func repairLength(values []float64, want int) []float64 {
	if want <= 0 || len(values) == want {
		return values
	}
	if len(values) > want {
		return values[:want]
	}
	padded := make([]float64, want)
	copy(padded, values)
	return padded
}

// attachAux 把辅助信息（Ct、样本名称、声明通道）挂到已建孔位
// Ct 仅保留 (0, 42] 范围内的值，先写入者生效
func attachAux(plate *model.PlateRun, scan *parser.ScanResult) {
	for wellName, aux := range scan.WellInfo {
		well := plate.GetWell(wellName)
		if well == nil {
			continue
		}

		for channel, ct := range aux.Cts {
			well.SetCt(model.CanonicalChannel(channel), ct)
		}
		for _, channel := range aux.Channels {
			well.DeclareChannel(model.CanonicalChannel(channel))
		}
		well.SetSampleName(aux.SampleName)
	}
}

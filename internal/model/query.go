package model

import "sort"

// SignalKind 查询的曲线类型
type SignalKind string

const (
	KindAmplification SignalKind = "amplification" // 扩增曲线（处理后信号，如 ΔRn）
	KindRaw           SignalKind = "raw"           // 原始曲线（未处理荧光）
)

// CurvePoint 查询返回的单个曲线点
type CurvePoint struct {
	Cycle   int     `json:"cycle"`
	Well    string  `json:"well"`
	Channel string  `json:"channel"`
	Value   float64 `json:"value"`
}

// QueryOptions 曲线查询条件
// Wells/Channels 为空表示不限
type QueryOptions struct {
	Wells    []string
	Channels []string
	Kind     SignalKind
}

// WellNames 返回所有孔位名称（排序后）
func (p *PlateRun) WellNames() []string {
	names := make([]string, 0, len(p.Wells))
	for name := range p.Wells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllChannels 返回模型中出现过的所有通道名（排序后）
// 结构列名绝不会出现在结果中
func (p *PlateRun) AllChannels() []string {
	set := make(map[string]bool)
	for _, w := range p.Wells {
		for ch := range w.Channels {
			if !IsStructuralToken(ch) {
				set[ch] = true
			}
		}
		for ch := range w.RawChannels {
			if !IsStructuralToken(ch) {
				set[ch] = true
			}
		}
	}

	names := make([]string, 0, len(set))
	for ch := range set {
		names = append(names, ch)
	}
	sort.Strings(names)
	return names
}

// WellsWithAnyChannel 返回扩增数据中包含任一指定通道的孔位
func (p *PlateRun) WellsWithAnyChannel(channels []string) map[string]*Well {
	result := make(map[string]*Well)
	for name, w := range p.Wells {
		for _, ch := range channels {
			if w.HasChannel(ch) {
				result[name] = w
				break
			}
		}
	}
	return result
}

// Query 按孔位/通道/曲线类型查询曲线点，按孔位及循环数升序返回
// 查询到的通道标签始终使用请求的通道名，即使数据来自 HEX/VIC 等价替代
func (p *PlateRun) Query(opts QueryOptions) []CurvePoint {
	wells := opts.Wells
	if len(wells) == 0 {
		wells = p.WellNames()
	}
	// 等价替代只服务显式请求；默认查询逐通道原样返回，避免同一曲线双份输出
	explicit := len(opts.Channels) > 0
	channels := opts.Channels
	if !explicit {
		channels = p.AllChannels()
	}
	kind := opts.Kind
	if kind == "" {
		kind = KindAmplification
	}

	var points []CurvePoint
	for _, wellName := range wells {
		w := p.GetWell(wellName)
		if w == nil {
			continue
		}

		for _, requested := range channels {
			if IsStructuralToken(requested) {
				continue
			}

			values, ok := w.lookupSignal(requested, kind, explicit)
			if !ok {
				continue
			}

			cycles := w.Cycles
			if len(cycles) == 0 {
				cycles = make([]int, len(values))
				for i := range cycles {
					cycles[i] = i + 1
				}
			}

			n := len(cycles)
			if len(values) < n {
				n = len(values)
			}
			for i := 0; i < n; i++ {
				points = append(points, CurvePoint{
					Cycle:   cycles[i],
					Well:    wellName,
					Channel: requested,
					Value:   values[i],
				})
			}
		}
	}
	return points
}

// lookupSignal 取指定通道的曲线数据
// 显式请求的通道无数据时，按 HEX/VIC 等价关系查找替代通道；
// 原始曲线缺失时退回扩增曲线（同一通道优先原始数据）
func (w *Well) lookupSignal(requested string, kind SignalKind, substitute bool) ([]float64, bool) {
	candidates := []string{requested}
	if substitute {
		if alt := SubstituteChannel(requested); alt != "" {
			candidates = append(candidates, alt)
		}
	}

	for _, ch := range candidates {
		if kind == KindRaw && w.HasRawChannel(ch) {
			return w.RawChannels[ch], true
		}
		if w.HasChannel(ch) {
			return w.Channels[ch], true
		}
	}
	return nil, false
}

package model

// 孔板规格
const (
	PlateType96  = "96"
	PlateType384 = "384"
)

// MaxCt Ct值可信上限，大于该值视为未检出
const MaxCt = 42.0

// MetaSampleName 孔位元数据中的样本名称键
const MetaSampleName = "sample_name"

// Well 单个反应孔的数据
type Well struct {
	Name             string               `json:"name"`        // 孔位名称，如 A1、B12
	Cycles           []int                `json:"cycles"`      // 循环数列表，孔内所有通道共享
	Channels         map[string][]float64 `json:"channels"`    // 扩增曲线数据 {通道名: [各循环荧光值]}
	RawChannels      map[string][]float64 `json:"rawChannels"` // 原始曲线数据 {通道名: [各循环荧光值]}
	CtValues         map[string]float64   `json:"ctValues"`    // Ct值 {通道名: ct}
	Metadata         map[string]string    `json:"metadata"`    // 其他元数据（样本名称等）
	DeclaredChannels []string             `json:"declaredChannels,omitempty"` // 点样设置声明的通道，可能无曲线数据
}

// NewWell 创建孔位
func NewWell(name string) *Well {
	return &Well{
		Name:        name,
		Channels:    make(map[string][]float64),
		RawChannels: make(map[string][]float64),
		CtValues:    make(map[string]float64),
		Metadata:    make(map[string]string),
	}
}

// HasChannel 检查扩增数据中是否存在指定通道
func (w *Well) HasChannel(name string) bool {
	return len(w.Channels[name]) > 0
}

// HasRawChannel 检查原始数据中是否存在指定通道
func (w *Well) HasRawChannel(name string) bool {
	return len(w.RawChannels[name]) > 0
}

// SetCt 写入Ct值
// 仅接受 (0, 42] 范围内的值；同一通道先写入者生效
func (w *Well) SetCt(channel string, ct float64) bool {
	if ct <= 0 || ct > MaxCt {
		return false
	}
	if _, ok := w.CtValues[channel]; ok {
		return false
	}
	w.CtValues[channel] = ct
	return true
}

// DeclareChannel 记录声明过的通道（如 Sample Setup 的点样分配），去重保序
func (w *Well) DeclareChannel(name string) {
	if name == "" || IsStructuralToken(name) {
		return
	}
	for _, ch := range w.DeclaredChannels {
		if ch == name {
			return
		}
	}
	w.DeclaredChannels = append(w.DeclaredChannels, name)
}

// SetSampleName 写入样本名称，先写入者生效
func (w *Well) SetSampleName(name string) {
	if name == "" {
		return
	}
	if _, ok := w.Metadata[MetaSampleName]; !ok {
		w.Metadata[MetaSampleName] = name
	}
}

// PlateRun 一次上机实验的统一数据模型
// 导入完成后对外部读取方视为不可变
type PlateRun struct {
	Wells          map[string]*Well  `json:"wells"`
	ExperimentInfo map[string]string `json:"experimentInfo"` // 实验信息（开始/结束时间、实验名称等）
	PlateType      string            `json:"plateType"`      // 孔板规格：96 或 384
}

// NewPlateRun 创建空模型
func NewPlateRun() *PlateRun {
	return &PlateRun{
		Wells:          make(map[string]*Well),
		ExperimentInfo: make(map[string]string),
		PlateType:      PlateType96,
	}
}

// GetWell 获取指定孔位，不存在返回 nil
func (p *PlateRun) GetWell(name string) *Well {
	return p.Wells[name]
}

// EnsureWell 获取指定孔位，首次观测到数据时创建
func (p *PlateRun) EnsureWell(name string) *Well {
	if w, ok := p.Wells[name]; ok {
		return w
	}
	w := NewWell(name)
	p.Wells[name] = w
	return w
}

// ResolvePlateType 根据已观测孔位坐标修正孔板规格
// 出现 H 行之后的行或 12 列之后的列即判定为 384 孔板
func (p *PlateRun) ResolvePlateType() {
	for name := range p.Wells {
		row, col, ok := ParseWellCoord(name)
		if !ok {
			continue
		}
		if row > 'H' || col > 12 {
			p.PlateType = PlateType384
			return
		}
	}
	p.PlateType = PlateType96
}

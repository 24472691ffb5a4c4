package parser

// VendorTag 厂商格式标识
type VendorTag string

const (
	VendorGeneric VendorTag = "generic"     // 通用兜底格式
	VendorA       VendorTag = "vendor_a"    // 厂商A（中文工作表，固定列偏移）
	Vendor7500    VendorTag = "vendor_7500" // Applied Biosystems 7500 导出格式
)

// RowKind 中间表行的曲线类型
type RowKind int

const (
	RowAmplification RowKind = iota // 扩增曲线（处理后信号）
	RowRaw                          // 原始曲线（未处理荧光）
)

// Grid 未类型化的工作表网格，按行存放单元格文本
type Grid [][]string

// Workbook 已读入内存的工作簿，与读取引擎无关
type Workbook struct {
	SheetNames []string
	Sheets     map[string]Grid
}

// Sheet 按名称取工作表网格
func (wb *Workbook) Sheet(name string) (Grid, bool) {
	g, ok := wb.Sheets[name]
	return g, ok
}

// Row 中间表单条记录：某孔某通道在某循环的一个信号值
// Valid 为 false 表示该循环位置没有有效数值（哨兵或无法解析），
// 位置仍然保留，留待转换阶段按 0.0 填充
type Row struct {
	Cycle   int
	Well    string // 生成阶段可能为空（通用格式无孔位列）
	Channel string
	Value   float64
	Valid   bool
	Kind    RowKind
}

// WellAux 扫描阶段收集的孔位辅助信息
// Ct 的范围校验在转换阶段统一执行，这里仅存放解析出的数值
type WellAux struct {
	Cts        map[string]float64 // {通道名: 仪器报告的Ct}
	SampleName string
	Channels   []string // Sample Setup 等声明的通道
}

// ScanResult 扫描器输出的中间结果
type ScanResult struct {
	Rows           []Row
	WellInfo       map[string]*WellAux
	ExperimentInfo map[string]string
}

// NewScanResult 创建空的中间结果
func NewScanResult() *ScanResult {
	return &ScanResult{
		WellInfo:       make(map[string]*WellAux),
		ExperimentInfo: make(map[string]string),
	}
}

// Aux 取孔位辅助信息，不存在时创建
func (r *ScanResult) Aux(well string) *WellAux {
	aux, ok := r.WellInfo[well]
	if !ok {
		aux = &WellAux{Cts: make(map[string]float64)}
		r.WellInfo[well] = aux
	}
	return aux
}

// DeclareChannel 记录孔位声明的通道
func (a *WellAux) DeclareChannel(name string) {
	for _, ch := range a.Channels {
		if ch == name {
			return
		}
	}
	a.Channels = append(a.Channels, name)
}

// Empty 中间结果是否不含任何曲线数据
func (r *ScanResult) Empty() bool {
	return len(r.Rows) == 0
}

// Scan 按厂商格式扫描工作簿，输出统一的中间结果
// 找不到预期锚点时返回空结果，绝不报错；通道名折算与模型不变量由转换阶段负责
func Scan(tag VendorTag, wb *Workbook) *ScanResult {
	switch tag {
	case VendorA:
		return scanVendorA(wb)
	case Vendor7500:
		return scanVendor7500(wb)
	default:
		return scanGeneric(wb)
	}
}

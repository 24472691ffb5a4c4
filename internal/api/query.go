package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qpcr/internal/model"
	"qpcr/internal/store"
)

// AnalysisSummary 分析记录摘要
type AnalysisSummary struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Vendor     string `json:"vendor"`
	WellCount  int    `json:"wellCount"`
	PlateType  string `json:"plateType"`
	ImportedAt string `json:"importedAt"`
	Current    bool   `json:"current"`
}

func summarize(a *store.Analysis, currentID string) AnalysisSummary {
	return AnalysisSummary{
		ID:         a.ID,
		Filename:   a.Filename,
		Vendor:     a.Vendor,
		WellCount:  len(a.Plate.Wells),
		PlateType:  a.Plate.PlateType,
		ImportedAt: a.ImportedAt.Format("2006-01-02 15:04:05"),
		Current:    a.ID == currentID,
	}
}

// ListAnalyses 列出所有分析记录
// GET /api/analyses
func (h *Handler) ListAnalyses(c *gin.Context) {
	currentID := ""
	if current, err := h.store.Current(); err == nil {
		currentID = current.ID
	}

	analyses := h.store.List()
	result := make([]AnalysisSummary, 0, len(analyses))
	for _, a := range analyses {
		result = append(result, summarize(a, currentID))
	}
	c.JSON(http.StatusOK, gin.H{"analyses": result})
}

// GetAnalysis 获取单条分析记录详情
// GET /api/analyses/:id
func (h *Handler) GetAnalysis(c *gin.Context) {
	a, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "分析记录不存在"})
		return
	}

	currentID := ""
	if current, cerr := h.store.Current(); cerr == nil {
		currentID = current.ID
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":       summarize(a, currentID),
		"experimentInfo": a.Plate.ExperimentInfo,
	})
}

// SelectAnalysis 切换当前分析记录
// POST /api/analyses/:id/select
func (h *Handler) SelectAnalysis(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.SetCurrent(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "分析记录不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currentId": id})
}

// WellSummary 孔位摘要
type WellSummary struct {
	Name       string             `json:"name"`
	SampleName string             `json:"sampleName,omitempty"`
	Channels   []string           `json:"channels"`
	CtValues   map[string]float64 `json:"ctValues,omitempty"`
	CycleCount int                `json:"cycleCount"`
}

// ListWells 列出当前分析的所有孔位
// GET /api/wells?channels=FAM,VIC
// 带 channels 参数时仅返回扩增数据包含任一指定通道的孔位
func (h *Handler) ListWells(c *gin.Context) {
	current, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"wells": []WellSummary{}})
		return
	}

	plate := current.Plate
	filter := splitParam(c.Query("channels"))
	var matched map[string]*model.Well
	if len(filter) > 0 {
		matched = plate.WellsWithAnyChannel(filter)
	}

	result := make([]WellSummary, 0, len(plate.Wells))
	for _, name := range plate.WellNames() {
		if matched != nil {
			if _, ok := matched[name]; !ok {
				continue
			}
		}
		well := plate.GetWell(name)
		result = append(result, WellSummary{
			Name:       name,
			SampleName: well.Metadata[model.MetaSampleName],
			Channels:   wellChannels(plate, well),
			CtValues:   well.CtValues,
			CycleCount: len(well.Cycles),
		})
	}
	c.JSON(http.StatusOK, gin.H{"wells": result})
}

func wellChannels(plate *model.PlateRun, well *model.Well) []string {
	var result []string
	seen := make(map[string]bool)
	for _, ch := range plate.AllChannels() {
		if well.HasChannel(ch) || well.HasRawChannel(ch) {
			result = append(result, ch)
			seen[ch] = true
		}
	}
	// 点样设置声明过但没有曲线数据的通道同样列出
	for _, ch := range well.DeclaredChannels {
		if !seen[ch] {
			result = append(result, ch)
		}
	}
	return result
}

// ListChannels 列出当前分析出现过的所有通道
// GET /api/channels
func (h *Handler) ListChannels(c *gin.Context) {
	current, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"channels": []string{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": current.Plate.AllChannels()})
}

// GetCurves 查询曲线数据
// GET /api/curves?wells=A1,A2&channels=FAM,VIC&kind=raw
// 不带过滤参数时返回全部孔位、全部通道的扩增曲线
func (h *Handler) GetCurves(c *gin.Context) {
	current, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "尚未导入数据"})
		return
	}

	opts := model.QueryOptions{
		Wells:    splitParam(c.Query("wells")),
		Channels: splitParam(c.Query("channels")),
	}
	if c.Query("kind") == string(model.KindRaw) {
		opts.Kind = model.KindRaw
	}

	points := current.Plate.Query(opts)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(points),
		"points": points,
	})
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

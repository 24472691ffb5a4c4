// Package ingest 导入协调器
// 串联读取、识别、扫描、转换四个阶段，向上层报告进度事件
package ingest

import (
	"fmt"
	"path/filepath"
	"time"

	"qpcr/internal/converter"
	"qpcr/internal/model"
	"qpcr/internal/parser"
	"qpcr/internal/store"
)

// Coordinator 导入协调器
type Coordinator struct {
	store *store.MemoryStore
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.MemoryStore) *Coordinator {
	return &Coordinator{store: st}
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/info/warning/error/done
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

// ImportReport 导入结果汇总
type ImportReport struct {
	AnalysisID string        `json:"analysis_id"`
	Filename   string        `json:"filename"`
	Vendor     string        `json:"vendor"`
	WellCount  int           `json:"well_count"`
	PlateType  string        `json:"plate_type"`
	Duration   time.Duration `json:"duration"`
}

// Import 执行导入，返回进度通道
func (c *Coordinator) Import(filePath string) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(filePath, progressChan)
	}()

	return progressChan
}

// IngestFile 同步导入，供命令行和测试直接调用
func (c *Coordinator) IngestFile(filePath string) (*store.Analysis, error) {
	wb, err := ReadWorkbook(filePath)
	if err != nil {
		return nil, err
	}

	tag := parser.DetectVendor(wb.SheetNames)
	scan := parser.Scan(tag, wb)
	plate := converter.Convert(tag, scan)

	return c.store.Put(filepath.Base(filePath), string(tag), plate), nil
}

func (c *Coordinator) doImport(filePath string, progressChan chan ProgressEvent) {
	startTime := time.Now()

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: "开始导入 Excel 文件",
		Data: map[string]string{
			"filename": filepath.Base(filePath),
		},
		Timestamp: time.Now(),
	})

	wb, err := ReadWorkbook(filePath)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("打开文件失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("发现 %d 个 Sheet", len(wb.SheetNames)),
		Data: map[string]interface{}{
			"total_sheets": len(wb.SheetNames),
			"sheet_names":  wb.SheetNames,
		},
		Timestamp: time.Now(),
	})

	tag := parser.DetectVendor(wb.SheetNames)
	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("识别为 %s 格式", tag),
		Data: map[string]string{
			"vendor": string(tag),
		},
		Timestamp: time.Now(),
	})

	scan := parser.Scan(tag, wb)
	if scan.Empty() {
		// 扫描不报错，空结果仍然入库，仅提示
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   "未提取到曲线数据",
			Timestamp: time.Now(),
		})
	}

	plate := converter.Convert(tag, scan)
	analysis := c.store.Put(filepath.Base(filePath), string(tag), plate)

	report := &ImportReport{
		AnalysisID: analysis.ID,
		Filename:   analysis.Filename,
		Vendor:     analysis.Vendor,
		WellCount:  len(plate.Wells),
		PlateType:  plate.PlateType,
		Duration:   time.Since(startTime),
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("导入完成，%s 共 %d 个孔位", PlateTypeLabel(plate.PlateType), report.WellCount),
		Data:      report,
		Timestamp: time.Now(),
	})
}

// sendProgress 发送进度事件（通道已满时丢弃）
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}

// PlateTypeLabel 板型展示文本
func PlateTypeLabel(plateType string) string {
	switch plateType {
	case model.PlateType384:
		return "384 孔板"
	default:
		return "96 孔板"
	}
}

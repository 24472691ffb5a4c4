package parser

import (
	"fmt"
	"testing"
)

// fixedRow 构造定宽行，cells 为 {列下标: 单元格文本}
func fixedRow(width int, cells map[int]string) []string {
	row := make([]string, width)
	for col, text := range cells {
		row[col] = text
	}
	return row
}

func vendorAFixture() Grid {
	header := map[int]string{
		0:  "反应孔",
		2:  "样本名称",
		6:  "染色",
		12: "Ct",
	}
	for i := 0; i < vendorACycles; i++ {
		header[vendorAAmpStart+i] = fmt.Sprintf("%d.0", i+1)
	}

	famRow := map[int]string{0: "A1", 2: "样本甲", 6: "FAM", 12: "25.3"}
	hexRow := map[int]string{0: "A1", 2: "样本甲", 6: "HEX", 12: "Undetermined"}
	for i := 0; i < vendorACycles; i++ {
		famRow[vendorAAmpStart+i] = fmt.Sprintf("%.1f", float64(i+1))
		famRow[vendorAAmpStart+vendorACycles+1+i] = fmt.Sprintf("%.1f", float64(i+1)*10)
		hexRow[vendorAAmpStart+i] = "0.5"
	}

	return Grid{
		fixedRow(130, map[int]string{0: "实验名称", 1: "运行1"}),
		fixedRow(130, header),
		fixedRow(130, famRow),
		fixedRow(130, hexRow),
		fixedRow(130, map[int]string{0: "汇总", 6: "FAM"}), // 非孔位行忽略
	}
}

func TestScanVendorA_Basic(t *testing.T) {
	t.Parallel()

	wb := &Workbook{
		SheetNames: []string{"实验数据"},
		Sheets:     map[string]Grid{"实验数据": vendorAFixture()},
	}
	result := scanVendorA(wb)

	// FAM：扩增 42 + 原始 42；HEX：仅扩增 42（原始块全空）
	if len(result.Rows) != 126 {
		t.Fatalf("rows want=126 got=%d", len(result.Rows))
	}

	var famAmp, famRaw, hexAmp []Row
	for _, row := range result.Rows {
		if row.Well != "A1" {
			t.Fatalf("unexpected well: %s", row.Well)
		}
		switch {
		case row.Channel == "FAM" && row.Kind == RowAmplification:
			famAmp = append(famAmp, row)
		case row.Channel == "FAM" && row.Kind == RowRaw:
			famRaw = append(famRaw, row)
		case row.Channel == "HEX" && row.Kind == RowAmplification:
			hexAmp = append(hexAmp, row)
		}
	}
	if len(famAmp) != 42 || len(famRaw) != 42 || len(hexAmp) != 42 {
		t.Fatalf("unexpected split: %d %d %d", len(famAmp), len(famRaw), len(hexAmp))
	}
	if famAmp[0].Cycle != 1 || famAmp[0].Value != 1.0 {
		t.Fatalf("unexpected first amp row: %+v", famAmp[0])
	}
	if famRaw[41].Value != 420.0 {
		t.Fatalf("unexpected last raw value: %v", famRaw[41].Value)
	}

	aux := result.WellInfo["A1"]
	if aux == nil {
		t.Fatalf("missing well info")
	}
	if aux.SampleName != "样本甲" {
		t.Fatalf("sample want=样本甲 got=%s", aux.SampleName)
	}
	if aux.Cts["FAM"] != 25.3 {
		t.Fatalf("FAM ct want=25.3 got=%v", aux.Cts["FAM"])
	}
	// Undetermined 哨兵不产生 Ct
	if _, ok := aux.Cts["HEX"]; ok {
		t.Fatalf("HEX ct should be absent")
	}

	if result.ExperimentInfo["实验名称"] != "运行1" {
		t.Fatalf("unexpected experiment info: %v", result.ExperimentInfo)
	}
}

func TestFindVendorADataStart_Shifted(t *testing.T) {
	t.Parallel()

	header := map[int]string{0: "反应孔"}
	header[41] = "1.0"
	grid := Grid{fixedRow(130, header)}

	if got := findVendorADataStart(grid, 0); got != 41 {
		t.Fatalf("want=41 got=%d", got)
	}
}

func TestFindVendorADataStart_Default(t *testing.T) {
	t.Parallel()

	grid := Grid{fixedRow(130, map[int]string{0: "反应孔"})}
	if got := findVendorADataStart(grid, 0); got != vendorAAmpStart {
		t.Fatalf("want=%d got=%d", vendorAAmpStart, got)
	}
}

func TestScanVendorA_FallbackToCurveSheet(t *testing.T) {
	t.Parallel()

	curves := Grid{
		{"Cycle", "FAM"},
		{"1", "1.5"},
		{"2", "2.5"},
	}
	wb := &Workbook{
		SheetNames: []string{"扩增曲线"},
		Sheets:     map[string]Grid{"扩增曲线": curves},
	}
	result := scanVendorA(wb)

	if len(result.Rows) != 2 {
		t.Fatalf("rows want=2 got=%d", len(result.Rows))
	}
	if result.Rows[0].Channel != "FAM" || result.Rows[0].Well != "" {
		t.Fatalf("unexpected fallback row: %+v", result.Rows[0])
	}
}

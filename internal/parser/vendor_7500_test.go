package parser

import "testing"

func setup7500Fixture() Grid {
	return Grid{
		{"Experiment Name", "Run X"},
		{"Instrument Type", "7500"},
		{},
		{"Well", "Sample Name", "Target Name"},
		{"A1", "s1", "FAM"},
		{"A1", "s1", "JOE"},
		{"B2", "s2", "FAM"},
	}
}

func multicomponent7500Fixture() Grid {
	return Grid{
		{"Well", "Cycle", "Target Name", "Rn", "ΔRn"},
		{"A1", "1", "FAM", "10.0", "0.1"},
		{"A1", "2", "FAM", "20.0", "0.2"},
		{"A1", "3", "FAM", "30.0", "0.3"},
	}
}

func results7500Fixture() Grid {
	return Grid{
		{"Well", "Sample Name", "Target Name", "Task", "Reporter", "Quencher", "CT"},
		{"A1", "s1", "FAM", "", "", "", "24.1"},
		{"A1", "s1", "JOE", "", "", "", "Undetermined"},
	}
}

func TestScanVendor7500_Basic(t *testing.T) {
	t.Parallel()

	wb := &Workbook{
		SheetNames: []string{"Sample Setup", "Multicomponent Data", "Results"},
		Sheets: map[string]Grid{
			"Sample Setup":        setup7500Fixture(),
			"Multicomponent Data": multicomponent7500Fixture(),
			"Results":             results7500Fixture(),
		},
	}
	result := scanVendor7500(wb)

	// ΔRn 与 Rn 两列都在：扩增 3 条 + 原始 3 条
	if len(result.Rows) != 6 {
		t.Fatalf("rows want=6 got=%d", len(result.Rows))
	}
	var amp, raw []Row
	for _, row := range result.Rows {
		if row.Kind == RowRaw {
			raw = append(raw, row)
		} else {
			amp = append(amp, row)
		}
	}
	if len(amp) != 3 || len(raw) != 3 {
		t.Fatalf("unexpected split: %d %d", len(amp), len(raw))
	}
	// 扩增值取 ΔRn，原始值取 Rn
	if amp[0].Value != 0.1 || raw[0].Value != 10.0 {
		t.Fatalf("unexpected values: %v %v", amp[0].Value, raw[0].Value)
	}

	aux := result.WellInfo["A1"]
	if aux == nil {
		t.Fatalf("missing well info")
	}
	if aux.SampleName != "s1" {
		t.Fatalf("sample want=s1 got=%s", aux.SampleName)
	}
	// JOE 在声明阶段折算为 VIC
	wantChannels := map[string]bool{"FAM": true, "VIC": true}
	for _, ch := range aux.Channels {
		if !wantChannels[ch] {
			t.Fatalf("unexpected channel: %s", ch)
		}
	}
	if aux.Cts["FAM"] != 24.1 {
		t.Fatalf("FAM ct want=24.1 got=%v", aux.Cts["FAM"])
	}
	if _, ok := aux.Cts["VIC"]; ok {
		t.Fatalf("Undetermined should not yield ct")
	}

	if result.ExperimentInfo["Experiment Name"] != "Run X" {
		t.Fatalf("unexpected experiment info: %v", result.ExperimentInfo)
	}
}

func TestScanVendor7500_AmplificationFallbackAndRawSheet(t *testing.T) {
	t.Parallel()

	// 曲线表只有 Rn 列：扩增值取 Rn，不产生原始行
	ampSheet := Grid{
		{"Well", "Cycle", "Target Name", "Rn"},
		{"A1", "1", "FAM", "1.5"},
		{"A1", "2", "FAM", "Undetermined"},
	}
	rawSheet := Grid{
		{"Well", "Cycle", "FAM", "HEX"},
		{"A1", "1", "100", "200"},
		{"A1", "2", "101", ""},
	}
	wb := &Workbook{
		SheetNames: []string{"Amplification Data", "Results", "Raw Data"},
		Sheets: map[string]Grid{
			"Amplification Data": ampSheet,
			"Results":            Grid{{"Well", "Target Name"}},
			"Raw Data":           rawSheet,
		},
	}
	result := scanVendor7500(wb)

	var amp, raw []Row
	for _, row := range result.Rows {
		if row.Kind == RowRaw {
			raw = append(raw, row)
		} else {
			amp = append(amp, row)
		}
	}

	if len(amp) != 2 {
		t.Fatalf("amp rows want=2 got=%d", len(amp))
	}
	if amp[0].Value != 1.5 || !amp[0].Valid {
		t.Fatalf("unexpected first amp row: %+v", amp[0])
	}
	// 哨兵值保留循环位置
	if amp[1].Valid {
		t.Fatalf("sentinel should not be valid")
	}

	// Raw Data 兜底：FAM/HEX 两通道 × 2 循环
	if len(raw) != 4 {
		t.Fatalf("raw rows want=4 got=%d", len(raw))
	}
	var hexInvalid int
	for _, row := range raw {
		if row.Channel == "HEX" && !row.Valid {
			hexInvalid++
		}
	}
	if hexInvalid != 1 {
		t.Fatalf("invalid HEX raw rows want=1 got=%d", hexInvalid)
	}
}

func TestScanVendor7500_MissingSheets(t *testing.T) {
	t.Parallel()

	wb := &Workbook{
		SheetNames: []string{"Sample Setup", "Results"},
		Sheets: map[string]Grid{
			"Sample Setup": setup7500Fixture(),
			"Results":      results7500Fixture(),
		},
	}
	result := scanVendor7500(wb)

	// 没有曲线表：无曲线行，但 Ct 与样本信息仍然收集
	if !result.Empty() {
		t.Fatalf("want empty rows")
	}
	if result.WellInfo["A1"] == nil || result.WellInfo["A1"].Cts["FAM"] != 24.1 {
		t.Fatalf("ct should still be collected")
	}
}

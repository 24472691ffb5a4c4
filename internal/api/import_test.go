package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"qpcr/internal/store"
)

func buildGenericXLSX(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Cycle", "FAM"},
		{1, 1.5},
		{2, 2.5},
	}
	for rIdx, row := range rows {
		for cIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestImport_Endpoint(t *testing.T) {
	st := store.NewMemoryStore()
	r := newTestRouter(st)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "generic.xlsx")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(buildGenericXLSX(t)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	// SSE 事件流以 done 收尾
	if !strings.Contains(w.Body.String(), `"type":"done"`) {
		t.Fatalf("missing done event: %s", w.Body.String())
	}
	if st.Count() != 1 {
		t.Fatalf("store count want=1 got=%d", st.Count())
	}

	analysis, err := st.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if analysis.Plate.GetWell("A1") == nil {
		t.Fatalf("imported data should land in A1")
	}
}

func TestImport_NoFile(t *testing.T) {
	r := newTestRouter(store.NewMemoryStore())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want=400 got=%d", w.Code)
	}
}

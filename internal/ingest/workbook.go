package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"qpcr/internal/parser"
)

// ReadWorkbook 读取 Excel 文件为工作簿网格
// 按扩展名选择读取器：.xls 走 BIFF 读取，其余按 xlsx 处理
func ReadWorkbook(path string) (*parser.Workbook, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return readXLS(path)
	}
	return readXLSX(path)
}

func readXLSX(path string) (*parser.Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	wb := &parser.Workbook{Sheets: make(map[string]parser.Grid)}
	for _, name := range file.GetSheetList() {
		rows, err := file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		wb.SheetNames = append(wb.SheetNames, name)
		wb.Sheets[name] = rows
	}
	return wb, nil
}

func readXLS(path string) (*parser.Workbook, error) {
	// xls v0.0.1 (唯一可解析的版本) 没有 OpenWithCloser；
	// 用 OpenReader + 自行管理文件句柄实现同样的关闭语义
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	book, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	wb := &parser.Workbook{Sheets: make(map[string]parser.Grid)}
	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}

		grid := make(parser.Grid, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			line := make([]string, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				line[c] = row.Col(c)
			}
			grid = append(grid, line)
		}
		wb.SheetNames = append(wb.SheetNames, sheet.Name)
		wb.Sheets[sheet.Name] = grid
	}
	return wb, nil
}

// Package xlsx конвертирует датасеты в Excel файлы и обратно.
// Первая строка листа - имена колонок, первая колонка - идентификатор.
package xlsx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
)

// ToXLSX сохраняет датасет в Excel файл.
//
// Первая строка листа - заголовки с именами колонок, колонка-идентификатор
// помечена звездочкой. NULL значения остаются пустыми ячейками.
//
// Пример:
//
//	err := xlsx.ToXLSX(ds, "output.xlsx", "accounts")
func ToXLSX(ds *dataset.Dataset, filePath string, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// Заголовки: колонка-идентификатор помечается звездочкой
	for col, name := range ds.Columns {
		cell := columnName(col+1) + "1"
		header := name
		if col == 0 {
			header += " *"
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx := range ds.Rows {
		for col, name := range ds.Columns {
			v := ds.Get(rowIdx, name)
			if v.IsNull() {
				continue // NULL - пустая ячейка
			}
			cell := columnName(col+1) + strconv.Itoa(rowIdx+2)
			f.SetCellValue(sheetName, cell, valueToExcel(v))
		}
	}

	for col := range ds.Columns {
		colName := columnName(col + 1)
		f.SetColWidth(sheetName, colName, colName, 15)
	}

	return f.SaveAs(filePath)
}

// FromXLSX читает Excel файл в датасет.
//
// Первая строка листа - имена колонок (маркер " *" у идентификатора
// отбрасывается). Типы значений выводятся из содержимого ячеек:
// целые, дробные, TRUE/FALSE, даты в формате dataset.TimeLayout,
// остальное - текст. Пустая ячейка - NULL.
//
// Пример:
//
//	ds, err := xlsx.FromXLSX("input.xlsx", "accounts")
func FromXLSX(filePath string, sheetName string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("file must have a header row")
	}

	headerRow := rows[0]
	columns := make([]string, 0, len(headerRow))
	for _, header := range headerRow {
		columns = append(columns, strings.TrimSuffix(strings.TrimSpace(header), " *"))
	}

	ds := dataset.New(columns...)
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		dataRow := rows[rowIdx]
		row := make(dataset.Row, len(columns))
		for col, name := range columns {
			if col >= len(dataRow) {
				row[name] = dataset.Null()
				continue
			}
			row[name] = inferValue(dataRow[col])
		}
		ds.AppendRow(row)
	}

	return ds, nil
}

// valueToExcel возвращает нативное Go значение для excelize
func valueToExcel(v dataset.Value) any {
	switch v.Kind() {
	case dataset.KindInt:
		return v.Int64()
	case dataset.KindFloat:
		return v.Float64()
	case dataset.KindBool:
		if v.BoolVal() {
			return "TRUE"
		}
		return "FALSE"
	case dataset.KindTime:
		// Текстовая форма, а не time.Time: excelize применил бы числовой
		// формат даты и GetRows вернул бы локализованную строку
		return v.Text()
	default:
		return v.Text()
	}
}

// inferValue выводит тип значения из текстового содержимого ячейки
func inferValue(s string) dataset.Value {
	if s == "" {
		return dataset.Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return dataset.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return dataset.Float(f)
	}
	switch s {
	case "TRUE", "true":
		return dataset.Bool(true)
	case "FALSE", "false":
		return dataset.Bool(false)
	}
	if t, err := time.Parse(dataset.TimeLayout, s); err == nil {
		return dataset.Time(t)
	}
	return dataset.String(s)
}

// columnName конвертирует индекс колонки в Excel имя (1 → A, 27 → AA)
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const itemTemplateSheet = "Items"

// GenerateItemTemplate creates a downloadable .xlsx template for bulk item
// import. The header labels are the ones ValidateItemFile recognises.
func GenerateItemTemplate() ([]byte, error) {
	fields := ItemTemplateFields()

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, itemTemplateSheet)

	// --- Styles ---
	textHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	numberHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	// Header row and column widths
	columns := columnLetters(len(fields))
	for i, field := range fields {
		cell := fmt.Sprintf("%s1", columns[i])
		f.SetCellValue(itemTemplateSheet, cell, field.Label)

		if field.Numeric {
			f.SetCellStyle(itemTemplateSheet, cell, cell, numberHeaderStyle)
		} else {
			f.SetCellStyle(itemTemplateSheet, cell, cell, textHeaderStyle)
		}

		width := float64(len(field.Label)) * 1.3
		if width < 12 {
			width = 12
		}
		f.SetColWidth(itemTemplateSheet, columns[i], columns[i], width)
	}

	// UoM dropdown and non-negative decimal checks on numeric columns
	for i, field := range fields {
		col := columns[i]
		rangeRef := fmt.Sprintf("%s2:%s1048576", col, col)

		switch {
		case field.Key == "unit_of_measure":
			dv := excelize.NewDataValidation(true)
			dv.Sqref = rangeRef
			dv.SetDropList(UOMOptions)
			f.AddDataValidation(itemTemplateSheet, dv)
		case field.Numeric:
			dv := excelize.NewDataValidation(true)
			dv.Sqref = rangeRef
			dv.SetRange(0, 1e9, excelize.DataValidationTypeDecimal, excelize.DataValidationOperatorBetween)
			dv.SetError(excelize.DataValidationErrorStyleStop, field.Label, "Enter a non-negative number")
			f.AddDataValidation(itemTemplateSheet, dv)
		}
	}

	// Freeze header row
	f.SetPanes(itemTemplateSheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	addInstructionsSheet(f, fields)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel template: %w", err)
	}
	return buf.Bytes(), nil
}

// addInstructionsSheet creates a hidden sheet with field descriptions.
func addInstructionsSheet(f *excelize.File, fields []TemplateField) {
	instSheet := "Instructions"
	f.NewSheet(instSheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	f.SetCellValue(instSheet, "A1", "Item Import - Instructions")
	f.SetCellStyle(instSheet, "A1", "A1", titleStyle)

	instructionHeaders := []string{"Field Name", "Type", "Format Rule", "Description", "Example"}
	cols := columnLetters(5)
	for i, h := range instructionHeaders {
		cell := fmt.Sprintf("%s3", cols[i])
		f.SetCellValue(instSheet, cell, h)
		f.SetCellStyle(instSheet, cell, cell, headerStyle)
	}

	for i, field := range fields {
		row := fmt.Sprintf("%d", i+4)
		kind := "Text"
		if field.Numeric {
			kind = "Number"
		}
		f.SetCellValue(instSheet, cols[0]+row, field.Label)
		f.SetCellValue(instSheet, cols[1]+row, kind)
		f.SetCellValue(instSheet, cols[2]+row, field.FormatRule)
		f.SetCellValue(instSheet, cols[3]+row, field.Description)
		f.SetCellValue(instSheet, cols[4]+row, field.ExampleValue)
	}

	widths := []float64{20, 10, 30, 45, 25}
	for i, w := range widths {
		f.SetColWidth(instSheet, cols[i], cols[i], w)
	}

	f.SetSheetVisible(instSheet, false)
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA, AB ...
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}

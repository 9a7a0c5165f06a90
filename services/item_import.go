package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"

	"costestimator/collections"
	"costestimator/estimate"
)

const importBatchSize = 100

// numberDecorations strips currency signs, grouping commas and percent signs
// that spreadsheets add to numeric cells.
var numberDecorations = strings.NewReplacer("$", "", ",", "", "%", "")

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows    int                  `json:"total_rows"`
	ValidRows    int                  `json:"valid_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []ValidationError    `json:"errors"`
	Unrecognized []string             `json:"unrecognized_columns,omitempty"`
	ParsedRows   []estimate.ItemInput `json:"-"`
	FileName     string               `json:"-"`
}

// ImportResult holds the outcome of a batch import operation.
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Imported   int              `json:"imported"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
	RolledBack bool             `json:"rolled_back"`
}

// ImportRowError represents a failure to insert a specific row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to TemplateField keys.
// Both the label and the field key are accepted, case-insensitively.
// Returns ordered list of field keys (one per column) and any unrecognized columns.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	lookup := make(map[string]string, len(fields)*2)
	for _, f := range fields {
		lookup[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
		lookup[f.Key] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		if key, ok := lookup[norm]; ok {
			mapped[i] = key
		} else {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateItemFile parses an uploaded .csv or .xlsx file of items and checks
// every numeric cell. With strict set, each row must also pass
// estimate.Validate.
func ValidateItemFile(file io.Reader, fileName string, strict bool) (*ValidationResult, error) {
	fields := ItemTemplateFields()

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, unrecognized := mapHeadersToFields(headers, fields)

	keyToLabel := make(map[string]string, len(fields))
	numeric := make(map[string]bool, len(fields))
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
		numeric[f.Key] = f.Numeric
	}

	result := &ValidationResult{
		FileName:     fileName,
		Unrecognized: unrecognized,
		ParsedRows:   make([]estimate.ItemInput, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		rowData := make(map[string]any)
		blank := true
		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[colIdx])
			if numeric[key] {
				value = numberDecorations.Replace(value)
			}
			if value != "" {
				blank = false
			}
			rowData[key] = value
		}
		if blank {
			continue
		}
		result.TotalRows++

		in, err := estimate.ParseItemInput("", rowData)
		if err != nil {
			var numErr *estimate.InvalidNumericInputError
			if errors.As(err, &numErr) {
				msg := fmt.Sprintf("%v is not a number", numErr.Value)
				if numErr.Reason != "" {
					msg = fmt.Sprintf("%v is %s", numErr.Value, numErr.Reason)
				}
				result.Errors = append(result.Errors, ValidationError{
					Row:     rowNum,
					Field:   keyToLabel[numErr.Field],
					Message: msg,
				})
				continue
			}
			return nil, err
		}

		if strict {
			if rowErrs := strictRowErrors(rowNum, in, keyToLabel); len(rowErrs) > 0 {
				result.Errors = append(result.Errors, rowErrs...)
				continue
			}
		}

		result.ParsedRows = append(result.ParsedRows, in)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

func strictRowErrors(rowNum int, in estimate.ItemInput, keyToLabel map[string]string) []ValidationError {
	err := estimate.Validate(in)
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []ValidationError{{Row: rowNum, Message: err.Error()}}
	}

	var out []ValidationError
	// Report in column order so the output is stable.
	for _, f := range ItemTemplateFields() {
		if fieldErr, ok := errs[f.Key]; ok {
			out = append(out, ValidationError{
				Row:     rowNum,
				Field:   keyToLabel[f.Key],
				Message: fieldErr.Error(),
			})
		}
	}
	return out
}

// CommitItemImport inserts parsed rows into a category, or into one of its
// subcategories when subcategoryID is set. New items are appended after the
// existing ones. Rows are processed in chunks of importBatchSize; within a
// chunk, any failed insert rolls back the whole chunk.
func CommitItemImport(
	app core.App,
	projectID string,
	categoryID string,
	subcategoryID string,
	rows []estimate.ItemInput,
) (*ImportResult, error) {
	col, err := app.FindCollectionByNameOrId("items")
	if err != nil {
		return nil, fmt.Errorf("items collection not found: %w", err)
	}

	filter, params := "category = {:categoryId} && subcategory = ''", map[string]any{"categoryId": categoryID}
	if subcategoryID != "" {
		filter, params = "subcategory = {:subcategoryId}", map[string]any{"subcategoryId": subcategoryID}
	}
	nextSort := collections.NextSortOrder(app, "items", filter, params)

	result := &ImportResult{
		TotalRows: len(rows),
	}

	for chunkStart := 0; chunkStart < len(rows); chunkStart += importBatchSize {
		chunkEnd := chunkStart + importBatchSize
		if chunkEnd > len(rows) {
			chunkEnd = len(rows)
		}
		chunk := rows[chunkStart:chunkEnd]

		chunkErrors := insertChunk(app, col, projectID, categoryID, subcategoryID, chunk, chunkStart, nextSort+chunkStart)
		if len(chunkErrors) > 0 {
			result.Errors = append(result.Errors, chunkErrors...)
			result.Failed += len(chunk) // entire chunk failed
			result.RolledBack = true
		} else {
			result.Imported += len(chunk)
		}
	}

	return result, nil
}

// insertChunk inserts a batch of rows within a RunInTransaction block.
// If any row fails, the entire chunk is rolled back and errors are returned.
func insertChunk(
	app core.App,
	col *core.Collection,
	projectID string,
	categoryID string,
	subcategoryID string,
	rows []estimate.ItemInput,
	startOffset int,
	firstSort int,
) []ImportRowError {
	var chunkErrors []ImportRowError

	err := app.RunInTransaction(func(txApp core.App) error {
		for i, in := range rows {
			rowNum := startOffset + i + 2 // 1-indexed + header row

			record := core.NewRecord(col)
			record.Set("project", projectID)
			record.Set("category", categoryID)
			if subcategoryID != "" {
				record.Set("subcategory", subcategoryID)
			}
			record.Set("sort_order", firstSort+i)
			ApplyItemInput(record, in)

			if err := txApp.Save(record); err != nil {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:     rowNum,
					Message: fmt.Sprintf("Failed to save: %s", err.Error()),
				})
				return fmt.Errorf("save failed at row %d: %w", rowNum, err)
			}
		}
		return nil
	})

	if err != nil {
		log.Printf("item_import: chunk insert rolled back: %v", err)
		if len(chunkErrors) == 0 {
			chunkErrors = append(chunkErrors, ImportRowError{
				Row:     startOffset + 2,
				Message: fmt.Sprintf("Transaction failed: %s", err.Error()),
			})
		}
	}

	return chunkErrors
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}

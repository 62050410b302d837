package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pantryrank/backend/internal/domain"
)

// Column names accepted in an inventory header row, compared case-insensitively
const (
	columnItem     = "item"
	columnCategory = "category"
	columnVendor   = "vendor"
)

// RowError describes a data row that was skipped
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Upload formats recognised by Parse
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DetectFormat picks a parser from the file extension, falling back to the content type.
// Files without a recognised extension or type are read as CSV.
func DetectFormat(filename, contentType string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xls":
		return "", fmt.Errorf("%w: legacy .xls workbooks are not supported, save as .xlsx", domain.ErrInvalidInventory)
	}
	if strings.HasPrefix(contentType, xlsxContentType) {
		return FormatXLSX, nil
	}
	return FormatCSV, nil
}

// Parse reads an inventory sheet in the given format
func Parse(format string, r io.Reader) ([]domain.InventoryItem, []RowError, error) {
	switch format {
	case FormatXLSX:
		return ParseXLSX(r)
	case FormatCSV:
		return ParseCSV(r)
	default:
		return nil, nil, fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidInventory, format)
	}
}

// ParseCSV reads an inventory sheet. The header must name an Item column;
// Category and Vendor are optional. Rows with a blank item are skipped and reported.
// Row numbers are 1-based and count the header.
func ParseCSV(r io.Reader) ([]domain.InventoryItem, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidInventory)
		}
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInventory, err)
	}

	sheet, err := newSheet(header)
	if err != nil {
		return nil, nil, err
	}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				sheet.reject(row, parseErr.Err.Error())
				continue
			}
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInventory, err)
		}
		sheet.add(row, record)
	}

	return sheet.items, sheet.rowErrors, nil
}

// ParseXLSX reads the first worksheet of an Excel workbook with the same header and
// row rules as ParseCSV. Row numbers match the worksheet's own.
func ParseXLSX(r io.Reader) ([]domain.InventoryItem, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInventory, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidInventory)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInventory, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidInventory)
	}

	sheet, err := newSheet(rows[0])
	if err != nil {
		return nil, nil, err
	}
	for i, record := range rows[1:] {
		sheet.add(i+2, record)
	}

	return sheet.items, sheet.rowErrors, nil
}

// rowCollector accumulates items from data rows once the header has been indexed
type rowCollector struct {
	columns   map[string]int
	itemCol   int
	items     []domain.InventoryItem
	rowErrors []RowError
}

func newSheet(header []string) (*rowCollector, error) {
	columns := indexColumns(header)
	itemCol, ok := columns[columnItem]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q column", domain.ErrInvalidInventory, "Item")
	}
	return &rowCollector{columns: columns, itemCol: itemCol}, nil
}

func (s *rowCollector) add(row int, record []string) {
	item := domain.InventoryItem{
		Name:     field(record, s.itemCol),
		Category: optionalField(record, s.columns, columnCategory),
		Vendor:   optionalField(record, s.columns, columnVendor),
	}
	if item.Blank() {
		if !emptyRecord(record) {
			s.reject(row, "item name is blank")
		}
		return
	}
	s.items = append(s.items, item)
}

func (s *rowCollector) reject(row int, reason string) {
	s.rowErrors = append(s.rowErrors, RowError{Row: row, Reason: reason})
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}
	return columns
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func optionalField(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok {
		return ""
	}
	return field(record, i)
}

func emptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

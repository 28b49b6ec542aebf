package pipeline

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"barfops/internal"
	"barfops/internal/catalog"
	"barfops/internal/util"
)

var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^--+$`),
	regexp.MustCompile(`(?i)^total`),
	regexp.MustCompile(`(?i)^subtotal`),
	regexp.MustCompile(`(?i)^lista de precios`),
	regexp.MustCompile(`(?i)^precios v`),
	regexp.MustCompile(`(?i)^http`),
}

var (
	rePrice   = regexp.MustCompile(`\$\s*[\d.,]+`)
	reLetters = regexp.MustCompile(`[A-Za-zÁÉÍÓÚÑáéíóúñ]`)
)

// ExtractRowsFromFile parses a local export into raw rows. XLSX order and
// stock exports, HTML order tables from the web shop, and PDF price lists
// are supported.
func ExtractRowsFromFile(path string) ([]internal.ImportRow, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xls":
		return parseXLSX(blob)
	case ".html", ".htm":
		return parseHTMLTable(string(blob)), nil
	case ".pdf":
		return parsePDF(blob)
	default:
		return nil, fmt.Errorf("unsupported input type: %s", ext)
	}
}

func parseXLSX(content []byte) ([]internal.ImportRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lineNo := 0
	out := []internal.ImportRow{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		cols := columnLayout{name: -1, qty: -1, option: -1, order: -1, section: -1}
		for i, row := range rows {
			cells := normalizeCells(row)
			if len(cells) == 0 {
				continue
			}
			if i < 3 && cols.name < 0 {
				cols = inferColumns(cells)
				if cols.name >= 0 {
					continue
				}
			}
			if cols.name < 0 {
				cols = columnLayout{name: 0, qty: 1, option: 2, order: -1, section: -1}
			}

			name := pickCell(cells, cols.name, 0)
			if strings.TrimSpace(name) == "" || isLikelyNoise(name) {
				continue
			}

			lineNo++
			item := internal.ImportRow{
				LineNo:  lineNo,
				Source:  internal.SourceXLSX,
				RawLine: strings.Join(cells, " | "),
				Name:    util.StringPtr(name),
				Qty:     util.ParseQty(pickCell(cells, cols.qty, -1)),
				Meta:    map[string]any{"sheet": sheet, "rowNumber": i + 1},
			}
			if option := pickCell(cells, cols.option, -1); option != "" {
				item.Option = util.StringPtr(option)
			}
			if orderID := pickCell(cells, cols.order, -1); orderID != "" {
				item.OrderID = util.StringPtr(orderID)
			}
			if section := pickCell(cells, cols.section, -1); section != "" {
				item.Meta["section"] = section
			}
			out = append(out, item)
		}
	}

	return dedupeRows(out), nil
}

func parseHTMLTable(html string) []internal.ImportRow {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	out := []internal.ImportRow{}
	lineNo := 0
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, util.NormalizeSpaces(cell.Text()))
		})
		cols := inferColumns(headers)

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			if len(cells) == 0 {
				return
			}

			name := pickCell(cells, cols.name, 0)
			if strings.TrimSpace(name) == "" || isLikelyNoise(name) {
				return
			}

			lineNo++
			item := internal.ImportRow{
				LineNo:  lineNo,
				Source:  internal.SourceHTMLTable,
				RawLine: strings.Join(cells, " | "),
				Name:    util.StringPtr(name),
				Qty:     util.ParseQty(pickCell(cells, cols.qty, -1)),
				Meta:    map[string]any{"row": cells},
			}
			if option := pickCell(cells, cols.option, -1); option != "" {
				item.Option = util.StringPtr(option)
			}
			if orderID := pickCell(cells, cols.order, -1); orderID != "" {
				item.OrderID = util.StringPtr(orderID)
			}
			out = append(out, item)
		})
	})

	return dedupeRows(out)
}

func parsePDF(content []byte) ([]internal.ImportRow, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	out := []internal.ImportRow{}
	lineNo := 0
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range splitLines(text) {
			compact := util.NormalizeSpaces(line)
			if compact == "" || isLikelyNoise(compact) {
				continue
			}
			name := util.NormalizeSpaces(rePrice.ReplaceAllString(compact, " "))
			if !reLetters.MatchString(name) {
				continue
			}
			lineNo++
			out = append(out, internal.ImportRow{
				LineNo:  lineNo,
				Source:  internal.SourcePDF,
				RawLine: compact,
				Name:    util.StringPtr(name),
				Meta:    map[string]any{"page": i},
			})
		}
	}
	return dedupeRows(out), nil
}

// RowsToCatalogKeys normalizes price-list rows into catalog keys, keeping
// the first occurrence of each distinct key.
func RowsToCatalogKeys(rows []internal.ImportRow) []internal.CatalogKey {
	seen := map[string]struct{}{}
	out := make([]internal.CatalogKey, 0, len(rows))
	for _, row := range rows {
		source := row.RawLine
		if row.Name != nil {
			source = *row.Name
		}
		key := catalog.Normalize(source, row.Option)
		display := catalog.Display(key)
		if _, exists := seen[display]; exists {
			continue
		}
		seen[display] = struct{}{}
		out = append(out, key)
	}
	return out
}

// RowsToLegacyRecords maps stock-export rows onto the legacy two-field
// storage form, keeping the section column when the export carries one.
func RowsToLegacyRecords(rows []internal.ImportRow) []internal.LegacyRecord {
	out := make([]internal.LegacyRecord, 0, len(rows))
	for _, row := range rows {
		record := internal.LegacyRecord{Name: row.RawLine}
		if row.Name != nil {
			record.Name = *row.Name
		}
		if row.Option != nil {
			record.Option = *row.Option
		}
		if raw, ok := row.Meta["section"].(string); ok {
			if section, ok := internal.ParseSection(util.Fold(raw)); ok {
				record.Section = &section
			}
		}
		out = append(out, record)
	}
	return out
}

// RowsToOrders groups export rows into orders. Rows carrying an order
// column are grouped by it; otherwise the whole file forms one order.
func RowsToOrders(rows []internal.ImportRow, location string, deliveryDate *string, createdAt time.Time) []internal.Order {
	importID := newImportID()
	groups := []string{}
	byGroup := map[string][]internal.OrderLineItem{}

	for _, row := range rows {
		if row.Name == nil {
			continue
		}
		item := internal.OrderLineItem{RawName: *row.Name}
		if row.Qty != nil {
			item.Quantity = int(math.Round(*row.Qty))
		}
		if row.Option != nil && *row.Option != "" {
			item.SubOptions = []internal.SubOption{{Name: *row.Option, Quantity: item.Quantity}}
		}

		group := "1"
		if row.OrderID != nil && *row.OrderID != "" {
			group = *row.OrderID
		}
		if _, exists := byGroup[group]; !exists {
			groups = append(groups, group)
		}
		byGroup[group] = append(byGroup[group], item)
	}

	out := make([]internal.Order, 0, len(groups))
	for _, group := range groups {
		out = append(out, internal.Order{
			ID:           importID + "-" + group,
			Location:     location,
			DeliveryDate: deliveryDate,
			CreatedAt:    createdAt,
			Items:        byGroup[group],
		})
	}
	return out
}

type columnLayout struct {
	name    int
	qty     int
	option  int
	order   int
	section int
}

func inferColumns(headers []string) columnLayout {
	norm := make([]string, 0, len(headers))
	for _, h := range headers {
		norm = append(norm, strings.ToLower(h))
	}
	return columnLayout{
		name:    findHeaderIndex(norm, []string{"producto", "nombre", "descrip", "articulo", "item", "name", "product"}),
		qty:     findHeaderIndex(norm, []string{"cant", "qty", "unid", "quantity"}),
		option:  findHeaderIndex(norm, []string{"opcion", "opción", "peso", "variante", "sabor", "detalle", "option"}),
		order:   findHeaderIndex(norm, []string{"pedido", "orden", "order"}),
		section: findHeaderIndex(norm, []string{"seccion", "sección", "categoria", "categoría", "section"}),
	}
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int, fallback int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	if fallback >= 0 && fallback < len(cells) {
		return strings.TrimSpace(cells[fallback])
	}
	return ""
}

func normalizeCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, util.NormalizeSpaces(c))
	}
	return out
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isLikelyNoise(line string) bool {
	for _, re := range ignorePatterns {
		if re.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func dedupeRows(rows []internal.ImportRow) []internal.ImportRow {
	seen := map[string]struct{}{}
	out := make([]internal.ImportRow, 0, len(rows))
	for _, row := range rows {
		key := string(row.Source) + "|" + row.RawLine
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	for i := range out {
		out[i].LineNo = i + 1
	}
	return out
}

func newImportID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("import-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

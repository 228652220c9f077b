package reconcile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/alternativecbd/glop-holded-api/internal/domain"
	domrec "github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
)

// Columnas reconocidas del CSV de ventas exportado por Glop (TPV).
const (
	colTerminal = "TERMINAL"
	colSKU      = "C.BARRAS ARTICULO"
	colUnits    = "UNIDADES"
)

// SalesRow es una fila de ventas ya decodificada. Units se conserva en crudo:
// el pipeline decide si una cantidad no parseable es error de fila.
type SalesRow struct {
	Row          int // índice de fila de datos (0 = primera fila tras la cabecera)
	Terminal     string
	SKU          string
	UnitsRaw     string
	ProductLabel string // columna ARTICULO, solo para diagnóstico
}

// DecodeText decodifica los bytes del archivo como UTF-8 y, si no son UTF-8
// válido, reintenta como latin-1 (los exports de Glop alternan entre ambas).
// Fallback de dos codificaciones, no un detector general.
func DecodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")) // BOM UTF-8
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decodificar latin-1: %w", err)
	}
	return string(decoded), nil
}

// ParseSalesFile decodifica y parsea el CSV de ventas (delimitador ';',
// cabecera obligatoria). Filas sin identificador, sin terminal o sin
// unidades se omiten por completo (no cuentan como procesadas).
func ParseSalesFile(data []byte) ([]SalesRow, error) {
	text, err := DecodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := indexColumns(header)
	for _, required := range []string{colTerminal, colSKU, colUnits} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, required)
		}
	}
	labelIdx := findLabelColumn(header)

	var rows []SalesRow
	idx := -1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila: %w", err)
		}
		idx++

		row := SalesRow{
			Row:      idx,
			Terminal: strings.TrimSpace(cell(record, cols[colTerminal])),
			SKU:      strings.TrimSpace(cell(record, cols[colSKU])),
			UnitsRaw: strings.TrimSpace(cell(record, cols[colUnits])),
		}
		if labelIdx >= 0 {
			row.ProductLabel = strings.TrimSpace(cell(record, labelIdx))
		}
		// Filas en blanco o sin datos mínimos: fuera del conteo.
		if row.SKU == "" || row.Terminal == "" || row.UnitsRaw == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseTable parsea el CSV completo de forma genérica (todas las columnas)
// para el endpoint de previsualización.
func ParseTable(data []byte) (columns []string, records []map[string]string, err error) {
	text, err := DecodeText(data)
	if err != nil {
		return nil, nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer cabecera: %w", err)
	}
	columns = make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	records = []map[string]string{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leer fila: %w", err)
		}
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = cell(record, i)
		}
		records = append(records, row)
	}
	return columns, records, nil
}

// ParseUnits parsea una cantidad con separador decimal tolerante al locale
// español: "1,5" y "1.5" son equivalentes.
func ParseUnits(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return decimal.NewFromString(normalized)
}

// indexColumns mapea nombre de columna (recortado) -> posición.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}

// findLabelColumn localiza la columna ARTICULO con tolerancia a tildes y a
// cabeceras mutiladas por re-codificación ("ARTCULO").
func findLabelColumn(header []string) int {
	for i, h := range header {
		folded := domrec.NormalizeName(h)
		if folded == "articulo" || folded == "artculo" {
			return i
		}
	}
	return -1
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

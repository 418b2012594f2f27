package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// columnas esperadas en la cabecera (en cualquier orden). categoria es opcional.
var requiredColumns = []string{"codigo", "nombre", "precio_venta"}

// rowError error de una fila concreta del archivo.
type rowError struct {
	Line int
	Err  error
}

func (e rowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// decodeInput devuelve el contenido en UTF-8. Si no es UTF-8 válido (o latin1 es true) se lee como ISO-8859-1.
func decodeInput(raw []byte, latin1 bool) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !latin1 && utf8.Valid(raw) {
		return raw, nil
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decodificar latin-1: %w", err)
	}
	return out, nil
}

// detectDelimiter elige ';' o ',' según cuál aparece más en la cabecera.
func detectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// parseProducts lee el CSV y devuelve los productos válidos junto con los errores por fila.
// Los precios aceptan coma decimal ("12,50").
func parseProducts(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, []error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, []error{err}
	}
	data, err := decodeInput(raw, latin1)
	if err != nil {
		return nil, []error{err}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("leer cabecera: %w", err)}
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, []error{fmt.Errorf("falta la columna %q", c)}
		}
	}

	var (
		out  []dto.CreateProductRequest
		errs []error
	)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			errs = append(errs, rowError{Line: line, Err: err})
			continue
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("codigo") == "" && get("nombre") == "" {
			continue
		}
		p, err := toProduct(get)
		if err != nil {
			errs = append(errs, rowError{Line: line, Err: err})
			continue
		}
		out = append(out, p)
	}
	return out, errs
}

func toProduct(get func(string) string) (dto.CreateProductRequest, error) {
	p := dto.CreateProductRequest{
		Code:        get("codigo"),
		Name:        get("nombre"),
		Description: get("descripcion"),
		CategoryID:  get("categoria"),
	}
	if p.Code == "" || p.Name == "" {
		return p, errors.New("codigo y nombre son obligatorios")
	}
	var err error
	if p.SalePrice, err = parseMoney(get("precio_venta")); err != nil {
		return p, fmt.Errorf("precio_venta: %w", err)
	}
	if p.PurchasePrice, err = parseMoney(get("precio_compra")); err != nil {
		return p, fmt.Errorf("precio_compra: %w", err)
	}
	if p.Stock, err = parseInt(get("stock")); err != nil {
		return p, fmt.Errorf("stock: %w", err)
	}
	if p.MinStock, err = parseInt(get("stock_minimo")); err != nil {
		return p, fmt.Errorf("stock_minimo: %w", err)
	}
	return p, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "S/"))
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	return decimal.NewFromString(s)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

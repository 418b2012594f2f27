// Package pdf genera la boleta de venta y la orden de compra en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RUC  │  Tipo + N° + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Tel / Email                           │
//	│  CONTRAPARTE: Cliente o Proveedor                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                    │
//	│  FOOTER: estado + leyenda                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/documents"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 20, Blue: 20}
)

var _ documents.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa documents.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// party datos de la contraparte del documento.
type party struct {
	title    string
	name     string
	document string
	contact  string
}

// SalePDF genera la nota de venta.
func (g *MarotoPDFGenerator) SalePDF(_ context.Context, doc documents.SaleDocument) ([]byte, error) {
	s := doc.Sale
	counter := party{title: "CLIENTE", name: "Cliente varios", document: "-"}
	if c := doc.Customer; c != nil {
		counter = party{
			title:    "CLIENTE",
			name:     c.Name,
			document: c.Document,
			contact:  contactLine(c.Phone, c.Email),
		}
	}
	totals := [][2]string{
		{"Subtotal:", money(s.Subtotal)},
		{"Descuento:", money(s.Discount)},
	}
	footer := []string{"Método de pago: " + s.PaymentMethod}
	if s.Notes != "" {
		footer = append(footer, "Observaciones: "+s.Notes)
	}
	if s.Status == entity.SaleStatusVoided {
		footer = append(footer, "Motivo de anulación: "+nonEmpty(s.VoidReason, "-"))
	}
	return render(doc.Company, "NOTA DE VENTA", s.Number, s.CreatedAt.Format("02/01/2006 15:04"), counter,
		doc.Lines, totals, s.Total, s.Status == entity.SaleStatusVoided, footer)
}

// PurchasePDF genera la orden de compra.
func (g *MarotoPDFGenerator) PurchasePDF(_ context.Context, doc documents.PurchaseDocument) ([]byte, error) {
	p := doc.Purchase
	sp := doc.Supplier
	counter := party{
		title:    "PROVEEDOR",
		name:     sp.Name,
		document: nonEmpty(sp.RUC, "-"),
		contact:  contactLine(sp.Phone, sp.Email),
	}
	footer := []string{"Estado: " + p.Status}
	if p.ReceivedAt != nil {
		footer = append(footer, "Recibida el "+p.ReceivedAt.Format("02/01/2006 15:04"))
	}
	if p.Notes != "" {
		footer = append(footer, "Observaciones: "+p.Notes)
	}
	return render(doc.Company, "ORDEN DE COMPRA", p.Number, p.CreatedAt.Format("02/01/2006 15:04"), counter,
		doc.Lines, nil, p.Total, p.Status == entity.PurchaseStatusVoided, footer)
}

func render(
	company *entity.Company,
	title, number, date string,
	counter party,
	lines []documents.Line,
	totals [][2]string,
	grandTotal decimal.Decimal,
	voided bool,
	footer []string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title+" "+number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, title, number, date))
	if voided {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("ANULADA", props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorRed, Top: 2}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(partyRow(counter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totals, grandTotal))

	m.AddRows(line.NewRow(3))
	for _, f := range footer {
		m.AddRows(row.New(5).Add(col.New(12).Add(
			text.New(f, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: razón social + RUC (izq) y tipo de documento + número + fecha (der).
func headerRow(company *entity.Company, title, number, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("RUC: "+company.RUC, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+date, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func companyRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMPRESA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func partyRow(p party) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(p.title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(p.name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(strings.TrimSuffix("DNI/RUC: "+p.document+"   |   "+p.contact, "   |   "),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableDetailRows(lines []documents.Line) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: renglones previos + TOTAL, alineados a la derecha.
func totalsRow(totals [][2]string, grand decimal.Decimal) core.Row {
	labels := col.New(3)
	values := col.New(3)
	top := 0.0
	for _, t := range totals {
		labels.Add(text.New(t[0], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(t[1], props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
		top += 6
	}
	labels.Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top}))
	values.Add(text.New(money(grand), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top}))

	return row.New(top+10).Add(col.New(6), labels, values)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func contactLine(phone, email string) string {
	var parts []string
	if phone != "" {
		parts = append(parts, "Tel: "+phone)
	}
	if email != "" {
		parts = append(parts, "Email: "+email)
	}
	return strings.Join(parts, "   |   ")
}

// money formatea con dos decimales y separador de miles: 1234.5 → "S/ 1,234.50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := "S/ " + groupThousands(intPart) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// groupThousands inserta comas de miles en un string de dígitos.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

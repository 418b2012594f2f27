// Package xmldoc exporta ventas como Invoice UBL 2.1 con digest SHA-256 del documento canonicalizado (C14N).
//
// El digest viaja en ext:UBLExtensions/ext:UBLExtension/ext:ExtensionContent y se calcula
// con ese nodo vacío, igual que una firma enveloped.
package xmldoc

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Ventas-api/internal/application/documents"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NsExt     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	NsDs      = "http://www.w3.org/2000/09/xmldsig#"

	AlgC14N   = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgSHA256 = "http://www.w3.org/2001/04/xmlenc#sha256"

	currency = "PEN"
	// Catálogo 01: 01 factura (cliente con RUC), 03 boleta.
	typeFactura = "01"
	typeBoleta  = "03"
	// Catálogo 06: 1 DNI, 6 RUC, 0 sin documento.
	docDNI  = "1"
	docRUC  = "6"
	docNone = "0"

	extensionPath = "./ext:UBLExtensions/ext:UBLExtension/ext:ExtensionContent"
)

var _ documents.XMLExporter = (*InvoiceExporter)(nil)

// InvoiceExporter implementa documents.XMLExporter con etree + c14n.
type InvoiceExporter struct{}

func NewInvoiceExporter() *InvoiceExporter { return &InvoiceExporter{} }

// SaleXML construye el Invoice, calcula el digest y lo inyecta.
func (e *InvoiceExporter) SaleXML(_ context.Context, doc documents.SaleDocument) ([]byte, error) {
	if doc.Sale == nil || doc.Company == nil {
		return nil, fmt.Errorf("xmldoc: faltan venta o empresa")
	}
	d := build(doc)
	ext := d.Root().FindElement(extensionPath)

	digest, err := digestOf(d)
	if err != nil {
		return nil, err
	}
	ref := ext.CreateElement("ds:Reference")
	ref.CreateAttr("URI", "")
	ref.CreateElement("ds:Transforms").CreateElement("ds:Transform").CreateAttr("Algorithm", AlgC14N)
	ref.CreateElement("ds:DigestMethod").CreateAttr("Algorithm", AlgSHA256)
	ref.CreateElement("ds:DigestValue").SetText(digest)

	out, err := d.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmldoc: serializar: %w", err)
	}
	return out, nil
}

// Verify recalcula el digest de un XML exportado y lo compara con el declarado.
func Verify(data []byte) (bool, error) {
	d := etree.NewDocument()
	if err := d.ReadFromBytes(data); err != nil {
		return false, fmt.Errorf("xmldoc: parsear: %w", err)
	}
	if d.Root() == nil {
		return false, fmt.Errorf("xmldoc: documento sin raíz")
	}
	ext := d.Root().FindElement(extensionPath)
	if ext == nil {
		return false, fmt.Errorf("xmldoc: falta ext:ExtensionContent")
	}
	value := ext.FindElement("./ds:Reference/ds:DigestValue")
	if value == nil {
		return false, fmt.Errorf("xmldoc: falta ds:DigestValue")
	}
	declared := value.Text()
	ext.Child = nil

	actual, err := digestOf(d)
	if err != nil {
		return false, err
	}
	return actual == declared, nil
}

func digestOf(d *etree.Document) (string, error) {
	raw, err := d.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xmldoc: serializar: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xmldoc: c14n: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func build(doc documents.SaleDocument) *etree.Document {
	s := doc.Sale
	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := d.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)
	root.CreateAttr("xmlns:ext", NsExt)
	root.CreateAttr("xmlns:ds", NsDs)

	// ext:UBLExtensions siempre primer hijo; el ExtensionContent queda vacío hasta tener el digest.
	root.CreateElement("ext:UBLExtensions").CreateElement("ext:UBLExtension").CreateElement("ext:ExtensionContent")

	root.CreateElement("cbc:UBLVersionID").SetText("2.1")
	root.CreateElement("cbc:CustomizationID").SetText("2.0")
	root.CreateElement("cbc:ID").SetText(s.Number)
	root.CreateElement("cbc:IssueDate").SetText(s.CreatedAt.Format("2006-01-02"))
	root.CreateElement("cbc:IssueTime").SetText(s.CreatedAt.Format("15:04:05"))
	root.CreateElement("cbc:InvoiceTypeCode").SetText(invoiceType(doc.Customer))
	if s.Notes != "" {
		root.CreateElement("cbc:Note").SetText(s.Notes)
	}
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(currency)
	root.CreateElement("cbc:LineCountNumeric").SetText(fmt.Sprint(len(doc.Lines)))

	supplier := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")
	writeParty(supplier, docRUC, doc.Company.RUC, doc.Company.Name, doc.Company.Address)

	customer := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	if c := doc.Customer; c != nil {
		writeParty(customer, customerDocType(c.Document), c.Document, c.Name, c.Address)
	} else {
		writeParty(customer, docNone, "-", "CLIENTES VARIOS", "")
	}

	pm := root.CreateElement("cac:PaymentMeans")
	pm.CreateElement("cbc:PaymentMeansCode").SetText(s.PaymentMethod)

	if s.Discount.IsPositive() {
		ac := root.CreateElement("cac:AllowanceCharge")
		ac.CreateElement("cbc:ChargeIndicator").SetText("false")
		amount(ac, "cbc:Amount", s.Discount)
	}

	totals := root.CreateElement("cac:LegalMonetaryTotal")
	amount(totals, "cbc:LineExtensionAmount", s.Subtotal)
	amount(totals, "cbc:AllowanceTotalAmount", s.Discount)
	amount(totals, "cbc:PayableAmount", s.Total)

	for i, l := range doc.Lines {
		line := root.CreateElement("cac:InvoiceLine")
		line.CreateElement("cbc:ID").SetText(fmt.Sprint(i + 1))
		q := line.CreateElement("cbc:InvoicedQuantity")
		q.CreateAttr("unitCode", "NIU")
		q.SetText(fmt.Sprint(l.Quantity))
		amount(line, "cbc:LineExtensionAmount", l.Subtotal)
		item := line.CreateElement("cac:Item")
		item.CreateElement("cbc:Description").SetText(l.Name)
		item.CreateElement("cac:SellersItemIdentification").CreateElement("cbc:ID").SetText(l.ProductID)
		amount(line.CreateElement("cac:Price"), "cbc:PriceAmount", l.UnitPrice)
	}
	return d
}

func writeParty(party *etree.Element, schemeID, id, name, address string) {
	pid := party.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID")
	pid.CreateAttr("schemeID", schemeID)
	pid.SetText(id)
	legal := party.CreateElement("cac:PartyLegalEntity")
	legal.CreateElement("cbc:RegistrationName").SetText(name)
	if address != "" {
		legal.CreateElement("cac:RegistrationAddress").CreateElement("cac:AddressLine").CreateElement("cbc:Line").SetText(address)
	}
}

func amount(parent *etree.Element, tag string, v decimal.Decimal) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", currency)
	el.SetText(v.StringFixed(2))
}

func invoiceType(c *entity.Customer) string {
	if c != nil && len(c.Document) == 11 {
		return typeFactura
	}
	return typeBoleta
}

func customerDocType(doc string) string {
	switch len(doc) {
	case 11:
		return docRUC
	case 8:
		return docDNI
	}
	return docNone
}

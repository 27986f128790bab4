// Package render turns a complete invoice snapshot into a structured
// document description and renders it. The document is the boundary:
// everything layout-dependent is decided here, renderers only draw.
package render

import (
	"errors"
	"fmt"

	invoicedomain "github.com/wellcrafted/invoicing/internal/invoice/domain"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"github.com/wellcrafted/invoicing/pkg/money"
)

// BlockKind discriminates document blocks.
type BlockKind string

const (
	BlockKindNote       BlockKind = "note"
	BlockKindHeader     BlockKind = "header"
	BlockKindSections   BlockKind = "sections"
	BlockKindTable      BlockKind = "table"
	BlockKindTotals     BlockKind = "totals"
	BlockKindSignature  BlockKind = "signature"
	BlockKindCompliance BlockKind = "compliance"
)

// Field is one labeled value inside a section.
type Field struct {
	Label string
	Value string
}

// Section is a rendered header section (bill-to, ship-to, ...).
type Section struct {
	Key    templatedomain.SectionKey
	Title  string
	Fields []Field
}

// ColumnHeader describes one table column as configured.
type ColumnHeader struct {
	ID    templatedomain.ColumnID
	Label string
	Width int
	Align templatedomain.Align
}

// TotalRow is one line in the totals block.
type TotalRow struct {
	Label    string
	Value    string
	Emphasis bool
}

// Block is one vertical element of a page.
type Block struct {
	Kind BlockKind

	// note
	NoteLabel string
	NoteText  string

	// header
	Title         string
	CompanyName   string
	CompanyLine   string
	LogoURL       string
	InvoiceNumber string
	IssuedAt      string
	DueAt         string
	PaymentTerms  string

	// sections: up to two side-by-side plus full-width rows
	Left      []Section
	Right     []Section
	FullWidth []Section

	// table
	Columns []ColumnHeader
	Rows    [][]string

	// totals
	Totals []TotalRow

	// signature
	SignatureStyle templatedomain.SignatureStyle

	// compliance
	ComplianceText string
}

// Page is one ordered run of blocks.
type Page struct {
	Blocks []Block
}

// Document is the full structured description a renderer consumes.
type Document struct {
	BaseTemplate templatedomain.BaseTemplate
	Condensed    bool
	Palette      templatedomain.Palette
	FooterNotes  []string
	Pages        []Page
}

// Renderer draws a document into an output format.
type Renderer interface {
	RenderHTML(doc Document) (string, error)
}

// BuildDocument assembles the document for an invoice snapshot,
// honoring the resolved template settings: enabled columns in
// configured order, section visibility crossed with placement buckets,
// body-block order, and header notes at their four insertion points.
func BuildDocument(data *invoicedomain.CompleteInvoiceData) (Document, error) {
	if data == nil {
		return Document{}, errors.New("render: nil invoice data")
	}
	settings := data.TemplateSettings
	layout := settings.Layout
	condensed := settings.BaseTemplate == templatedomain.BaseVAInStateCondensed

	var blocks []Block

	blocks = appendNotes(blocks, layout, templatedomain.NoteBeforeHeader)
	blocks = append(blocks, headerBlock(data, settings))
	blocks = appendNotes(blocks, layout, templatedomain.NoteAfterHeader)

	if sections := sectionsBlock(data, layout); sections != nil {
		blocks = append(blocks, *sections)
	}

	blocks = appendNotes(blocks, layout, templatedomain.NoteBeforeTable)
	blocks = append(blocks, tableBlock(data, layout))
	blocks = appendNotes(blocks, layout, templatedomain.NoteAfterTable)

	for _, blockID := range templatedomain.BodyBlockOrder(layout) {
		switch blockID {
		case templatedomain.BlockTotals:
			blocks = append(blocks, totalsBlock(data))
		case templatedomain.BlockSignature:
			if settings.Options.SignatureStyle != templatedomain.SignatureNone {
				blocks = append(blocks, Block{
					Kind:           BlockKindSignature,
					SignatureStyle: settings.Options.SignatureStyle,
				})
			}
		case templatedomain.BlockCompliance:
			if layout.Sections.ShowComplianceNotice && data.ComplianceNotice != "" {
				blocks = append(blocks, Block{
					Kind:           BlockKindCompliance,
					ComplianceText: data.ComplianceNotice,
				})
			}
		}
	}

	return Document{
		BaseTemplate: settings.BaseTemplate,
		Condensed:    condensed,
		Palette:      settings.Palette,
		FooterNotes:  settings.Options.FooterNotes,
		Pages:        []Page{{Blocks: blocks}},
	}, nil
}

func appendNotes(blocks []Block, layout templatedomain.Layout, placement templatedomain.NotePlacement) []Block {
	for _, note := range templatedomain.NotesAt(layout, placement) {
		blocks = append(blocks, Block{
			Kind:      BlockKindNote,
			NoteLabel: note.Label,
			NoteText:  note.Text,
		})
	}
	return blocks
}

func headerBlock(data *invoicedomain.CompleteInvoiceData, settings templatedomain.Settings) Block {
	companyName := settings.Options.CompanyDisplayName
	if companyName == "" {
		companyName = data.Distributor.Name
	}
	companyLine := settings.Options.CompanyTagline
	if companyLine == "" && data.Distributor.License != "" {
		companyLine = "VA Wholesaler License " + data.Distributor.License
	}
	return Block{
		Kind:          BlockKindHeader,
		Title:         documentTitle(settings.BaseTemplate),
		CompanyName:   companyName,
		CompanyLine:   companyLine,
		LogoURL:       settings.Options.LogoURL,
		InvoiceNumber: data.InvoiceNumber,
		IssuedAt:      data.IssuedAt.Format("January 2, 2006"),
		DueAt:         data.DueAt.Format("January 2, 2006"),
		PaymentTerms:  data.PaymentTerms,
	}
}

func documentTitle(base templatedomain.BaseTemplate) string {
	switch base {
	case templatedomain.BaseVAInState, templatedomain.BaseVAInStateCondensed:
		return "Invoice - Virginia ABC"
	case templatedomain.BaseVATaxExempt:
		return "Invoice - Out-of-State Shipment"
	default:
		return "Invoice"
	}
}

func sectionsBlock(data *invoicedomain.CompleteInvoiceData, layout templatedomain.Layout) *Block {
	buckets := templatedomain.VisibleSectionBuckets(layout)
	block := Block{Kind: BlockKindSections}
	for _, key := range buckets.HeaderLeft {
		block.Left = append(block.Left, buildSection(key, data))
	}
	for _, key := range buckets.HeaderRight {
		block.Right = append(block.Right, buildSection(key, data))
	}
	for _, key := range buckets.FullWidth {
		block.FullWidth = append(block.FullWidth, buildSection(key, data))
	}
	if len(block.Left) == 0 && len(block.Right) == 0 && len(block.FullWidth) == 0 {
		return nil
	}
	return &block
}

func buildSection(key templatedomain.SectionKey, data *invoicedomain.CompleteInvoiceData) Section {
	switch key {
	case templatedomain.SectionBillTo:
		return partySection(key, "Bill To", data.BillTo)
	case templatedomain.SectionShipTo:
		return partySection(key, "Ship To", data.ShipTo)
	case templatedomain.SectionCustomerInfo:
		return Section{Key: key, Title: "Customer", Fields: dropEmpty([]Field{
			{Label: "Customer No.", Value: data.CustomerNumber},
			{Label: "ABC License", Value: data.BillTo.License},
			{Label: "Sales Rep", Value: data.SalesRepName},
			{Label: "Order No.", Value: data.OrderNumber},
			{Label: "PO No.", Value: data.PurchaseOrderNumber},
		})}
	case templatedomain.SectionDeliveryInfo:
		return Section{Key: key, Title: "Delivery", Fields: dropEmpty([]Field{
			{Label: "Deliver To", Value: data.ShipTo.Name},
			{Label: "Address", Value: addressLine(data.ShipTo)},
		})}
	case templatedomain.SectionDistributorInfo:
		return Section{Key: key, Title: "Distributor", Fields: dropEmpty([]Field{
			{Label: "Name", Value: data.Distributor.Name},
			{Label: "Address", Value: addressLine(data.Distributor)},
			{Label: "Wholesaler License", Value: data.Distributor.License},
			{Label: "Phone", Value: data.Distributor.Phone},
		})}
	default:
		return Section{Key: key}
	}
}

func partySection(key templatedomain.SectionKey, title string, party invoicedomain.Party) Section {
	return Section{Key: key, Title: title, Fields: dropEmpty([]Field{
		{Label: "Name", Value: party.Name},
		{Label: "Address", Value: addressLine(party)},
		{Label: "Phone", Value: party.Phone},
		{Label: "Email", Value: party.Email},
	})}
}

func addressLine(party invoicedomain.Party) string {
	line := party.Street
	if party.City != "" {
		if line != "" {
			line += ", "
		}
		line += party.City
	}
	if party.State != "" {
		line += ", " + party.State
	}
	if party.Zip != "" {
		line += " " + party.Zip
	}
	return line
}

func dropEmpty(fields []Field) []Field {
	out := fields[:0]
	for _, f := range fields {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

func tableBlock(data *invoicedomain.CompleteInvoiceData, layout templatedomain.Layout) Block {
	columns := templatedomain.EnabledColumns(layout)
	headers := make([]ColumnHeader, len(columns))
	for i, col := range columns {
		headers[i] = ColumnHeader{ID: col.ID, Label: col.Label, Width: col.Width, Align: col.Align}
	}

	rows := make([][]string, len(data.Lines))
	for i, line := range data.Lines {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = cellValue(col.ID, line)
		}
		rows[i] = row
	}
	return Block{Kind: BlockKindTable, Columns: headers, Rows: rows}
}

func cellValue(id templatedomain.ColumnID, line invoicedomain.EnrichedOrderLine) string {
	switch id {
	case templatedomain.ColQuantity:
		return fmt.Sprintf("%d", line.Quantity)
	case templatedomain.ColCases:
		return line.CasesQuantity.StringFixed(2)
	case templatedomain.ColTotalBottles:
		return fmt.Sprintf("%d", line.Quantity)
	case templatedomain.ColSize:
		return line.Size
	case templatedomain.ColCode, templatedomain.ColSKU:
		return line.SKUCode
	case templatedomain.ColABCCode:
		return line.ABCCodeNumber
	case templatedomain.ColProductName:
		return line.ProductName
	case templatedomain.ColProductCategory:
		return line.ProductCategory
	case templatedomain.ColDescription:
		return line.Description
	case templatedomain.ColLiters:
		return line.TotalLiters.StringFixed(3)
	case templatedomain.ColUnitPrice:
		return money.FormatUSD(line.UnitPrice)
	case templatedomain.ColBottlePrice:
		return money.FormatUSD(line.BottlePrice)
	case templatedomain.ColLineTotal:
		return money.FormatUSD(line.LineTotal)
	default:
		return ""
	}
}

func totalsBlock(data *invoicedomain.CompleteInvoiceData) Block {
	rows := []TotalRow{
		{Label: "Subtotal", Value: money.FormatUSD(data.Subtotal)},
	}
	if data.ExciseTax.IsPositive() {
		rows = append(rows, TotalRow{
			Label: fmt.Sprintf("VA Excise Tax (%s L)", data.TotalLiters.StringFixed(3)),
			Value: money.FormatUSD(data.ExciseTax),
		})
	}
	if data.SalesTax.IsPositive() {
		rows = append(rows, TotalRow{Label: "Sales Tax", Value: money.FormatUSD(data.SalesTax)})
	}
	rows = append(rows, TotalRow{Label: "Total Due", Value: money.FormatUSD(data.Total), Emphasis: true})
	return Block{Kind: BlockKindTotals, Totals: rows}
}

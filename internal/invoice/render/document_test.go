package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellcrafted/invoicing/internal/format"
	invoicedomain "github.com/wellcrafted/invoicing/internal/invoice/domain"
	templatedomain "github.com/wellcrafted/invoicing/internal/template/domain"
	"github.com/wellcrafted/invoicing/pkg/money"
)

func sampleData(ft format.Type) *invoicedomain.CompleteInvoiceData {
	return &invoicedomain.CompleteInvoiceData{
		InvoiceNumber: "INV-202603-0001",
		Format:        ft,
		IssuedAt:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		DueAt:         time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC),
		Distributor:   invoicedomain.Party{Name: "Blue Ridge Wine Distributors", State: "VA", License: "WL-1234"},
		BillTo:        invoicedomain.Party{Name: "Cork & Fork Bistro", State: "VA"},
		ShipTo:        invoicedomain.Party{Name: "Cork & Fork Bistro", State: "VA"},
		Lines: []invoicedomain.EnrichedOrderLine{{
			SKUCode:       "CHRD-750",
			ProductName:   "Estate Chardonnay 2024",
			Size:          "750ml",
			ABCCodeNumber: "012345",
			Quantity:      12,
			CasesQuantity: money.New(1),
			TotalLiters:   money.MustParse("9"),
			UnitPrice:     money.MustParse("14.50"),
			LineTotal:     money.MustParse("174.00"),
		}},
		TotalLiters:      money.MustParse("9"),
		Subtotal:         money.MustParse("174.00"),
		ExciseTax:        money.MustParse("3.60"),
		TotalTax:         money.MustParse("3.60"),
		Total:            money.MustParse("177.60"),
		ComplianceNotice: "Virginia wine excise tax paid by the wholesaler.",
		TemplateSettings: templatedomain.DefaultSettings(ft),
	}
}

func blockKinds(doc Document) []BlockKind {
	kinds := make([]BlockKind, 0, len(doc.Pages[0].Blocks))
	for _, b := range doc.Pages[0].Blocks {
		kinds = append(kinds, b.Kind)
	}
	return kinds
}

func TestBuildDocumentInState(t *testing.T) {
	data := sampleData(format.VAABCInState)
	data.TemplateSettings.Layout.HeaderNotes[0].Enabled = true
	data.TemplateSettings.Layout.HeaderNotes[0].Text = "Virginia wine excise tax included as itemized below."

	doc, err := BuildDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	// An enabled excise note sits before the table, and the canonical
	// body-block order follows.
	assert.Equal(t, []BlockKind{
		BlockKindHeader,
		BlockKindSections,
		BlockKindNote,
		BlockKindTable,
		BlockKindTotals,
		BlockKindSignature,
		BlockKindCompliance,
	}, blockKinds(doc))

	var table Block
	for _, b := range doc.Pages[0].Blocks {
		if b.Kind == BlockKindTable {
			table = b
		}
	}
	// Enabled columns only, in catalog order for the in-state default.
	ids := make([]templatedomain.ColumnID, 0, len(table.Columns))
	for _, col := range table.Columns {
		ids = append(ids, col.ID)
	}
	assert.Equal(t, []templatedomain.ColumnID{
		templatedomain.ColQuantity,
		templatedomain.ColCases,
		templatedomain.ColSize,
		templatedomain.ColABCCode,
		templatedomain.ColProductName,
		templatedomain.ColLiters,
		templatedomain.ColUnitPrice,
		templatedomain.ColLineTotal,
	}, ids)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "9.000", table.Rows[0][5])
	assert.Equal(t, "$174.00", table.Rows[0][7])

	assert.False(t, doc.Condensed)
	assert.Equal(t, templatedomain.BaseVAInState, doc.BaseTemplate)
}

func TestBuildDocumentNoNoteBlockByDefault(t *testing.T) {
	// Stock layouts ship their header note disabled, so an untouched
	// tenant never sees a note block.
	for _, ft := range []format.Type{format.Standard, format.VAABCInState, format.VAABCTaxExempt} {
		doc, err := BuildDocument(sampleData(ft))
		require.NoError(t, err)
		assert.NotContains(t, blockKinds(doc), BlockKindNote, string(ft))
	}
}

func TestBuildDocumentHonorsBodyBlockOrderAndSignatureNone(t *testing.T) {
	data := sampleData(format.Standard)
	data.TemplateSettings.Options.SignatureStyle = templatedomain.SignatureNone
	data.TemplateSettings.Layout.BodyBlocks = []templatedomain.BodyBlock{
		{ID: templatedomain.BlockSignature, Order: 0},
		{ID: templatedomain.BlockTotals, Order: 1},
	}

	doc, err := BuildDocument(data)
	require.NoError(t, err)

	kinds := blockKinds(doc)
	// Signature suppressed, compliance not listed, totals still present.
	assert.NotContains(t, kinds, BlockKindSignature)
	assert.NotContains(t, kinds, BlockKindCompliance)
	assert.Contains(t, kinds, BlockKindTotals)
}

func TestBuildDocumentCondensedVariant(t *testing.T) {
	data := sampleData(format.VAABCInState)
	data.TemplateSettings.BaseTemplate = templatedomain.BaseVAInStateCondensed

	doc, err := BuildDocument(data)
	require.NoError(t, err)
	assert.True(t, doc.Condensed)
}

func TestHTMLRendererOutput(t *testing.T) {
	doc, err := BuildDocument(sampleData(format.VAABCTaxExempt))
	require.NoError(t, err)

	html, err := NewHTMLRenderer().RenderHTML(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "INV-202603-0001")
	assert.Contains(t, html, "Out-of-State Shipment")
	assert.Contains(t, html, "Estate Chardonnay 2024")
	assert.True(t, strings.Contains(html, "Distributor"))
}

func TestHTMLRendererSanitizesPalette(t *testing.T) {
	doc, err := BuildDocument(sampleData(format.Standard))
	require.NoError(t, err)
	doc.Palette.AccentColor = `red;} body { display:none `

	html, err := NewHTMLRenderer().RenderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "display:none")
}

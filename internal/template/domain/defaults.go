package domain

import "github.com/wellcrafted/invoicing/internal/format"

// defaultColumnCatalog is the full catalog with display defaults.
// Per-format layouts pick from it and flip Enabled.
var defaultColumnCatalog = []Column{
	{ID: ColQuantity, Label: "Qty", Width: 6, Align: AlignRight, Enabled: true},
	{ID: ColCases, Label: "Cases", Width: 7, Align: AlignRight, Enabled: false},
	{ID: ColTotalBottles, Label: "Bottles", Width: 7, Align: AlignRight, Enabled: false},
	{ID: ColSize, Label: "Size", Width: 7, Align: AlignCenter, Enabled: false},
	{ID: ColCode, Label: "Code", Width: 8, Align: AlignLeft, Enabled: false},
	{ID: ColABCCode, Label: "ABC Code", Width: 9, Align: AlignLeft, Enabled: false},
	{ID: ColSKU, Label: "SKU", Width: 10, Align: AlignLeft, Enabled: true},
	{ID: ColProductName, Label: "Description", Width: 30, Align: AlignLeft, Enabled: true},
	{ID: ColProductCategory, Label: "Category", Width: 10, Align: AlignLeft, Enabled: false},
	{ID: ColDescription, Label: "Notes", Width: 14, Align: AlignLeft, Enabled: false},
	{ID: ColLiters, Label: "Liters", Width: 8, Align: AlignRight, Enabled: false},
	{ID: ColUnitPrice, Label: "Unit Price", Width: 10, Align: AlignRight, Enabled: true},
	{ID: ColBottlePrice, Label: "Bottle Price", Width: 10, Align: AlignRight, Enabled: false},
	{ID: ColLineTotal, Label: "Amount", Width: 12, Align: AlignRight, Enabled: true},
}

// catalogColumns returns a fresh copy of the catalog with only the
// given ids enabled, preserving catalog order.
func catalogColumns(enabled ...ColumnID) []Column {
	on := make(map[ColumnID]bool, len(enabled))
	for _, id := range enabled {
		on[id] = true
	}
	out := make([]Column, len(defaultColumnCatalog))
	copy(out, defaultColumnCatalog)
	for i := range out {
		out[i].Enabled = on[out[i].ID]
	}
	return out
}

var defaultPalette = Palette{
	HeaderBackground:      "#1f2a44",
	TableHeaderBackground: "#eef1f6",
	BorderColor:           "#d4d9e2",
	AccentColor:           "#8b1e3f",
}

func defaultOptions() Options {
	return Options{
		SignatureStyle: SignatureLine,
		FooterNotes:    []string{"Thank you for your business."},
	}
}

func standardPlacements() []SectionPlacement {
	return []SectionPlacement{
		{Section: SectionBillTo, Bucket: BucketHeaderLeft, Order: 0},
		{Section: SectionShipTo, Bucket: BucketHeaderRight, Order: 0},
		{Section: SectionCustomerInfo, Bucket: BucketFullWidth, Order: 0},
	}
}

func defaultBodyBlocks() []BodyBlock {
	return []BodyBlock{
		{ID: BlockTotals, Order: 0},
		{ID: BlockSignature, Order: 1},
		{ID: BlockCompliance, Order: 2},
	}
}

// DefaultLayout returns the complete layout for an invoice format.
// Unknown formats get the standard layout. Header notes ship disabled
// with empty text; tenants fill them in through settings patches.
func DefaultLayout(ft format.Type) Layout {
	switch ft {
	case format.VAABCInState:
		return Layout{
			Sections: SectionVisibility{
				ShowBillTo:           true,
				ShowShipTo:           true,
				ShowCustomerInfo:     true,
				ShowComplianceNotice: true,
			},
			Columns: catalogColumns(
				ColQuantity, ColCases, ColSize, ColABCCode,
				ColProductName, ColLiters, ColUnitPrice, ColLineTotal,
			),
			HeaderNotes: []HeaderNote{{
				ID:        "abc-excise",
				Label:     "ABC excise statement",
				Placement: NoteBeforeTable,
			}},
			Placements: standardPlacements(),
			BodyBlocks: defaultBodyBlocks(),
		}
	case format.VAABCTaxExempt:
		return Layout{
			Sections: SectionVisibility{
				ShowBillTo:           true,
				ShowShipTo:           true,
				ShowCustomerInfo:     true,
				ShowDeliveryInfo:     true,
				ShowDistributorInfo:  true,
				ShowComplianceNotice: true,
			},
			Columns: catalogColumns(
				ColQuantity, ColCases, ColSize, ColProductName,
				ColLiters, ColUnitPrice, ColLineTotal,
			),
			HeaderNotes: []HeaderNote{{
				ID:        "out-of-state",
				Label:     "Out-of-state shipment",
				Placement: NoteBeforeTable,
			}},
			Placements: append(standardPlacements(),
				SectionPlacement{Section: SectionDeliveryInfo, Bucket: BucketFullWidth, Order: 1},
				SectionPlacement{Section: SectionDistributorInfo, Bucket: BucketFullWidth, Order: 2},
			),
			BodyBlocks: defaultBodyBlocks(),
		}
	default:
		return Layout{
			Sections: SectionVisibility{
				ShowBillTo:       true,
				ShowShipTo:       true,
				ShowCustomerInfo: true,
			},
			Columns: catalogColumns(
				ColQuantity, ColSKU, ColProductName, ColUnitPrice, ColLineTotal,
			),
			HeaderNotes: []HeaderNote{{
				ID:        "remit",
				Label:     "Remittance",
				Placement: NoteBeforeTable,
			}},
			Placements: standardPlacements(),
			BodyBlocks: defaultBodyBlocks(),
		}
	}
}

// BaseTemplateFor maps a format to its default base template.
func BaseTemplateFor(ft format.Type) BaseTemplate {
	switch ft {
	case format.VAABCInState:
		return BaseVAInState
	case format.VAABCTaxExempt:
		return BaseVATaxExempt
	default:
		return BaseStandard
	}
}

// formatOf maps a base template back to the format family it belongs
// to. The condensed in-state variant belongs to the in-state family.
func formatOf(base BaseTemplate) format.Type {
	switch base {
	case BaseVAInState, BaseVAInStateCondensed:
		return format.VAABCInState
	case BaseVATaxExempt:
		return format.VAABCTaxExempt
	default:
		return format.Standard
	}
}

// ResolveBaseTemplate reconciles a requested base template against the
// invoice format. A base from a different format family is rejected in
// favor of the format default, so an in-state invoice can never render
// through the tax-exempt layout.
func ResolveBaseTemplate(requested *BaseTemplate, ft format.Type) BaseTemplate {
	if requested == nil {
		return BaseTemplateFor(ft)
	}
	if formatOf(*requested) != ft {
		return BaseTemplateFor(ft)
	}
	return *requested
}

// DefaultSettings returns the complete resolved settings for a format
// with no tenant customization.
func DefaultSettings(ft format.Type) Settings {
	return Settings{
		BaseTemplate: BaseTemplateFor(ft),
		Palette:      defaultPalette,
		Options:      defaultOptions(),
		Layout:       DefaultLayout(ft),
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellcrafted/invoicing/internal/format"
)

func strPtr(s string) *string          { return &s }
func boolPtr(b bool) *bool             { return &b }
func basePtr(b BaseTemplate) *BaseTemplate { return &b }

func TestMergeNilDocumentYieldsDefaults(t *testing.T) {
	for _, ft := range []format.Type{format.Standard, format.VAABCInState, format.VAABCTaxExempt} {
		got := Merge(nil, ft)
		assert.Equal(t, DefaultSettings(ft), got, "format %s", ft)
		assert.NotEmpty(t, got.Layout.Columns)
		assert.NotEmpty(t, EnabledColumns(got.Layout))
	}
}

func TestMergeUnknownColumnIDsDropped(t *testing.T) {
	doc := &ConfigDocument{Layout: &LayoutPatch{
		Columns: []ColumnPatch{
			{ID: "glitterFactor", Enabled: boolPtr(true)},
			{ID: "liters", Enabled: boolPtr(true)},
		},
	}}
	got := Merge(doc, format.Standard)
	for _, col := range got.Layout.Columns {
		assert.NotEqual(t, ColumnID("glitterFactor"), col.ID)
		if col.ID == ColLiters {
			assert.True(t, col.Enabled)
		}
	}
}

func TestMergeDuplicateColumnKeepsFirst(t *testing.T) {
	doc := &ConfigDocument{Layout: &LayoutPatch{
		Columns: []ColumnPatch{
			{ID: "quantity", Label: strPtr("Count")},
			{ID: "quantity", Label: strPtr("Again")},
		},
	}}
	got := Merge(doc, format.Standard)

	var count int
	for _, col := range got.Layout.Columns {
		if col.ID == ColQuantity {
			count++
			assert.Equal(t, "Count", col.Label)
		}
	}
	assert.Equal(t, 1, count)
}

func TestMergeAllUnknownColumnsFallsBackToDefaults(t *testing.T) {
	doc := &ConfigDocument{Layout: &LayoutPatch{
		Columns: []ColumnPatch{{ID: "bogus"}, {ID: "alsoBogus"}},
	}}
	got := Merge(doc, format.VAABCInState)
	assert.Equal(t, DefaultLayout(format.VAABCInState).Columns, got.Layout.Columns)
}

func TestMergeUnmentionedDefaultColumnsAppended(t *testing.T) {
	doc := &ConfigDocument{Layout: &LayoutPatch{
		Columns: []ColumnPatch{{ID: "lineTotal"}},
	}}
	got := Merge(doc, format.Standard)

	require.NotEmpty(t, got.Layout.Columns)
	assert.Equal(t, ColLineTotal, got.Layout.Columns[0].ID)
	// Every default column still present.
	ids := make(map[ColumnID]bool)
	for _, col := range got.Layout.Columns {
		ids[col.ID] = true
	}
	for _, col := range DefaultLayout(format.Standard).Columns {
		assert.True(t, ids[col.ID], "missing default column %s", col.ID)
	}
}

func TestMergeSectionFlagsPerKey(t *testing.T) {
	doc := &ConfigDocument{Layout: &LayoutPatch{
		Sections: map[string]bool{"showShipTo": false, "showDeliveryInfo": true},
	}}
	got := Merge(doc, format.Standard)

	assert.False(t, got.Layout.Sections.ShowShipTo)
	assert.True(t, got.Layout.Sections.ShowDeliveryInfo)
	// Untouched flags keep defaults.
	assert.True(t, got.Layout.Sections.ShowBillTo)
	assert.True(t, got.Layout.Sections.ShowCustomerInfo)
}

func TestMergePaletteAndOptions(t *testing.T) {
	doc := &ConfigDocument{
		Palette: &PalettePatch{AccentColor: strPtr("#000000")},
		Options: &OptionsPatch{CompanyDisplayName: strPtr("Blue Ridge Cellars")},
	}
	got := Merge(doc, format.Standard)

	assert.Equal(t, "#000000", got.Palette.AccentColor)
	assert.Equal(t, defaultPalette.BorderColor, got.Palette.BorderColor)
	assert.Equal(t, "Blue Ridge Cellars", got.Options.CompanyDisplayName)
	assert.Equal(t, SignatureLine, got.Options.SignatureStyle)
}

func TestResolveBaseTemplateCrossFamilyRejected(t *testing.T) {
	// Tax-exempt base on an in-state invoice falls back to the in-state
	// default.
	got := Merge(&ConfigDocument{BaseTemplate: basePtr(BaseVATaxExempt)}, format.VAABCInState)
	assert.Equal(t, BaseVAInState, got.BaseTemplate)

	// Condensed variant is within the in-state family.
	got = Merge(&ConfigDocument{BaseTemplate: basePtr(BaseVAInStateCondensed)}, format.VAABCInState)
	assert.Equal(t, BaseVAInStateCondensed, got.BaseTemplate)
}

func TestMergeHeaderNotes(t *testing.T) {
	pl := NoteBeforeTable
	doc := &ConfigDocument{Layout: &LayoutPatch{
		HeaderNotes: []HeaderNotePatch{
			{ID: "remit", Enabled: boolPtr(false)},
			{ID: "pickup", Text: strPtr("Will call pickup after 2pm."), Enabled: boolPtr(true), Placement: &pl},
		},
	}}
	got := Merge(doc, format.Standard)

	byID := make(map[string]HeaderNote)
	for _, note := range got.Layout.HeaderNotes {
		byID[note.ID] = note
	}
	assert.False(t, byID["remit"].Enabled)
	require.Contains(t, byID, "pickup")
	assert.Equal(t, NoteBeforeTable, byID["pickup"].Placement)

	notes := NotesAt(got.Layout, NoteBeforeTable)
	require.Len(t, notes, 1)
	assert.Equal(t, "pickup", notes[0].ID)
}

func TestDefaultHeaderNotesShipDisabled(t *testing.T) {
	for _, ft := range []format.Type{format.Standard, format.VAABCInState, format.VAABCTaxExempt} {
		layout := DefaultLayout(ft)
		require.Len(t, layout.HeaderNotes, 1, string(ft))
		note := layout.HeaderNotes[0]
		assert.False(t, note.Enabled, string(ft))
		assert.Empty(t, note.Text, string(ft))
		assert.Equal(t, NoteBeforeTable, note.Placement, string(ft))
	}
}

func TestMergeNovelNotePlacementDefaultsBeforeTable(t *testing.T) {
	// A brand-new note with no placement in its patch lands before the
	// table.
	doc := &ConfigDocument{Layout: &LayoutPatch{
		HeaderNotes: []HeaderNotePatch{
			{ID: "allocation", Text: strPtr("Allocation limited to 10 cases."), Enabled: boolPtr(true)},
		},
	}}
	got := Merge(doc, format.Standard)

	notes := NotesAt(got.Layout, NoteBeforeTable)
	require.Len(t, notes, 1)
	assert.Equal(t, "allocation", notes[0].ID)
}

func TestVisibleSectionBucketsIntersectsVisibility(t *testing.T) {
	layout := DefaultLayout(format.VAABCTaxExempt)
	layout.Sections.ShowShipTo = false

	buckets := VisibleSectionBuckets(layout)
	assert.Equal(t, []SectionKey{SectionBillTo}, buckets.HeaderLeft)
	assert.Empty(t, buckets.HeaderRight)
	assert.Equal(t,
		[]SectionKey{SectionCustomerInfo, SectionDeliveryInfo, SectionDistributorInfo},
		buckets.FullWidth)
}

func TestMergePlacementsDuplicateSectionFirstWins(t *testing.T) {
	doc := &ConfigDocument{Layout: &LayoutPatch{
		Placements: []SectionPlacement{
			{Section: SectionBillTo, Bucket: BucketFullWidth, Order: 1},
			{Section: SectionBillTo, Bucket: BucketHeaderLeft, Order: 0},
			{Section: SectionShipTo, Bucket: BucketFullWidth, Order: 0},
		},
	}}
	got := Merge(doc, format.Standard)

	buckets := VisibleSectionBuckets(got.Layout)
	assert.Equal(t, []SectionKey{SectionShipTo}, buckets.FullWidth[:1])
	assert.Contains(t, buckets.FullWidth, SectionBillTo)
	assert.Empty(t, buckets.HeaderLeft)
}

func TestBodyBlockOrder(t *testing.T) {
	doc := &ConfigDocument{Layout: &LayoutPatch{
		BodyBlocks: []BodyBlock{
			{ID: BlockSignature, Order: 0},
			{ID: BlockTotals, Order: 1},
			{ID: BlockCompliance, Order: 2},
		},
	}}
	got := Merge(doc, format.VAABCInState)
	assert.Equal(t,
		[]BodyBlockID{BlockSignature, BlockTotals, BlockCompliance},
		BodyBlockOrder(got.Layout))

	// Empty layout falls back to the canonical order.
	assert.Equal(t,
		[]BodyBlockID{BlockTotals, BlockSignature, BlockCompliance},
		BodyBlockOrder(Layout{}))
}

func TestDecodeConfigDocument(t *testing.T) {
	doc, err := DecodeConfigDocument([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, doc)

	doc, err = DecodeConfigDocument(nil)
	require.NoError(t, err)
	assert.NotNil(t, doc)

	_, err = DecodeConfigDocument([]byte(`{"surprise": true}`))
	assert.Error(t, err)

	_, err = DecodeConfigDocument([]byte(`{"baseTemplate": "GLITTER"}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = DecodeConfigDocument([]byte(`{"layout": {"columns": [{"id": "quantity", "align": "diagonal"}]}}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = DecodeConfigDocument([]byte(`{"layout": {"sections": {"showGlitter": true}}}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultLayoutsPerFormat(t *testing.T) {
	std := DefaultLayout(format.Standard)
	assert.False(t, std.Sections.ShowComplianceNotice)
	assert.False(t, std.Sections.ShowDistributorInfo)

	inState := DefaultLayout(format.VAABCInState)
	assert.True(t, inState.Sections.ShowComplianceNotice)
	enabled := make(map[ColumnID]bool)
	for _, col := range EnabledColumns(inState) {
		enabled[col.ID] = true
	}
	assert.True(t, enabled[ColLiters])
	assert.True(t, enabled[ColABCCode])

	exempt := DefaultLayout(format.VAABCTaxExempt)
	assert.True(t, exempt.Sections.ShowDistributorInfo)
	assert.True(t, exempt.Sections.ShowDeliveryInfo)

	// Unknown format degrades to standard.
	assert.Equal(t, std, DefaultLayout(format.Type("WHO_KNOWS")))
}

package domain

import (
	"sort"

	"github.com/wellcrafted/invoicing/internal/format"
)

// Merge resolves a partial config document against the format defaults
// and returns complete settings. A nil document yields the defaults
// unchanged. The merge never produces an empty column list: if every
// patched column is unknown or the patch list is empty, the default
// columns stand.
func Merge(doc *ConfigDocument, ft format.Type) Settings {
	out := DefaultSettings(ft)
	if doc == nil {
		return out
	}

	out.BaseTemplate = ResolveBaseTemplate(doc.BaseTemplate, ft)
	mergePalette(&out.Palette, doc.Palette)
	mergeOptions(&out.Options, doc.Options)

	if doc.Layout == nil {
		return out
	}
	mergeSections(&out.Layout.Sections, doc.Layout.Sections)
	out.Layout.Columns = mergeColumns(out.Layout.Columns, doc.Layout.Columns)
	out.Layout.HeaderNotes = mergeHeaderNotes(out.Layout.HeaderNotes, doc.Layout.HeaderNotes)
	if len(doc.Layout.Placements) > 0 {
		out.Layout.Placements = normalizePlacements(doc.Layout.Placements)
	}
	if len(doc.Layout.BodyBlocks) > 0 {
		out.Layout.BodyBlocks = normalizeBodyBlocks(doc.Layout.BodyBlocks)
	}
	return out
}

func mergePalette(dst *Palette, patch *PalettePatch) {
	if patch == nil {
		return
	}
	if patch.HeaderBackground != nil {
		dst.HeaderBackground = *patch.HeaderBackground
	}
	if patch.TableHeaderBackground != nil {
		dst.TableHeaderBackground = *patch.TableHeaderBackground
	}
	if patch.BorderColor != nil {
		dst.BorderColor = *patch.BorderColor
	}
	if patch.AccentColor != nil {
		dst.AccentColor = *patch.AccentColor
	}
}

func mergeOptions(dst *Options, patch *OptionsPatch) {
	if patch == nil {
		return
	}
	if patch.ShowCustomerIDColumn != nil {
		dst.ShowCustomerIDColumn = *patch.ShowCustomerIDColumn
	}
	if patch.SignatureStyle != nil {
		dst.SignatureStyle = *patch.SignatureStyle
	}
	if patch.LogoURL != nil {
		dst.LogoURL = *patch.LogoURL
	}
	if patch.FooterNotes != nil {
		dst.FooterNotes = append([]string(nil), patch.FooterNotes...)
	}
	if patch.CompanyDisplayName != nil {
		dst.CompanyDisplayName = *patch.CompanyDisplayName
	}
	if patch.CompanyTagline != nil {
		dst.CompanyTagline = *patch.CompanyTagline
	}
	if patch.CompanyWebsite != nil {
		dst.CompanyWebsite = *patch.CompanyWebsite
	}
}

func mergeSections(dst *SectionVisibility, flags map[string]bool) {
	for key, on := range flags {
		switch key {
		case "showBillTo":
			dst.ShowBillTo = on
		case "showShipTo":
			dst.ShowShipTo = on
		case "showCustomerInfo":
			dst.ShowCustomerInfo = on
		case "showDeliveryInfo":
			dst.ShowDeliveryInfo = on
		case "showDistributorInfo":
			dst.ShowDistributorInfo = on
		case "showComplianceNotice":
			dst.ShowComplianceNotice = on
		}
	}
}

// mergeColumns applies column patches in patch order. The patch list
// defines the resulting column order; ids outside the catalog are
// dropped, duplicate ids keep the first occurrence, and default
// columns the patch never mentions are appended after it in default
// order so a sparse patch cannot hide data it did not ask to hide.
func mergeColumns(defaults []Column, patches []ColumnPatch) []Column {
	if len(patches) == 0 {
		return defaults
	}
	byID := make(map[ColumnID]Column, len(defaults))
	for _, col := range defaults {
		byID[col.ID] = col
	}

	seen := make(map[ColumnID]bool, len(patches))
	out := make([]Column, 0, len(defaults))
	for _, patch := range patches {
		id := ColumnID(patch.ID)
		if !ColumnCatalog[id] || seen[id] {
			continue
		}
		seen[id] = true
		col := byID[id]
		col.ID = id
		if patch.Label != nil {
			col.Label = *patch.Label
		}
		if patch.Width != nil {
			col.Width = *patch.Width
		}
		if patch.Align != nil {
			col.Align = *patch.Align
		}
		if patch.Enabled != nil {
			col.Enabled = *patch.Enabled
		}
		out = append(out, col)
	}
	for _, col := range defaults {
		if !seen[col.ID] {
			out = append(out, col)
		}
	}
	if len(out) == 0 {
		return defaults
	}
	return out
}

// mergeHeaderNotes patches default notes by id and appends novel ones.
// A patched note with no placement keeps the default's placement, or
// beforeTable when it is entirely new.
func mergeHeaderNotes(defaults []HeaderNote, patches []HeaderNotePatch) []HeaderNote {
	if len(patches) == 0 {
		return defaults
	}
	out := append([]HeaderNote(nil), defaults...)
	index := make(map[string]int, len(out))
	for i, note := range out {
		index[note.ID] = i
	}
	for _, patch := range patches {
		i, ok := index[patch.ID]
		if !ok {
			note := HeaderNote{ID: patch.ID, Placement: NoteBeforeTable}
			applyNotePatch(&note, patch)
			index[patch.ID] = len(out)
			out = append(out, note)
			continue
		}
		applyNotePatch(&out[i], patch)
	}
	return out
}

func applyNotePatch(note *HeaderNote, patch HeaderNotePatch) {
	if patch.Label != nil {
		note.Label = *patch.Label
	}
	if patch.Text != nil {
		note.Text = *patch.Text
	}
	if patch.Enabled != nil {
		note.Enabled = *patch.Enabled
	}
	if patch.Placement != nil {
		note.Placement = *patch.Placement
	}
}

// normalizePlacements drops duplicate sections (first wins) and sorts
// stably by order within the input sequence.
func normalizePlacements(in []SectionPlacement) []SectionPlacement {
	seen := make(map[SectionKey]bool, len(in))
	out := make([]SectionPlacement, 0, len(in))
	for _, pl := range in {
		if seen[pl.Section] {
			continue
		}
		seen[pl.Section] = true
		out = append(out, pl)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func normalizeBodyBlocks(in []BodyBlock) []BodyBlock {
	seen := make(map[BodyBlockID]bool, len(in))
	out := make([]BodyBlock, 0, len(in))
	for _, blk := range in {
		if seen[blk.ID] {
			continue
		}
		seen[blk.ID] = true
		out = append(out, blk)
	}
	if len(out) == 0 {
		return defaultBodyBlocks()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// SectionBuckets groups the sections that should actually render,
// placed into their layout regions in placement order.
type SectionBuckets struct {
	HeaderLeft  []SectionKey
	HeaderRight []SectionKey
	FullWidth   []SectionKey
}

func (v SectionVisibility) visible(key SectionKey) bool {
	switch key {
	case SectionBillTo:
		return v.ShowBillTo
	case SectionShipTo:
		return v.ShowShipTo
	case SectionCustomerInfo:
		return v.ShowCustomerInfo
	case SectionDeliveryInfo:
		return v.ShowDeliveryInfo
	case SectionDistributorInfo:
		return v.ShowDistributorInfo
	default:
		return false
	}
}

// VisibleSectionBuckets intersects placement with visibility: a section
// renders only when it is placed and its visibility flag is on.
func VisibleSectionBuckets(layout Layout) SectionBuckets {
	var buckets SectionBuckets
	for _, pl := range layout.Placements {
		if !layout.Sections.visible(pl.Section) {
			continue
		}
		switch pl.Bucket {
		case BucketHeaderLeft:
			buckets.HeaderLeft = append(buckets.HeaderLeft, pl.Section)
		case BucketHeaderRight:
			buckets.HeaderRight = append(buckets.HeaderRight, pl.Section)
		case BucketFullWidth:
			buckets.FullWidth = append(buckets.FullWidth, pl.Section)
		}
	}
	return buckets
}

// BodyBlockOrder returns the body block ids in render order. An empty
// layout falls back to totals, signature, compliance.
func BodyBlockOrder(layout Layout) []BodyBlockID {
	blocks := layout.BodyBlocks
	if len(blocks) == 0 {
		blocks = defaultBodyBlocks()
	}
	sorted := append([]BodyBlock(nil), blocks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	out := make([]BodyBlockID, len(sorted))
	for i, blk := range sorted {
		out[i] = blk.ID
	}
	return out
}

// EnabledColumns filters the layout's columns to the enabled ones in
// order.
func EnabledColumns(layout Layout) []Column {
	out := make([]Column, 0, len(layout.Columns))
	for _, col := range layout.Columns {
		if col.Enabled {
			out = append(out, col)
		}
	}
	return out
}

// NotesAt returns the enabled header notes pinned to a placement, in
// layout order.
func NotesAt(layout Layout, placement NotePlacement) []HeaderNote {
	var out []HeaderNote
	for _, note := range layout.HeaderNotes {
		if note.Enabled && note.Placement == placement {
			out = append(out, note)
		}
	}
	return out
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ConfigDocument is the partial customization a tenant persists. Every
// field is optional; absent fields fall back to the format defaults
// during merge. Decoding is strict: unknown top-level or nested object
// keys fail validation, and a document that fails validation is
// discarded wholesale in favor of the defaults.
type ConfigDocument struct {
	BaseTemplate *BaseTemplate  `json:"baseTemplate,omitempty"`
	Palette      *PalettePatch  `json:"palette,omitempty"`
	Options      *OptionsPatch  `json:"options,omitempty"`
	Layout       *LayoutPatch   `json:"layout,omitempty"`
}

// PalettePatch overrides individual palette colors.
type PalettePatch struct {
	HeaderBackground      *string `json:"headerBackground,omitempty"`
	TableHeaderBackground *string `json:"tableHeaderBackground,omitempty"`
	BorderColor           *string `json:"borderColor,omitempty"`
	AccentColor           *string `json:"accentColor,omitempty"`
}

// OptionsPatch overrides individual option fields.
type OptionsPatch struct {
	ShowCustomerIDColumn *bool           `json:"showCustomerIdColumn,omitempty"`
	SignatureStyle       *SignatureStyle `json:"signatureStyle,omitempty"`
	LogoURL              *string         `json:"logoUrl,omitempty"`
	FooterNotes          []string        `json:"footerNotes,omitempty"`
	CompanyDisplayName   *string         `json:"companyDisplayName,omitempty"`
	CompanyTagline       *string         `json:"companyTagline,omitempty"`
	CompanyWebsite       *string         `json:"companyWebsite,omitempty"`
}

// LayoutPatch overrides pieces of the layout. Columns and header notes
// are keyed by id and merged entry-wise against the defaults; section
// flags are overridden per key.
type LayoutPatch struct {
	Sections    map[string]bool    `json:"sections,omitempty"`
	Columns     []ColumnPatch      `json:"columns,omitempty"`
	HeaderNotes []HeaderNotePatch  `json:"headerNotes,omitempty"`
	Placements  []SectionPlacement `json:"placements,omitempty"`
	BodyBlocks  []BodyBlock        `json:"bodyBlocks,omitempty"`
}

// ColumnPatch overrides one column by id. Fields left nil keep the
// default column's value.
type ColumnPatch struct {
	ID      string  `json:"id"`
	Label   *string `json:"label,omitempty"`
	Width   *int    `json:"width,omitempty"`
	Align   *Align  `json:"align,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// HeaderNotePatch overrides or adds one header note by id.
type HeaderNotePatch struct {
	ID        string         `json:"id"`
	Label     *string        `json:"label,omitempty"`
	Text      *string        `json:"text,omitempty"`
	Enabled   *bool          `json:"enabled,omitempty"`
	Placement *NotePlacement `json:"placement,omitempty"`
}

var sectionFlagKeys = map[string]bool{
	"showBillTo":           true,
	"showShipTo":           true,
	"showCustomerInfo":     true,
	"showDeliveryInfo":     true,
	"showDistributorInfo":  true,
	"showComplianceNotice": true,
}

// DecodeConfigDocument strictly decodes a persisted document blob. A
// nil error means the document is structurally valid; the caller still
// runs it through Merge, which drops unknown column ids on its own.
func DecodeConfigDocument(raw []byte) (*ConfigDocument, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return &ConfigDocument{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var doc ConfigDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode template config: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks every enum-valued field against its vocabulary.
func (d *ConfigDocument) Validate() error {
	if d.BaseTemplate != nil {
		switch *d.BaseTemplate {
		case BaseStandard, BaseVAInState, BaseVAInStateCondensed, BaseVATaxExempt:
		default:
			return fmt.Errorf("%w: base template %q", ErrInvalidConfig, *d.BaseTemplate)
		}
	}
	if d.Options != nil && d.Options.SignatureStyle != nil {
		switch *d.Options.SignatureStyle {
		case SignatureLine, SignatureBlock, SignatureNone:
		default:
			return fmt.Errorf("%w: signature style %q", ErrInvalidConfig, *d.Options.SignatureStyle)
		}
	}
	if d.Layout == nil {
		return nil
	}
	for key := range d.Layout.Sections {
		if !sectionFlagKeys[key] {
			return fmt.Errorf("%w: section flag %q", ErrInvalidConfig, key)
		}
	}
	for _, col := range d.Layout.Columns {
		if col.ID == "" {
			return fmt.Errorf("%w: column without id", ErrInvalidConfig)
		}
		if col.Align != nil {
			switch *col.Align {
			case AlignLeft, AlignCenter, AlignRight:
			default:
				return fmt.Errorf("%w: column align %q", ErrInvalidConfig, *col.Align)
			}
		}
		if col.Width != nil && *col.Width < 0 {
			return fmt.Errorf("%w: column width %d", ErrInvalidConfig, *col.Width)
		}
	}
	for _, note := range d.Layout.HeaderNotes {
		if note.ID == "" {
			return fmt.Errorf("%w: header note without id", ErrInvalidConfig)
		}
		if note.Placement != nil {
			switch *note.Placement {
			case NoteBeforeHeader, NoteAfterHeader, NoteBeforeTable, NoteAfterTable:
			default:
				return fmt.Errorf("%w: note placement %q", ErrInvalidConfig, *note.Placement)
			}
		}
	}
	for _, pl := range d.Layout.Placements {
		switch pl.Section {
		case SectionBillTo, SectionShipTo, SectionCustomerInfo, SectionDeliveryInfo, SectionDistributorInfo:
		default:
			return fmt.Errorf("%w: placement section %q", ErrInvalidConfig, pl.Section)
		}
		switch pl.Bucket {
		case BucketHeaderLeft, BucketHeaderRight, BucketFullWidth:
		default:
			return fmt.Errorf("%w: placement bucket %q", ErrInvalidConfig, pl.Bucket)
		}
	}
	for _, blk := range d.Layout.BodyBlocks {
		switch blk.ID {
		case BlockTotals, BlockSignature, BlockCompliance:
		default:
			return fmt.Errorf("%w: body block %q", ErrInvalidConfig, blk.ID)
		}
	}
	return nil
}

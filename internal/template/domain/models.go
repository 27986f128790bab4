// Package domain defines the per-tenant, per-format invoice template
// configuration: the persisted partial config, the fully resolved
// settings handed to renderers, and the layout vocabulary both share.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wellcrafted/invoicing/internal/format"
	"gorm.io/datatypes"
)

// BaseTemplate selects one of the four renderable document layouts.
// It is chosen independently of the canonical format type and
// reconciled against it by ResolveBaseTemplate.
type BaseTemplate string

const (
	BaseStandard           BaseTemplate = "STANDARD"
	BaseVAInState          BaseTemplate = "VA_ABC_IN_STATE"
	BaseVAInStateCondensed BaseTemplate = "VA_ABC_IN_STATE_CONDENSED"
	BaseVATaxExempt        BaseTemplate = "VA_ABC_TAX_EXEMPT"
)

// ColumnID identifies a line-item column. The catalog is fixed;
// persisted ids outside it are dropped silently during merge.
type ColumnID string

const (
	ColQuantity        ColumnID = "quantity"
	ColCases           ColumnID = "cases"
	ColTotalBottles    ColumnID = "totalBottles"
	ColSize            ColumnID = "size"
	ColCode            ColumnID = "code"
	ColABCCode         ColumnID = "abcCode"
	ColSKU             ColumnID = "sku"
	ColProductName     ColumnID = "productName"
	ColProductCategory ColumnID = "productCategory"
	ColDescription     ColumnID = "description"
	ColLiters          ColumnID = "liters"
	ColUnitPrice       ColumnID = "unitPrice"
	ColBottlePrice     ColumnID = "bottlePrice"
	ColLineTotal       ColumnID = "lineTotal"
)

// ColumnCatalog is the set of valid column ids.
var ColumnCatalog = map[ColumnID]bool{
	ColQuantity: true, ColCases: true, ColTotalBottles: true,
	ColSize: true, ColCode: true, ColABCCode: true, ColSKU: true,
	ColProductName: true, ColProductCategory: true, ColDescription: true,
	ColLiters: true, ColUnitPrice: true, ColBottlePrice: true,
	ColLineTotal: true,
}

// Align is a column text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Column is one typed line-item column.
type Column struct {
	ID      ColumnID `json:"id"`
	Label   string   `json:"label"`
	Width   int      `json:"width"` // percent of table width
	Align   Align    `json:"align"`
	Enabled bool     `json:"enabled"`
}

// SectionVisibility holds the six section flags.
type SectionVisibility struct {
	ShowBillTo           bool `json:"showBillTo"`
	ShowShipTo           bool `json:"showShipTo"`
	ShowCustomerInfo     bool `json:"showCustomerInfo"`
	ShowDeliveryInfo     bool `json:"showDeliveryInfo"`
	ShowDistributorInfo  bool `json:"showDistributorInfo"`
	ShowComplianceNotice bool `json:"showComplianceNotice"`
}

// SectionKey names a placeable header section.
type SectionKey string

const (
	SectionBillTo          SectionKey = "billTo"
	SectionShipTo          SectionKey = "shipTo"
	SectionCustomerInfo    SectionKey = "customerInfo"
	SectionDeliveryInfo    SectionKey = "deliveryInfo"
	SectionDistributorInfo SectionKey = "distributorInfo"
)

// Bucket is a layout region a section can be placed into.
type Bucket string

const (
	BucketHeaderLeft  Bucket = "headerLeft"
	BucketHeaderRight Bucket = "headerRight"
	BucketFullWidth   Bucket = "fullWidth"
)

// SectionPlacement maps a section into a bucket with explicit
// ordering. Placement and visibility are orthogonal; both must hold
// for the section to render.
type SectionPlacement struct {
	Section SectionKey `json:"section"`
	Bucket  Bucket     `json:"bucket"`
	Order   int        `json:"order"`
}

// NotePlacement is one of the four header-note insertion points.
type NotePlacement string

const (
	NoteBeforeHeader NotePlacement = "beforeHeader"
	NoteAfterHeader  NotePlacement = "afterHeader"
	NoteBeforeTable  NotePlacement = "beforeTable"
	NoteAfterTable   NotePlacement = "afterTable"
)

// HeaderNote is an optional free-text note pinned to an insertion
// point.
type HeaderNote struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	Text      string        `json:"text"`
	Enabled   bool          `json:"enabled"`
	Placement NotePlacement `json:"placement"`
}

// BodyBlockID identifies a vertically ordered body block.
type BodyBlockID string

const (
	BlockTotals     BodyBlockID = "totals"
	BlockSignature  BodyBlockID = "signature"
	BlockCompliance BodyBlockID = "compliance"
)

// BodyBlock carries the explicit vertical ordering of a body block.
type BodyBlock struct {
	ID    BodyBlockID `json:"id"`
	Order int         `json:"order"`
}

// Layout is the resolved document layout.
type Layout struct {
	Sections    SectionVisibility  `json:"sections"`
	Columns     []Column           `json:"columns"`
	HeaderNotes []HeaderNote       `json:"headerNotes"`
	Placements  []SectionPlacement `json:"placements"`
	BodyBlocks  []BodyBlock        `json:"bodyBlocks"`
}

// Palette is the four-color scheme of a rendered document.
type Palette struct {
	HeaderBackground      string `json:"headerBackground"`
	TableHeaderBackground string `json:"tableHeaderBackground"`
	BorderColor           string `json:"borderColor"`
	AccentColor           string `json:"accentColor"`
}

// SignatureStyle selects how the signature block renders.
type SignatureStyle string

const (
	SignatureLine  SignatureStyle = "line"
	SignatureBlock SignatureStyle = "block"
	SignatureNone  SignatureStyle = "none"
)

// Options are the non-layout toggles and branding fields.
type Options struct {
	ShowCustomerIDColumn bool           `json:"showCustomerIdColumn"`
	SignatureStyle       SignatureStyle `json:"signatureStyle"`
	LogoURL              string         `json:"logoUrl"`
	FooterNotes          []string       `json:"footerNotes"`
	CompanyDisplayName   string         `json:"companyDisplayName"`
	CompanyTagline       string         `json:"companyTagline"`
	CompanyWebsite       string         `json:"companyWebsite"`
}

// Settings is the fully resolved template configuration a renderer
// consumes. It is always complete: every merge path guarantees a
// non-empty column list and at least one header note.
type Settings struct {
	BaseTemplate BaseTemplate `json:"baseTemplate"`
	Palette      Palette      `json:"palette"`
	Options      Options      `json:"options"`
	Layout       Layout       `json:"layout"`
}

// TemplateConfig is the persisted per-(tenant, format) config row. The
// Document blob holds the tenant's partial customization as
// schema-validated JSON; it is never read into the render path without
// passing through the merge.
type TemplateConfig struct {
	ID       snowflake.ID   `gorm:"primaryKey"`
	TenantID snowflake.ID   `gorm:"column:tenant_id;not null;uniqueIndex:ux_template_config_scope,priority:1"`
	Format   format.Type    `gorm:"type:text;not null;uniqueIndex:ux_template_config_scope,priority:2"`
	Document datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TemplateConfig) TableName() string { return "invoice_template_configs" }

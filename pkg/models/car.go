package models

import "strings"

// Ownership records how many copies of a car are in the collection.
type Ownership struct {
	Quantity int `json:"quantity"`
}

// Car is the normalized, internal form of a catalog entry.
//
// Raw catalog documents are decoded into this structure first (see
// UnmarshalJSON); everything downstream only ever reads the canonical fields.
type Car struct {
	Name          string    `json:"name"`
	Model         string    `json:"model,omitempty"`     // grouping key shared by variants
	VariantID     string    `json:"variantId"`           // unique per variant
	Images        []string  `json:"images"`              // never a comma-joined string
	FeaturedImage string    `json:"featuredImage,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Series        string    `json:"series,omitempty"`
	Manufacturer  string    `json:"manufacturer,omitempty"`
	Year          string    `json:"year,omitempty"`
	Colour        string    `json:"colour,omitempty"`
	Serial        string    `json:"serial,omitempty"` // display value; see ParseSerial
	VehicleType   string    `json:"vehicleType,omitempty"`
	Scale         string    `json:"scale,omitempty"`
	Ownership     Ownership `json:"ownership"`
	Featured      bool      `json:"featured,omitempty"`
	TreasureHunt  bool      `json:"isTreasurehunt,omitempty"`
	Gifter        string    `json:"gifter,omitempty"`
	Description   string    `json:"description,omitempty"`
}

// Quantity returns the owned quantity, never less than one.
func (c Car) Quantity() int {
	if c.Ownership.Quantity < 1 {
		return 1
	}
	return c.Ownership.Quantity
}

// BestImage picks the image shown on cards: the featured image first,
// then the first gallery image.
func (c Car) BestImage() string {
	if c.FeaturedImage != "" {
		return c.FeaturedImage
	}
	if len(c.Images) > 0 {
		return c.Images[0]
	}
	return ""
}

// VariantLabel is the short label of a variant badge, e.g. "Red · 2021".
func (c Car) VariantLabel() string {
	parts := make([]string, 0, 2)
	if c.Colour != "" {
		parts = append(parts, c.Colour)
	}
	if c.Year != "" {
		parts = append(parts, c.Year)
	}
	return strings.Join(parts, " · ")
}

// SerialValue parses the display serial. See ParseSerial.
func (c Car) SerialValue() (int64, bool) {
	return ParseSerial(c.Serial)
}

// Clone returns a copy that shares no slices with c.
func (c Car) Clone() Car {
	if c.Images != nil {
		c.Images = append([]string(nil), c.Images...)
	}
	return c
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Source documents are hand edited, so the same field shows up under several
// spellings. The first alias holding a non-empty value wins.
var (
	nameKeys         = []string{"name", "Name"}
	modelKeys        = []string{"model", "Model"}
	variantKeys      = []string{"variantId", "VariantId", "variantID", "variant_id"}
	imagesKeys       = []string{"images", "Images"}
	imageKeys        = []string{"image", "Image"}
	featuredImgKeys  = []string{"featuredImage", "FeaturedImage"}
	brandKeys        = []string{"brand", "Brand"}
	seriesKeys       = []string{"series", "Series"}
	manufacturerKeys = []string{"Manufacture", "manufacture", "manufacturer", "Manufacturer"}
	yearKeys         = []string{"year", "Year"}
	colourKeys       = []string{"Colour", "colour", "Color", "color"}
	serialKeys       = []string{"serial", "Serial", "serialNumber", "SerialNumber"}
	vehicleTypeKeys  = []string{"VehicleType", "vehicleType"}
	scaleKeys        = []string{"Scale", "scale"}
	ownershipKeys    = []string{"ownership", "Ownership"}
	quantityKeys     = []string{"quantity", "Quantity"}
	featuredKeys     = []string{"featured", "Featured", "isFeatured"}
	treasureKeys     = []string{"isTreasurehunt", "IsTreasurehunt", "isTreasureHunt"}
	gifterKeys       = []string{"Gifter", "gifter"}
	descriptionKeys  = []string{"description", "Description"}
)

// MaxQuantity bounds decoded quantities so huge or infinite values stay
// positive after the conversion to int.
const MaxQuantity = math.MaxInt32

var variantNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("garagehub/variant"))

// UnmarshalJSON decodes a raw catalog entry, merging key spelling variants
// into the canonical fields. Malformed values fall back to zero values
// instead of failing the entry.
func (c *Car) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode car: %w", err)
	}

	*c = Car{
		Name:          firstString(raw, nameKeys),
		Model:         firstString(raw, modelKeys),
		VariantID:     firstString(raw, variantKeys),
		Images:        decodeImages(raw),
		FeaturedImage: firstString(raw, featuredImgKeys),
		Brand:         firstString(raw, brandKeys),
		Series:        firstString(raw, seriesKeys),
		Manufacturer:  firstString(raw, manufacturerKeys),
		Year:          firstString(raw, yearKeys),
		Colour:        firstString(raw, colourKeys),
		Serial:        firstString(raw, serialKeys),
		VehicleType:   firstString(raw, vehicleTypeKeys),
		Scale:         firstString(raw, scaleKeys),
		Ownership:     Ownership{Quantity: decodeQuantity(raw)},
		Featured:      firstFlag(raw, featuredKeys),
		TreasureHunt:  firstFlag(raw, treasureKeys),
		Gifter:        firstString(raw, gifterKeys),
		Description:   firstString(raw, descriptionKeys),
	}
	return nil
}

// DeriveVariantID builds a stable identifier for an entry that has none.
// The same document always yields the same identifiers.
func DeriveVariantID(c Car, position int) string {
	key := fmt.Sprintf("%s|%s|%s|%d", c.Model, c.Name, c.Serial, position)
	return uuid.NewSHA1(variantNamespace, []byte(key)).String()
}

// SplitImages turns "a.jpg, b.jpg" into ["a.jpg", "b.jpg"].
func SplitImages(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func decodeImages(raw map[string]json.RawMessage) []string {
	for _, k := range imagesKeys {
		v, ok := raw[k]
		if !ok {
			continue
		}

		var list []json.RawMessage
		if err := json.Unmarshal(v, &list); err == nil {
			out := []string{}
			for _, item := range list {
				if s, ok := scalarString(item); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
			continue
		}

		if s, ok := scalarString(v); ok {
			if out := SplitImages(s); len(out) > 0 {
				return out
			}
		}
	}

	if single := firstString(raw, imageKeys); single != "" {
		return []string{single}
	}
	return []string{}
}

func decodeQuantity(raw map[string]json.RawMessage) int {
	for _, k := range ownershipKeys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		var own map[string]json.RawMessage
		if err := json.Unmarshal(v, &own); err != nil {
			continue
		}
		s := firstString(own, quantityKeys)
		if s == "" {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || f < 1 {
			return 1
		}
		return int(min(f, MaxQuantity))
	}
	return 1
}

func firstString(raw map[string]json.RawMessage, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstFlag(raw map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			if b {
				return true
			}
			continue
		}
		if s, ok := scalarString(v); ok {
			if strings.EqualFold(s, "true") || s == "1" {
				return true
			}
		}
	}
	return false
}

// scalarString reads a JSON string or number as trimmed text.
func scalarString(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s), true
	}

	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err == nil {
		return n.String(), true
	}
	return "", false
}

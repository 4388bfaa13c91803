package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"garagehub/pkg/models"
)

var (
	// ErrEmptySource is returned when the source yields no bytes.
	ErrEmptySource = errors.New("catalog source is empty")
	// ErrInvalidDocument is returned when the document is not an array of
	// objects. Individual malformed fields never cause it.
	ErrInvalidDocument = errors.New("invalid catalog document")
)

const documentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {"type": "object"}
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// DecodeOptions tune normalization.
type DecodeOptions struct {
	// QuantityCap clamps ownership quantities; zero means no cap.
	QuantityCap int
}

// Decode validates the document shape and normalizes every entry. Entries
// without a variant id get a deterministic one.
func Decode(data []byte, opts DecodeOptions) ([]models.Car, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySource
	}

	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}

	var cars []models.Car
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	seen := make(map[string]struct{}, len(cars))
	for i := range cars {
		c := &cars[i]
		if c.VariantID == "" {
			c.VariantID = models.DeriveVariantID(*c, i)
		}
		if _, dup := seen[c.VariantID]; dup {
			c.VariantID = models.DeriveVariantID(*c, i)
		}
		seen[c.VariantID] = struct{}{}

		if opts.QuantityCap > 0 && c.Ownership.Quantity > opts.QuantityCap {
			c.Ownership.Quantity = opts.QuantityCap
		}
	}
	if cars == nil {
		cars = []models.Car{}
	}
	return cars, nil
}

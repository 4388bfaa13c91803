package models

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarUnmarshalAliases(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected Car
	}{
		{
			name: "canonical keys",
			json: `{
				"name": "Skyline GT-R",
				"model": "R34",
				"variantId": "r34-blue",
				"images": ["a.jpg", " b.jpg ", ""],
				"brand": "Hot Wheels",
				"series": "J-Imports",
				"manufacturer": "Nissan",
				"year": 2021,
				"colour": "Blue",
				"serial": "HW-123",
				"ownership": {"quantity": 2},
				"featured": true,
				"isTreasurehunt": "true",
				"gifter": "Sam",
				"description": "  Bayside blue  "
			}`,
			expected: Car{
				Name:         "Skyline GT-R",
				Model:        "R34",
				VariantID:    "r34-blue",
				Images:       []string{"a.jpg", "b.jpg"},
				Brand:        "Hot Wheels",
				Series:       "J-Imports",
				Manufacturer: "Nissan",
				Year:         "2021",
				Colour:       "Blue",
				Serial:       "HW-123",
				Ownership:    Ownership{Quantity: 2},
				Featured:     true,
				TreasureHunt: true,
				Gifter:       "Sam",
				Description:  "Bayside blue",
			},
		},
		{
			name: "capitalized keys and comma images",
			json: `{
				"Name": "Supra",
				"Brand": "Matchbox",
				"Series": "Moving Parts",
				"Manufacture": " Toyota ",
				"Colour": "Orange",
				"Serial": 42,
				"images": "one.jpg, two.jpg,,three.jpg",
				"Gifter": "Alex",
				"Featured": "TRUE"
			}`,
			expected: Car{
				Name:         "Supra",
				Images:       []string{"one.jpg", "two.jpg", "three.jpg"},
				Brand:        "Matchbox",
				Series:       "Moving Parts",
				Manufacturer: "Toyota",
				Colour:       "Orange",
				Serial:       "42",
				Ownership:    Ownership{Quantity: 1},
				Featured:     true,
				Gifter:       "Alex",
			},
		},
		{
			name: "missing fields fall back to defaults",
			json: `{"name": "Mystery", "ownership": {"quantity": "zero"}, "isTreasurehunt": false}`,
			expected: Car{
				Name:      "Mystery",
				Images:    []string{},
				Ownership: Ownership{Quantity: 1},
			},
		},
		{
			name: "huge quantity is clamped",
			json: `{"name": "Hoard", "ownership": {"quantity": 1e20}}`,
			expected: Car{
				Name:      "Hoard",
				Images:    []string{},
				Ownership: Ownership{Quantity: MaxQuantity},
			},
		},
		{
			name: "NaN quantity falls back to one",
			json: `{"name": "Ghost", "ownership": {"quantity": "NaN"}}`,
			expected: Car{
				Name:      "Ghost",
				Images:    []string{},
				Ownership: Ownership{Quantity: 1},
			},
		},
		{
			name: "single image key",
			json: `{"name": "Beetle", "image": "beetle.png", "SerialNumber": "7/250", "isTreasurehunt": 1}`,
			expected: Car{
				Name:         "Beetle",
				Images:       []string{"beetle.png"},
				Serial:       "7/250",
				Ownership:    Ownership{Quantity: 1},
				TreasureHunt: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Car
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCarUnmarshalRejectsNonObject(t *testing.T) {
	var c Car
	assert.Error(t, json.Unmarshal([]byte(`["not", "a", "car"]`), &c))
}

func TestCarRoundTripKeepsCanonicalFields(t *testing.T) {
	in := Car{
		Name:         "Civic",
		Model:        "EK9",
		VariantID:    "ek9-white",
		Images:       []string{"x.jpg"},
		Manufacturer: "Honda",
		Serial:       "12",
		Ownership:    Ownership{Quantity: 3},
		TreasureHunt: true,
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Car
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestParseSerial(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"123", 123, true},
		{"HW-045/250", 45, true},
		{"  9 ", 9, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSerial(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseSerialIdempotent(t *testing.T) {
	for _, s := range []string{"HW-045/250", "7", "#0012", "A1B2"} {
		first, ok := ParseSerial(s)
		require.True(t, ok, s)
		second, ok := ParseSerial(strconv.FormatInt(first, 10))
		require.True(t, ok)
		assert.Equal(t, first, second, s)
	}
}

func TestCarHelpers(t *testing.T) {
	c := Car{Images: []string{"a.jpg", "b.jpg"}, Colour: "Red", Year: "2020"}
	assert.Equal(t, "a.jpg", c.BestImage())
	assert.Equal(t, "Red · 2020", c.VariantLabel())
	assert.Equal(t, 1, c.Quantity())

	c.FeaturedImage = "hero.jpg"
	assert.Equal(t, "hero.jpg", c.BestImage())

	clone := c.Clone()
	clone.Images[0] = "changed.jpg"
	assert.Equal(t, "a.jpg", c.Images[0])

	assert.Equal(t, "2020", Car{Year: "2020"}.VariantLabel())
}

func TestDeriveVariantIDStable(t *testing.T) {
	c := Car{Name: "Supra", Model: "A80", Serial: "5"}
	a := DeriveVariantID(c, 3)
	b := DeriveVariantID(c, 3)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, DeriveVariantID(c, 4))
}

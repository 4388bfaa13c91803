package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"garagehub/pkg/models"
)

// CSVColumns is the header written by WriteCSV. ReadCSV accepts the same
// names in any order and case; missing columns are left empty.
var CSVColumns = []string{
	"variant_id", "name", "model", "brand", "series", "manufacturer", "year", "colour",
	"serial", "vehicle_type", "scale", "quantity", "featured", "treasure_hunt", "gifter",
	"featured_image", "images", "description",
}

// ReadCSV reads a spreadsheet export. Rows without a name are skipped.
// Images are comma-joined in a single cell.
func ReadCSV(r io.Reader) ([]models.Car, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	cars := []models.Car{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		get := func(key string) string { return valueAt(header, row, key) }

		name := get("name")
		if name == "" {
			continue
		}
		qty, _ := strconv.Atoi(get("quantity"))
		cars = append(cars, models.Car{
			VariantID:     get("variant_id"),
			Name:          name,
			Model:         get("model"),
			Brand:         get("brand"),
			Series:        get("series"),
			Manufacturer:  get("manufacturer"),
			Year:          get("year"),
			Colour:        get("colour"),
			Serial:        get("serial"),
			VehicleType:   get("vehicle_type"),
			Scale:         get("scale"),
			Ownership:     models.Ownership{Quantity: qty},
			Featured:      parseFlag(get("featured")),
			TreasureHunt:  parseFlag(get("treasure_hunt")),
			Gifter:        get("gifter"),
			FeaturedImage: get("featured_image"),
			Images:        models.SplitImages(get("images")),
			Description:   get("description"),
		})
	}
	return cars, nil
}

// WriteCSV writes cars with the CSVColumns header.
func WriteCSV(w io.Writer, cars []models.Car) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVColumns); err != nil {
		return err
	}
	for _, c := range cars {
		qty := ""
		if c.Ownership.Quantity > 0 {
			qty = strconv.Itoa(c.Ownership.Quantity)
		}
		if err := cw.Write([]string{
			c.VariantID, c.Name, c.Model, c.Brand, c.Series, c.Manufacturer, c.Year, c.Colour,
			c.Serial, c.VehicleType, c.Scale, qty, formatFlag(c.Featured), formatFlag(c.TreasureHunt), c.Gifter,
			c.FeaturedImage, strings.Join(c.Images, ","), c.Description,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "x":
		return true
	}
	return false
}

func formatFlag(b bool) string {
	if b {
		return "true"
	}
	return ""
}

package loader

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"garagehub/pkg/models"
)

// Merge fetches every source and merges the documents into one catalog.
// Entries describing the same car (same normalized name, model, serial and
// colour) are combined; the first occurrence keeps its position and variant
// id. A failing source is logged and skipped; Merge only fails when no
// source could be read.
func Merge(ctx context.Context, opts DecodeOptions, sources ...Source) ([]models.Car, error) {
	var (
		out   []models.Car
		index = map[string]int{}
		errs  []error
		read  int
	)
	for _, src := range sources {
		log.Info().Str("component", "merge").Str("source", src.Name()).Msg("fetching")
		data, err := src.Fetch(ctx)
		if err == nil {
			var cars []models.Car
			cars, err = Decode(data, opts)
			if err == nil {
				read++
				for _, c := range cars {
					key := mergeKey(c)
					if i, ok := index[key]; ok {
						out[i] = mergeCar(out[i], c)
						continue
					}
					index[key] = len(out)
					out = append(out, c)
				}
				continue
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn().Err(err).Str("component", "merge").Str("source", src.Name()).Msg("source skipped")
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}
	if read == 0 && len(sources) > 0 {
		return nil, errors.Join(errs...)
	}
	if out == nil {
		out = []models.Car{}
	}
	return out, nil
}

func mergeKey(c models.Car) string {
	return strings.Join([]string{
		normalizeKey(c.Name), normalizeKey(c.Model), normalizeKey(c.Serial), normalizeKey(c.Colour),
	}, "|")
}

// normalizeKey lowercases s, keeps letters and digits and collapses
// everything else to single spaces.
func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// mergeCar fills base's empty fields from incoming. Images are unioned,
// the larger quantity and the longer description win, and flags are ORed.
func mergeCar(base, incoming models.Car) models.Car {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&base.Model, incoming.Model)
	fill(&base.FeaturedImage, incoming.FeaturedImage)
	fill(&base.Brand, incoming.Brand)
	fill(&base.Series, incoming.Series)
	fill(&base.Manufacturer, incoming.Manufacturer)
	fill(&base.Year, incoming.Year)
	fill(&base.VehicleType, incoming.VehicleType)
	fill(&base.Scale, incoming.Scale)
	fill(&base.Gifter, incoming.Gifter)

	for _, img := range incoming.Images {
		if !slices.Contains(base.Images, img) {
			base.Images = append(base.Images, img)
		}
	}
	if incoming.Ownership.Quantity > base.Ownership.Quantity {
		base.Ownership.Quantity = incoming.Ownership.Quantity
	}
	if len(incoming.Description) > len(base.Description) {
		base.Description = incoming.Description
	}
	base.Featured = base.Featured || incoming.Featured
	base.TreasureHunt = base.TreasureHunt || incoming.TreasureHunt
	return base
}

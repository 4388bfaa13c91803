package hero

import "garagehub/pkg/models"

// DefaultSize is the number of cars on the Hall of Fame.
const DefaultSize = 3

// SelectHallOfFame picks the first size featured cars. When there are fewer,
// the list is padded with the first cars that are neither featured nor
// treasure hunts.
func SelectHallOfFame(cars []models.Car, size int) []models.Car {
	if size <= 0 {
		size = DefaultSize
	}
	out := make([]models.Car, 0, size)
	for _, c := range cars {
		if len(out) == size {
			return out
		}
		if c.Featured {
			out = append(out, c.Clone())
		}
	}
	for _, c := range cars {
		if len(out) == size {
			break
		}
		if !c.Featured && !c.TreasureHunt {
			out = append(out, c.Clone())
		}
	}
	return out
}

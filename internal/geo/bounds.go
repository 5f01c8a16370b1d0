package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

// ParseBound разбирает параметр bbox вида "minLon,minLat,maxLon,maxLat"
// (формат вьюпорта карточного виджета).
func ParseBound(raw string) (orb.Bound, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bbox должен содержать 4 числа, получено %d", len(parts))
	}

	nums := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bbox: некорректное число %q", p)
		}
		nums[i] = v
	}

	return orb.Bound{
		Min: orb.Point{nums[0], nums[1]},
		Max: orb.Point{nums[2], nums[3]},
	}, nil
}

// FilterByBound оставляет объекты, координаты которых попадают во вьюпорт.
// Объекты без координат (нулевая точка) отбрасываются.
func FilterByBound(list []model.Listing, bound orb.Bound) []model.Listing {
	out := make([]model.Listing, 0, len(list))
	for _, l := range list {
		if l.Coordinates == (orb.Point{}) {
			continue
		}
		if bound.Contains(l.Coordinates) {
			out = append(out, l)
		}
	}
	return out
}

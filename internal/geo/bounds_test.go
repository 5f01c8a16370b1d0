package geo

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

func TestParseBound(t *testing.T) {
	bound, err := ParseBound("74.5,42.8,74.7,42.92")
	if err != nil {
		t.Fatalf("ошибка разбора: %v", err)
	}
	if bound.Min != (orb.Point{74.5, 42.8}) || bound.Max != (orb.Point{74.7, 42.92}) {
		t.Errorf("получили %+v", bound)
	}
}

func TestParseBoundMalformed(t *testing.T) {
	for _, raw := range []string{"", "1,2,3", "1,2,3,4,5", "a,b,c,d"} {
		if _, err := ParseBound(raw); err == nil {
			t.Errorf("ParseBound(%q): ожидали ошибку", raw)
		}
	}
}

func TestFilterByBound(t *testing.T) {
	list := []model.Listing{
		{ID: 1, Coordinates: orb.Point{74.6, 42.87}},
		{ID: 2, Coordinates: orb.Point{75.5, 43.5}}, // вне вьюпорта
		{ID: 3},                                     // без координат
	}

	bound := orb.Bound{Min: orb.Point{74.5, 42.8}, Max: orb.Point{74.7, 42.92}}
	got := FilterByBound(list, bound)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("получили %+v", got)
	}
}

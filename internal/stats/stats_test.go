package stats

import (
	"testing"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

func TestByDistrictGroupsAndMedians(t *testing.T) {
	list := []model.Listing{
		{Type: model.TypeApartment, Price: 1000, Area: 10, Location: model.Location{District: "Центр"}},
		{Type: model.TypeApartment, Price: 3000, Area: 10, Location: model.Location{District: "Центр"}},
		{Type: model.TypeApartment, Price: 2000, Area: 10, Location: model.Location{District: "Центр"}},
		{Type: model.TypeHouse, Price: 9000, Area: 90, Location: model.Location{District: "Джал"}},
	}

	got := ByDistrict(list)
	if len(got) != 2 {
		t.Fatalf("ожидали 2 группы, получили %d: %+v", len(got), got)
	}

	// Сортировка детерминированная: Джал раньше Центра.
	if got[0].District != "Джал" || got[1].District != "Центр" {
		t.Errorf("порядок групп: %+v", got)
	}

	center := got[1]
	if center.Count != 3 {
		t.Errorf("count = %d, хотели 3", center.Count)
	}
	if center.MedianPrice != 2000 {
		t.Errorf("медиана = %v, хотели 2000", center.MedianPrice)
	}
	if center.MeanPrice != 2000 {
		t.Errorf("средняя = %v, хотели 2000", center.MeanPrice)
	}
	if center.MedianPricePerArea != 200 {
		t.Errorf("медиана за метр = %v, хотели 200", center.MedianPricePerArea)
	}
}

func TestByDistrictSkipsZeroAreaForPerMeter(t *testing.T) {
	list := []model.Listing{
		{Type: model.TypeCommercial, Price: 5000, Area: 0, Location: model.Location{District: "Центр"}},
	}

	got := ByDistrict(list)
	if len(got) != 1 {
		t.Fatalf("ожидали 1 группу, получили %d", len(got))
	}
	if got[0].MedianPricePerArea != 0 {
		t.Errorf("цена за метр при нулевой площади: %v", got[0].MedianPricePerArea)
	}
	if got[0].MedianPrice != 5000 {
		t.Errorf("медиана = %v, хотели 5000", got[0].MedianPrice)
	}
}

func TestByDistrictEmpty(t *testing.T) {
	if got := ByDistrict(nil); len(got) != 0 {
		t.Errorf("пустой каталог: %+v", got)
	}
}

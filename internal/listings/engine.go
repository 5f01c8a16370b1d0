// Package listings содержит общую логику фильтрации и сортировки каталога.
// Одна и та же реализация используется и HTTP-обработчиками, и любым другим
// потребителем — предикаты не дублируются.
package listings

import (
	"sort"
	"strconv"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

// FilterSpec — активные ограничения каталога. Пустое значение или "all"
// означает отсутствие ограничения.
type FilterSpec struct {
	Type     string
	District string
	MinPrice *float64
	MaxPrice *float64
}

// ParsePrice разбирает числовой фильтр из query-параметра. Некорректное
// значение трактуется как отсутствие ограничения.
func ParsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Filter возвращает объекты, удовлетворяющие всем активным предикатам,
// сохраняя исходный порядок.
func Filter(list []model.Listing, spec FilterSpec) []model.Listing {
	out := make([]model.Listing, 0, len(list))
	for _, l := range list {
		if spec.Type != "" && spec.Type != "all" && l.Type != spec.Type {
			continue
		}
		if spec.District != "" && spec.District != "all" && l.Location.District != spec.District {
			continue
		}
		if spec.MinPrice != nil && l.Price < *spec.MinPrice {
			continue
		}
		if spec.MaxPrice != nil && l.Price > *spec.MaxPrice {
			continue
		}
		out = append(out, l)
	}
	return out
}

type SortOrder string

const (
	SortNewest    SortOrder = "new" // по id, новые первыми
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortAreaAsc   SortOrder = "area_asc"
	SortAreaDesc  SortOrder = "area_desc"
)

// ParseSortOrder возвращает порядок сортировки по значению query-параметра;
// неизвестные значения дают сортировку "сначала новые".
func ParseSortOrder(raw string) SortOrder {
	switch SortOrder(raw) {
	case SortPriceAsc, SortPriceDesc, SortAreaAsc, SortAreaDesc:
		return SortOrder(raw)
	default:
		return SortNewest
	}
}

// Sort сортирует копию списка устойчиво: при равных ключах сохраняется
// исходный порядок.
func Sort(list []model.Listing, order SortOrder) []model.Listing {
	out := make([]model.Listing, len(list))
	copy(out, list)

	switch order {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortAreaAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Area < out[j].Area })
	case SortAreaDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Area > out[j].Area })
	default:
		// id монотонно растут, поэтому id по убыванию == сначала новые.
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	return out
}

// Districts возвращает список районов без дубликатов в порядке первого
// появления (для выпадающего списка фильтра).
func Districts(list []model.Listing) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, l := range list {
		d := l.Location.District
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Package stats считает сводную статистику цен по каталогу.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

type groupKey struct {
	District string
	Type     string
}

// DistrictStat — сводка по одной группе (район, тип объекта).
type DistrictStat struct {
	District           string  `json:"district"`
	Type               string  `json:"type"`
	Count              int     `json:"count"`
	MedianPrice        float64 `json:"medianPrice"`
	MeanPrice          float64 `json:"meanPrice"`
	MedianPricePerArea float64 `json:"medianPricePerArea"`
}

// ByDistrict группирует объекты по (район, тип) и считает медианную и среднюю
// цену, а также медианную цену за квадратный метр. Объекты с нулевой площадью
// не участвуют в расчете цены за метр.
func ByDistrict(list []model.Listing) []DistrictStat {
	prices := make(map[groupKey][]float64)
	perArea := make(map[groupKey][]float64)

	for _, l := range list {
		key := groupKey{District: l.Location.District, Type: l.Type}
		prices[key] = append(prices[key], l.Price)
		if l.Area > 0 {
			perArea[key] = append(perArea[key], l.Price/l.Area)
		}
	}

	out := make([]DistrictStat, 0, len(prices))
	for key, values := range prices {
		sort.Float64s(values)

		item := DistrictStat{
			District:    key.District,
			Type:        key.Type,
			Count:       len(values),
			MedianPrice: stat.Quantile(0.5, stat.Empirical, values, nil),
			MeanPrice:   stat.Mean(values, nil),
		}
		if pa := perArea[key]; len(pa) > 0 {
			sort.Float64s(pa)
			item.MedianPricePerArea = stat.Quantile(0.5, stat.Empirical, pa, nil)
		}
		out = append(out, item)
	}

	// Детерминированный порядок ответа.
	sort.Slice(out, func(i, j int) bool {
		if out[i].District != out[j].District {
			return out[i].District < out[j].District
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Генератор тестовых данных: пишет N случайных объектов в properties.json.
//
//	go run ./cmd/seed -n 30 -out properties.json
package main

import (
	"context"
	"flag"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/paulmach/orb"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
	"github.com/AdmiralGufi/real-estate-app/internal/repository"
)

var districts = []string{"Центр", "Асанбай", "Филармония", "Джал", "Восток-5", "Аламедин-1"}

var types = []string{model.TypeApartment, model.TypeHouse, model.TypeCommercial}

var features = []string{
	"Балкон", "Кондиционер", "Парковка", "Гараж", "Сад", "Теплый пол",
	"Панорамный вид", "Охрана", "Отдельный вход", "Подземный паркинг",
}

func main() {
	n := flag.Int("n", 20, "сколько объектов сгенерировать")
	out := flag.String("out", "properties.json", "куда писать")
	seed := flag.Int64("seed", 0, "seed генератора (0 — случайный)")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	repo := repository.NewFileRepository(*out)
	ctx := context.Background()

	for i := 0; i < *n; i++ {
		l := randomListing()
		if err := repo.Create(ctx, &l); err != nil {
			log.Fatalf("ошибка при записи объекта: %v", err)
		}
	}

	log.Printf("записано %d объектов в %s", *n, *out)
}

func randomListing() model.Listing {
	t := types[gofakeit.Number(0, len(types)-1)]
	district := districts[gofakeit.Number(0, len(districts)-1)]

	l := model.Listing{
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 3, 8, " "),
		Type:        t,
		Status:      "Продажа",
		Price:       float64(gofakeit.Number(2_000_000, 20_000_000)),
		Area:        float64(gofakeit.Number(30, 300)),
		Bedrooms:    gofakeit.Number(1, 5),
		Bathrooms:   gofakeit.Number(1, 3),
		Rooms:       gofakeit.Number(1, 6),
		Location: model.Location{
			District: district,
			Address:  gofakeit.Street(),
		},
		// Окрестности Бишкека.
		Coordinates: orb.Point{
			gofakeit.Float64Range(74.50, 74.70),
			gofakeit.Float64Range(42.80, 42.92),
		},
		ImageURL: gofakeit.ImageURL(1080, 720),
	}

	if t == model.TypeApartment {
		l.Floor = gofakeit.Number(1, 12)
		l.TotalFloors = l.Floor + gofakeit.Number(0, 5)
	}

	count := gofakeit.Number(1, 4)
	for i := 0; i < count; i++ {
		l.Features = append(l.Features, features[gofakeit.Number(0, len(features)-1)])
	}
	return l
}

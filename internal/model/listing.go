package model

import "github.com/paulmach/orb"

// Канонические типы объектов (значения фильтра "type").
const (
	TypeApartment  = "Квартира"
	TypeHouse      = "Дом"
	TypeCommercial = "Коммерция"
)

type Location struct {
	District string `json:"district"`
	Address  string `json:"address"`
}

// Listing — объект недвижимости. Цена хранится в сомах (базовая валюта).
type Listing struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Type        string    `db:"type" json:"type"`
	Status      string    `db:"status" json:"status,omitempty"` // Продажа / Аренда
	Price       float64   `db:"price" json:"price"`
	Area        float64   `db:"area" json:"area"`
	Bedrooms    int       `db:"bedrooms" json:"bedrooms"`
	Bathrooms   int       `db:"bathrooms" json:"bathrooms"`
	Rooms       int       `db:"rooms" json:"rooms,omitempty"`
	Floor       int       `db:"floor" json:"floor,omitempty"`
	TotalFloors int       `db:"total_floors" json:"totalFloors,omitempty"`
	Location    Location  `db:"-" json:"location"`
	Coordinates orb.Point `db:"-" json:"coordinates"` // [longitude, latitude]
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	Images      []string  `db:"-" json:"images,omitempty"`
	Features    []string  `db:"-" json:"features,omitempty"`
	CreatedAt   string    `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt   string    `db:"updated_at" json:"updatedAt,omitempty"`
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/paulmach/orb"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

// PostgresRepository — альтернативный бэкенд на Postgres (включается через
// DATABASE_URL). Семантика та же, что у файлового хранилища: id = max+1,
// поверхностное слияние при обновлении.
type PostgresRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// listingRow — строка таблицы listings; вложенные поля лежат в jsonb.
type listingRow struct {
	ID          int     `db:"id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Type        string  `db:"type"`
	Status      string  `db:"status"`
	Price       float64 `db:"price"`
	Area        float64 `db:"area"`
	Bedrooms    int     `db:"bedrooms"`
	Bathrooms   int     `db:"bathrooms"`
	Rooms       int     `db:"rooms"`
	Floor       int     `db:"floor"`
	TotalFloors int     `db:"total_floors"`
	District    string  `db:"district"`
	Address     string  `db:"address"`
	Coordinates []byte  `db:"coordinates"`
	ImageURL    string  `db:"image_url"`
	Images      []byte  `db:"images"`
	Features    []byte  `db:"features"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

func toRow(l model.Listing) (listingRow, error) {
	coords, err := json.Marshal(l.Coordinates)
	if err != nil {
		return listingRow{}, err
	}
	images, err := json.Marshal(l.Images)
	if err != nil {
		return listingRow{}, err
	}
	features, err := json.Marshal(l.Features)
	if err != nil {
		return listingRow{}, err
	}
	return listingRow{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Type:        l.Type,
		Status:      l.Status,
		Price:       l.Price,
		Area:        l.Area,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		Rooms:       l.Rooms,
		Floor:       l.Floor,
		TotalFloors: l.TotalFloors,
		District:    l.Location.District,
		Address:     l.Location.Address,
		Coordinates: coords,
		ImageURL:    l.ImageURL,
		Images:      images,
		Features:    features,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, nil
}

func (row listingRow) toModel() (model.Listing, error) {
	l := model.Listing{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Type:        row.Type,
		Status:      row.Status,
		Price:       row.Price,
		Area:        row.Area,
		Bedrooms:    row.Bedrooms,
		Bathrooms:   row.Bathrooms,
		Rooms:       row.Rooms,
		Floor:       row.Floor,
		TotalFloors: row.TotalFloors,
		Location:    model.Location{District: row.District, Address: row.Address},
		ImageURL:    row.ImageURL,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if len(row.Coordinates) > 0 {
		var p orb.Point
		if err := json.Unmarshal(row.Coordinates, &p); err != nil {
			return model.Listing{}, err
		}
		l.Coordinates = p
	}
	if len(row.Images) > 0 {
		if err := json.Unmarshal(row.Images, &l.Images); err != nil {
			return model.Listing{}, err
		}
	}
	if len(row.Features) > 0 {
		if err := json.Unmarshal(row.Features, &l.Features); err != nil {
			return model.Listing{}, err
		}
	}
	return l, nil
}

const listingColumns = `id, title, description, type, status, price, area,
	bedrooms, bathrooms, rooms, floor, total_floors, district, address,
	coordinates, image_url, images, features, created_at, updated_at`

func (r *PostgresRepository) GetAll(ctx context.Context) ([]model.Listing, error) {
	var rows []listingRow
	err := r.DB.SelectContext(ctx, &rows, `SELECT `+listingColumns+` FROM listings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("PostgresRepository.GetAll: %w", err)
	}

	list := make([]model.Listing, 0, len(rows))
	for _, row := range rows {
		l, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("PostgresRepository.GetAll: %w", err)
		}
		list = append(list, l)
	}
	return list, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*model.Listing, error) {
	var row listingRow
	err := r.DB.GetContext(ctx, &row, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("PostgresRepository.GetByID: %w", err)
	}

	l, err := row.toModel()
	if err != nil {
		return nil, fmt.Errorf("PostgresRepository.GetByID: %w", err)
	}
	return &l, nil
}

func (r *PostgresRepository) Create(ctx context.Context, l *model.Listing) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("PostgresRepository.Create: %w", err)
	}
	defer tx.Rollback()

	var id int
	if err := tx.GetContext(ctx, &id, `SELECT COALESCE(MAX(id), 0) + 1 FROM listings`); err != nil {
		return fmt.Errorf("PostgresRepository.Create: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	l.ID = id
	l.CreatedAt = now
	l.UpdatedAt = now

	row, err := toRow(*l)
	if err != nil {
		return fmt.Errorf("PostgresRepository.Create: %w", err)
	}
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO listings
			(id, title, description, type, status, price, area, bedrooms, bathrooms,
			 rooms, floor, total_floors, district, address, coordinates, image_url,
			 images, features, created_at, updated_at)
		VALUES
			(:id, :title, :description, :type, :status, :price, :area, :bedrooms, :bathrooms,
			 :rooms, :floor, :total_floors, :district, :address, :coordinates, :image_url,
			 :images, :features, :created_at, :updated_at)
	`, row)
	if err != nil {
		return fmt.Errorf("PostgresRepository.Create: %w", err)
	}
	return tx.Commit()
}

func (r *PostgresRepository) Update(ctx context.Context, id int, patch json.RawMessage) (*model.Listing, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := applyPatch(*existing, patch)
	if err != nil {
		return nil, err
	}
	merged.UpdatedAt = time.Now().Format(time.RFC3339)

	row, err := toRow(merged)
	if err != nil {
		return nil, fmt.Errorf("PostgresRepository.Update: %w", err)
	}
	_, err = r.DB.NamedExecContext(ctx, `
		UPDATE listings SET
			title        = :title,
			description  = :description,
			type         = :type,
			status       = :status,
			price        = :price,
			area         = :area,
			bedrooms     = :bedrooms,
			bathrooms    = :bathrooms,
			rooms        = :rooms,
			floor        = :floor,
			total_floors = :total_floors,
			district     = :district,
			address      = :address,
			coordinates  = :coordinates,
			image_url    = :image_url,
			images       = :images,
			features     = :features,
			updated_at   = :updated_at
		WHERE id = :id
	`, row)
	if err != nil {
		return nil, fmt.Errorf("PostgresRepository.Update: %w", err)
	}
	return &merged, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) (*model.Listing, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("PostgresRepository.Delete: %w", err)
	}
	return existing, nil
}

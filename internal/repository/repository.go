package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

// ErrNotFound возвращается, когда объекта с данным id нет в хранилище.
var ErrNotFound = errors.New("объект не найден")

// ErrInvalidPayload возвращается, когда тело запроса не является JSON-объектом.
var ErrInvalidPayload = errors.New("некорректный payload")

// ListingRepository — контракт хранилища объектов. Фильтрация и сортировка
// сюда не входят: хранилище отдает полную коллекцию, предикаты живут в
// пакете listings.
type ListingRepository interface {
	GetAll(ctx context.Context) ([]model.Listing, error)
	GetByID(ctx context.Context, id int) (*model.Listing, error)
	// Create присваивает id = max(существующих)+1 (или 1) и сохраняет запись.
	Create(ctx context.Context, l *model.Listing) error
	// Update накладывает поля patch поверх существующей записи; id неизменяем.
	Update(ctx context.Context, id int, patch json.RawMessage) (*model.Listing, error)
	// Delete удаляет запись и возвращает ее.
	Delete(ctx context.Context, id int) (*model.Listing, error)
}

// nextID реализует инвариант присвоения id: max+1, либо 1 на пустом хранилище.
func nextID(list []model.Listing) int {
	max := 0
	for _, l := range list {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}

// applyPatch выполняет поверхностное слияние: поля из patch перекрывают поля
// существующей записи целиком, id сохраняется. Незнакомые поля отбрасываются —
// контракт записи задан типом model.Listing.
func applyPatch(existing model.Listing, patch json.RawMessage) (model.Listing, error) {
	base, err := json.Marshal(existing)
	if err != nil {
		return model.Listing{}, fmt.Errorf("applyPatch: %w", err)
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return model.Listing{}, fmt.Errorf("applyPatch: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return model.Listing{}, fmt.Errorf("applyPatch: %w: %v", ErrInvalidPayload, err)
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return model.Listing{}, fmt.Errorf("applyPatch: %w", err)
	}

	var result model.Listing
	if err := json.Unmarshal(data, &result); err != nil {
		return model.Listing{}, fmt.Errorf("applyPatch: %w: %v", ErrInvalidPayload, err)
	}
	result.ID = existing.ID
	return result, nil
}

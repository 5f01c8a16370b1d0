package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

// FileRepository хранит всю коллекцию одним JSON-массивом в файле.
// Мьютекс закрывает цикл read-modify-write: две конкурирующие мутации не
// могут молча потерять друг друга.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) load() ([]model.Listing, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Listing{}, nil
		}
		return nil, fmt.Errorf("FileRepository: чтение %s: %w", r.path, err)
	}

	var list []model.Listing
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("FileRepository: некорректный JSON в %s: %w", r.path, err)
	}
	return list, nil
}

func (r *FileRepository) save(list []model.Listing) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("FileRepository: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("FileRepository: запись %s: %w", r.path, err)
	}
	return nil
}

func (r *FileRepository) GetAll(ctx context.Context) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FileRepository) GetByID(ctx context.Context, id int) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *FileRepository) Create(ctx context.Context, l *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)
	l.ID = nextID(list)
	l.CreatedAt = now
	l.UpdatedAt = now

	list = append(list, *l)
	return r.save(list)
}

func (r *FileRepository) Update(ctx context.Context, id int, patch json.RawMessage) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		merged, err := applyPatch(list[i], patch)
		if err != nil {
			return nil, err
		}
		merged.UpdatedAt = time.Now().Format(time.RFC3339)
		list[i] = merged
		if err := r.save(list); err != nil {
			return nil, err
		}
		return &list[i], nil
	}
	return nil, ErrNotFound
}

func (r *FileRepository) Delete(ctx context.Context, id int) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		deleted := list[i]
		list = append(list[:i], list[i+1:]...)
		if err := r.save(list); err != nil {
			return nil, err
		}
		return &deleted, nil
	}
	return nil, ErrNotFound
}

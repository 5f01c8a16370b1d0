package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AdmiralGufi/real-estate-app/internal/model"
)

// MongoRepository — альтернативный бэкенд на MongoDB (включается через
// MONGO_URI). Документы хранятся с теми же именами полей, что и в JSON-файле,
// поэтому конвертация идет через json-маршалинг модели.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(client *mongo.Client, dbName string) *MongoRepository {
	return &MongoRepository{coll: client.Database(dbName).Collection("listings")}
}

func toDoc(l model.Listing) (bson.M, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDoc(doc bson.M) (model.Listing, error) {
	delete(doc, "_id")
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return model.Listing{}, err
	}
	var l model.Listing
	if err := json.Unmarshal(data, &l); err != nil {
		return model.Listing{}, err
	}
	return l, nil
}

func (r *MongoRepository) GetAll(ctx context.Context) ([]model.Listing, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"id": 1}))
	if err != nil {
		return nil, fmt.Errorf("MongoRepository.GetAll: %w", err)
	}
	defer cur.Close(ctx)

	list := make([]model.Listing, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("MongoRepository.GetAll: %w", err)
		}
		l, err := fromDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("MongoRepository.GetAll: %w", err)
		}
		list = append(list, l)
	}
	return list, cur.Err()
}

func (r *MongoRepository) GetByID(ctx context.Context, id int) (*model.Listing, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("MongoRepository.GetByID: %w", err)
	}

	l, err := fromDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("MongoRepository.GetByID: %w", err)
	}
	return &l, nil
}

func (r *MongoRepository) Create(ctx context.Context, l *model.Listing) error {
	var last struct {
		ID int `bson:"id"`
	}
	err := r.coll.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.M{"id": -1})).Decode(&last)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("MongoRepository.Create: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	l.ID = last.ID + 1
	l.CreatedAt = now
	l.UpdatedAt = now

	doc, err := toDoc(*l)
	if err != nil {
		return fmt.Errorf("MongoRepository.Create: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("MongoRepository.Create: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, id int, patch json.RawMessage) (*model.Listing, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := applyPatch(*existing, patch)
	if err != nil {
		return nil, err
	}
	merged.UpdatedAt = time.Now().Format(time.RFC3339)

	doc, err := toDoc(merged)
	if err != nil {
		return nil, fmt.Errorf("MongoRepository.Update: %w", err)
	}
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": id}, doc); err != nil {
		return nil, fmt.Errorf("MongoRepository.Update: %w", err)
	}
	return &merged, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id int) (*model.Listing, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return nil, fmt.Errorf("MongoRepository.Delete: %w", err)
	}
	return existing, nil
}

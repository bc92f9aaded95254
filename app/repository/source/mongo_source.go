package source

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "school-dashboard/app/models/dashboard"
)

// MongoSource reads an endpoint's records from the collection named after it.
type MongoSource struct {
	db *mongo.Database
}

func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{db: db}
}

func (s *MongoSource) Fetch(ctx context.Context, endpoint string) ([]models.Record, error) {
	coll := s.db.Collection(TableName(endpoint))

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrapf(ErrFetchFailed, "find %s: %v", endpoint, err)
	}
	defer cursor.Close(ctx)

	records := make([]models.Record, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrapf(ErrFetchFailed, "decode %s: %v", endpoint, err)
		}

		rec := make(models.Record, len(doc))
		for k, v := range doc {
			rec[k] = flatten(v)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrapf(ErrFetchFailed, "cursor %s: %v", endpoint, err)
	}

	return records, nil
}

// flatten turns BSON-specific scalars into plain values records understand.
func flatten(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return t.String()
	}
	return v
}

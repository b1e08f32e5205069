package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements DocumentStore on MongoDB. Keys are stored as string
// _id values so the two backends are interchangeable.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a MongoStore around an initialized database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Get(ctx context.Context, collection, key string) (Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	fields := normalizeBSON(raw)
	delete(fields, "_id")
	return Document{Key: key, Fields: fields}, nil
}

func (s *MongoStore) Query(ctx context.Context, collection string, filters []Filter, limit int) ([]Document, error) {
	filter := bson.M{}
	for _, f := range filters {
		switch f.Op {
		case "==":
			filter[f.Path] = f.Value
		case ">=":
			filter[f.Path] = bson.M{"$gte": f.Value}
		default:
			return nil, fmt.Errorf("store: unsupported filter op %q", f.Op)
		}
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		fields := normalizeBSON(raw)
		key, _ := fields["_id"].(string)
		delete(fields, "_id")
		docs = append(docs, Document{Key: key, Fields: fields})
	}
	return docs, cursor.Err()
}

func (s *MongoStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	key := primitive.NewObjectID().Hex()
	doc := bson.M(resolveMongoFields(fields))
	doc["_id"] = key
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return key, nil
}

func (s *MongoStore) Set(ctx context.Context, collection, key string, fields map[string]any) error {
	return s.setOne(ctx, collection, WriteOp{Collection: collection, Key: key, Fields: fields})
}

func (s *MongoStore) Update(ctx context.Context, collection, key string, ops []FieldOp) error {
	update := mongoUpdate(ops)
	res, err := s.db.Collection(collection).UpdateByID(ctx, key, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, key string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// ApplyBatch applies all writes inside one session transaction.
func (s *MongoStore) ApplyBatch(ctx context.Context, ops []WriteOp) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		for _, op := range ops {
			switch op.Kind {
			case WriteSet:
				if err := s.setOne(sc, op.Collection, op); err != nil {
					return nil, err
				}
			case WriteUpdate:
				if err := s.Update(sc, op.Collection, op.Key, op.Ops); err != nil {
					return nil, err
				}
			case WriteDelete:
				if err := s.Delete(sc, op.Collection, op.Key); err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("store: unknown write kind %d", op.Kind)
			}
		}
		return nil, nil
	})
	return err
}

func (s *MongoStore) setOne(ctx context.Context, collection string, op WriteOp) error {
	coll := s.db.Collection(collection)
	resolved := resolveMongoFields(op.Fields)
	if op.Merge {
		set := bson.M{}
		flattenFields("", resolved, set)
		_, err := coll.UpdateByID(ctx, op.Key, bson.M{"$set": set}, options.Update().SetUpsert(true))
		return err
	}
	doc := bson.M(resolved)
	doc["_id"] = op.Key
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": op.Key}, doc, options.Replace().SetUpsert(true))
	return err
}

func mongoUpdate(ops []FieldOp) bson.M {
	set := bson.M{}
	inc := bson.M{}
	current := bson.M{}
	for _, op := range ops {
		switch op.Kind {
		case FieldIncrement:
			inc[op.Path] = op.Value
		case FieldServerTime:
			current[op.Path] = true
		default:
			set[op.Path] = op.Value
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if len(current) > 0 {
		update["$currentDate"] = current
	}
	return update
}

// resolveMongoFields swaps the ServerTimestamp sentinel for the current time.
// Mongo only offers $currentDate on updates, so inserts resolve client-side.
func resolveMongoFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch tv := v.(type) {
		case serverTimestamp:
			out[k] = time.Now().UTC()
		case map[string]any:
			out[k] = resolveMongoFields(tv)
		default:
			out[k] = v
		}
	}
	return out
}

// flattenFields turns nested maps into dotted paths so a merge set only
// touches the leaves it names.
func flattenFields(prefix string, fields map[string]any, into bson.M) {
	for k, v := range fields {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenFields(path, nested, into)
			continue
		}
		into[path] = v
	}
}

// normalizeBSON converts driver-specific value types into the plain Go types
// the repositories decode against.
func normalizeBSON(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[k] = normalizeBSONValue(val)
	}
	return out
}

func normalizeBSONValue(v any) any {
	switch tv := v.(type) {
	case bson.M:
		return normalizeBSON(tv)
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[k] = normalizeBSONValue(val)
		}
		return out
	case bson.A:
		out := make([]any, len(tv))
		for i, val := range tv {
			out[i] = normalizeBSONValue(val)
		}
		return out
	case primitive.DateTime:
		return tv.Time().UTC()
	case int32:
		return int64(tv)
	default:
		return v
	}
}

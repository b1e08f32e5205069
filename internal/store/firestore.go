package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements DocumentStore on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a FirestoreStore around an initialized client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, key string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return Document{Key: snap.Ref.ID, Fields: snap.Data()}, nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, filters []Filter, limit int) ([]Document, error) {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Path, f.Op, f.Value)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Key: snap.Ref.ID, Fields: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, resolveFirestoreFields(fields))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, key string, fields map[string]any) error {
	_, err := s.client.Collection(collection).Doc(key).Set(ctx, resolveFirestoreFields(fields))
	return err
}

func (s *FirestoreStore) Update(ctx context.Context, collection, key string, ops []FieldOp) error {
	_, err := s.client.Collection(collection).Doc(key).Update(ctx, firestoreUpdates(ops))
	return err
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, key string) error {
	_, err := s.client.Collection(collection).Doc(key).Delete(ctx)
	return err
}

// ApplyBatch runs all writes inside one Firestore transaction, which gives
// the all-or-nothing guarantee the workflows rely on.
func (s *FirestoreStore) ApplyBatch(ctx context.Context, ops []WriteOp) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, op := range ops {
			ref := s.client.Collection(op.Collection).Doc(op.Key)
			switch op.Kind {
			case WriteSet:
				var opts []firestore.SetOption
				if op.Merge {
					opts = append(opts, firestore.MergeAll)
				}
				if err := tx.Set(ref, resolveFirestoreFields(op.Fields), opts...); err != nil {
					return err
				}
			case WriteUpdate:
				if err := tx.Update(ref, firestoreUpdates(op.Ops)); err != nil {
					return err
				}
			case WriteDelete:
				if err := tx.Delete(ref); err != nil {
					return err
				}
			default:
				return fmt.Errorf("store: unknown write kind %d", op.Kind)
			}
		}
		return nil
	})
}

// resolveFirestoreFields swaps the ServerTimestamp sentinel for Firestore's,
// recursing into nested maps.
func resolveFirestoreFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch tv := v.(type) {
		case serverTimestamp:
			out[k] = firestore.ServerTimestamp
		case map[string]any:
			out[k] = resolveFirestoreFields(tv)
		default:
			out[k] = v
		}
	}
	return out
}

func firestoreUpdates(ops []FieldOp) []firestore.Update {
	updates := make([]firestore.Update, 0, len(ops))
	for _, op := range ops {
		u := firestore.Update{FieldPath: firestore.FieldPath(strings.Split(op.Path, "."))}
		switch op.Kind {
		case FieldIncrement:
			u.Value = firestore.Increment(op.Value)
		case FieldServerTime:
			u.Value = firestore.ServerTimestamp
		default:
			u.Value = op.Value
		}
		updates = append(updates, u)
	}
	return updates
}

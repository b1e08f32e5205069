package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process DocumentStore. It backs the service tests and
// local runs without cloud credentials, and mirrors the write semantics of
// the real backends: server-timestamp resolution, explicit nulls, dotted
// nested paths and all-or-nothing batches.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]map[string]any
	seq  int

	// Now supplies the server-observed time; tests override it.
	Now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]map[string]any),
		Now:  time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, key string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.data[collection][key]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{Key: key, Fields: deepCopy(doc)}, nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filters []Filter, limit int) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []Document
	for key, doc := range s.data[collection] {
		if !matches(doc, filters) {
			continue
		}
		docs = append(docs, Document{Key: key, Fields: deepCopy(doc)})
		if limit > 0 && len(docs) == limit {
			break
		}
	}
	return docs, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	key := fmt.Sprintf("doc-%d", s.seq)
	s.collection(collection)[key] = s.resolve(fields)
	return key, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, key string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(collection, key, fields, false)
}

func (s *MemoryStore) Update(ctx context.Context, collection, key string, ops []FieldOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(collection, key, ops)
}

func (s *MemoryStore) Delete(ctx context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[collection], key)
	return nil
}

// ApplyBatch applies all writes to a scratch copy first, so a failing entry
// leaves the store untouched.
func (s *MemoryStore) ApplyBatch(ctx context.Context, ops []WriteOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data
	s.data = deepCopyAll(snapshot)
	for _, op := range ops {
		var err error
		switch op.Kind {
		case WriteSet:
			err = s.setLocked(op.Collection, op.Key, op.Fields, op.Merge)
		case WriteUpdate:
			err = s.updateLocked(op.Collection, op.Key, op.Ops)
		case WriteDelete:
			delete(s.data[op.Collection], op.Key)
		default:
			err = fmt.Errorf("store: unknown write kind %d", op.Kind)
		}
		if err != nil {
			s.data = snapshot
			return err
		}
	}
	return nil
}

func (s *MemoryStore) collection(name string) map[string]map[string]any {
	if s.data[name] == nil {
		s.data[name] = make(map[string]map[string]any)
	}
	return s.data[name]
}

func (s *MemoryStore) setLocked(collection, key string, fields map[string]any, merge bool) error {
	coll := s.collection(collection)
	resolved := s.resolve(fields)
	if !merge {
		coll[key] = resolved
		return nil
	}
	existing, ok := coll[key]
	if !ok {
		coll[key] = resolved
		return nil
	}
	mergeFields(existing, resolved)
	return nil
}

func (s *MemoryStore) updateLocked(collection, key string, ops []FieldOp) error {
	doc, ok := s.data[collection][key]
	if !ok {
		return ErrNotFound
	}
	for _, op := range ops {
		switch op.Kind {
		case FieldIncrement:
			current, _ := lookupPath(doc, op.Path)
			setPath(doc, op.Path, toInt64(current)+toInt64(op.Value))
		case FieldServerTime:
			setPath(doc, op.Path, s.Now())
		default:
			setPath(doc, op.Path, op.Value)
		}
	}
	return nil
}

func (s *MemoryStore) resolve(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch tv := v.(type) {
		case serverTimestamp:
			out[k] = s.Now()
		case map[string]any:
			out[k] = s.resolve(tv)
		default:
			out[k] = v
		}
	}
	return out
}

func matches(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		val, ok := lookupPath(doc, f.Path)
		if !ok {
			return false
		}
		switch f.Op {
		case "==":
			if !reflect.DeepEqual(val, f.Value) {
				return false
			}
		case ">=":
			if !gte(val, f.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func gte(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && !at.Before(bt)
	}
	return toInt64(a) >= toInt64(b)
}

func lookupPath(doc map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := doc
	for i, p := range parts {
		v, ok := current[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		current, ok = v.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

func setPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := current[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[p] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func mergeFields(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergeFields(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}

func toInt64(v any) int64 {
	switch tv := v.(type) {
	case int:
		return int64(tv)
	case int32:
		return int64(tv)
	case int64:
		return tv
	case float64:
		return int64(tv)
	default:
		return 0
	}
}

func deepCopy(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if nested, ok := v.(map[string]any); ok {
			out[k] = deepCopy(nested)
			continue
		}
		out[k] = v
	}
	return out
}

func deepCopyAll(data map[string]map[string]map[string]any) map[string]map[string]map[string]any {
	out := make(map[string]map[string]map[string]any, len(data))
	for coll, docs := range data {
		out[coll] = make(map[string]map[string]any, len(docs))
		for key, doc := range docs {
			out[coll][key] = deepCopy(doc)
		}
	}
	return out
}

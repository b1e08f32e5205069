// Package store defines the narrow contract the workflows have with the
// remote document database, plus the backends that implement it.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists under the key.
var ErrNotFound = errors.New("store: document not found")

type serverTimestamp struct{}

// ServerTimestamp is a sentinel value; backends replace it with the
// server-observed time when the write is applied.
var ServerTimestamp = serverTimestamp{}

// Filter is a single query predicate. Op is "==" or ">=".
type Filter struct {
	Path  string
	Op    string
	Value any
}

// FieldOpKind selects the partial-update operation applied to one field path.
type FieldOpKind int

const (
	// FieldSet writes a literal value. A nil value writes an explicit null,
	// which is distinct from deleting the field.
	FieldSet FieldOpKind = iota
	// FieldIncrement adds an integer delta to a numeric field.
	FieldIncrement
	// FieldServerTime writes the server-observed time.
	FieldServerTime
)

// FieldOp is one field-level operation inside an Update. Path may be a
// dotted path into nested maps ("likes.<postID>").
type FieldOp struct {
	Path  string
	Kind  FieldOpKind
	Value any
}

// Document is a raw document as returned by reads.
type Document struct {
	Key    string
	Fields map[string]any
}

// WriteKind selects the write applied by one batch entry.
type WriteKind int

const (
	WriteSet WriteKind = iota
	WriteUpdate
	WriteDelete
)

// WriteOp is one entry of an atomic batch.
type WriteOp struct {
	Kind       WriteKind
	Collection string
	Key        string
	Fields     map[string]any // WriteSet
	Merge      bool           // WriteSet: merge into the existing document, creating it if absent
	Ops        []FieldOp      // WriteUpdate
}

// DocumentStore is the capability the workflows are written against. The
// database itself is an external collaborator; implementations here only
// adapt its client to this contract.
type DocumentStore interface {
	// Get returns the document under key, or ErrNotFound.
	Get(ctx context.Context, collection, key string) (Document, error)

	// Query returns documents matching all filters. limit <= 0 means no limit.
	// No ordering is guaranteed.
	Query(ctx context.Context, collection string, filters []Filter, limit int) ([]Document, error)

	// Create inserts a new document under a generated key and returns it.
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)

	// Set upserts the full document under key.
	Set(ctx context.Context, collection, key string, fields map[string]any) error

	// Update applies field-level operations to an existing document.
	Update(ctx context.Context, collection, key string, ops []FieldOp) error

	// Delete removes the document under key. Deleting an absent document
	// is not an error.
	Delete(ctx context.Context, collection, key string) error

	// ApplyBatch applies all writes with all-or-nothing semantics.
	ApplyBatch(ctx context.Context, ops []WriteOp) error
}

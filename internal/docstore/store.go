// Package docstore is a collection/key document store. Every collection is a
// flat set of JSON documents addressed by id, with last-write-wins semantics
// per key and no multi-key transactions.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	CollectionOpportunities = "opportunities"
	CollectionStudents      = "students"
	CollectionCompanies     = "companies"
	CollectionNotifications = "notifications"
)

var (
	ErrInvalidKey      = errors.New("invalid document key")
	ErrInvalidDocument = errors.New("invalid document")
)

type Document struct {
	ID   string
	Data []byte
}

type Store interface {
	// Get returns the raw document, or ok=false when the key is absent.
	Get(ctx context.Context, collection, id string) (data []byte, ok bool, err error)
	Set(ctx context.Context, collection, id string, value any) error
	// List returns every document of the collection in ascending id order.
	List(ctx context.Context, collection string) ([]Document, error)
}

func validateKey(collection, id string) error {
	if strings.TrimSpace(collection) == "" || strings.ContainsAny(collection, "/:") {
		return fmt.Errorf("%w: collection=%q", ErrInvalidKey, collection)
	}
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return fmt.Errorf("%w: collection=%s id=%q", ErrInvalidKey, collection, id)
	}
	return nil
}

func validateCollection(collection string) error {
	if strings.TrimSpace(collection) == "" || strings.ContainsAny(collection, "/:") {
		return fmt.Errorf("%w: collection=%q", ErrInvalidKey, collection)
	}
	return nil
}

func encode(value any) ([]byte, error) {
	switch v := value.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, ErrInvalidDocument
		}
		return append([]byte(nil), v...), nil
	case []byte:
		if !json.Valid(v) {
			return nil, ErrInvalidDocument
		}
		return append([]byte(nil), v...), nil
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return b, nil
	}
}

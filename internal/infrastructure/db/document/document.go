// Package document holds the single-document encoding shared by every record
// store driver. All drivers persist the same text so that a collection moved
// between backends round-trips unchanged.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/selim-ammari/user-management/internal/core/domain"
)

// Name is the key under which the user collection is stored in keyed backends.
const Name = "users"

// Empty is the encoded form of an empty collection.
var Empty = []byte("[]")

// Encode renders users as a 2-space indented JSON array without a trailing
// newline. HTML characters are written literally.
func Encode(users []domain.User) ([]byte, error) {
	if users == nil {
		users = []domain.User{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(users); err != nil {
		return nil, fmt.Errorf("encode users: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a stored document. Callers treat a decode error as an empty
// collection after logging it.
func Decode(data []byte) ([]domain.User, error) {
	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

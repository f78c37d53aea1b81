// Package cache provides a content-addressed memoisation cache for parse
// output: given the same input bytes, dialect and base IRI, re-running the
// parser is skipped in favour of the previously emitted canonical
// N-Triples/N-Quads bytes.
//
// This is NOT an RDF graph store -- the spec this package supports
// explicitly excludes that (transformation other than serialisation to
// the canonical form is a non-goal). It is adapted from
// internal/storage/badger.go's BadgerDB wrapper (aleksaelezovic-trigo),
// trimmed from a general table/transaction/iterator KV abstraction down to
// the single get/put-by-hash operation a cache needs, and keyed the way
// internal/encoding/encoder.go's TermEncoder.Hash128 keys terms: a 128-bit
// xxh3 digest rather than the raw (and potentially large) input string.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/zeebo/xxh3"
)

// ErrNotFound is returned by Get when no entry exists for the given key.
var ErrNotFound = errors.New("cache: entry not found")

// Store is a content-addressed byte cache backed by BadgerDB.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a cache rooted at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: opening badger db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Key derives the cache key for a parse invocation: the input text, the
// dialect label and the base IRI all participate, since any of the three
// changes what the parse would emit.
func Key(input, dialectLabel, baseIRI string) [16]byte {
	h := xxh3.New()
	_, _ = h.WriteString(input)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(dialectLabel)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(baseIRI)
	sum := h.Sum128()
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], sum.Hi)
	binary.BigEndian.PutUint64(out[8:16], sum.Lo)
	return out
}

// Get returns the cached output bytes for key, or ErrNotFound.
func (s *Store) Get(key [16]byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key[:])
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			value = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores output under key, overwriting any previous entry.
func (s *Store) Put(key [16]byte, output []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key[:], output)
	})
}

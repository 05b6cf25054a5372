package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var (
	authBucket = []byte("auth")
	tokenKey   = []byte("token")
)

// Store persists the serialized [Token] under a single key in a bbolt
// database. An absent key means the session is unauthenticated.
type Store struct {
	db *bbolt.DB
}

// NewStore opens (or creates) the token database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	options := &bbolt.Options{Timeout: 1 * time.Second}
	db, err := bbolt.Open(dbPath, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("could not open token database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(authBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create auth bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Save persists the token, replacing any previous one.
func (s *Store) Save(token *Token) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		value, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("error serializing token: %w", err)
		}
		return tx.Bucket(authBucket).Put(tokenKey, value)
	})
}

// Load retrieves the persisted token. Returns (nil, nil) when no token
// has been saved.
func (s *Store) Load() (*Token, error) {
	var token *Token
	err := s.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket(authBucket).Get(tokenKey)
		if value == nil {
			return nil
		}
		token = &Token{}
		if err := json.Unmarshal(value, token); err != nil {
			return fmt.Errorf("error deserializing token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Clear removes the persisted token.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(authBucket).Delete(tokenKey)
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Package storage persists the client session between runs.
package storage

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	dErrors "listly/pkg/domain-errors"
)

var tokenKey = []byte("session/token")

// TokenStore keeps the bearer token in a local badger database so the CLI
// stays logged in across invocations.
type TokenStore struct {
	db *badger.DB
}

// OpenTokenStore opens (or creates) the database at dir. Callers must Close.
func OpenTokenStore(dir string) (*TokenStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "open token store")
	}
	return &TokenStore{db: db}, nil
}

func (s *TokenStore) Close() error {
	return s.db.Close()
}

// SaveToken replaces the stored token.
func (s *TokenStore) SaveToken(token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey, []byte(token))
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save token")
	}
	return nil
}

// LoadToken returns the stored token, or "" when no session exists.
func (s *TokenStore) LoadToken() (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "load token")
	}
	return token, nil
}

// ClearToken drops the stored token. Clearing an empty store is a no-op.
func (s *TokenStore) ClearToken() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(tokenKey)
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "clear token")
	}
	return nil
}

package minicask

import (
	"github.com/0xRadioAc7iv/minicask/core"
	"github.com/0xRadioAc7iv/minicask/internal"
)

// DB is a handle to a disk backed key-value store. It is a thin layer
// over the storage engine and shares its rules: one process, one
// goroutine.
type DB struct {
	store *core.DiskStore
}

// Open builds a store from the default configuration, applies the
// given options, and rebuilds the in-memory index from the data file.
func Open(opts ...Option) (*DB, error) {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	store := &core.DiskStore{
		FileName:       cfg.DataFile,
		Logger:         cfg.Logger,
		BytesWritten:   cfg.BytesWritten,
		RecordsWritten: cfg.RecordsWritten,
	}
	if err := store.Open(); err != nil {
		return nil, err
	}

	return &DB{store: store}, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(key, value string) error {
	return db.store.Set(key, value)
}

// Get returns the value stored under key. An absent key reads as ""
// with no error; use Has to tell the two cases apart.
func (db *DB) Get(key string) (string, error) {
	return db.store.Get(key)
}

// Has reports whether key is present.
func (db *DB) Has(key string) bool {
	return db.store.Has(key)
}

// Keys returns all present keys in no particular order.
func (db *DB) Keys() []string {
	return db.store.Keys()
}

// Len returns the number of present keys.
func (db *DB) Len() int {
	return db.store.Len()
}

// Close flushes the data file to the storage medium. The handle stays
// usable afterwards; Close marks a durability point, not the end of
// the store's life.
func (db *DB) Close() error {
	return db.store.Close()
}

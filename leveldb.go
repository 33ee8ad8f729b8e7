package nativestorage

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

var _ LocalArea = (*LevelDBArea)(nil)

// LevelDBArea is a persistent LocalArea backed by LevelDB.
type LevelDBArea struct {
	db *leveldb.DB
}

// GetItem gets the item for the given key.
func (a *LevelDBArea) GetItem(key string) (string, bool, error) {
	v, err := a.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to read item from leveldb: %w", levelDBError(err))
	}

	return string(v), true, nil
}

// SetItem sets the item for the given key.
func (a *LevelDBArea) SetItem(key string, value string) error {
	if err := a.db.Put([]byte(key), []byte(value), nil); err != nil {
		return fmt.Errorf("failed to write item to leveldb: %w", levelDBError(err))
	}

	return nil
}

// Close closes the database.
func (a *LevelDBArea) Close() error {
	return a.db.Close() //nolint: wrapcheck
}

func levelDBError(err error) error {
	if errors.Is(err, leveldb.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	return err
}

// NewLevelDBArea creates a new LevelDBArea on top of an open database.
func NewLevelDBArea(db *leveldb.DB) *LevelDBArea {
	return &LevelDBArea{db: db}
}

// OpenLevelDBArea opens or creates the database at path.
func OpenLevelDBArea(path string) (*LevelDBArea, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}

	return NewLevelDBArea(db), nil
}

// Package history records driver runs in a bbolt database.
//
// Every planned or executed invocation is stored as a JSON Record keyed by
// a sha256 of the expanded arguments, the resolved configuration and the
// contents of the input files. Re-running an identical invocation replaces
// its record, so the store holds the latest outcome per distinct build.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const (
	dbName = "history.db"

	// bucketName is the BoltDB bucket name for run records
	bucketName = "runs"
)

// ErrNoDirectory is returned when no history directory could be determined
var ErrNoDirectory = errors.New("no history directory")

// History stores run records using BoltDB
type History struct {
	db   *bbolt.DB
	path string
}

// New opens (creating if needed) the history database in dir
func New(dir string) (*History, error) {
	if dir == "" {
		return nil, ErrNoDirectory
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbName)
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &History{db: db, path: dbPath}, nil
}

// Close closes the history database
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}

	return nil
}

// Store saves a record under its hash, replacing any earlier one
func (h *History) Store(rec *Record) error {
	if rec.Hash == "" {
		return fmt.Errorf("record has no hash")
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	err = h.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(rec.Hash), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}

	return nil
}

// Get retrieves a record by hash. Returns nil if there is none.
func (h *History) Get(hash string) (*Record, error) {
	var rec *Record
	err := h.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(hash))
		if data == nil {
			return nil
		}

		rec = &Record{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	return rec, nil
}

// List returns every record, newest first
func (h *History) List() ([]*Record, error) {
	var records []*Record
	err := h.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			records = append(records, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	return records, nil
}

// Clear removes all records
func (h *History) Clear() error {
	return h.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
}

// Stats returns the record count and the database size in bytes
func (h *History) Stats() (int, int64, error) {
	var count int
	err := h.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(bucketName)).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	info, err := os.Stat(h.path)
	if err != nil {
		return count, 0, nil
	}

	return count, info.Size(), nil
}

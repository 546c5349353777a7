package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	bolt "go.etcd.io/bbolt"
)

// Bolt provides a read-only BoltDB dataset source.
// Records are stored as JSON values in a single bucket; key order is record order,
// so keys are expected to sort in insertion order (e.g. zero padded indexes).
type Bolt struct {
	DB     *bolt.DB
	Bucket string
}

// DefaultBoltBucket is the bucket read when none is configured.
const DefaultBoltBucket = "qa"

// NewBolt opens the BoltDB file at path in read-only mode.
// It returns an error if the file does not exist or cannot be locked within a second.
func NewBolt(path, bucket string) (Bolt, error) {
	if bucket == "" {
		bucket = DefaultBoltBucket
	}

	if _, err := os.Stat(path); err != nil {
		return Bolt{}, fmt.Errorf("failed to open bolt database: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		ReadOnly: true,
		Timeout:  time.Second,
	})
	if err != nil {
		return Bolt{}, fmt.Errorf("failed to open bolt database: %w", err)
	}

	return Bolt{DB: db, Bucket: bucket}, nil
}

// Records reads every record of the bucket in key order.
func (b Bolt) Records(ctx context.Context) ([]golightqa.QARecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]golightqa.QARecord, 0)

	err := b.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(b.Bucket))
		if bucket == nil {
			return fmt.Errorf("bucket %q not found", b.Bucket)
		}

		return bucket.ForEach(func(k, v []byte) error {
			var rec golightqa.QARecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to decode record %q: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Close releases the database file.
func (b Bolt) Close() error {
	return b.DB.Close()
}

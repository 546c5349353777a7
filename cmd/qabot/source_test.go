package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	"github.com/MegaGrindStone/go-light-qa/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func writeBoltDataset(t *testing.T, records []golightqa.QARecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qa.db")

	db, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(storage.DefaultBoltBucket))
		if err != nil {
			return err
		}
		for i, r := range records {
			v, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if err := b.Put([]byte{byte('a' + i)}, v); err != nil {
				return err
			}
		}
		return nil
	}))

	return path
}

func TestOpenSource(t *testing.T) {
	t.Run("Defaults to bundled CSV path", func(t *testing.T) {
		src, closeSource, err := openSource(datasetConfig{})
		require.NoError(t, err)
		defer closeSource()

		csv, ok := src.(storage.CSV)
		require.True(t, ok)
		assert.Equal(t, storage.DefaultCSVPath, csv.Path)
	})

	t.Run("CSV then Bolt", func(t *testing.T) {
		csvPath := filepath.Join(t.TempDir(), "qa.csv")
		require.NoError(t, os.WriteFile(csvPath, []byte("question,answer\nfrom csv,1\n"), 0o600))
		boltPath := writeBoltDataset(t, []golightqa.QARecord{{Question: "from bolt", Answer: "2"}})

		src, closeSource, err := openSource(datasetConfig{CSV: csvPath, Bolt: boltPath})
		require.NoError(t, err)
		defer func() { assert.NoError(t, closeSource()) }()

		records, err := src.Records(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []golightqa.QARecord{
			{Question: "from csv", Answer: "1"},
			{Question: "from bolt", Answer: "2"},
		}, records)
	})

	t.Run("Missing Bolt file", func(t *testing.T) {
		src, closeSource, err := openSource(datasetConfig{Bolt: filepath.Join(t.TempDir(), "none.db")})
		assert.Error(t, err)
		assert.Nil(t, src)
		assert.NoError(t, closeSource())
	})
}

func TestOpenSource_PartialFailure(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "qa.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("question,answer\nfrom csv,1\n"), 0o600))
	cfg := datasetConfig{CSV: csvPath, Bolt: filepath.Join(t.TempDir(), "none.db")}

	src, closeSource, err := openSource(cfg)
	assert.ErrorContains(t, err, "bolt dataset")
	assert.NoError(t, closeSource())

	csv, ok := src.(storage.CSV)
	require.True(t, ok)
	assert.Equal(t, csvPath, csv.Path)

	records := loadRecords(context.Background(), cfg, newTestLogger())
	assert.Equal(t, []golightqa.QARecord{{Question: "from csv", Answer: "1"}}, records)
}

func TestLoadRecords_Unavailable(t *testing.T) {
	records := loadRecords(context.Background(),
		datasetConfig{CSV: filepath.Join(t.TempDir(), "missing.csv")}, newTestLogger())

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

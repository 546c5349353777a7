package golightqa_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataset(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Successful load", func(t *testing.T) {
		src := MockDatasetSource{records: []golightqa.QARecord{
			{Question: "q1", Answer: "a1"},
			{Question: "q2", Answer: "a2"},
		}}

		records, err := golightqa.LoadDataset(context.Background(), src, logger)

		require.NoError(t, err)
		assert.Equal(t, src.records, records)
	})

	t.Run("Unreadable source degrades to empty", func(t *testing.T) {
		srcErr := errors.New("open QA_dataset/general_knowledge_qa.csv: no such file or directory")
		src := MockDatasetSource{err: srcErr}

		records, err := golightqa.LoadDataset(context.Background(), src, logger)

		assert.ErrorIs(t, err, golightqa.ErrDataUnavailable)
		assert.ErrorIs(t, err, srcErr)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("Nil source", func(t *testing.T) {
		records, err := golightqa.LoadDataset(context.Background(), nil, nil)

		assert.ErrorIs(t, err, golightqa.ErrDataUnavailable)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("Empty source is not an error", func(t *testing.T) {
		records, err := golightqa.LoadDataset(context.Background(), MockDatasetSource{}, logger)

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestFingerprint(t *testing.T) {
	a := []golightqa.QARecord{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}
	b := []golightqa.QARecord{
		{Question: "q2", Answer: "a2"},
		{Question: "q1", Answer: "a1"},
	}
	// Same concatenated text, different field boundaries.
	c := []golightqa.QARecord{
		{Question: "q1a", Answer: "1"},
		{Question: "q2", Answer: "a2"},
	}

	assert.Equal(t, golightqa.Fingerprint(a), golightqa.Fingerprint(append([]golightqa.QARecord(nil), a...)))
	assert.NotEqual(t, golightqa.Fingerprint(a), golightqa.Fingerprint(b))
	assert.NotEqual(t, golightqa.Fingerprint(a), golightqa.Fingerprint(c))
	assert.Equal(t, golightqa.Fingerprint(nil), golightqa.Fingerprint([]golightqa.QARecord{}))
}

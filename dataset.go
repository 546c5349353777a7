package golightqa

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cespare/xxhash"
)

// LoadDataset reads every record from src once. When the source is missing or unreadable it logs
// the problem and returns an empty table together with an error wrapping ErrDataUnavailable;
// callers are expected to keep going, in which case every query falls through to the remote model.
func LoadDataset(ctx context.Context, src DatasetSource, logger *slog.Logger) ([]QARecord, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("module", "dataset"))

	if src == nil {
		logger.Warn("No dataset source configured, continuing with an empty dataset")
		return []QARecord{}, fmt.Errorf("%w: no source configured", ErrDataUnavailable)
	}

	records, err := src.Records(ctx)
	if err != nil {
		logger.Warn("Failed to load dataset, continuing with an empty dataset",
			slog.String("error", err.Error()))
		return []QARecord{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	if records == nil {
		records = []QARecord{}
	}

	logger.Info("Dataset loaded",
		slog.Int("records", len(records)),
		slog.String("fingerprint", fmt.Sprintf("%016x", Fingerprint(records))),
	)

	return records, nil
}

// Fingerprint returns an order-sensitive hash of the dataset.
func Fingerprint(records []QARecord) uint64 {
	h := xxhash.New()
	for _, rec := range records {
		_, _ = io.WriteString(h, rec.Question)
		_, _ = h.Write([]byte{0})
		_, _ = io.WriteString(h, rec.Answer)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

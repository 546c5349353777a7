package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	golightqa "github.com/MegaGrindStone/go-light-qa"
)

// CSV reads the dataset from a comma separated file with a header row.
// The header must contain the columns "question" and "answer"; other columns are ignored.
type CSV struct {
	Path string
}

// DefaultCSVPath is the well-known dataset location, relative to the working directory.
const DefaultCSVPath = "QA_dataset/general_knowledge_qa.csv"

var errMissingColumn = errors.New("missing column")

// NewCSV creates a CSV source for path. An empty path means DefaultCSVPath.
func NewCSV(path string) CSV {
	if path == "" {
		path = DefaultCSVPath
	}
	return CSV{Path: path}
}

// Records reads every row of the file in order. Rows with an empty question are skipped.
func (c CSV) Records(ctx context.Context) ([]golightqa.QARecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", c.Path, err)
	}

	return records, nil
}

func readCSV(r io.Reader) ([]golightqa.QARecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", errMissingColumn)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	qIdx, aIdx := -1, -1
	for i, name := range header {
		// Strip a UTF-8 byte order mark.
		name = strings.TrimPrefix(name, "\ufeff")
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "question":
			if qIdx == -1 {
				qIdx = i
			}
		case "answer":
			if aIdx == -1 {
				aIdx = i
			}
		}
	}
	if qIdx == -1 {
		return nil, fmt.Errorf("%w: question", errMissingColumn)
	}
	if aIdx == -1 {
		return nil, fmt.Errorf("%w: answer", errMissingColumn)
	}

	records := make([]golightqa.QARecord, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		question := row[qIdx]
		if strings.TrimSpace(question) == "" {
			continue
		}

		records = append(records, golightqa.QARecord{
			Question: question,
			Answer:   row[aIdx],
		})
	}

	return records, nil
}

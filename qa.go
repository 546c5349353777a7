package golightqa

import (
	"context"
	"errors"
	"fmt"
)

// LLM defines the remote generation capability used when the dataset has no close answer.
// Implementations live in the llm package.
type LLM interface {
	// Generate sends a single prompt to the model and returns its text response.
	// The prompt is sent as-is, without any conversation history.
	Generate(ctx context.Context, prompt string) (string, error)
}

// DatasetSource defines a read-only provider of question/answer pairs.
// It is read once at process start; implementations live in the storage package.
type DatasetSource interface {
	Records(ctx context.Context) ([]QARecord, error)
}

// QARecord is a single question/answer pair of the dataset.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// MatchResult is the outcome of scanning the dataset for a query.
// Found reports whether Score cleared the matcher threshold; Answer is only meaningful when Found is true.
type MatchResult struct {
	Score  int
	Answer string
	Found  bool
	// Index is the position of the best scoring record, or -1 when the dataset is empty.
	Index int
}

// Source tells where an answer came from.
type Source int

// AnswerEnvelope is the resolved answer for one query, tagged with its source.
type AnswerEnvelope struct {
	Text   string
	Source Source
	// Score is the best similarity score seen while scanning the dataset.
	Score int
	// Model is the remote model label, empty for dataset answers.
	Model string
	// Err holds the underlying remote failure, if any. It is already folded into Text
	// and only kept for logging by the caller.
	Err error
}

const (
	// SourceDataset marks answers taken from the local dataset.
	SourceDataset Source = iota
	// SourceRemote marks answers produced (or failed to be produced) by the remote model.
	SourceRemote
)

var (
	// ErrDataUnavailable is returned when the dataset source is missing or unreadable.
	// It is recoverable: the caller continues with an empty table.
	ErrDataUnavailable = errors.New("dataset unavailable")
	// ErrRemoteFailure marks a failed or empty response from the remote model.
	ErrRemoteFailure = errors.New("remote generation failed")
)

func (s Source) String() string {
	switch s {
	case SourceDataset:
		return "dataset"
	case SourceRemote:
		return "remote"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Label returns the attribution shown to the user: "dataset" for dataset answers,
// the model name for remote answers when known.
func (a AnswerEnvelope) Label() string {
	if a.Source == SourceRemote && a.Model != "" {
		return a.Model
	}
	return a.Source.String()
}

// Display renders the answer the way the chat shows it, with the source appended.
func (a AnswerEnvelope) Display() string {
	return fmt.Sprintf("%s (Source: %s)", a.Text, a.Label())
}

package golightqa_test

import (
	"context"

	golightqa "github.com/MegaGrindStone/go-light-qa"
)

type MockLLM struct {
	response string
	err      error
	panicMsg string

	// For tracking interactions
	calls []string
}

type MockDatasetSource struct {
	records []golightqa.QARecord
	err     error
}

func (m *MockLLM) Generate(_ context.Context, prompt string) (string, error) {
	m.calls = append(m.calls, prompt)

	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m MockDatasetSource) Records(context.Context) ([]golightqa.QARecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

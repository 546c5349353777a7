package main

import (
	"encoding/json"
	"fmt"
	"io"

	golightqa "github.com/MegaGrindStone/go-light-qa"
)

type answerOutput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
	Label    string `json:"label"`
	Score    int    `json:"score"`
	Error    string `json:"error,omitempty"`
}

func newAnswerOutput(query string, env golightqa.AnswerEnvelope) answerOutput {
	out := answerOutput{
		Question: query,
		Answer:   env.Text,
		Source:   env.Source.String(),
		Label:    env.Label(),
		Score:    env.Score,
	}
	if env.Err != nil {
		out.Error = env.Err.Error()
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

package llm

// Parameters contains the optional generation parameters sent with every remote call.
//
// Providers ignore the parameters they do not support. Names follow the OpenRouter documentation:
// https://openrouter.ai/docs/api-reference/parameters
type Parameters struct {
	Temperature       *float32       `yaml:"temperature"`
	TopP              *float32       `yaml:"top_p"`
	TopK              *int           `yaml:"top_k"`
	FrequencyPenalty  *float32       `yaml:"frequency_penalty"`
	PresencePenalty   *float32       `yaml:"presence_penalty"`
	RepetitionPenalty *float32       `yaml:"repetition_penalty"`
	MinP              *float32       `yaml:"min_p"`
	TopA              *float32       `yaml:"top_a"`
	Seed              *int           `yaml:"seed"`
	MaxTokens         *int           `yaml:"max_tokens"`
	LogitBias         map[string]int `yaml:"logit_bias"`
	Stop              []string       `yaml:"stop"`
	// IncludeReasoning asks reasoning models to think before answering. Reasoning blocks are
	// always stripped from the returned text.
	IncludeReasoning *bool `yaml:"include_reasoning"`
}

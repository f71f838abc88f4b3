package wordgen

// Config controls an LLMGenerator.
type Config struct {
	// Validators run in order on every draft; the first failure wins.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// DefaultCount is used when Input.Count is zero.
	DefaultCount int

	// MaxCount caps Input.Count.
	MaxCount int

	// MaxExclude caps how many excluded words are quoted in the prompt.
	MaxExclude int
}

func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&HintValidator{},
			&ExcludeValidator{},
		},
		MaxTokens:    1024,
		Temperature:  0.8,
		DefaultCount: 10,
		MaxCount:     30,
		MaxExclude:   40,
	}
}

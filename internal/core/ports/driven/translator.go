package driven

import "context"

// Translator is the outbound translation capability: one fallible call
// per text record. The wire protocol behind it is out of scope; errors
// are classified into the domain taxonomy (ErrNetwork, ErrTimeout,
// ErrRateLimited) so the orchestrator can decide what to retry.
//
// Implementations may include:
//   - OpenAI-compatible chat-completions APIs (OpenRouter, OpenAI)
//   - Ollama (local models)
type Translator interface {
	// Translate returns the target-language rendering of text.
	Translate(ctx context.Context, text string) (string, error)

	// ModelName returns the model identifier being used.
	ModelName() string

	// Ping validates the backend is reachable and the credential is
	// accepted. Run once at startup, before any job is dispatched.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

package driven

// Prompt names used by the translation backend.
const (
	// PromptTranslateSystem is the system prompt template. It takes
	// one %s placeholder for the target language.
	PromptTranslateSystem = "translate_system"
)

// PromptStore loads prompt templates, typically from user-editable
// files with embedded fallbacks.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}

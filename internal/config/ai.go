package config

type Model string

const (
	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"
)

// KnownModels lists the models with a price in the cost table. Other model
// names are accepted but cannot be estimated.
func KnownModels() []Model {
	return []Model{
		ModelGeminiV25Flash,
		ModelGeminiV25Pro,
		ModelGeminiV25FlashLite,
	}
}

package config

// Config structure
type Config struct {
	LLMProvider      string `json:"llmProvider"`
	APIKey           string `json:"apiKey"`
	BaseURL          string `json:"baseUrl"`
	ModelName        string `json:"modelName"`
	UseMockAssistant bool   `json:"useMockAssistant"` // Skip the LLM even when a key is configured

	DataDir   string `json:"dataDir"`   // Database and log location
	ExportDir string `json:"exportDir"` // Where exported decks are written

	DefaultBrandKitID string `json:"defaultBrandKitId,omitempty"` // Brand applied when a deck names none

	DetailedLog bool `json:"detailedLog"`
}

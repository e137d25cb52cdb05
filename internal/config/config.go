package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible
// embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
// Dimension applies to both implementations and must match the collection
// schema.
type EmbedderConfig struct {
	Type      string                `yaml:"type"`
	Dimension int                   `yaml:"dimension"`
	OpenAI    *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type       string        `yaml:"type"`
	Collection string        `yaml:"collection"`
	Qdrant     *QdrantConfig `yaml:"qdrant,omitempty"`
}

// CorpusConfig locates the rule books on disk.
type CorpusConfig struct {
	Dir string `yaml:"dir"`
}

// MoodConfig holds the similarity breakpoints and multipliers of the
// mood-compatibility gate. The defaults were hand-tuned against the corpus
// and do not generalize to a different embedding model without
// re-calibration.
type MoodConfig struct {
	SevereBelow        float64 `yaml:"severe_below"`
	ModerateBelow      float64 `yaml:"moderate_below"`
	BoostAbove         float64 `yaml:"boost_above"`
	SevereMultiplier   float64 `yaml:"severe_multiplier"`
	ModerateMultiplier float64 `yaml:"moderate_multiplier"`
	BoostMultiplier    float64 `yaml:"boost_multiplier"`
}

// ScoringConfig holds the score-fusion constants.
type ScoringConfig struct {
	BaseScore          int        `yaml:"base_score"`
	MinScore           int        `yaml:"min_score"`
	MaxScore           int        `yaml:"max_score"`
	RelevanceThreshold float64    `yaml:"relevance_threshold"`
	RetrievalLimit     int        `yaml:"retrieval_limit"`
	Mood               MoodConfig `yaml:"mood"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus      CorpusConfig      `yaml:"corpus"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Server      ServerConfig      `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/stylerag/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "stylerag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Corpus:      CorpusConfig{Dir: "rules_json"},
		Embedder:    EmbedderConfig{Type: "hashing", Dimension: 384},
		VectorStore: VectorStoreConfig{Type: "memory", Collection: "fashion_rules"},
		Scoring:     defaultScoring(),
		Server:      ServerConfig{Addr: ":8080"},
	}
	return cfg
}

func defaultScoring() ScoringConfig {
	return ScoringConfig{
		BaseScore:          60,
		MinScore:           1,
		MaxScore:           100,
		RelevanceThreshold: 0.3,
		RetrievalLimit:     5,
		Mood: MoodConfig{
			SevereBelow:        0.15,
			ModerateBelow:      0.25,
			BoostAbove:         0.4,
			SevereMultiplier:   0.4,
			ModerateMultiplier: 0.7,
			BoostMultiplier:    1.1,
		},
	}
}

// DefaultScoring exposes the tuned scoring constants for callers that
// construct the engine without a config file.
func DefaultScoring() ScoringConfig { return defaultScoring() }

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Corpus.Dir == "" {
		cfg.Corpus.Dir = "rules_json"
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "hashing"
	}
	if cfg.Embedder.Dimension == 0 {
		cfg.Embedder.Dimension = 384
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.VectorStore.Collection == "" {
		cfg.VectorStore.Collection = "fashion_rules"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	def := defaultScoring()
	sc := &cfg.Scoring
	if sc.BaseScore == 0 {
		sc.BaseScore = def.BaseScore
	}
	if sc.MinScore == 0 {
		sc.MinScore = def.MinScore
	}
	if sc.MaxScore == 0 {
		sc.MaxScore = def.MaxScore
	}
	if sc.RelevanceThreshold == 0 {
		sc.RelevanceThreshold = def.RelevanceThreshold
	}
	if sc.RetrievalLimit == 0 {
		sc.RetrievalLimit = def.RetrievalLimit
	}
	if sc.Mood == (MoodConfig{}) {
		sc.Mood = def.Mood
	}
}

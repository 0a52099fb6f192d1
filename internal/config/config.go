package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samruddhip/pdfchat/internal/domain"
)

// Config holds all resolved runtime settings. It is built once at startup
// and read-only afterwards.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	OpenAI    OpenAIConfig
	Chunk     ChunkConfig
	Retrieval RetrievalConfig
	Auth      AuthConfig
	UI        UIConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds session/history database settings.
type DatabaseConfig struct {
	Path string
}

// OpenAIConfig holds the embedding and completion provider settings.
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
	Timeout        time.Duration
}

// ChunkConfig holds text splitting settings.
type ChunkConfig struct {
	Size       int
	Overlap    int
	Separators []string
}

// RetrievalConfig holds top-K retrieval and index cache settings.
type RetrievalConfig struct {
	TopK     int
	CacheTTL time.Duration
}

// AuthConfig holds the configured credential record.
type AuthConfig struct {
	Username     string
	PasswordHash string
}

// UIConfig holds user-facing label strings.
type UIConfig struct {
	Title             string
	SidebarTitle      string
	FileUploaderText  string
	QuestionInputText string
}

// Resolver looks up a raw string value for a key, reporting whether the
// key was present. Resolvers are consulted in order; the chain stops at
// the first hit.
type Resolver interface {
	Lookup(key string) (string, bool)
}

// Chain resolves keys against an ordered list of resolvers with typed
// coercion. A present-but-malformed value is a ConfigError, distinct
// from "not found" which falls through to the default.
type Chain struct {
	resolvers []Resolver
}

// NewChain builds a resolver chain.
func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

func (c *Chain) lookup(key string) (string, bool) {
	for _, r := range c.resolvers {
		if v, ok := r.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// String resolves key or returns def when absent.
func (c *Chain) String(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// Int resolves key as an integer.
func (c *Chain) Int(key string, def int) (int, error) {
	raw, ok := c.lookup(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &domain.ConfigError{Key: key, Want: "integer", Value: raw}
	}
	return n, nil
}

// Float resolves key as a float.
func (c *Chain) Float(key string, def float64) (float64, error) {
	raw, ok := c.lookup(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &domain.ConfigError{Key: key, Want: "number", Value: raw}
	}
	return f, nil
}

// Duration resolves key as a number of seconds.
func (c *Chain) Duration(key string, def time.Duration) (time.Duration, error) {
	secs, err := c.Int(key, int(def/time.Second))
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// secretsResolver reads a local secrets file through viper. A missing
// file is not an error; the resolver is simply empty.
type secretsResolver struct {
	v *viper.Viper
}

func newSecretsResolver(path string) *secretsResolver {
	if path == "" {
		path = "secrets.yaml"
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return &secretsResolver{}
	}
	return &secretsResolver{v: v}
}

func (r *secretsResolver) Lookup(key string) (string, bool) {
	if r.v == nil || !r.v.IsSet(key) {
		return "", false
	}
	// Secrets files often carry quoted values; strip them before coercion.
	s := strings.TrimSpace(r.v.GetString(key))
	s = strings.Trim(s, `"'`)
	return s, true
}

// osEnvResolver reads process environment variables.
type osEnvResolver struct{}

func (osEnvResolver) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Load resolves the full configuration: secrets file, then environment,
// then built-in defaults. A `.env` file in the working directory is
// loaded into the environment first, matching the envinit helper output.
func Load(secretsPath string) (*Config, error) {
	_ = godotenv.Load()

	chain := NewChain(newSecretsResolver(secretsPath), osEnvResolver{})
	return Resolve(chain)
}

// Resolve builds a Config from an arbitrary resolver chain.
func Resolve(chain *Chain) (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.Server.Host = chain.String("SERVER_HOST", "0.0.0.0")
	if cfg.Server.Port, err = chain.Int("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	cfg.Database.Path = chain.String("DATABASE_PATH", "./data/pdfchat.db")

	cfg.OpenAI.APIKey = chain.String("OPENAI_API_KEY", "")
	cfg.OpenAI.BaseURL = chain.String("OPENAI_BASE_URL", "https://api.openai.com/v1")
	cfg.OpenAI.Model = chain.String("OPENAI_MODEL", "gpt-3.5-turbo")
	cfg.OpenAI.EmbeddingModel = chain.String("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")
	if cfg.OpenAI.Temperature, err = chain.Float("OPENAI_TEMPERATURE", 0); err != nil {
		return nil, err
	}
	if cfg.OpenAI.MaxTokens, err = chain.Int("OPENAI_MAX_TOKENS", 1000); err != nil {
		return nil, err
	}
	if cfg.OpenAI.Timeout, err = chain.Duration("OPENAI_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	if cfg.Chunk.Size, err = chain.Int("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.Chunk.Overlap, err = chain.Int("CHUNK_OVERLAP", 150); err != nil {
		return nil, err
	}
	cfg.Chunk.Separators = ParseSeparators(chain.String("CHUNK_SEPARATORS", `\n`))

	if cfg.Retrieval.TopK, err = chain.Int("TOP_K", 4); err != nil {
		return nil, err
	}
	if cfg.Retrieval.CacheTTL, err = chain.Duration("INDEX_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}

	cfg.Auth.Username = chain.String("APP_USERNAME", "")
	cfg.Auth.PasswordHash = chain.String("APP_PASSWORD_HASH", "")

	cfg.UI.Title = chain.String("APP_TITLE", "PDF Chatbot - Ask Questions About Your Documents")
	cfg.UI.SidebarTitle = chain.String("SIDEBAR_TITLE", "Your Documents")
	cfg.UI.FileUploaderText = chain.String("FILE_UPLOADER_TEXT", "Upload a PDF file and start asking questions")
	cfg.UI.QuestionInputText = chain.String("QUESTION_INPUT_TEXT", "Type your question here")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OpenAI.APIKey == "" {
		return &domain.ConfigError{Key: "OPENAI_API_KEY", Want: "non-empty API key"}
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 1 {
		return &domain.ConfigError{
			Key:   "OPENAI_TEMPERATURE",
			Want:  "number between 0 and 1",
			Value: strconv.FormatFloat(c.OpenAI.Temperature, 'f', -1, 64),
		}
	}
	if c.OpenAI.MaxTokens <= 0 {
		return &domain.ConfigError{Key: "OPENAI_MAX_TOKENS", Want: "positive integer", Value: strconv.Itoa(c.OpenAI.MaxTokens)}
	}
	if c.Chunk.Size <= 0 {
		return &domain.ConfigError{Key: "CHUNK_SIZE", Want: "positive integer", Value: strconv.Itoa(c.Chunk.Size)}
	}
	if c.Chunk.Overlap < 0 || c.Chunk.Overlap >= c.Chunk.Size {
		return &domain.ConfigError{
			Key:   "CHUNK_OVERLAP",
			Want:  "non-negative integer smaller than CHUNK_SIZE",
			Value: strconv.Itoa(c.Chunk.Overlap),
		}
	}
	if c.Retrieval.TopK <= 0 {
		return &domain.ConfigError{Key: "TOP_K", Want: "positive integer", Value: strconv.Itoa(c.Retrieval.TopK)}
	}
	if c.Retrieval.CacheTTL <= 0 {
		return &domain.ConfigError{Key: "INDEX_CACHE_TTL", Want: "positive number of seconds"}
	}
	return nil
}

// Address returns the server listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ParseSeparators parses a comma-separated separator list, honoring \n,
// \t and \\ escapes. The default single newline covers the common case.
func ParseSeparators(raw string) []string {
	parts := strings.Split(raw, ",")
	seps := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`).Replace(p)
		if p != "" {
			seps = append(seps, p)
		}
	}
	return seps
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type MongoConfig struct {
	URI             string `yaml:"uri"`
	Database        string `yaml:"database"`
	Collection      string `yaml:"collection"`
	ChunkCollection string `yaml:"chunk_collection"`
}

type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Key         string  `yaml:"key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// EmbedConfig selects the embedding backend. Provider is "openai" or "ollama".
type EmbedConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type PDFConfig struct {
	ReportURL       string        `yaml:"report_url"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	MaxSizeMB       int64         `yaml:"max_size_mb"`
	DownloadDir     string        `yaml:"download_dir"`
}

type RAGConfig struct {
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	CollectionName string `yaml:"collection_name"`
	IndexPath      string `yaml:"index_path"`
	MaxWorkers     int    `yaml:"max_workers"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
	LLM      LLMConfig      `yaml:"llm"`
	Embed    EmbedConfig    `yaml:"embedding"`
	PDF      PDFConfig      `yaml:"pdf"`
	RAG      RAGConfig      `yaml:"rag"`
}

const (
	DefaultChunkSize    = 1024
	DefaultChunkOverlap = 512
	DefaultMaxWorkers   = 4
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "report_documents"
	}
	if c.Mongo.ChunkCollection == "" {
		c.Mongo.ChunkCollection = "report_chunks"
	}
	if c.RAG.ChunkSize == 0 {
		c.RAG.ChunkSize = DefaultChunkSize
	}
	if c.RAG.ChunkOverlap == 0 {
		c.RAG.ChunkOverlap = DefaultChunkOverlap
	}
	if c.RAG.CollectionName == "" {
		c.RAG.CollectionName = "report_collection"
	}
	if c.RAG.MaxWorkers == 0 {
		c.RAG.MaxWorkers = DefaultMaxWorkers
	}
	if c.PDF.DownloadTimeout == 0 {
		c.PDF.DownloadTimeout = 60 * time.Second
	}
	if c.PDF.MaxSizeMB == 0 {
		c.PDF.MaxSizeMB = 50
	}
	if c.PDF.DownloadDir == "" {
		c.PDF.DownloadDir = "./downloads"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4096
	}
}

// applyEnv lets secrets come from the environment instead of the yaml file.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.Key = v
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		c.Embed.Key = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
}

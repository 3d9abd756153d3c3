package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/w-h-a/tutor"
	"github.com/w-h-a/tutor/config"
	"github.com/w-h-a/tutor/corpus"
	"github.com/w-h-a/tutor/embedder"
	googleembedder "github.com/w-h-a/tutor/embedder/google"
	openaiembedder "github.com/w-h-a/tutor/embedder/openai"
	"github.com/w-h-a/tutor/generator"
	anthropicgenerator "github.com/w-h-a/tutor/generator/anthropic"
	googlegenerator "github.com/w-h-a/tutor/generator/google"
	openaigenerator "github.com/w-h-a/tutor/generator/openai"
	"github.com/w-h-a/tutor/retriever"
	"github.com/w-h-a/tutor/server"
	"github.com/w-h-a/tutor/session"
)

var (
	cfg struct {
		// Server config
		Address string `help:"Address to serve on" default:""`
		Config  string `help:"Optional YAML config file" default:""`

		// Generator config
		Provider    string  `help:"Completion backend: openai, anthropic, or google" default:""`
		ApiKey      string  `help:"API key for the completion backend" env:"TUTOR_API_KEY" default:""`
		BaseURL     string  `help:"Override the completion API base URL (OpenAI-compatible hosts)" default:""`
		Model       string  `help:"Model identifier for the completion backend" default:""`
		Temperature float32 `help:"Sampling temperature (0.7 when unset)" default:"0"`
		MaxTokens   int     `help:"Completion token budget (3000 when unset)" default:"0"`

		// Embedder config
		EmbeddingProvider string `help:"Embedding backend: openai or google" default:"openai"`
		EmbeddingKey      string `help:"API key for the embedding backend" env:"TUTOR_EMBEDDING_KEY" default:""`
		EmbeddingModel    string `help:"Model identifier for the embedding backend" default:""`

		// Corpus config
		DataDir   string `help:"Directory for persisted course snapshots" default:""`
		ChunkSize int    `help:"Chunk size in characters" default:"0"`
		Persist   bool   `help:"Write course snapshots to disk" default:"true"`

		// Logging config
		LogLevel string `help:"Log level" default:"info"`
	}
)

func main() {
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)

	setupLogging()
	resolveConfig()

	emb := newEmbedder()

	store := corpus.NewStore(
		emb,
		corpus.WithChunkSize(cfg.ChunkSize),
		corpus.WithDataDir(cfg.DataDir),
		corpus.WithPersistence(cfg.Persist),
	)

	gateway := generator.NewGateway(newBackend())

	t := tutor.New(
		store,
		retriever.New(store, emb),
		gateway,
		session.NewStore(),
	)

	srv := server.New(t, server.WithAddress(cfg.Address))

	ctx := cancellableContext()

	// drop persisted snapshots with the process, matching in-memory state
	defer func() {
		if err := t.Clear(); err != nil {
			log.Warn().Err(err).Msg("failed to clear data on shutdown")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// resolveConfig fills unset flags from the YAML file, then from built-in
// defaults. Flags and environment always win.
func resolveConfig() {
	fileCfg := &config.Config{}

	if len(cfg.Config) > 0 {
		loaded, err := config.Load(cfg.Config)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config file")
		}
		fileCfg = loaded
	}

	fallback := func(val *string, fromFile, def string) {
		if len(*val) == 0 {
			*val = fromFile
		}
		if len(*val) == 0 {
			*val = def
		}
	}

	fallback(&cfg.Address, fileCfg.Address, server.DefaultAddress)
	fallback(&cfg.Provider, fileCfg.Provider, "openai")
	fallback(&cfg.ApiKey, fileCfg.ApiKey, "")
	fallback(&cfg.BaseURL, fileCfg.BaseURL, "")
	fallback(&cfg.Model, fileCfg.Model, "gpt-4o-mini")
	fallback(&cfg.EmbeddingModel, fileCfg.EmbeddingModel, "text-embedding-3-small")
	fallback(&cfg.DataDir, fileCfg.DataDir, corpus.DefaultDataDir)

	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = fileCfg.ChunkSize
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = corpus.DefaultChunkSize
	}

	// zero stands for unset on the numeric generator knobs
	if cfg.Temperature == 0 {
		cfg.Temperature = fileCfg.Temperature
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = generator.DefaultTemperature
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = fileCfg.MaxTokens
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = generator.DefaultMaxTokens
	}

	if len(cfg.EmbeddingKey) == 0 {
		cfg.EmbeddingKey = cfg.ApiKey
	}
}

func newEmbedder() embedder.Embedder {
	opts := []embedder.Option{
		embedder.WithApiKey(cfg.EmbeddingKey),
		embedder.WithModel(cfg.EmbeddingModel),
	}

	switch strings.ToLower(cfg.EmbeddingProvider) {
	case "google":
		return googleembedder.NewEmbedder(opts...)
	default:
		return openaiembedder.NewEmbedder(opts...)
	}
}

func newBackend() generator.Generator {
	opts := []generator.Option{
		generator.WithApiKey(cfg.ApiKey),
		generator.WithModel(cfg.Model),
		generator.WithTemperature(cfg.Temperature),
		generator.WithMaxTokens(cfg.MaxTokens),
	}

	if len(cfg.BaseURL) > 0 {
		opts = append(opts, generator.WithBaseURL(cfg.BaseURL))
	}

	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return anthropicgenerator.NewGenerator(opts...)
	case "google":
		return googlegenerator.NewGenerator(opts...)
	default:
		return openaigenerator.NewGenerator(opts...)
	}
}

func cancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}

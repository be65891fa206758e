package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"finance-rag/internal/config"
	"finance-rag/internal/docstore"
	"finance-rag/internal/embedding"
	"finance-rag/internal/fetch"
	"finance-rag/internal/financedb"
	"finance-rag/internal/llm"
	"finance-rag/internal/pipeline"
	"finance-rag/internal/report"
	"finance-rag/internal/server"
	"finance-rag/internal/vectorstore"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	configPath := flag.String("config", "configs/config.yaml", "Path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	ctx := context.Background()

	docs, err := docstore.Connect(ctx, &cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to document store")
	}

	downloader, err := fetch.NewDownloader(&cfg.PDF)
	if err != nil {
		log.Fatal().Err(err).Msg("Error preparing download directory")
	}

	llmClient, err := llm.NewClient(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating completion client")
	}
	embedder, err := embedding.NewEmbedder(&cfg.Embed)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating embedder")
	}

	coordinator := pipeline.NewCoordinator(pipeline.NewProcessor(llmClient), cfg.RAG.MaxWorkers)
	reports := report.NewService(downloader, coordinator, docs)

	index, err := vectorstore.NewIndex(cfg.RAG.IndexPath, cfg.RAG.CollectionName, cfg.RAG.IndexPath == "")
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector index")
	}
	chunks := vectorstore.NewChunkStore(docs.Client(), cfg.Mongo.Database, cfg.Mongo.ChunkCollection)
	vectors := vectorstore.NewService(docs, chunks, index, embedder, &cfg.RAG)

	handlers := server.Handlers{
		Stock:   server.NewStockHandler(reports),
		PDF:     server.NewPDFHandler(docs),
		Vectors: server.NewVectorHandler(vectors),
	}

	if cfg.Postgres.DSN != "" {
		financeDB := financedb.NewDB(financedb.ConnectDB(&cfg.Postgres), cfg.Postgres.Debug)
		handlers.Finance = server.NewFinanceHandler(financeDB)
		defer financeDB.Close()
	} else {
		log.Warn().Msg("no postgres dsn configured, finance routes disabled")
	}

	app := fiber.New(fiber.Config{AppName: "finance-rag"})
	app.Use(server.Recover())
	app.Use(server.RequestLogger())
	server.RegisterRoutes(app, handlers)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("Error starting server")
		}
	}()
	log.Info().Str("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := docs.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error closing document store")
	}
}

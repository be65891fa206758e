package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"finance-rag/internal/config"
	"finance-rag/internal/docstore"
	"finance-rag/internal/embedding"
	"finance-rag/internal/extract"
	"finance-rag/internal/fetch"
	"finance-rag/internal/helper"
	"finance-rag/internal/llm"
	"finance-rag/internal/models"
	"finance-rag/internal/pipeline"
	"finance-rag/internal/report"
	"finance-rag/internal/vectorstore"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	_ = godotenv.Load()

	filePath := flag.String("file", "", "Path to a local report file to process")
	ticker := flag.String("ticker", "", "Ticker the report belongs to")
	promptType := flag.String("prompt-type", "default", "Prompt type: default or detailed")
	query := flag.String("query", "", "Hybrid search query")
	dryRun := flag.Bool("dry-run", false, "Process the file but do not persist anything")
	configPath := flag.String("config", "configs/config.yaml", "Path to the config file")
	flag.Parse()

	if *filePath != "" && *query != "" {
		log.Fatal().Msg("Please provide either a report file using the -file flag or a query using the -query flag, but not both")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	ctx := context.Background()

	switch {
	case *filePath != "" && *dryRun:
		processDryRun(ctx, cfg, *filePath, *promptType)
	case *filePath != "":
		if *ticker == "" {
			log.Fatal().Msg("The -ticker flag is required when processing a file")
		}
		processFile(ctx, cfg, *filePath, *ticker, *promptType)
	case *query != "":
		search(ctx, cfg, *query)
	default:
		flag.Usage()
	}
}

// processDryRun runs extraction and page processing without touching any
// store. Useful for checking prompts against a report.
func processDryRun(ctx context.Context, cfg *config.Config, path, promptType string) {
	pages, err := extract.Extract(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Error extracting pages")
	}

	client, err := llm.NewClient(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating completion client")
	}
	coordinator := pipeline.NewCoordinator(pipeline.NewProcessor(client), cfg.RAG.MaxWorkers)

	result := coordinator.Run(ctx, pages, models.Prompt(promptType))
	helper.PrettyPrint(result.IntegratedSummary)
}

func processFile(ctx context.Context, cfg *config.Config, path, ticker, promptType string) {
	docs, err := docstore.Connect(ctx, &cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to document store")
	}
	defer docs.Close(ctx)

	downloader, err := fetch.NewDownloader(&cfg.PDF)
	if err != nil {
		log.Fatal().Err(err).Msg("Error preparing download directory")
	}
	client, err := llm.NewClient(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating completion client")
	}
	coordinator := pipeline.NewCoordinator(pipeline.NewProcessor(client), cfg.RAG.MaxWorkers)

	reports := report.NewService(downloader, coordinator, docs)
	res, err := reports.ProcessFile(ctx, path, ticker, promptType)
	if err != nil {
		log.Fatal().Err(err).Msg("Error processing report")
	}
	helper.PrettyPrint(res)
}

func search(ctx context.Context, cfg *config.Config, query string) {
	docs, err := docstore.Connect(ctx, &cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to document store")
	}
	defer docs.Close(ctx)

	embedder, err := embedding.NewEmbedder(&cfg.Embed)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating embedder")
	}
	index, err := vectorstore.NewIndex(cfg.RAG.IndexPath, cfg.RAG.CollectionName, cfg.RAG.IndexPath == "")
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector index")
	}
	chunks := vectorstore.NewChunkStore(docs.Client(), cfg.Mongo.Database, cfg.Mongo.ChunkCollection)
	vectors := vectorstore.NewService(docs, chunks, index, embedder, &cfg.RAG)

	results, err := vectors.SearchHybrid(ctx, query, 10, vectorstore.DefaultVectorWeight, vectorstore.DefaultKeywordWeight)
	if err != nil {
		log.Fatal().Err(err).Msg("Error searching")
	}
	helper.PrettyPrint(results)
}

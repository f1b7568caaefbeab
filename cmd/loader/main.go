package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/docopt/docopt-go"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"touristplaces/internal/loadingData"
	"touristplaces/pkg/config"
	"touristplaces/pkg/dataset"
	"touristplaces/pkg/logger"
)

func main() {
	usage := `Tourist places loader.

Indexes the places table into Elasticsearch.

Usage:
  loader [--config=<file>] [--file=<csv_file>] [--index=<name>]
  loader -h | --help

Options:
  -h --help            Show this screen.
  --config=<file>      YAML configuration file.
  --file=<csv_file>    Places CSV, overrides data.path.
  --index=<name>       Index name, overrides elasticsearch.index.
`

	arguments, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing arguments: %v", err)
	}
	configPath, _ := arguments.String("--config")
	filePath, _ := arguments.String("--file")
	indexName, _ := arguments.String("--index")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if filePath != "" {
		cfg.Data.Path = filePath
	}
	if indexName != "" {
		cfg.Elasticsearch.Index = indexName
	}
	if !cfg.Elasticsearch.Enabled() {
		log.Fatalf("No elasticsearch addresses configured, set elasticsearch.addresses or TOURIST_ES_ADDRESSES")
	}

	logs, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logs.Sync()

	ds, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		logs.Fatal("load dataset", zap.String("path", cfg.Data.Path), zap.Error(err))
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: cfg.Elasticsearch.Addresses})
	if err != nil {
		logs.Fatal("create elasticsearch client", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if _, err := loadingData.Run(ctx, es, ds, cfg.Elasticsearch, logs); err != nil {
		logs.Fatal("load places", zap.Error(err))
	}
}

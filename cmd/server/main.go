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

	"touristplaces/internal/webInterface"
	"touristplaces/pkg/config"
	"touristplaces/pkg/dataset"
	"touristplaces/pkg/db"
	"touristplaces/pkg/jwt"
	"touristplaces/pkg/logger"
)

func main() {
	usage := `Tourist places server.

Usage:
  server [--config=<file>]
  server -h | --help

Options:
  -h --help          Show this screen.
  --config=<file>    YAML configuration file.
`

	arguments, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing arguments: %v", err)
	}
	configPath, _ := arguments.String("--config")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
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
	logs.Info("dataset loaded", zap.Int("places", ds.Len()), zap.Int("cities", len(ds.Cities())))

	var store db.Store = ds
	if cfg.Elasticsearch.Enabled() {
		es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: cfg.Elasticsearch.Addresses})
		if err != nil {
			logs.Fatal("create elasticsearch client", zap.Error(err))
		}
		store = db.NewESStore(es, cfg.Elasticsearch.Index)
		logs.Info("using elasticsearch", zap.Strings("addresses", cfg.Elasticsearch.Addresses), zap.String("index", cfg.Elasticsearch.Index))
	}

	issuer, err := jwt.NewIssuer(cfg.Auth.JWTKey, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		logs.Fatal("create token issuer", zap.Error(err))
	}

	srv, err := webInterface.NewServer(cfg, ds, store, issuer, logs)
	if err != nil {
		logs.Fatal("create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		logs.Fatal("server stopped", zap.Error(err))
	}
}

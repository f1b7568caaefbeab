package loadingData

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"touristplaces/pkg/config"
	"touristplaces/pkg/dataset"
	"touristplaces/pkg/db"
)

// Stats reports the outcome of one bulk run.
type Stats struct {
	Indexed uint64
	Failed  uint64
}

// Run creates the index when it does not exist yet and bulk-indexes every
// place of ds under its row number.
func Run(ctx context.Context, es *elasticsearch.Client, ds *dataset.Dataset, cfg config.Elasticsearch, log *zap.Logger) (Stats, error) {
	var (
		countSuccessful uint64
		countFailed     uint64
	)

	if err := ensureIndex(ctx, es, cfg.Index, log); err != nil {
		return Stats{}, err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         cfg.Index,
		Client:        es,
		NumWorkers:    cfg.Workers,
		FlushBytes:    cfg.FlushBytes,
		FlushInterval: cfg.FlushInterval,
	})
	if err != nil {
		return Stats{}, fmt.Errorf("create bulk indexer: %w", err)
	}

	for _, place := range ds.All() {
		data, err := json.Marshal(place)
		if err != nil {
			return Stats{}, fmt.Errorf("encode place %d: %w", place.ID, err)
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: strconv.Itoa(place.ID),
				Body:       bytes.NewReader(data),
				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
					atomic.AddUint64(&countSuccessful, 1)
				},
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					atomic.AddUint64(&countFailed, 1)
					if err != nil {
						log.Error("index document", zap.String("id", item.DocumentID), zap.Error(err))
					} else {
						log.Error("index document",
							zap.String("id", item.DocumentID),
							zap.String("type", res.Error.Type),
							zap.String("reason", res.Error.Reason))
					}
				},
			},
		)
		if err != nil {
			return Stats{}, fmt.Errorf("queue place %d: %w", place.ID, err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return Stats{}, fmt.Errorf("flush bulk indexer: %w", err)
	}

	stats := Stats{
		Indexed: atomic.LoadUint64(&countSuccessful),
		Failed:  atomic.LoadUint64(&countFailed),
	}
	biStats := bi.Stats()
	log.Info("bulk indexing finished",
		zap.String("index", cfg.Index),
		zap.Uint64("indexed", stats.Indexed),
		zap.Uint64("failed", stats.Failed),
		zap.Uint64("requests", biStats.NumRequests))
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%d of %d places failed to index", stats.Failed, ds.Len())
	}
	return stats, nil
}

func ensureIndex(ctx context.Context, es *elasticsearch.Client, index string, log *zap.Logger) error {
	exist, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	defer exist.Body.Close()
	if exist.StatusCode == 200 {
		return nil
	}

	resp, err := es.Indices.Create(
		index,
		es.Indices.Create.WithBody(strings.NewReader(db.Mapping)),
		es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("create index %s: %s", index, resp.Status())
	}
	log.Info("index created", zap.String("index", index))
	return nil
}

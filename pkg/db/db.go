package db

import (
	"bytes"
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/goccy/go-json"

	"touristplaces/pkg/types"
)

type Store interface {
	// returns a list of items, a total number of hits and (or) an error in case of one
	GetPlaces(ctx context.Context, limit int, offset int) ([]types.Place, int, error)
	// returns up to size places ordered by distance from point
	Nearby(ctx context.Context, point types.GeoPoint, size int) ([]types.NearbyPlace, error)
}

// Mapping is the index definition the loader creates.
const Mapping = `{
	"settings": {
		"index": {
		  "max_result_window" : 20000
		}
	},
	"mappings": {
		"properties": {
			"id":                 {"type": "integer"},
			"name":               {"type": "text"},
			"city":               {"type": "keyword"},
			"category":           {"type": "keyword"},
			"type":               {"type": "keyword"},
			"location":           {"type": "geo_point"},
			"monthly_visitors":   {"type": "integer"},
			"best_time_to_visit": {"type": "keyword"},
			"historical_rainfall": {"type": "float"}
		}
	}
}`

type ESStore struct {
	client *elasticsearch.Client
	index  string
}

func NewESStore(client *elasticsearch.Client, index string) *ESStore {
	return &ESStore{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source types.Place `json:"_source"`
			Sort   []float64   `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ESStore) search(ctx context.Context, query map[string]interface{}) (*searchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
		s.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("error getting places: %s", resp.Status())
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &result, nil
}

func (s *ESStore) GetPlaces(ctx context.Context, limit int, offset int) ([]types.Place, int, error) {
	query := map[string]interface{}{
		"size": limit,
		"from": offset,
		"sort": []interface{}{"id"},
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
	}

	result, err := s.search(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	places := make([]types.Place, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		places = append(places, hit.Source)
	}
	return places, result.Hits.Total.Value, nil
}

func (s *ESStore) Nearby(ctx context.Context, point types.GeoPoint, size int) ([]types.NearbyPlace, error) {
	query := map[string]interface{}{
		"sort": []map[string]interface{}{
			{
				"_geo_distance": map[string]interface{}{
					"location": map[string]interface{}{
						"lat": point.Lat,
						"lon": point.Lon,
					},
					"order":           "asc",
					"unit":            "km",
					"mode":            "min",
					"distance_type":   "arc",
					"ignore_unmapped": true,
				},
			},
		},
		"size": size,
	}

	result, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}
	places := make([]types.NearbyPlace, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		np := types.NearbyPlace{Place: hit.Source}
		if len(hit.Sort) > 0 {
			np.DistanceKm = hit.Sort[0]
		}
		places = append(places, np)
	}
	return places, nil
}

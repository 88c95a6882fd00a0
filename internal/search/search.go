// Package search mirrors the fetched catalog snapshot into Elasticsearch
// and serves full-text queries over it. The index is best-effort: the
// storefront works without it, search just comes back empty.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

func errResponse(status string) error {
	return errors.New("elasticsearch: " + status)
}

type Indexer struct {
	ES    *elasticsearch.Client
	Index string
}

// IndexProducts upserts the snapshot one document per product, keyed by
// the catalog identifier so re-indexing stays idempotent.
func (ix *Indexer) IndexProducts(ctx context.Context, products []models.Product) error {
	l := logging.FromContext(ctx).With("svc", "search.index_products")

	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal product %d: %w", p.ID, err)
		}

		res, err := ix.ES.Index(
			ix.Index,
			bytes.NewReader(data),
			ix.ES.Index.WithContext(ctx),
			ix.ES.Index.WithDocumentID(strconv.Itoa(p.ID)),
		)
		if err != nil {
			return fmt.Errorf("index product %d: %w", p.ID, err)
		}
		if res.IsError() {
			res.Body.Close()
			return fmt.Errorf("index product %d: %w", p.ID, errResponse(res.Status()))
		}
		res.Body.Close()
	}

	l.Info("catalog indexed", "count", len(products))
	return nil
}

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %w", errResponse(res.Status()))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode response: %w", err)
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return r.Hits.Total.Value, products, nil
}

package search

import (
	"io"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/storefront/internal/config"
)

func NewClient(l *slog.Logger, cfg *config.Config) (*elasticsearch.Client, error) {
	l.Info("connecting to Elasticsearch", "url", cfg.ESURL)

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, err
	}

	res, err := client.Info()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		l.Error("Elasticsearch error response", "body", string(body))
		return nil, errResponse(res.Status())
	}

	l.Info("connected to Elasticsearch")
	return client, nil
}

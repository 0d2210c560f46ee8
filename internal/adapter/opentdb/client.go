package opentdb

import (
	"trivia-harvester/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// NewHTTPClient builds the resty client shared by the discoverer and the fetcher.
func NewHTTPClient(cfg config.HarvestConfig, logger *zap.Logger) *resty.Client {
	client := resty.New()
	client.SetTimeout(cfg.HTTPTimeout)
	client.SetHeader("user-agent", cfg.UserAgent)
	client.SetLogger(logger.Named("http").Sugar())
	return client
}

package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"trivia-harvester/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// apiResponse is the envelope of https://opentdb.com/api.php.
type apiResponse struct {
	ResponseCode int              `json:"response_code"`
	Results      []domain.RawItem `json:"results"`
}

// APIBatchFetcher requests random question batches from the trivia API.
type APIBatchFetcher struct {
	client    *resty.Client
	url       string
	batchSize int
	logger    *zap.Logger
}

func NewAPIBatchFetcher(client *resty.Client, apiURL string, batchSize int, logger *zap.Logger) *APIBatchFetcher {
	return &APIBatchFetcher{
		client:    client,
		url:       apiURL,
		batchSize: batchSize,
		logger:    logger,
	}
}

// FetchBatch implements domain.BatchFetcher. A non-zero response_code discards the batch.
func (f *APIBatchFetcher) FetchBatch(ctx context.Context) ([]domain.RawItem, error) {
	res, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("amount", strconv.Itoa(f.batchSize)).
		Get(f.url)
	if err != nil {
		return nil, domain.NewTransportError("failed to contact the trivia API", err)
	}
	if res.IsError() {
		return nil, domain.NewTransportError(
			fmt.Sprintf("trivia API returned HTTP %d", res.StatusCode()), nil)
	}

	var body apiResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, domain.NewTransportError("malformed trivia API response", err)
	}
	if body.ResponseCode != 0 {
		return nil, domain.NewAPIStatusError(body.ResponseCode)
	}

	f.logger.Debug("Fetched trivia batch", zap.Int("size", len(body.Results)))
	return body.Results, nil
}

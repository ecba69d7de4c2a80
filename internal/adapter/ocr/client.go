package ocr

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/config"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type extractResponse struct {
	NationalID string  `json:"national_id"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text"`
}

// Client calls the external OCR service. Rate-limit (429) and server errors
// are retried a fixed small number of times, waiting out the Retry-After
// header when the service sends one.
type Client struct {
	http      *resty.Client
	retryWait time.Duration
	logger    *zap.Logger
}

func NewClient(cfg config.OCRConfig, logger *zap.Logger) *Client {
	c := &Client{
		retryWait: cfg.RetryWait,
		logger:    logger.Named("OCRClient"),
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(10 * cfg.RetryWait).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		httpClient.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	httpClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil || r == nil {
			return false
		}
		return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
	})
	httpClient.SetRetryAfter(func(_ *resty.Client, r *resty.Response) (time.Duration, error) {
		if r != nil {
			if header := r.Header().Get("Retry-After"); header != "" {
				if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
					return time.Duration(secs) * time.Second, nil
				}
			}
		}
		return c.retryWait, nil
	})

	c.http = httpClient
	return c
}

func (c *Client) Extract(ctx context.Context, documentKey string) (*gateway.Extraction, error) {
	var out extractResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"document": documentKey}).
		SetResult(&out).
		Post("/v1/extract")

	if err != nil {
		c.logger.Error("OCR request failed", zap.String("document", documentKey), zap.Error(err))
		return nil, fmt.Errorf("%w: ocr request failed: %v", domain.ErrUpstream, err)
	}
	if resp.IsError() {
		c.logger.Error("OCR service returned error status",
			zap.String("document", documentKey), zap.Int("status_code", resp.StatusCode()))
		return nil, fmt.Errorf("%w: ocr returned status %d", domain.ErrUpstream, resp.StatusCode())
	}

	confidence := out.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &gateway.Extraction{
		NationalID: out.NationalID,
		Confidence: confidence,
		RawText:    out.RawText,
	}, nil
}

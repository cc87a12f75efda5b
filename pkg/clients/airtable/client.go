package airtable

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://api.airtable.com"

// Client defines the interface for interacting with Airtable API
type Client interface {
	RecordExists(ctx context.Context, table, hash string) (bool, error)
	CreateRecord(ctx context.Context, table string, fields map[string]any) error
}

type clientImpl struct {
	http   *resty.Client
	baseID string
}

// NewClient creates a new Airtable client. baseURL may be empty.
func NewClient(apiKey, baseID, baseURL string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &clientImpl{
		http: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(apiKey).
			SetHeader("Content-Type", "application/json"),
		baseID: baseID,
	}
}

func (c *clientImpl) RecordExists(ctx context.Context, table, hash string) (bool, error) {
	var response struct {
		Records []struct {
			ID string `json:"id"`
		} `json:"records"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"base": c.baseID, "table": table}).
		SetQueryParam("filterByFormula", fmt.Sprintf(`{hash}="%s"`, hash)).
		SetResult(&response).
		ForceContentType("application/json").
		Get("/v0/{base}/{table}")
	if err != nil {
		return false, fmt.Errorf("error checking Airtable: %w", err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("error from Airtable API: %s", resp.String())
	}

	exists := len(response.Records) > 0
	log.Debug().Str("hash", hash).Str("table", table).Bool("exists", exists).Msg("airtable record check")
	return exists, nil
}

func (c *clientImpl) CreateRecord(ctx context.Context, table string, fields map[string]any) error {
	payload := map[string]any{
		"records": []map[string]any{
			{"fields": fields},
		},
		"typecast": true,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"base": c.baseID, "table": table}).
		SetBody(payload).
		Post("/v0/{base}/{table}")
	if err != nil {
		return fmt.Errorf("error creating Airtable record: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("error from Airtable API: %s", resp.String())
	}

	log.Info().Str("table", table).Msg("created Airtable record")
	return nil
}

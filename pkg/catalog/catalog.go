// Package catalog provides a client for the catalog backend, which owns the
// table and column metadata rendered by the dashboards.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/talkdata/erd-backend/pkg/service"
)

var _ service.CatalogAPI = &Client{}

type Client struct {
	client *http.Client
	apiURL string
	token  string
}

func New(apiURL, token string, client *http.Client) *Client {
	return &Client{
		client: client,
		apiURL: apiURL,
		token:  token,
	}
}

type tablesResponse struct {
	Tables []service.Table `json:"tables"`
}

// GetTables fetches the full table list. The catalog returns tables in a
// stable order, which downstream layout relies on for determinism.
func (c *Client) GetTables(ctx context.Context) ([]service.Table, error) {
	url := fmt.Sprintf("%s/tables", c.apiURL)

	tables := &tablesResponse{}
	err := c.sendRequestAndDeserialize(ctx, http.MethodGet, url, tables)
	if err != nil {
		return nil, err
	}

	return tables.Tables, nil
}

func (c *Client) sendRequestAndDeserialize(ctx context.Context, method, url string, into any) error {
	req, err := c.newRequestWithHeaders(ctx, method, url)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	err = json.NewDecoder(res.Body).Decode(into)
	if err != nil {
		return fmt.Errorf("deserializing response: %w", err)
	}

	return nil
}

func (c *Client) newRequestWithHeaders(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	return req, nil
}

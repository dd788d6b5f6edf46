package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client queries a Cloudflare AutoRAG knowledge base over its REST API.
type Client struct {
	baseURL   string
	accountID string
	apiToken  string
	client    *http.Client
}

func NewClient(baseURL, accountID, apiToken string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = "https://api.cloudflare.com/client/v4"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accountID: accountID,
		apiToken:  apiToken,
		client:    httpClient,
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  *struct {
		Response string `json:"response"`
	} `json:"result"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// AISearch runs query against the knowledge base name. An empty string with a
// nil error means the backend had no answer.
func (c *Client) AISearch(ctx context.Context, name, query string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("rag: knowledge base name is required")
	}
	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("rag: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/autorag/rags/%s/ai-search",
		c.baseURL, url.PathEscape(c.accountID), url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("rag: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("rag: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("rag: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("rag: unexpected status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("rag: decode response: %w", err)
	}
	if !out.Success {
		if len(out.Errors) > 0 {
			return "", fmt.Errorf("rag: api error %d: %s", out.Errors[0].Code, out.Errors[0].Message)
		}
		return "", errors.New("rag: api responded with success=false")
	}
	if out.Result == nil {
		return "", nil
	}
	return out.Result.Response, nil
}

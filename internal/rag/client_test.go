package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAISearch_ReturnsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/acc-1/autorag/rags/lottery-kb/ai-search", r.URL.Path)
		require.Equal(t, "Bearer cf-token", r.Header.Get("Authorization"))
		var body searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "latest Lotto 6/49 numbers", body.Query)
		_, _ = w.Write([]byte(`{"success":true,"result":{"response":"The numbers are 1 2 3"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "acc-1", "cf-token", nil)
	out, err := c.AISearch(context.Background(), "lottery-kb", "latest Lotto 6/49 numbers")
	require.NoError(t, err)
	require.Equal(t, "The numbers are 1 2 3", out)
}

func TestAISearch_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"result":null}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL, "acc", "", nil).AISearch(context.Background(), "kb", "q")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestAISearch_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"errors":[{"code":7003,"message":"no route"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "acc", "", nil)
	_, err := c.AISearch(context.Background(), "kb", "q")
	require.ErrorContains(t, err, "no route")

	_, err = c.AISearch(context.Background(), " ", "q")
	require.Error(t, err)
}

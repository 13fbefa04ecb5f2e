package executor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteParsesJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"userId":1,"id":1}`)
	}))
	defer server.Close()

	resp, err := Execute(context.Background(), server.Client(), Request{URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "OK", resp.StatusText)
	assert.Contains(t, resp.ContentType, "application/json")

	body, ok := resp.Body.(map[string]any)
	require.True(t, ok, "JSON responses should be decoded")
	assert.Equal(t, float64(1), body["userId"])
}

func TestExecuteKeepsRawTextForNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "hello world")
	}))
	defer server.Close()

	resp, err := Execute(context.Background(), server.Client(), Request{URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Body)
}

func TestExecuteMalformedJSONFallsBackToText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"broken":`)
	}))
	defer server.Close()

	resp, err := Execute(context.Background(), server.Client(), Request{URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, `{"broken":`, resp.Body)
}

func TestExecuteDefaultsToGET(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer server.Close()

	_, err := Execute(context.Background(), server.Client(), Request{URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestExecuteStringDataAutoContentType(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	_, err := Execute(context.Background(), server.Client(), Request{
		Method: "POST",
		URL:    server.URL,
		Data:   `{"name":"kim"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"name":"kim"}`, string(gotBody))
}

func TestExecuteExplicitContentTypeWins(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
	}))
	defer server.Close()

	_, err := Execute(context.Background(), server.Client(), Request{
		Method:  "POST",
		URL:     server.URL,
		Headers: map[string]string{"Content-Type": "text/custom"},
		Data:    `{"name":"kim"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "text/custom", gotContentType)
}

func TestExecuteStructuredDataSerializedAsJSON(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	_, err := Execute(context.Background(), server.Client(), Request{
		Method: "POST",
		URL:    server.URL,
		Data:   map[string]any{"id": 7},
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, float64(7), decoded["id"])
}

func TestExecuteTransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Immediately refuse connections.

	resp, err := Execute(context.Background(), http.DefaultClient, Request{URL: server.URL})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "request failed")
}

func TestExecuteHeadersForwarded(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	_, err := Execute(context.Background(), server.Client(), Request{
		URL:     server.URL,
		Headers: map[string]string{"Authorization": "Bearer abc123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

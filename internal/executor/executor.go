package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"httpchain/internal/logging"
	"httpchain/internal/util"
)

// Request describes one HTTP call to perform.
type Request struct {
	Method  string            `json:"method,omitempty"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	// Data is the request body: a string is sent verbatim, any other
	// non-nil value is serialized to JSON.
	Data any `json:"data,omitempty"`
}

// Response is the normalized result of one HTTP call.
type Response struct {
	Status      int               `json:"status"`
	StatusText  string            `json:"statusText"`
	ContentType string            `json:"contentType"`
	Headers     map[string]string `json:"headers,omitempty"`
	// Body is decoded JSON when the response content-type indicates
	// application/json, otherwise the raw text.
	Body any `json:"body"`
}

// Execute performs the call exactly once and returns the normalized
// response. Transport-level failures propagate to the caller; they are
// never converted into validation results.
func Execute(ctx context.Context, client *http.Client, r Request) (*Response, error) {
	method := strings.ToUpper(r.Method)
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	autoContentType := ""
	switch data := r.Data.(type) {
	case nil:
		// No body.
	case string:
		if data != "" {
			bodyReader = strings.NewReader(data)
			if util.LooksLikeJSON(data) {
				autoContentType = "application/json"
			}
		}
	default:
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize request data: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
		autoContentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for key, val := range r.Headers {
		req.Header.Set(key, val)
	}
	if autoContentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", autoContentType)
		logging.Logf(logging.Debug, "Auto-set Content-Type: %s", autoContentType)
	}

	logging.Logf(logging.Debug, "Sending %s %s", req.Method, req.URL.String())
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body (status %d): %w", resp.StatusCode, err)
	}
	logging.Logf(logging.Debug, "Response status %d, body snippet: %s", resp.StatusCode, util.Snippet(bodyBytes))

	contentType := resp.Header.Get("Content-Type")
	result := &Response{
		Status:      resp.StatusCode,
		StatusText:  http.StatusText(resp.StatusCode),
		ContentType: contentType,
		Headers:     flattenHeaders(resp.Header),
		Body:        parseBody(bodyBytes, contentType),
	}
	return result, nil
}

// parseBody decodes the body as JSON when the content-type says so,
// falling back to the raw text on any decode failure.
func parseBody(body []byte, contentType string) any {
	if strings.Contains(contentType, "application/json") && len(body) > 0 {
		var parsed any
		if err := json.Unmarshal(body, &parsed); err == nil {
			return parsed
		}
		logging.Logf(logging.Debug, "Response declared application/json but did not parse; keeping raw text")
	}
	return string(body)
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, vals := range h {
		out[key] = strings.Join(vals, ", ")
	}
	return out
}

package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// StatusError is returned when an upstream API answers with a non-2xx status.
type StatusError struct {
	Source string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s http %d", e.Source, e.Status)
}

// DoJSON sends req with client and decodes a JSON body into out.
// source prefixes error messages (e.g., "finnhub http 502").
func DoJSON(client *http.Client, req *http.Request, source string, out any) error {
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "source", source, "error", err)
		}
	}()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Source: source, Status: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", source, err)
	}
	return nil
}

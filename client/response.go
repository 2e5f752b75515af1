package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is the single failure shape surfaced by every operation:
// transport errors wrap it absent a status, server errors carry the
// status and the server's message when one could be parsed.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// handleResponse applies the uniform response algorithm. Failed
// statuses become an *APIError with the server's message, falling back
// to the numeric status when the body is unparseable. Successful bodies
// are unwrapped from the {success, data} envelope when both keys are
// present, otherwise decoded as-is. out may be nil for void operations.
func handleResponse(resp *http.Response, out interface{}) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &errBody); err != nil || errBody.Message == "" {
			return &APIError{
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("request failed with status %d", resp.StatusCode),
			}
		}
		return &APIError{Status: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Success != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
		return nil
	}

	// Some endpoints skip the envelope and return the payload bare.
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

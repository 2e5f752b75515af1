package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// do builds and sends one request. The bearer header is attached from
// the token source at call time; public endpoints tolerate its absence.
func (c *Client) do(method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	return handleResponse(resp, out)
}

func (c *Client) getJSON(path string, query url.Values, out interface{}) error {
	return c.do(http.MethodGet, path, query, nil, "", out)
}

// sendJSON marshals payload as the request body. A nil payload sends an
// empty body, used by the bodiless POST/DELETE mutations.
func (c *Client) sendJSON(method, path string, payload, out interface{}) error {
	if payload == nil {
		return c.do(method, path, nil, nil, "", out)
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return c.do(method, path, nil, bytes.NewBuffer(jsonData), "application/json", out)
}

func (c *Client) sendForm(method, path string, form *FormBody, out interface{}) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}
	return c.do(method, path, nil, body, contentType, out)
}

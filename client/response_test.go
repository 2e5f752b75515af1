package client

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestHandleResponseUnwrapsEnvelope(t *testing.T) {
	resp := fakeResponse(200, `{"success": true, "data": {"id": "u1", "username": "ana"}}`)

	var out struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := handleResponse(resp, &out); err != nil {
		t.Fatalf("handleResponse: %v", err)
	}
	if out.ID != "u1" || out.Username != "ana" {
		t.Fatalf("expected unwrapped payload, got %+v", out)
	}
}

func TestHandleResponseReturnsBarePayloadUnchanged(t *testing.T) {
	resp := fakeResponse(200, `{"liked": true, "likeCount": 5}`)

	var out struct {
		Liked     bool `json:"liked"`
		LikeCount int  `json:"likeCount"`
	}
	if err := handleResponse(resp, &out); err != nil {
		t.Fatalf("handleResponse: %v", err)
	}
	if !out.Liked || out.LikeCount != 5 {
		t.Fatalf("expected bare payload passthrough, got %+v", out)
	}
}

func TestHandleResponseEnvelopeNeedsBothKeys(t *testing.T) {
	// A body with a success key but no data key is not an envelope.
	resp := fakeResponse(200, `{"success": true, "message": "done"}`)

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := handleResponse(resp, &out); err != nil {
		t.Fatalf("handleResponse: %v", err)
	}
	if !out.Success || out.Message != "done" {
		t.Fatalf("expected body decoded as-is, got %+v", out)
	}
}

func TestHandleResponseExtractsServerMessage(t *testing.T) {
	resp := fakeResponse(401, `{"message": "Invalid credentials"}`)

	err := handleResponse(resp, nil)
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Fatalf("expected server message, got %q", apiErr.Message)
	}
	if apiErr.Status != 401 {
		t.Fatalf("expected status 401, got %d", apiErr.Status)
	}
}

func TestHandleResponseFallsBackToStatusCode(t *testing.T) {
	resp := fakeResponse(502, `<html>bad gateway</html>`)

	err := handleResponse(resp, nil)
	if err == nil {
		t.Fatal("expected an error for a 502 response")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected message to contain the status code, got %q", err.Error())
	}
}

func TestHandleResponseVoidSuccess(t *testing.T) {
	resp := fakeResponse(204, ``)
	if err := handleResponse(resp, nil); err != nil {
		t.Fatalf("expected nil for a void 204 response, got %v", err)
	}
}

package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"eventgallery/types"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
}

func newRecordingServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest, *int32) {
	t.Helper()
	var last recordedRequest
	var count int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&count, 1)
		last = recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &last, &count
}

func TestNoAuthHeaderWithoutCredential(t *testing.T) {
	server, last, _ := newRecordingServer(t, 200, `{"totalEvents":0,"totalImages":0,"totalUsers":0,"totalLikes":0,"totalComments":0}`)

	api := New(server.URL, nil)
	if _, err := api.GalleryStats(); err != nil {
		t.Fatalf("GalleryStats: %v", err)
	}
	if last.Auth != "" {
		t.Fatalf("expected no Authorization header, got %q", last.Auth)
	}
}

func TestBearerHeaderAttachedFromTokenSource(t *testing.T) {
	server, last, _ := newRecordingServer(t, 200, `{"success":true,"data":{"liked":true,"likeCount":5}}`)

	api := New(server.URL, staticTokens("tok123"))
	result, err := api.LikeImage("img1")
	if err != nil {
		t.Fatalf("LikeImage: %v", err)
	}
	if last.Auth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", last.Auth)
	}
	if last.Method != http.MethodPost || last.Path != "/images/img1/like" {
		t.Fatalf("unexpected request %s %s", last.Method, last.Path)
	}
	if !result.Liked || result.LikeCount != 5 {
		t.Fatalf("unexpected like result %+v", result)
	}
}

func TestTokenSourceReadAtCallTime(t *testing.T) {
	server, last, _ := newRecordingServer(t, 200, `{}`)

	token := ""
	source := tokenFunc(func() string { return token })
	api := New(server.URL, source)

	if _, err := api.GalleryStats(); err != nil {
		t.Fatalf("GalleryStats: %v", err)
	}
	if last.Auth != "" {
		t.Fatalf("expected no header before login, got %q", last.Auth)
	}

	token = "fresh"
	if _, err := api.GalleryStats(); err != nil {
		t.Fatalf("GalleryStats: %v", err)
	}
	if last.Auth != "Bearer fresh" {
		t.Fatalf("expected the latest token, got %q", last.Auth)
	}
}

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func TestEventFiltersOmitAbsentFields(t *testing.T) {
	server, last, _ := newRecordingServer(t, 200, `{"data":[],"meta":{"total":0,"page":1,"limit":12,"totalPages":0,"hasNextPage":false,"hasPreviousPage":false}}`)

	api := New(server.URL, nil)
	if _, err := api.ListEvents(types.EventFilters{}); err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if last.Query != "" {
		t.Fatalf("expected empty query for zero filters, got %q", last.Query)
	}

	isPrivate := false
	_, err := api.ListEvents(types.EventFilters{Page: 2, Search: "picnic", IsPrivate: &isPrivate})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	for _, expected := range []string{"page=2", "search=picnic", "isPrivate=false"} {
		if !strings.Contains(last.Query, expected) {
			t.Fatalf("expected query to contain %q, got %q", expected, last.Query)
		}
	}
	if strings.Contains(last.Query, "sortBy") || strings.Contains(last.Query, "limit") {
		t.Fatalf("expected unset filters to be omitted, got %q", last.Query)
	}
}

func TestPaginationMetaSurfacedUnchanged(t *testing.T) {
	server, _, _ := newRecordingServer(t, 200,
		`{"success":true,"data":{"data":[],"meta":{"total":60,"page":2,"limit":12,"totalPages":5,"hasNextPage":true,"hasPreviousPage":true}}}`)

	api := New(server.URL, nil)
	resp, err := api.Recent(2, 12)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	meta := resp.Meta
	if meta.Page != 2 || meta.TotalPages != 5 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if !meta.HasNextPage || !meta.HasPreviousPage {
		t.Fatalf("expected server-computed flags surfaced unchanged, got %+v", meta)
	}
}

func TestEmptyIdentifierRejectedBeforeRequest(t *testing.T) {
	server, _, count := newRecordingServer(t, 200, `{}`)

	api := New(server.URL, nil)
	if _, err := api.GetEvent(""); err == nil {
		t.Fatal("expected an error for an empty event id")
	}
	if _, err := api.LikeImage(""); err == nil {
		t.Fatal("expected an error for an empty image id")
	}
	if err := api.DeleteComment(""); err == nil {
		t.Fatal("expected an error for an empty comment id")
	}
	if *count != 0 {
		t.Fatalf("expected no request to be sent, got %d", *count)
	}
}

func TestUploadImageSendsMultipart(t *testing.T) {
	var gotEventID, gotTitle, gotFile string
	var hasDescription bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		gotEventID = r.FormValue("eventId")
		gotTitle = r.FormValue("title")
		_, hasDescription = r.MultipartForm.Value["description"]
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("expected an image part: %v", err)
		} else {
			file.Close()
			gotFile = header.Filename
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"image":   map[string]interface{}{"id": "img9", "eventId": gotEventID, "imageUrl": "/uploads/x.png", "imageKey": "x.png", "uploadedAt": "2026-01-01T00:00:00Z"},
				"message": "Image uploaded",
			},
		})
	}))
	defer server.Close()

	api := New(server.URL, nil)
	result, err := api.UploadImage(ImageUpload{
		EventID: "ev1",
		Title:   "sunset",
		Image:   &FileUpload{Name: "sunset.png", Reader: strings.NewReader("not-really-a-png")},
	})
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if gotEventID != "ev1" || gotTitle != "sunset" || gotFile != "sunset.png" {
		t.Fatalf("unexpected form contents: eventId=%q title=%q file=%q", gotEventID, gotTitle, gotFile)
	}
	if hasDescription {
		t.Fatal("expected the empty description to be omitted from the form")
	}
	if result.Image.ID != "img9" {
		t.Fatalf("unexpected upload result %+v", result)
	}
}

func TestTransportFailureSurfacesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	api := New(server.URL, nil)
	if _, err := api.Me(); err == nil {
		t.Fatal("expected a transport error")
	}
}

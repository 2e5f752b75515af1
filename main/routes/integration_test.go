package routes

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"

	"eventgallery/client"
	"eventgallery/db"
	"eventgallery/session"
	"eventgallery/types"
	"eventgallery/uploads"
)

type galleryIntegrationEnv struct {
	server *httptest.Server
}

func newGalleryIntegrationEnv(t *testing.T) *galleryIntegrationEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("SESSION_SECRET", "integration-secret")
	t.Setenv("UPLOAD_DIR", filepath.Join(t.TempDir(), "uploads"))

	database, err := db.InitDB(filepath.Join(t.TempDir(), "gallery_integration.sqlite"))
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	prevDB := db.GalleryDB
	db.GalleryDB = database
	t.Cleanup(func() {
		db.GalleryDB = prevDB
		database.Close()
	})

	if err := db.EnsureSchema(); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := uploads.EnsureDir(); err != nil {
		t.Fatalf("ensure upload dir: %v", err)
	}

	engine := gin.New()
	SetupAPIRoutes(engine)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &galleryIntegrationEnv{server: server}
}

// newUser registers an account and returns a client plus session store
// bound to its own token file, so tests can act as several identities
// against the same server.
func (env *galleryIntegrationEnv) newUser(t *testing.T, username string) (*client.Client, *session.Store) {
	t.Helper()

	tokens := &session.TokenFile{Path: filepath.Join(t.TempDir(), username+"_token.json")}
	api := client.New(env.server.URL+"/api", tokens)
	store := session.NewStore(api, tokens)
	err := store.Register(types.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter22!",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return api, store
}

func (env *galleryIntegrationEnv) anonymous(t *testing.T) *client.Client {
	t.Helper()
	tokens := &session.TokenFile{Path: filepath.Join(t.TempDir(), "anon_token.json")}
	return client.New(env.server.URL+"/api", tokens)
}

func pngUpload(t *testing.T, name string, width, height int) *client.FileUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &client.FileUpload{Name: name, Reader: &buf}
}

func apiStatus(t *testing.T, err error) int {
	t.Helper()
	apiErr, ok := err.(*client.APIError)
	if !ok {
		t.Fatalf("expected a server error, got %v", err)
	}
	return apiErr.Status
}

func TestAuthFlow(t *testing.T) {
	env := newGalleryIntegrationEnv(t)
	api, store := env.newUser(t, "ana")

	if !store.IsAuthenticated() {
		t.Fatal("expected authenticated state after register")
	}
	user, err := api.Me()
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.Username != "ana" {
		t.Fatalf("expected registered user, got %+v", user)
	}

	check, err := api.ValidateSession()
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if !check.Valid || check.User.ID != user.ID {
		t.Fatalf("expected a valid session for %s, got %+v", user.ID, check)
	}

	// Duplicate registration must be rejected.
	duplicate := env.anonymous(t)
	_, err = duplicate.Register(types.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "hunter22!"})
	if status := apiStatus(t, err); status != 409 {
		t.Fatalf("expected 409 for duplicate registration, got %d", status)
	}

	_, err = duplicate.Login(types.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	if status := apiStatus(t, err); status != 401 {
		t.Fatalf("expected 401 for a bad password, got %d", status)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newGalleryIntegrationEnv(t)

	tokens := &session.TokenFile{Path: filepath.Join(t.TempDir(), "bob_token.json")}
	api := client.New(env.server.URL+"/api", tokens)
	store := session.NewStore(api, tokens)
	err := store.Register(types.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "hunter22!"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := api.Me(); err != nil {
		t.Fatalf("Me before logout: %v", err)
	}

	stale := &session.TokenFile{Path: filepath.Join(t.TempDir(), "copy_token.json")}
	if err := stale.Save(tokens.Token()); err != nil {
		t.Fatalf("copy token: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	// The old token is revoked server side, not just forgotten locally.
	staleAPI := client.New(env.server.URL+"/api", stale)
	_, err = staleAPI.Me()
	if status := apiStatus(t, err); status != 401 {
		t.Fatalf("expected 401 for a revoked session, got %d", status)
	}
}

func TestEventLifecycle(t *testing.T) {
	env := newGalleryIntegrationEnv(t)
	ownerAPI, _ := env.newUser(t, "owner")
	memberAPI, _ := env.newUser(t, "member")

	ev, err := ownerAPI.CreateEvent(client.EventUpload{
		Name:        "Summer Picnic",
		Description: "Annual company picnic",
		Location:    "Riverside Park",
		StartDate:   "2026-09-12T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if !ev.IsOwner || !ev.IsParticipant {
		t.Fatalf("expected the creator to be owner and participant, got %+v", ev)
	}
	if ev.ParticipantCount != 1 {
		t.Fatalf("expected the owner counted as participant, got %d", ev.ParticipantCount)
	}
	if ev.CreatedBy == nil || ev.CreatedBy.Username != "owner" {
		t.Fatalf("expected creator profile attached, got %+v", ev.CreatedBy)
	}

	// A different viewer sees the same event without owner fields.
	seen, err := memberAPI.GetEvent(ev.ID)
	if err != nil {
		t.Fatalf("GetEvent as member: %v", err)
	}
	if seen.IsOwner || seen.IsParticipant {
		t.Fatalf("expected viewer-relative fields false for a stranger, got %+v", seen)
	}

	_, err = memberAPI.UpdateEvent(ev.ID, client.EventUpload{Name: "Hijacked"})
	if status := apiStatus(t, err); status != 403 {
		t.Fatalf("expected 403 for non-owner update, got %d", status)
	}

	updated, err := ownerAPI.UpdateEvent(ev.ID, client.EventUpload{Description: "Now with live music"})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Description == nil || *updated.Description != "Now with live music" {
		t.Fatalf("expected updated description, got %+v", updated.Description)
	}
	if updated.Name != "Summer Picnic" {
		t.Fatalf("expected untouched fields preserved, got %q", updated.Name)
	}

	joined, err := memberAPI.JoinEvent(ev.ID)
	if err != nil {
		t.Fatalf("JoinEvent: %v", err)
	}
	if !joined.Event.IsParticipant {
		t.Fatal("expected participant state after join")
	}
	_, err = memberAPI.JoinEvent(ev.ID)
	if status := apiStatus(t, err); status != 409 {
		t.Fatalf("expected 409 for a repeat join, got %d", status)
	}

	participants, err := ownerAPI.EventParticipants(ev.ID)
	if err != nil {
		t.Fatalf("EventParticipants: %v", err)
	}
	if len(participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(participants))
	}

	// The owner cannot leave their own event.
	if err := ownerAPI.LeaveEvent(ev.ID); err == nil {
		t.Fatal("expected the owner leave to be rejected")
	}
	if err := memberAPI.LeaveEvent(ev.ID); err != nil {
		t.Fatalf("LeaveEvent: %v", err)
	}

	if err := memberAPI.DeleteEvent(ev.ID); err == nil {
		t.Fatal("expected non-owner delete to be rejected")
	}
	if err := ownerAPI.DeleteEvent(ev.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	_, err = ownerAPI.GetEvent(ev.ID)
	if status := apiStatus(t, err); status != 404 {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestPrivateEventInviteFlow(t *testing.T) {
	env := newGalleryIntegrationEnv(t)
	ownerAPI, _ := env.newUser(t, "carol")
	guestAPI, _ := env.newUser(t, "dave")

	private := true
	ev, err := ownerAPI.CreateEvent(client.EventUpload{Name: "Secret Show", IsPrivate: &private})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if !ev.IsPrivate {
		t.Fatal("expected a private event")
	}
	if ev.InviteCode == nil || *ev.InviteCode == "" {
		t.Fatal("expected an invite code for the owner")
	}

	// A non-participant never sees the invite code.
	seen, err := guestAPI.GetEvent(ev.ID)
	if err != nil {
		t.Fatalf("GetEvent as guest: %v", err)
	}
	if seen.InviteCode != nil {
		t.Fatal("expected the invite code hidden from non-participants")
	}

	_, err = guestAPI.JoinEvent(ev.ID)
	if status := apiStatus(t, err); status != 403 {
		t.Fatalf("expected 403 for a direct private join, got %d", status)
	}

	joined, err := guestAPI.JoinEventByCode(*ev.InviteCode)
	if err != nil {
		t.Fatalf("JoinEventByCode: %v", err)
	}
	if joined.Event.ID != ev.ID || !joined.Event.IsParticipant {
		t.Fatalf("expected membership in the private event, got %+v", joined.Event)
	}

	// Participants see the code.
	seen, err = guestAPI.GetEvent(ev.ID)
	if err != nil {
		t.Fatalf("GetEvent after join: %v", err)
	}
	if seen.InviteCode == nil {
		t.Fatal("expected the invite code visible to participants")
	}

	_, err = guestAPI.JoinEventByCode("NOPE1234")
	if status := apiStatus(t, err); status != 404 {
		t.Fatalf("expected 404 for an unknown invite code, got %d", status)
	}
}

func TestImageUploadLikeAndComment(t *testing.T) {
	env := newGalleryIntegrationEnv(t)
	ownerAPI, _ := env.newUser(t, "erin")
	memberAPI, _ := env.newUser(t, "frank")
	strangerAPI, _ := env.newUser(t, "grace")

	ev, err := ownerAPI.CreateEvent(client.EventUpload{Name: "Photo Walk"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := memberAPI.JoinEvent(ev.ID); err != nil {
		t.Fatalf("JoinEvent: %v", err)
	}

	// Only participants may upload.
	_, err = strangerAPI.UploadImage(client.ImageUpload{
		EventID: ev.ID,
		Image:   pngUpload(t, "sneaky.png", 10, 10),
	})
	if status := apiStatus(t, err); status != 403 {
		t.Fatalf("expected 403 for a non-participant upload, got %d", status)
	}

	uploaded, err := memberAPI.UploadImage(client.ImageUpload{
		EventID:     ev.ID,
		Title:       "Golden Hour",
		Description: "Bridge at sunset",
		Image:       pngUpload(t, "bridge.png", 64, 48),
	})
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	img := uploaded.Image
	if img.Width == nil || *img.Width != 64 || img.Height == nil || *img.Height != 48 {
		t.Fatalf("expected decoded dimensions 64x48, got %+v %+v", img.Width, img.Height)
	}
	if img.ThumbnailURL == nil || *img.ThumbnailURL == "" {
		t.Fatal("expected a thumbnail to be generated")
	}

	liked, err := ownerAPI.LikeImage(img.ID)
	if err != nil {
		t.Fatalf("LikeImage: %v", err)
	}
	if !liked.Liked || liked.LikeCount != 1 {
		t.Fatalf("expected liked with count 1, got %+v", liked)
	}

	detail, err := ownerAPI.GetImage(img.ID)
	if err != nil {
		t.Fatalf("GetImage as liker: %v", err)
	}
	if !detail.IsLikedByCurrentUser {
		t.Fatal("expected the liker to see isLikedByCurrentUser")
	}
	if detail.User.Username != "frank" {
		t.Fatalf("expected the uploader attached, got %+v", detail.User)
	}

	detail, err = memberAPI.GetImage(img.ID)
	if err != nil {
		t.Fatalf("GetImage as uploader: %v", err)
	}
	if detail.IsLikedByCurrentUser {
		t.Fatal("expected a non-liker to see isLikedByCurrentUser false")
	}

	comment, err := ownerAPI.CreateComment(img.ID, "Great shot")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if comment.User.Username != "erin" {
		t.Fatalf("expected the author attached, got %+v", comment.User)
	}

	_, err = memberAPI.UpdateComment(comment.ID, "edited by someone else")
	if status := apiStatus(t, err); status != 403 {
		t.Fatalf("expected 403 editing another user's comment, got %d", status)
	}
	edited, err := ownerAPI.UpdateComment(comment.ID, "Really great shot")
	if err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	if edited.Content != "Really great shot" {
		t.Fatalf("expected edited content, got %q", edited.Content)
	}

	detail, err = ownerAPI.GetImage(img.ID)
	if err != nil {
		t.Fatalf("GetImage with comments: %v", err)
	}
	if len(detail.Comments) != 1 || detail.CommentCount != 1 {
		t.Fatalf("expected one comment, got %d in list, count %d", len(detail.Comments), detail.CommentCount)
	}

	if err := ownerAPI.DeleteComment(comment.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}

	unliked, err := ownerAPI.UnlikeImage(img.ID)
	if err != nil {
		t.Fatalf("UnlikeImage: %v", err)
	}
	if unliked.Liked || unliked.LikeCount != 0 {
		t.Fatalf("expected unliked with count 0, got %+v", unliked)
	}

	// Only the uploader edits image metadata.
	title := "Renamed"
	_, err = ownerAPI.UpdateImage(img.ID, types.ImageUpdate{Title: &title})
	if status := apiStatus(t, err); status != 403 {
		t.Fatalf("expected 403 for non-uploader metadata edit, got %d", status)
	}
	renamed, err := memberAPI.UpdateImage(img.ID, types.ImageUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateImage: %v", err)
	}
	if renamed.Title == nil || *renamed.Title != "Renamed" {
		t.Fatalf("expected renamed title, got %+v", renamed.Title)
	}

	// The event owner may remove any image in their event.
	if err := ownerAPI.DeleteImage(img.ID); err != nil {
		t.Fatalf("DeleteImage as event owner: %v", err)
	}
	_, err = memberAPI.GetImage(img.ID)
	if status := apiStatus(t, err); status != 404 {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestGalleryFeedsExcludePrivateEvents(t *testing.T) {
	env := newGalleryIntegrationEnv(t)
	api, _ := env.newUser(t, "hana")

	public, err := api.CreateEvent(client.EventUpload{Name: "Open Air"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	private := true
	hidden, err := api.CreateEvent(client.EventUpload{Name: "Backstage", IsPrivate: &private})
	if err != nil {
		t.Fatalf("CreateEvent private: %v", err)
	}

	publicUpload, err := api.UploadImage(client.ImageUpload{
		EventID: public.ID,
		Title:   "Stage",
		Image:   pngUpload(t, "stage.png", 32, 32),
	})
	if err != nil {
		t.Fatalf("UploadImage public: %v", err)
	}
	if _, err := api.UploadImage(client.ImageUpload{
		EventID: hidden.ID,
		Title:   "Green Room",
		Image:   pngUpload(t, "greenroom.png", 32, 32),
	}); err != nil {
		t.Fatalf("UploadImage private: %v", err)
	}
	if _, err := api.LikeImage(publicUpload.Image.ID); err != nil {
		t.Fatalf("LikeImage: %v", err)
	}

	anon := env.anonymous(t)

	featured, err := anon.Featured(12)
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(featured) != 1 || featured[0].ID != publicUpload.Image.ID {
		t.Fatalf("expected only the public image featured, got %d images", len(featured))
	}
	if featured[0].LikeCount != 1 {
		t.Fatalf("expected like count 1, got %d", featured[0].LikeCount)
	}

	recent, err := anon.Recent(1, 12)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if recent.Meta.Total != 1 || len(recent.Data) != 1 {
		t.Fatalf("expected one public image in the recent feed, got %+v", recent.Meta)
	}

	popular, err := anon.Popular(1, 12)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(popular.Data) != 1 || popular.Data[0].ID != publicUpload.Image.ID {
		t.Fatal("expected only the public image in the popular feed")
	}

	stats, err := anon.GalleryStats()
	if err != nil {
		t.Fatalf("GalleryStats: %v", err)
	}
	if stats.TotalEvents != 2 || stats.TotalImages != 2 || stats.TotalUsers != 1 || stats.TotalLikes != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestEventListPaginationMeta(t *testing.T) {
	env := newGalleryIntegrationEnv(t)
	api, _ := env.newUser(t, "ivan")

	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}
	for _, name := range names {
		if _, err := api.CreateEvent(client.EventUpload{Name: name}); err != nil {
			t.Fatalf("CreateEvent %s: %v", name, err)
		}
	}

	pageTwo, err := api.ListEvents(types.EventFilters{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	meta := pageTwo.Meta
	if meta.Total != 5 || meta.Page != 2 || meta.Limit != 2 || meta.TotalPages != 3 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if !meta.HasNextPage || !meta.HasPreviousPage {
		t.Fatalf("expected a middle page, got %+v", meta)
	}
	if len(pageTwo.Data) != 2 {
		t.Fatalf("expected 2 events on the page, got %d", len(pageTwo.Data))
	}

	sorted, err := api.ListEvents(types.EventFilters{Limit: 10, SortBy: "name", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("ListEvents sorted: %v", err)
	}
	if sorted.Data[0].Name != "Alpha" || sorted.Data[len(sorted.Data)-1].Name != "Echo" {
		t.Fatal("expected events sorted by name ascending")
	}

	filtered, err := api.ListEvents(types.EventFilters{Search: "rav"})
	if err != nil {
		t.Fatalf("ListEvents filtered: %v", err)
	}
	if filtered.Meta.Total != 1 || filtered.Data[0].Name != "Bravo" {
		t.Fatalf("expected only Bravo to match, got %+v", filtered.Meta)
	}
}

func TestUnifiedSearch(t *testing.T) {
	env := newGalleryIntegrationEnv(t)
	api, _ := env.newUser(t, "sunsetfan")

	ev, err := api.CreateEvent(client.EventUpload{Name: "Sunset Cruise"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := api.UploadImage(client.ImageUpload{
		EventID: ev.ID,
		Title:   "Sunset over the bay",
		Image:   pngUpload(t, "sunset.png", 24, 24),
	}); err != nil {
		t.Fatalf("UploadImage: %v", err)
	}

	results, err := api.Search("sunset", client.SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results.Events) != 1 || len(results.Images) != 1 || len(results.Users) != 1 {
		t.Fatalf("expected one match per section, got events=%d images=%d users=%d",
			len(results.Events), len(results.Images), len(results.Users))
	}
	if !results.Events[0].IsOwner {
		t.Fatal("expected viewer-relative fields resolved in search results")
	}

	eventsOnly, err := api.Search("sunset", client.SearchOptions{Type: "events"})
	if err != nil {
		t.Fatalf("Search events: %v", err)
	}
	if len(eventsOnly.Events) != 1 || eventsOnly.Images != nil || eventsOnly.Users != nil {
		t.Fatalf("expected only the events section, got %+v", eventsOnly)
	}

	if _, err := api.Search("", client.SearchOptions{}); err == nil {
		t.Fatal("expected an empty query to be rejected")
	}
}

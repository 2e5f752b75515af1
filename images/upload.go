package images

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"eventgallery/auth"
	"eventgallery/db"
	"eventgallery/respond"
	"eventgallery/types"
	"eventgallery/uploads"
)

const thumbnailMaxEdge = 320

// HandleUpload accepts a multipart image for an event the caller
// participates in, records its dimensions and generates a thumbnail.
func HandleUpload(c *gin.Context) {
	viewerID := auth.ViewerID(c)

	eventID := c.PostForm("eventId")
	if eventID == "" {
		respond.Error(c, 400, "Event id is required")
		return
	}

	var exists int
	if err := db.GalleryDB.QueryRow(`SELECT COUNT(*) FROM events WHERE id = ?`, eventID).Scan(&exists); err != nil || exists == 0 {
		respond.Error(c, 404, "Event not found")
		return
	}
	var member int
	query := `SELECT COUNT(*) FROM event_participants WHERE event_id = ? AND user_id = ?`
	if err := db.GalleryDB.QueryRow(query, eventID, viewerID).Scan(&member); err != nil || member == 0 {
		respond.Error(c, 403, "Join the event before uploading images")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, 400, "Image file is required")
		return
	}

	src, err := header.Open()
	if err != nil {
		respond.Error(c, 500, "Failed to open upload")
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		respond.Error(c, 500, "Failed to read upload")
		return
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		respond.Error(c, 400, "Unsupported image format")
		return
	}
	bounds := decoded.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	key := uploads.KeyFor(header.Filename)
	if err := uploads.SaveBytes(key, data); err != nil {
		respond.Error(c, 500, "Failed to store image")
		return
	}

	thumbKey := strings.TrimSuffix(key, filepath.Ext(key)) + "_thumb.jpg"
	thumb := resize.Thumbnail(thumbnailMaxEdge, thumbnailMaxEdge, decoded, resize.Lanczos3)
	if err := uploads.SaveJPEG(thumb, thumbKey); err != nil {
		uploads.Remove(key)
		respond.Error(c, 500, "Failed to store thumbnail")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	imageID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	insert := `INSERT INTO images (id, event_id, user_id, title, description, image_url, image_key,
		thumbnail_url, thumbnail_key, width, height, file_size, mime_type, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = db.GalleryDB.Exec(insert, imageID, eventID, viewerID,
		postFormValue(c, "title"), postFormValue(c, "description"),
		uploads.URLFor(key), key, uploads.URLFor(thumbKey), thumbKey,
		width, height, header.Size, mimeType, now)
	if err != nil {
		uploads.Remove(key)
		uploads.Remove(thumbKey)
		respond.Error(c, 500, "Database error inserting image data")
		return
	}

	img, err := imageByID(imageID)
	if err != nil {
		respond.Error(c, 500, "Database error reading image data")
		return
	}
	respond.Data(c, 201, types.ImageUploadResult{Image: *img, Message: "Image uploaded"})
}

func postFormValue(c *gin.Context, name string) interface{} {
	if value, ok := c.GetPostForm(name); ok && value != "" {
		return value
	}
	return nil
}

package images

import (
	"database/sql"
	"strings"

	"github.com/gin-gonic/gin"

	"eventgallery/auth"
	"eventgallery/db"
	"eventgallery/respond"
	"eventgallery/types"
	"eventgallery/uploads"
)

const imageSelect = `
	SELECT i.id, i.event_id, i.user_id, i.title, i.description, i.image_url, i.image_key,
		i.thumbnail_url, i.thumbnail_key, i.width, i.height, i.file_size, i.mime_type, i.uploaded_at,
		(SELECT COUNT(*) FROM image_likes il WHERE il.image_id = i.id),
		(SELECT COUNT(*) FROM comments co WHERE co.image_id = i.id)
	FROM images i`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanImage(row rowScanner) (*types.GalleryImage, error) {
	var img types.GalleryImage
	var title, description, thumbURL, thumbKey, mimeType sql.NullString
	var width, height, fileSize sql.NullInt64
	err := row.Scan(
		&img.ID, &img.EventID, &img.UserID, &title, &description, &img.ImageURL, &img.ImageKey,
		&thumbURL, &thumbKey, &width, &height, &fileSize, &mimeType, &img.UploadedAt,
		&img.LikeCount, &img.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	img.Title = db.NullStr(title)
	img.Description = db.NullStr(description)
	img.ThumbnailURL = db.NullStr(thumbURL)
	img.ThumbnailKey = db.NullStr(thumbKey)
	img.Width = db.NullInt(width)
	img.Height = db.NullInt(height)
	img.FileSize = db.NullInt64(fileSize)
	img.MimeType = db.NullStr(mimeType)
	return &img, nil
}

func imageByID(id string) (*types.GalleryImage, error) {
	return scanImage(db.GalleryDB.QueryRow(imageSelect+` WHERE i.id = ?`, id))
}

// Query runs a SELECT built on the shared image projection; clause is
// appended after the FROM. The gallery feeds build on this.
func Query(clause string, args ...interface{}) ([]types.GalleryImage, error) {
	rows, err := db.GalleryDB.Query(imageSelect+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	imageList := []types.GalleryImage{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		imageList = append(imageList, *img)
	}
	return imageList, rows.Err()
}

var sortColumns = map[string]string{
	"uploadedAt": "i.uploaded_at",
	"title":      "i.title",
	"likes":      "like_count",
}

func HandleList(c *gin.Context) {
	page, limit := respond.PageParams(c, 12)

	where := []string{"1=1"}
	args := []interface{}{}
	if eventID := c.Query("eventId"); eventID != "" {
		where = append(where, "i.event_id = ?")
		args = append(args, eventID)
	}
	if userID := c.Query("userId"); userID != "" {
		where = append(where, "i.user_id = ?")
		args = append(args, userID)
	}
	if search := c.Query("search"); search != "" {
		where = append(where, "(i.title LIKE ? OR i.description LIKE ?)")
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	sortColumn, ok := sortColumns[c.DefaultQuery("sortBy", "uploadedAt")]
	if !ok {
		sortColumn = "i.uploaded_at"
	}
	if sortColumn == "like_count" {
		sortColumn = `(SELECT COUNT(*) FROM image_likes il WHERE il.image_id = i.id)`
	}
	order := "DESC"
	if c.Query("sortOrder") == "asc" {
		order = "ASC"
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := db.GalleryDB.QueryRow(`SELECT COUNT(*) FROM images i`+whereClause, args...).Scan(&total); err != nil {
		respond.Error(c, 500, "Database error counting images")
		return
	}

	listQuery := imageSelect + whereClause + " ORDER BY " + sortColumn + " " + order + " LIMIT ? OFFSET ?"
	listArgs := append(append([]interface{}{}, args...), limit, (page-1)*limit)
	rows, err := db.GalleryDB.Query(listQuery, listArgs...)
	if err != nil {
		respond.Error(c, 500, "Database error listing images")
		return
	}
	defer rows.Close()

	imageList := []types.GalleryImage{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			continue
		}
		imageList = append(imageList, *img)
	}

	respond.Data(c, 200, types.Paginated[types.GalleryImage]{
		Data: imageList,
		Meta: types.NewPageMeta(total, page, limit),
	})
}

// HandleGet returns the detail form: uploader profile, the viewer's
// like state and the comments newest first.
func HandleGet(c *gin.Context) {
	viewerID := auth.ViewerID(c)
	imageID := c.Param("id")

	img, err := imageByID(imageID)
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Image not found")
		} else {
			respond.Error(c, 500, "Database error extracting image data")
		}
		return
	}

	detail := types.ImageDetail{GalleryImage: *img}

	uploader, err := auth.PublicUserByID(img.UserID)
	if err != nil {
		respond.Error(c, 500, "Database error reading uploader data")
		return
	}
	detail.User = *uploader

	if viewerID != "" {
		var count int
		query := `SELECT COUNT(*) FROM image_likes WHERE image_id = ? AND user_id = ?`
		if err := db.GalleryDB.QueryRow(query, imageID, viewerID).Scan(&count); err == nil {
			detail.IsLikedByCurrentUser = count > 0
		}
	}

	commentsQuery := `
		SELECT co.id, co.image_id, co.user_id, co.content, co.created_at, co.updated_at,
			u.id, u.username, u.full_name, u.avatar_url
		FROM comments co
		JOIN users u ON u.id = co.user_id
		WHERE co.image_id = ?
		ORDER BY co.created_at DESC`
	rows, err := db.GalleryDB.Query(commentsQuery, imageID)
	if err != nil {
		respond.Error(c, 500, "Database error listing comments")
		return
	}
	defer rows.Close()

	detail.Comments = []types.Comment{}
	for rows.Next() {
		var comment types.Comment
		var fullName, avatarURL sql.NullString
		err := rows.Scan(&comment.ID, &comment.ImageID, &comment.UserID, &comment.Content,
			&comment.CreatedAt, &comment.UpdatedAt,
			&comment.User.ID, &comment.User.Username, &fullName, &avatarURL)
		if err != nil {
			continue
		}
		comment.User.FullName = db.NullStr(fullName)
		comment.User.AvatarURL = db.NullStr(avatarURL)
		detail.Comments = append(detail.Comments, comment)
	}

	respond.Data(c, 200, detail)
}

func HandleUpdate(c *gin.Context) {
	viewerID := auth.ViewerID(c)
	imageID := c.Param("id")

	var json types.ImageUpdate
	if err := c.ShouldBindJSON(&json); err != nil {
		respond.Error(c, 400, "Invalid request data")
		return
	}

	img, err := imageByID(imageID)
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Image not found")
		} else {
			respond.Error(c, 500, "Database error extracting image data")
		}
		return
	}
	if img.UserID != viewerID {
		respond.Error(c, 403, "Only the uploader can update this image")
		return
	}

	sets := []string{}
	args := []interface{}{}
	if json.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *json.Title)
	}
	if json.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *json.Description)
	}
	if len(sets) > 0 {
		args = append(args, imageID)
		if _, err := db.GalleryDB.Exec(`UPDATE images SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
			respond.Error(c, 500, "Database error updating image data")
			return
		}
	}

	updated, err := imageByID(imageID)
	if err != nil {
		respond.Error(c, 500, "Database error reading image data")
		return
	}
	respond.Data(c, 200, updated)
}

func HandleDelete(c *gin.Context) {
	viewerID := auth.ViewerID(c)
	imageID := c.Param("id")

	img, err := imageByID(imageID)
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Image not found")
		} else {
			respond.Error(c, 500, "Database error extracting image data")
		}
		return
	}

	var eventOwner string
	if err := db.GalleryDB.QueryRow(`SELECT created_by FROM events WHERE id = ?`, img.EventID).Scan(&eventOwner); err != nil {
		respond.Error(c, 500, "Database error extracting event data")
		return
	}
	if img.UserID != viewerID && eventOwner != viewerID {
		respond.Error(c, 403, "Only the uploader or the event owner can delete this image")
		return
	}

	if _, err := db.GalleryDB.Exec(`DELETE FROM images WHERE id = ?`, imageID); err != nil {
		respond.Error(c, 500, "Database error deleting image")
		return
	}
	uploads.Remove(img.ImageKey)
	if img.ThumbnailKey != nil {
		uploads.Remove(*img.ThumbnailKey)
	}

	respond.Message(c, 200, "Image deleted")
}

func HandleLike(c *gin.Context) {
	setLike(c, true)
}

func HandleUnlike(c *gin.Context) {
	setLike(c, false)
}

func setLike(c *gin.Context, liked bool) {
	viewerID := auth.ViewerID(c)
	imageID := c.Param("id")

	if _, err := imageByID(imageID); err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Image not found")
		} else {
			respond.Error(c, 500, "Database error extracting image data")
		}
		return
	}

	var query string
	if liked {
		query = `INSERT OR IGNORE INTO image_likes (image_id, user_id) VALUES (?, ?)`
	} else {
		query = `DELETE FROM image_likes WHERE image_id = ? AND user_id = ?`
	}
	if _, err := db.GalleryDB.Exec(query, imageID, viewerID); err != nil {
		respond.Error(c, 500, "Database error updating like")
		return
	}

	var likeCount int
	if err := db.GalleryDB.QueryRow(`SELECT COUNT(*) FROM image_likes WHERE image_id = ?`, imageID).Scan(&likeCount); err != nil {
		respond.Error(c, 500, "Database error counting likes")
		return
	}

	respond.Data(c, 200, types.LikeResult{Liked: liked, LikeCount: likeCount})
}

package comments

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgallery/auth"
	"eventgallery/db"
	"eventgallery/respond"
	"eventgallery/types"
)

func commentByID(id string) (*types.Comment, error) {
	var comment types.Comment
	var fullName, avatarURL sql.NullString
	query := `
		SELECT co.id, co.image_id, co.user_id, co.content, co.created_at, co.updated_at,
			u.id, u.username, u.full_name, u.avatar_url
		FROM comments co
		JOIN users u ON u.id = co.user_id
		WHERE co.id = ?`
	err := db.GalleryDB.QueryRow(query, id).Scan(
		&comment.ID, &comment.ImageID, &comment.UserID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
		&comment.User.ID, &comment.User.Username, &fullName, &avatarURL,
	)
	if err != nil {
		return nil, err
	}
	comment.User.FullName = db.NullStr(fullName)
	comment.User.AvatarURL = db.NullStr(avatarURL)
	return &comment, nil
}

func HandleCreate(c *gin.Context) {
	viewerID := auth.ViewerID(c)

	var json struct {
		ImageID string `json:"imageId"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&json); err != nil || json.ImageID == "" || json.Content == "" {
		respond.Error(c, 400, "Image id and content are required")
		return
	}

	var exists int
	if err := db.GalleryDB.QueryRow(`SELECT COUNT(*) FROM images WHERE id = ?`, json.ImageID).Scan(&exists); err != nil || exists == 0 {
		respond.Error(c, 404, "Image not found")
		return
	}

	commentID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO comments (id, image_id, user_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := db.GalleryDB.Exec(query, commentID, json.ImageID, viewerID, json.Content, now, now); err != nil {
		respond.Error(c, 500, "Database error inserting comment")
		return
	}

	comment, err := commentByID(commentID)
	if err != nil {
		respond.Error(c, 500, "Database error reading comment")
		return
	}
	respond.Data(c, 201, comment)
}

func HandleUpdate(c *gin.Context) {
	viewerID := auth.ViewerID(c)
	commentID := c.Param("id")

	var json struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&json); err != nil || json.Content == "" {
		respond.Error(c, 400, "Content is required")
		return
	}

	comment, err := commentByID(commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Comment not found")
		} else {
			respond.Error(c, 500, "Database error extracting comment")
		}
		return
	}
	if comment.UserID != viewerID {
		respond.Error(c, 403, "Only the author can update this comment")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.GalleryDB.Exec(`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`, json.Content, now, commentID); err != nil {
		respond.Error(c, 500, "Database error updating comment")
		return
	}

	updated, err := commentByID(commentID)
	if err != nil {
		respond.Error(c, 500, "Database error reading comment")
		return
	}
	respond.Data(c, 200, updated)
}

func HandleDelete(c *gin.Context) {
	viewerID := auth.ViewerID(c)
	commentID := c.Param("id")

	comment, err := commentByID(commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Comment not found")
		} else {
			respond.Error(c, 500, "Database error extracting comment")
		}
		return
	}
	if comment.UserID != viewerID {
		respond.Error(c, 403, "Only the author can delete this comment")
		return
	}

	if _, err := db.GalleryDB.Exec(`DELETE FROM comments WHERE id = ?`, commentID); err != nil {
		respond.Error(c, 500, "Database error deleting comment")
		return
	}
	respond.Message(c, 200, "Comment deleted")
}

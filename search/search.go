package search

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"eventgallery/auth"
	"eventgallery/db"
	"eventgallery/events"
	"eventgallery/images"
	"eventgallery/respond"
	"eventgallery/types"
)

// HandleSearch runs the unified query. Only the sections selected by
// the type filter appear in the response.
func HandleSearch(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respond.Error(c, 400, "Search query is required")
		return
	}
	searchType := c.DefaultQuery("type", "all")
	switch searchType {
	case "all", "events", "images", "users":
	default:
		respond.Error(c, 400, "Invalid search type")
		return
	}

	page, limit := respond.PageParams(c, 20)
	offset := (page - 1) * limit
	pattern := "%" + q + "%"

	var results types.SearchResults

	if searchType == "all" || searchType == "events" {
		matches, err := events.Search(pattern, auth.ViewerID(c), limit, offset)
		if err != nil {
			respond.Error(c, 500, "Database error searching events")
			return
		}
		results.Events = matches
	}

	if searchType == "all" || searchType == "images" {
		matches, err := images.Query(
			` WHERE i.title LIKE ? OR i.description LIKE ? ORDER BY i.uploaded_at DESC LIMIT ? OFFSET ?`,
			pattern, pattern, limit, offset)
		if err != nil {
			respond.Error(c, 500, "Database error searching images")
			return
		}
		results.Images = matches
	}

	if searchType == "all" || searchType == "users" {
		matches, err := searchUsers(pattern, limit, offset)
		if err != nil {
			respond.Error(c, 500, "Database error searching users")
			return
		}
		results.Users = matches
	}

	respond.Data(c, 200, results)
}

func searchUsers(pattern string, limit, offset int) ([]types.User, error) {
	query := `SELECT id, username, email, full_name, avatar_url, bio, created_at
		FROM users
		WHERE username LIKE ? OR full_name LIKE ?
		ORDER BY username ASC LIMIT ? OFFSET ?`
	rows, err := db.GalleryDB.Query(query, pattern, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []types.User{}
	for rows.Next() {
		var user types.User
		var fullName, avatarURL, bio sql.NullString
		err := rows.Scan(&user.ID, &user.Username, &user.Email, &fullName, &avatarURL, &bio, &user.CreatedAt)
		if err != nil {
			return nil, err
		}
		user.FullName = db.NullStr(fullName)
		user.AvatarURL = db.NullStr(avatarURL)
		user.Bio = db.NullStr(bio)
		users = append(users, user)
	}
	return users, rows.Err()
}

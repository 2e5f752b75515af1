// Package gallery serves the public home feeds: featured, recent,
// popular and the aggregate stats. Feeds only surface images from
// public events.
package gallery

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"eventgallery/db"
	"eventgallery/images"
	"eventgallery/respond"
	"eventgallery/types"
)

const publicJoin = ` JOIN events e ON e.id = i.event_id AND e.is_private = 0`

const likeCountExpr = `(SELECT COUNT(*) FROM image_likes il WHERE il.image_id = i.id)`

func HandleFeatured(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if err != nil || limit < 1 {
		limit = 12
	}
	if limit > 100 {
		limit = 100
	}

	featured, err := images.Query(publicJoin+` ORDER BY `+likeCountExpr+` DESC, i.uploaded_at DESC LIMIT ?`, limit)
	if err != nil {
		respond.Error(c, 500, "Database error listing featured images")
		return
	}
	respond.Data(c, 200, featured)
}

func HandleRecent(c *gin.Context) {
	feed(c, " ORDER BY i.uploaded_at DESC")
}

func HandlePopular(c *gin.Context) {
	feed(c, " ORDER BY "+likeCountExpr+" DESC, i.uploaded_at DESC")
}

func feed(c *gin.Context, orderClause string) {
	page, limit := respond.PageParams(c, 12)

	var total int
	countQuery := `SELECT COUNT(*) FROM images i` + publicJoin
	if err := db.GalleryDB.QueryRow(countQuery).Scan(&total); err != nil {
		respond.Error(c, 500, "Database error counting images")
		return
	}

	feedImages, err := images.Query(publicJoin+orderClause+` LIMIT ? OFFSET ?`, limit, (page-1)*limit)
	if err != nil {
		respond.Error(c, 500, "Database error listing images")
		return
	}

	respond.Data(c, 200, types.Paginated[types.GalleryImage]{
		Data: feedImages,
		Meta: types.NewPageMeta(total, page, limit),
	})
}

func HandleStats(c *gin.Context) {
	var stats types.GalleryStats
	queries := map[*int]string{
		&stats.TotalEvents:   `SELECT COUNT(*) FROM events`,
		&stats.TotalImages:   `SELECT COUNT(*) FROM images`,
		&stats.TotalUsers:    `SELECT COUNT(*) FROM users`,
		&stats.TotalLikes:    `SELECT COUNT(*) FROM image_likes`,
		&stats.TotalComments: `SELECT COUNT(*) FROM comments`,
	}
	for dest, query := range queries {
		if err := db.GalleryDB.QueryRow(query).Scan(dest); err != nil {
			respond.Error(c, 500, "Database error aggregating gallery stats")
			return
		}
	}
	respond.Data(c, 200, stats)
}

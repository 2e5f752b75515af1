package events

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"

	"eventgallery/auth"
	"eventgallery/db"
	"eventgallery/respond"
	"eventgallery/types"
)

func HandleJoin(c *gin.Context) {
	viewerID := auth.ViewerID(c)
	eventID := c.Param("id")

	ev, err := scanEvent(db.GalleryDB.QueryRow(eventSelect+` WHERE e.id = ?`, eventID))
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Event not found")
		} else {
			respond.Error(c, 500, "Database error extracting event data")
		}
		return
	}

	if ev.IsPrivate && ev.CreatedByID != viewerID {
		respond.Error(c, 403, "This event is private, join with an invite code")
		return
	}

	joinEvent(c, ev.ID, viewerID, "Joined event")
}

func HandleJoinByCode(c *gin.Context) {
	viewerID := auth.ViewerID(c)

	var json struct {
		InviteCode string `json:"inviteCode"`
	}
	if err := c.ShouldBindJSON(&json); err != nil || json.InviteCode == "" {
		respond.Error(c, 400, "Invite code is required")
		return
	}

	var eventID string
	err := db.GalleryDB.QueryRow(`SELECT id FROM events WHERE invite_code = ?`, json.InviteCode).Scan(&eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Invalid invite code")
		} else {
			respond.Error(c, 500, "Database error extracting event data")
		}
		return
	}

	joinEvent(c, eventID, viewerID, "Joined event by invite code")
}

func joinEvent(c *gin.Context, eventID, viewerID, message string) {
	if isParticipant(eventID, viewerID) {
		respond.Error(c, 409, "Already a participant of this event")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.GalleryDB.Exec(`INSERT INTO event_participants (event_id, user_id, joined_at) VALUES (?, ?, ?)`,
		eventID, viewerID, now)
	if err != nil {
		respond.Error(c, 500, "Database error inserting event participant")
		return
	}

	ev, err := eventByID(eventID, viewerID)
	if err != nil {
		respond.Error(c, 500, "Database error reading event data")
		return
	}
	respond.Data(c, 200, types.JoinEventResult{Event: *ev, Message: message})
}

func HandleLeave(c *gin.Context) {
	viewerID := auth.ViewerID(c)
	eventID := c.Param("id")

	owner, err := ownerOf(eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Event not found")
		} else {
			respond.Error(c, 500, "Database error extracting event data")
		}
		return
	}
	if owner == viewerID {
		respond.Error(c, 400, "The event owner cannot leave their own event")
		return
	}

	res, err := db.GalleryDB.Exec(`DELETE FROM event_participants WHERE event_id = ? AND user_id = ?`,
		eventID, viewerID)
	if err != nil {
		respond.Error(c, 500, "Database error deleting event participant")
		return
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		respond.Error(c, 400, "Not a participant of this event")
		return
	}

	respond.Message(c, 200, "Left event")
}

func HandleParticipants(c *gin.Context) {
	eventID := c.Param("id")

	if _, err := ownerOf(eventID); err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Event not found")
		} else {
			respond.Error(c, 500, "Database error extracting event data")
		}
		return
	}

	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.avatar_url, u.bio, u.created_at, ep.joined_at
		FROM event_participants ep
		JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = ?
		ORDER BY ep.joined_at ASC`
	rows, err := db.GalleryDB.Query(query, eventID)
	if err != nil {
		respond.Error(c, 500, "Database error listing participants")
		return
	}
	defer rows.Close()

	participants := []types.Participant{}
	for rows.Next() {
		var p types.Participant
		var fullName, avatarURL, bio sql.NullString
		err := rows.Scan(&p.User.ID, &p.User.Username, &p.User.Email,
			&fullName, &avatarURL, &bio, &p.User.CreatedAt, &p.JoinedAt)
		if err != nil {
			continue
		}
		p.User.FullName = db.NullStr(fullName)
		p.User.AvatarURL = db.NullStr(avatarURL)
		p.User.Bio = db.NullStr(bio)
		participants = append(participants, p)
	}

	respond.Data(c, 200, gin.H{"participants": participants})
}

func HandleStatistics(c *gin.Context) {
	eventID := c.Param("id")

	if _, err := ownerOf(eventID); err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Event not found")
		} else {
			respond.Error(c, 500, "Database error extracting event data")
		}
		return
	}

	var stats types.EventStatistics
	queries := map[*int]string{
		&stats.ImageCount:       `SELECT COUNT(*) FROM images WHERE event_id = ?`,
		&stats.ParticipantCount: `SELECT COUNT(*) FROM event_participants WHERE event_id = ?`,
		&stats.LikeCount:        `SELECT COUNT(*) FROM image_likes il JOIN images i ON i.id = il.image_id WHERE i.event_id = ?`,
		&stats.CommentCount:     `SELECT COUNT(*) FROM comments co JOIN images i ON i.id = co.image_id WHERE i.event_id = ?`,
	}
	for dest, query := range queries {
		if err := db.GalleryDB.QueryRow(query, eventID).Scan(dest); err != nil {
			respond.Error(c, 500, "Database error aggregating event statistics")
			return
		}
	}

	respond.Data(c, 200, stats)
}

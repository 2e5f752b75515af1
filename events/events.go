package events

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgallery/auth"
	"eventgallery/db"
	"eventgallery/respond"
	"eventgallery/types"
	"eventgallery/uploads"
)

const eventSelect = `
	SELECT e.id, e.name, e.description, e.cover_image_url, e.cover_image_key,
		e.location, e.start_date, e.end_date, e.is_private, e.invite_code,
		e.created_by, e.created_at, e.updated_at,
		(SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = e.id),
		(SELECT COUNT(*) FROM images i WHERE i.event_id = e.id)
	FROM events e`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*types.Event, error) {
	var ev types.Event
	var description, coverURL, coverKey, location, startDate, endDate, inviteCode sql.NullString
	var isPrivate int
	err := row.Scan(
		&ev.ID, &ev.Name, &description, &coverURL, &coverKey,
		&location, &startDate, &endDate, &isPrivate, &inviteCode,
		&ev.CreatedByID, &ev.CreatedAt, &ev.UpdatedAt,
		&ev.ParticipantCount, &ev.ImageCount,
	)
	if err != nil {
		return nil, err
	}
	ev.Description = db.NullStr(description)
	ev.CoverImageURL = db.NullStr(coverURL)
	ev.CoverImageKey = db.NullStr(coverKey)
	ev.Location = db.NullStr(location)
	ev.StartDate = db.NullStr(startDate)
	ev.EndDate = db.NullStr(endDate)
	ev.InviteCode = db.NullStr(inviteCode)
	ev.IsPrivate = isPrivate == 1
	return &ev, nil
}

func isParticipant(eventID, userID string) bool {
	var count int
	query := `SELECT COUNT(*) FROM event_participants WHERE event_id = ? AND user_id = ?`
	err := db.GalleryDB.QueryRow(query, eventID, userID).Scan(&count)
	return err == nil && count > 0
}

// decorate fills the viewer-relative fields. These are computed per
// request and must never be cached across viewing identities, so they
// are derived here and nowhere else. The invite code is only serialized
// to the owner and participants.
func decorate(ev *types.Event, viewerID string) {
	ev.IsOwner = viewerID != "" && ev.CreatedByID == viewerID
	ev.IsParticipant = viewerID != "" && isParticipant(ev.ID, viewerID)
	if !ev.IsOwner && !ev.IsParticipant {
		ev.InviteCode = nil
	}
	if createdBy, err := auth.PublicUserByID(ev.CreatedByID); err == nil {
		ev.CreatedBy = createdBy
	}
}

func eventByID(id, viewerID string) (*types.Event, error) {
	ev, err := scanEvent(db.GalleryDB.QueryRow(eventSelect+` WHERE e.id = ?`, id))
	if err != nil {
		return nil, err
	}
	decorate(ev, viewerID)
	return ev, nil
}

// Search returns events whose name or description match pattern, with
// viewer-relative fields resolved for viewerID.
func Search(pattern, viewerID string, limit, offset int) ([]types.Event, error) {
	query := eventSelect + ` WHERE e.name LIKE ? OR e.description LIKE ? ORDER BY e.created_at DESC LIMIT ? OFFSET ?`
	rows, err := db.GalleryDB.Query(query, pattern, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []types.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		decorate(ev, viewerID)
		matches = append(matches, *ev)
	}
	return matches, rows.Err()
}

var sortColumns = map[string]string{
	"createdAt": "e.created_at",
	"name":      "e.name",
	"startDate": "e.start_date",
}

func HandleList(c *gin.Context) {
	viewerID := auth.ViewerID(c)
	page, limit := respond.PageParams(c, 12)

	where := []string{"1=1"}
	args := []interface{}{}
	if search := c.Query("search"); search != "" {
		where = append(where, "(e.name LIKE ? OR e.description LIKE ?)")
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if isPrivate := c.Query("isPrivate"); isPrivate != "" {
		flag := 0
		if isPrivate == "true" {
			flag = 1
		}
		where = append(where, "e.is_private = ?")
		args = append(args, flag)
	}

	sortColumn, ok := sortColumns[c.DefaultQuery("sortBy", "createdAt")]
	if !ok {
		sortColumn = "e.created_at"
	}
	order := "DESC"
	if c.Query("sortOrder") == "asc" {
		order = "ASC"
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM events e` + whereClause
	if err := db.GalleryDB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		respond.Error(c, 500, "Database error counting events")
		return
	}

	listQuery := eventSelect + whereClause + " ORDER BY " + sortColumn + " " + order + " LIMIT ? OFFSET ?"
	listArgs := append(append([]interface{}{}, args...), limit, (page-1)*limit)
	rows, err := db.GalleryDB.Query(listQuery, listArgs...)
	if err != nil {
		respond.Error(c, 500, "Database error listing events")
		return
	}
	defer rows.Close()

	eventList := []types.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			continue
		}
		decorate(ev, viewerID)
		eventList = append(eventList, *ev)
	}

	respond.Data(c, 200, types.Paginated[types.Event]{
		Data: eventList,
		Meta: types.NewPageMeta(total, page, limit),
	})
}

func HandleGet(c *gin.Context) {
	ev, err := eventByID(c.Param("id"), auth.ViewerID(c))
	if err != nil {
		if err == sql.ErrNoRows {
			respond.Error(c, 404, "Event not found")
		} else {
			respond.Error(c, 500, "Database error extracting event data")
		}
		return
	}
	respond.Data(c, 200, ev)
}

func HandleCreate(c *gin.Context) {
	viewerID := auth.ViewerID(c)

	name := c.PostForm("name")
	if name == "" {
		respond.Error(c, 400, "Event name is required")
		return
	}
	isPrivate := 0
	var inviteCode interface{}
	if c.PostForm("isPrivate") == "true" {
		isPrivate = 1
		inviteCode = newInviteCode()
	}

	var coverURL, coverKey interface{}
	if header, err := c.FormFile("coverImage"); err == nil {
		key, err := uploads.SaveMultipart(header)
		if err != nil {
			respond.Error(c, 500, "Failed to store cover image")
			return
		}
		coverKey = key
		coverURL = uploads.URLFor(key)
	}

	eventID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	query := `INSERT INTO events (id, name, description, cover_image_url, cover_image_key,
		location, start_date, end_date, is_private, invite_code, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.GalleryDB.Exec(query, eventID, name,
		formValue(c, "description"), coverURL, coverKey,
		formValue(c, "location"), formValue(c, "startDate"), formValue(c, "endDate"),
		isPrivate, inviteCode, viewerID, now, now)
	if err != nil {
		respond.Error(c, 500, "Database error inserting event data")
		return
	}

	// The owner is a participant from the start.
	_, err = db.GalleryDB.Exec(`INSERT INTO event_participants (event_id, user_id, joined_at) VALUES (?, ?, ?)`,
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
	respond.Data(c, 201, ev)
}

func HandleUpdate(c *gin.Context) {
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
	if owner != viewerID {
		respond.Error(c, 403, "Only the event owner can update it")
		return
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC().Format(time.RFC3339)}

	for form, column := range map[string]string{
		"name":        "name",
		"description": "description",
		"location":    "location",
		"startDate":   "start_date",
		"endDate":     "end_date",
	} {
		if value, ok := c.GetPostForm(form); ok {
			sets = append(sets, column+" = ?")
			args = append(args, value)
		}
	}

	if value, ok := c.GetPostForm("isPrivate"); ok {
		if value == "true" {
			sets = append(sets, "is_private = 1")
			sets = append(sets, "invite_code = COALESCE(invite_code, ?)")
			args = append(args, newInviteCode())
		} else {
			sets = append(sets, "is_private = 0", "invite_code = NULL")
		}
	}

	if header, err := c.FormFile("coverImage"); err == nil {
		key, err := uploads.SaveMultipart(header)
		if err != nil {
			respond.Error(c, 500, "Failed to store cover image")
			return
		}
		sets = append(sets, "cover_image_key = ?", "cover_image_url = ?")
		args = append(args, key, uploads.URLFor(key))
	}

	args = append(args, eventID)
	_, err = db.GalleryDB.Exec(`UPDATE events SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		respond.Error(c, 500, "Database error updating event data")
		return
	}

	ev, err := eventByID(eventID, viewerID)
	if err != nil {
		respond.Error(c, 500, "Database error reading event data")
		return
	}
	respond.Data(c, 200, ev)
}

func HandleDelete(c *gin.Context) {
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
	if owner != viewerID {
		respond.Error(c, 403, "Only the event owner can delete it")
		return
	}

	if _, err := db.GalleryDB.Exec(`DELETE FROM events WHERE id = ?`, eventID); err != nil {
		respond.Error(c, 500, "Database error deleting event")
		return
	}
	respond.Message(c, 200, "Event deleted")
}

func ownerOf(eventID string) (string, error) {
	var owner string
	err := db.GalleryDB.QueryRow(`SELECT created_by FROM events WHERE id = ?`, eventID).Scan(&owner)
	return owner, err
}

func formValue(c *gin.Context, name string) interface{} {
	if value, ok := c.GetPostForm(name); ok && value != "" {
		return value
	}
	return nil
}

func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

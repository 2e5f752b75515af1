package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"eventgallery/types"
)

// EventUpload is the multipart payload for creating or updating an
// event. Empty fields are left off the request; IsPrivate is a pointer
// so an update can leave the privacy flag untouched.
type EventUpload struct {
	Name        string
	Description string
	Location    string
	StartDate   string
	EndDate     string
	IsPrivate   *bool
	CoverImage  *FileUpload
}

func (e *EventUpload) form() *FormBody {
	form := NewFormBody().
		OptionalField("name", e.Name).
		OptionalField("description", e.Description).
		OptionalField("location", e.Location).
		OptionalField("startDate", e.StartDate).
		OptionalField("endDate", e.EndDate)
	if e.IsPrivate != nil {
		form.Field("isPrivate", strconv.FormatBool(*e.IsPrivate))
	}
	form.File("coverImage", e.CoverImage)
	return form
}

func (c *Client) ListEvents(filters types.EventFilters) (*types.Paginated[types.Event], error) {
	query := url.Values{}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.IsPrivate != nil {
		query.Set("isPrivate", strconv.FormatBool(*filters.IsPrivate))
	}
	if filters.SortBy != "" {
		query.Set("sortBy", filters.SortBy)
	}
	if filters.SortOrder != "" {
		query.Set("sortOrder", filters.SortOrder)
	}

	var resp types.Paginated[types.Event]
	if err := c.getJSON("/events", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetEvent(id string) (*types.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("event id is required")
	}
	var event types.Event
	if err := c.getJSON("/events/"+id, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) CreateEvent(upload EventUpload) (*types.Event, error) {
	if upload.Name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	var event types.Event
	if err := c.sendForm(http.MethodPost, "/events", upload.form(), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) UpdateEvent(id string, upload EventUpload) (*types.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("event id is required")
	}
	var event types.Event
	if err := c.sendForm(http.MethodPatch, "/events/"+id, upload.form(), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) DeleteEvent(id string) error {
	if id == "" {
		return fmt.Errorf("event id is required")
	}
	return c.sendJSON(http.MethodDelete, "/events/"+id, nil, nil)
}

func (c *Client) JoinEvent(id string) (*types.JoinEventResult, error) {
	if id == "" {
		return nil, fmt.Errorf("event id is required")
	}
	var result types.JoinEventResult
	if err := c.sendJSON(http.MethodPost, "/events/"+id+"/join", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) JoinEventByCode(inviteCode string) (*types.JoinEventResult, error) {
	if inviteCode == "" {
		return nil, fmt.Errorf("invite code is required")
	}
	payload := map[string]string{"inviteCode": inviteCode}
	var result types.JoinEventResult
	if err := c.sendJSON(http.MethodPost, "/events/join-by-code", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) LeaveEvent(id string) error {
	if id == "" {
		return fmt.Errorf("event id is required")
	}
	return c.sendJSON(http.MethodDelete, "/events/"+id+"/leave", nil, nil)
}

func (c *Client) EventParticipants(id string) ([]types.Participant, error) {
	if id == "" {
		return nil, fmt.Errorf("event id is required")
	}
	var resp struct {
		Participants []types.Participant `json:"participants"`
	}
	if err := c.getJSON("/events/"+id+"/participants", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Participants, nil
}

func (c *Client) EventStatistics(id string) (*types.EventStatistics, error) {
	if id == "" {
		return nil, fmt.Errorf("event id is required")
	}
	var stats types.EventStatistics
	if err := c.getJSON("/events/"+id+"/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"eventgallery/types"
)

// ImageUpload is the multipart payload for POST /images.
type ImageUpload struct {
	EventID     string
	Title       string
	Description string
	Image       *FileUpload
}

func (c *Client) ListImages(filters types.ImageFilters) (*types.Paginated[types.GalleryImage], error) {
	query := url.Values{}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}
	if filters.EventID != "" {
		query.Set("eventId", filters.EventID)
	}
	if filters.UserID != "" {
		query.Set("userId", filters.UserID)
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.SortBy != "" {
		query.Set("sortBy", filters.SortBy)
	}
	if filters.SortOrder != "" {
		query.Set("sortOrder", filters.SortOrder)
	}

	var resp types.Paginated[types.GalleryImage]
	if err := c.getJSON("/images", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetImage(id string) (*types.ImageDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("image id is required")
	}
	var detail types.ImageDetail
	if err := c.getJSON("/images/"+id, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) UploadImage(upload ImageUpload) (*types.ImageUploadResult, error) {
	if upload.EventID == "" {
		return nil, fmt.Errorf("event id is required")
	}
	if upload.Image == nil {
		return nil, fmt.Errorf("image file is required")
	}
	form := NewFormBody().
		Field("eventId", upload.EventID).
		OptionalField("title", upload.Title).
		OptionalField("description", upload.Description).
		File("image", upload.Image)

	var result types.ImageUploadResult
	if err := c.sendForm(http.MethodPost, "/images", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateImage(id string, update types.ImageUpdate) (*types.GalleryImage, error) {
	if id == "" {
		return nil, fmt.Errorf("image id is required")
	}
	var image types.GalleryImage
	if err := c.sendJSON(http.MethodPatch, "/images/"+id, update, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

func (c *Client) DeleteImage(id string) error {
	if id == "" {
		return fmt.Errorf("image id is required")
	}
	return c.sendJSON(http.MethodDelete, "/images/"+id, nil, nil)
}

func (c *Client) LikeImage(id string) (*types.LikeResult, error) {
	if id == "" {
		return nil, fmt.Errorf("image id is required")
	}
	var result types.LikeResult
	if err := c.sendJSON(http.MethodPost, "/images/"+id+"/like", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UnlikeImage(id string) (*types.LikeResult, error) {
	if id == "" {
		return nil, fmt.Errorf("image id is required")
	}
	var result types.LikeResult
	if err := c.sendJSON(http.MethodDelete, "/images/"+id+"/unlike", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

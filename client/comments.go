package client

import (
	"fmt"
	"net/http"

	"eventgallery/types"
)

func (c *Client) CreateComment(imageID, content string) (*types.Comment, error) {
	if imageID == "" {
		return nil, fmt.Errorf("image id is required")
	}
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}
	payload := map[string]string{"imageId": imageID, "content": content}
	var comment types.Comment
	if err := c.sendJSON(http.MethodPost, "/comments", payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) UpdateComment(id, content string) (*types.Comment, error) {
	if id == "" {
		return nil, fmt.Errorf("comment id is required")
	}
	payload := map[string]string{"content": content}
	var comment types.Comment
	if err := c.sendJSON(http.MethodPatch, "/comments/"+id, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(id string) error {
	if id == "" {
		return fmt.Errorf("comment id is required")
	}
	return c.sendJSON(http.MethodDelete, "/comments/"+id, nil, nil)
}

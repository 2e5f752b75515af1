package client

import (
	"net/url"
	"strconv"

	"eventgallery/types"
)

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}

// Featured returns the unpaginated top-N feed.
func (c *Client) Featured(limit int) ([]types.GalleryImage, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var images []types.GalleryImage
	if err := c.getJSON("/gallery/featured", query, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (c *Client) Recent(page, limit int) (*types.Paginated[types.GalleryImage], error) {
	var resp types.Paginated[types.GalleryImage]
	if err := c.getJSON("/gallery/recent", pageQuery(page, limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Popular(page, limit int) (*types.Paginated[types.GalleryImage], error) {
	var resp types.Paginated[types.GalleryImage]
	if err := c.getJSON("/gallery/popular", pageQuery(page, limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GalleryStats() (*types.GalleryStats, error) {
	var stats types.GalleryStats
	if err := c.getJSON("/gallery/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

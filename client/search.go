package client

import (
	"fmt"
	"net/url"
	"strconv"

	"eventgallery/types"
)

// SearchOptions narrow the unified search. Type defaults to "all",
// page to 1 and limit to 20 server side.
type SearchOptions struct {
	Type  string // all | events | images | users
	Page  int
	Limit int
}

func (c *Client) Search(q string, opts SearchOptions) (*types.SearchResults, error) {
	if q == "" {
		return nil, fmt.Errorf("search query is required")
	}
	query := url.Values{}
	query.Set("q", q)
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var results types.SearchResults
	if err := c.getJSON("/search", query, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"rentscout/models"
)

func (c *Client) CreateViewing(ctx context.Context, req models.ViewingRequest) (*models.Viewing, error) {
	var v models.Viewing
	if err := c.do(ctx, http.MethodPost, "/viewings", nil, req, &v, authAccess); err != nil {
		return nil, err
	}
	return &v, nil
}

// Viewings lists the caller's viewings ordered by date. start and end are
// optional YYYY-MM-DD bounds.
func (c *Client) Viewings(ctx context.Context, upcomingOnly bool, start, end string) ([]models.Viewing, error) {
	q := url.Values{}
	q.Set("upcoming_only", strconv.FormatBool(upcomingOnly))
	if start != "" {
		q.Set("start_date", start)
	}
	if end != "" {
		q.Set("end_date", end)
	}

	var viewings []models.Viewing
	if err := c.do(ctx, http.MethodGet, "/viewings", q, nil, &viewings, authAccess); err != nil {
		return nil, err
	}
	return viewings, nil
}

func (c *Client) GetViewing(ctx context.Context, id int) (*models.Viewing, error) {
	var v models.Viewing
	if err := c.do(ctx, http.MethodGet, "/viewings/"+strconv.Itoa(id), nil, nil, &v, authAccess); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) UpdateViewing(ctx context.Context, id int, req models.ViewingRequest) (*models.Viewing, error) {
	var v models.Viewing
	if err := c.do(ctx, http.MethodPut, "/viewings/"+strconv.Itoa(id), nil, req, &v, authAccess); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) DeleteViewing(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/viewings/"+strconv.Itoa(id), nil, nil, nil, authAccess)
}

// ICalExport is a calendar document rendered server-side.
type ICalExport struct {
	Format   string `json:"format"`
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

func (c *Client) ViewingICal(ctx context.Context, id int) (*ICalExport, error) {
	var ical ICalExport
	path := fmt.Sprintf("/viewings/%d/export/ical", id)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &ical, authAccess); err != nil {
		return nil, err
	}
	return &ical, nil
}

// AllViewingsICal exports every upcoming viewing as one calendar.
func (c *Client) AllViewingsICal(ctx context.Context) (*ICalExport, error) {
	var ical ICalExport
	if err := c.do(ctx, http.MethodPost, "/viewings/export/ical/all", nil, nil, &ical, authAccess); err != nil {
		return nil, err
	}
	return &ical, nil
}

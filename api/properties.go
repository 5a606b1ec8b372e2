package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"rentscout/models"
)

// ListProperties fetches one page of listings matching the filter. Absent
// filter fields are omitted from the query entirely.
func (c *Client) ListProperties(ctx context.Context, f models.Filter, limit, offset int) (*models.PropertyPage, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("list properties: limit and offset must be non-negative (limit=%d offset=%d)", limit, offset)
	}

	q := f.Values()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var page models.PropertyPage
	if err := c.do(ctx, http.MethodGet, "/properties", q, nil, &page, authAccess); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	var p models.Property
	if err := c.do(ctx, http.MethodGet, "/properties/"+strconv.Itoa(id), nil, nil, &p, authAccess); err != nil {
		return nil, err
	}
	return &p, nil
}

// PropertyTypes returns the enumeration the filter pane offers.
func (c *Client) PropertyTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.do(ctx, http.MethodGet, "/property-types", nil, nil, &types, authAccess); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *Client) Outcodes(ctx context.Context) ([]string, error) {
	var outcodes []string
	if err := c.do(ctx, http.MethodGet, "/outcodes", nil, nil, &outcodes, authAccess); err != nil {
		return nil, err
	}
	return outcodes, nil
}

type ratingRequest struct {
	PropertyID int             `json:"property_id"`
	VoteType   models.VoteType `json:"vote_type"`
}

// CreateRating records an upvote or downvote keyed server-side by
// (property, caller).
func (c *Client) CreateRating(ctx context.Context, propertyID int, vote models.VoteType) (*models.Rating, error) {
	var r models.Rating
	if err := c.do(ctx, http.MethodPost, "/ratings", nil, ratingRequest{PropertyID: propertyID, VoteType: vote}, &r, authAccess); err != nil {
		return nil, err
	}
	return &r, nil
}

// Ratings returns all rating records for a property, in server order.
func (c *Client) Ratings(ctx context.Context, propertyID int) ([]models.Rating, error) {
	var ratings []models.Rating
	path := fmt.Sprintf("/properties/%d/ratings", propertyID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &ratings, authAccess); err != nil {
		return nil, err
	}
	return ratings, nil
}

// MyRating returns the caller's own vote; VoteType is "" when none exists.
func (c *Client) MyRating(ctx context.Context, propertyID int) (*models.MyRating, error) {
	var r models.MyRating
	path := fmt.Sprintf("/properties/%d/my-rating", propertyID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &r, authAccess); err != nil {
		return nil, err
	}
	return &r, nil
}

// Star bookmarks a property for the caller. Requires a bearer token.
func (c *Client) Star(ctx context.Context, propertyID int) error {
	path := fmt.Sprintf("/properties/%d/star", propertyID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil, authAccess)
}

func (c *Client) Unstar(ctx context.Context, propertyID int) error {
	path := fmt.Sprintf("/properties/%d/unstar", propertyID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil, authAccess)
}

// Starred returns the ids of every property the caller has bookmarked.
func (c *Client) Starred(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.do(ctx, http.MethodGet, "/properties/starred", nil, nil, &ids, authAccess); err != nil {
		return nil, err
	}
	return ids, nil
}

type statusRequest struct {
	Status  models.PropertyStatus `json:"status"`
	Comment string                `json:"comment,omitempty"`
}

// SetStatus upserts the caller's tracking status for a property. An optional
// comment is stored alongside.
func (c *Client) SetStatus(ctx context.Context, propertyID int, status models.PropertyStatus, comment string) (*models.StatusRecord, error) {
	var rec models.StatusRecord
	path := fmt.Sprintf("/properties/%d/status", propertyID)
	if err := c.do(ctx, http.MethodPost, path, nil, statusRequest{Status: status, Comment: comment}, &rec, authAccess); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetStatus returns the caller's tracking status, or a NotFound error when
// none has been set.
func (c *Client) GetStatus(ctx context.Context, propertyID int) (*models.StatusRecord, error) {
	var rec models.StatusRecord
	path := fmt.Sprintf("/properties/%d/status", propertyID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &rec, authAccess); err != nil {
		return nil, err
	}
	return &rec, nil
}

type commentRequest struct {
	Comment string `json:"comment"`
}

func (c *Client) AddComment(ctx context.Context, propertyID int, text string) (*models.Comment, error) {
	var cm models.Comment
	path := fmt.Sprintf("/properties/%d/comments", propertyID)
	if err := c.do(ctx, http.MethodPost, path, nil, commentRequest{Comment: text}, &cm, authAccess); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) Comments(ctx context.Context, propertyID int) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/properties/%d/comments", propertyID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &comments, authAccess); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) UpdateComment(ctx context.Context, propertyID, commentID int, text string) (*models.Comment, error) {
	var cm models.Comment
	path := fmt.Sprintf("/properties/%d/comments/%d", propertyID, commentID)
	if err := c.do(ctx, http.MethodPut, path, nil, commentRequest{Comment: text}, &cm, authAccess); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) DeleteComment(ctx context.Context, propertyID, commentID int) error {
	path := fmt.Sprintf("/properties/%d/comments/%d", propertyID, commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, authAccess)
}

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"rentscout/models"
)

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.Get(ctx, "/users/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	var p models.Profile
	if err := c.Put(ctx, "/users/profile", update, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) NotificationSettings(ctx context.Context) (*models.NotificationSettings, error) {
	var s models.NotificationSettings
	if err := c.Get(ctx, "/users/notifications", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateNotificationSettings(ctx context.Context, s models.NotificationSettings) (*models.NotificationSettings, error) {
	var out models.NotificationSettings
	if err := c.Put(ctx, "/users/notifications", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes the account and all server-side user data.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.Delete(ctx, "/users")
}

// PersonalizedFeed returns listings ranked against the caller's profile.
func (c *Client) PersonalizedFeed(ctx context.Context, limit, offset int) (*models.FeedPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var page models.FeedPage
	if err := c.do(ctx, http.MethodGet, "/feed/personalized", q, nil, &page, authAccess); err != nil {
		return nil, err
	}
	return &page, nil
}

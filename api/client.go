package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// TokenSource supplies the current credential pair. It is read-only from the
// client's point of view; the session store owns the tokens.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
}

type authMode int

const (
	// authAccess attaches the access token as bearer when one is present.
	authAccess authMode = iota
	// authNone sends no Authorization header (login/register/health).
	authNone
	// authRefresh attaches the refresh token as bearer (refresh exchange).
	authRefresh
)

// Client is the single point of outbound HTTP communication with the rentals
// API. It holds no mutable state beyond the base URL, transport, and a token
// lookup.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	userAgent string
}

func New(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		tokens:    tokens,
		userAgent: "rentscout/1.0",
	}
}

// SetTokenSource wires the session store in after construction; the client
// and the store reference each other, so one side is attached late.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, auth authMode) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch auth {
	case authNone:
	case authRefresh:
		if c.tokens == nil || c.tokens.RefreshToken() == "" {
			return &HTTPError{Status: http.StatusUnauthorized, Message: "no refresh token held"}
		}
		req.Header.Set("Authorization", "Bearer "+c.tokens.RefreshToken())
	default:
		if c.tokens != nil {
			if tok := c.tokens.AccessToken(); tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newHTTPError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Get is the escape hatch for endpoints without a dedicated method. The
// bearer header is attached when a token is present.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out, authAccess)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, authAccess)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, authAccess)
}

// Health pings the API root; lets long-running callers fail fast on a bad
// base URL.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil, authNone)
}

// DescriptionText flattens an HTML listing description to plain text for
// terminal rendering. Input that does not parse as HTML is returned as is.
func DescriptionText(html string) string {
	if html == "" || !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})
	doc.Find("p, li, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := doc.Text()
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

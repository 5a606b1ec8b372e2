package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

const tokenBody = `{"access_token":"acc-1","refresh_token":"ref-1","token_type":"bearer","expires_in":1800}`

func TestLoginNormalizesWireTokens(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(tokenBody))
	}))
	defer srv.Close()

	// Stale tokens must not leak onto the login call itself.
	c := New(srv.URL, srv.Client(), staticTokens{access: "stale"})
	pair, err := c.Login(context.Background(), "a@b.com", "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if gotAuth != "" {
		t.Fatalf("login sent an auth header: %q", gotAuth)
	}
	var creds map[string]string
	if err := json.Unmarshal(gotBody, &creds); err != nil {
		t.Fatalf("bad request body: %v", err)
	}
	if creds["email"] != "a@b.com" || creds["password"] != "hunter2" {
		t.Fatalf("unexpected credentials payload: %v", creds)
	}

	if pair.AccessToken != "acc-1" {
		t.Fatalf("expected access token acc-1, got %s", pair.AccessToken)
	}
	if pair.RefreshToken != "ref-1" {
		t.Fatalf("expected refresh token ref-1, got %s", pair.RefreshToken)
	}
	if pair.ExpiresIn != 1800 {
		t.Fatalf("expected expires_in 1800, got %d", pair.ExpiresIn)
	}
	if pair.TokenType != "bearer" {
		t.Fatalf("expected token type bearer, got %s", pair.TokenType)
	}
}

func TestTokenPairCanonicalJSONKeys(t *testing.T) {
	pair := tokenFromWire(tokenWire{AccessToken: "a", RefreshToken: "r", TokenType: "bearer", ExpiresIn: 60})

	data, err := json.Marshal(pair)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var keys map[string]any
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, k := range []string{"accessToken", "refreshToken", "expiresIn", "tokenType"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("canonical blob missing key %s: %s", k, data)
		}
	}
	if _, ok := keys["access_token"]; ok {
		t.Fatalf("canonical blob leaked wire key: %s", data)
	}
}

func TestRefreshUsesRefreshTokenAsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(tokenBody))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), staticTokens{access: "acc-old", refresh: "ref-old"})
	pair, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if gotAuth != "Bearer ref-old" {
		t.Fatalf("expected refresh token as bearer, got %q", gotAuth)
	}
	if pair.AccessToken != "acc-1" {
		t.Fatalf("expected replaced pair, got %s", pair.AccessToken)
	}
}

func TestRefreshWithoutTokenFailsBeforeIO(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), staticTokens{})
	_, err := c.Refresh(context.Background())

	var he *HTTPError
	if !errors.As(err, &he) || he.Status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no network call, got %d", calls)
	}
}

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// AppwriteClient is the concrete REST adapter for an Appwrite-compatible
// backend. It implements both IdentityProvider and DocumentStore.
//
// The client is safe for concurrent use; the retained session secret and JWT
// are guarded by a mutex.
type AppwriteClient struct {
	endpoint  string
	projectID string
	hc        *http.Client

	mu            sync.Mutex
	sessionSecret string
	jwt           string
}

// Option customizes an AppwriteClient.
type Option func(*AppwriteClient)

// WithHTTPClient replaces the underlying HTTP client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *AppwriteClient) { c.hc = hc }
}

// NewAppwriteClient builds an adapter for the given endpoint (including the
// /v1 path segment) and project id.
func NewAppwriteClient(endpoint, projectID string, opts ...Option) *AppwriteClient {
	c := &AppwriteClient{
		endpoint:  strings.TrimRight(endpoint, "/"),
		projectID: projectID,
		hc:        &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *AppwriteClient) SetSession(secret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionSecret = secret
}

func (c *AppwriteClient) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionSecret = ""
	c.jwt = ""
}

func (c *AppwriteClient) authHeaders() (secret, jwt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionSecret, c.jwt
}

// do performs one JSON request/response round trip. Responses with status
// >= 400 are decoded into *Error; transport failures are wrapped as plain
// errors so callers can tell the two apart.
func (c *AppwriteClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.projectID)
	if secret, jwt := c.authHeaders(); secret != "" {
		req.Header.Set("X-Appwrite-Session", secret)
	} else if jwt != "" {
		req.Header.Set("X-Appwrite-JWT", jwt)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		pe := &Error{}
		if err := json.Unmarshal(data, pe); err != nil || pe.Code == 0 {
			pe = &Error{Message: http.StatusText(resp.StatusCode), Code: resp.StatusCode, Type: "general_unknown"}
		}
		return pe
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// --- IdentityProvider ---

func (c *AppwriteClient) CreateAccount(ctx context.Context, userID, email, password, name string) (*Account, error) {
	body := map[string]string{"userId": userID, "email": email, "password": password, "name": name}
	acct := &Account{}
	if err := c.do(ctx, http.MethodPost, "/account", nil, body, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (c *AppwriteClient) CreateEmailSession(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	sess := &Session{}
	if err := c.do(ctx, http.MethodPost, "/account/sessions/email", nil, body, sess); err != nil {
		return nil, err
	}
	c.SetSession(sess.Secret)
	return sess, nil
}

func (c *AppwriteClient) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	sess := &Session{}
	if err := c.do(ctx, http.MethodGet, "/account/sessions/"+sessionID, nil, nil, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (c *AppwriteClient) DeleteSession(ctx context.Context, sessionID string) error {
	if err := c.do(ctx, http.MethodDelete, "/account/sessions/"+sessionID, nil, nil, nil); err != nil {
		return err
	}
	if sessionID == CurrentSession {
		c.ClearSession()
	}
	return nil
}

func (c *AppwriteClient) DeleteSessions(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/account/sessions", nil, nil, nil); err != nil {
		return err
	}
	c.ClearSession()
	return nil
}

func (c *AppwriteClient) GetAccount(ctx context.Context) (*Account, error) {
	acct := &Account{}
	if err := c.do(ctx, http.MethodGet, "/account", nil, nil, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (c *AppwriteClient) UpdateEmail(ctx context.Context, email, password string) (*Account, error) {
	body := map[string]string{"email": email, "password": password}
	acct := &Account{}
	if err := c.do(ctx, http.MethodPatch, "/account/email", nil, body, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (c *AppwriteClient) UpdatePassword(ctx context.Context, newPassword, oldPassword string) (*Account, error) {
	body := map[string]string{"password": newPassword, "oldPassword": oldPassword}
	acct := &Account{}
	if err := c.do(ctx, http.MethodPatch, "/account/password", nil, body, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (c *AppwriteClient) UpdatePrefs(ctx context.Context, prefs Preferences) (*Account, error) {
	body := map[string]Preferences{"prefs": prefs}
	acct := &Account{}
	if err := c.do(ctx, http.MethodPatch, "/account/prefs", nil, body, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (c *AppwriteClient) GetPrefs(ctx context.Context) (*Preferences, error) {
	prefs := &Preferences{}
	if err := c.do(ctx, http.MethodGet, "/account/prefs", nil, nil, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (c *AppwriteClient) CreateRecovery(ctx context.Context, email, redirectURL string) error {
	body := map[string]string{"email": email, "url": redirectURL}
	return c.do(ctx, http.MethodPost, "/account/recovery", nil, body, nil)
}

func (c *AppwriteClient) UpdateRecovery(ctx context.Context, userID, secret, newPassword string) error {
	body := map[string]string{"userId": userID, "secret": secret, "password": newPassword}
	return c.do(ctx, http.MethodPut, "/account/recovery", nil, body, nil)
}

func (c *AppwriteClient) CreateVerification(ctx context.Context, redirectURL string) error {
	body := map[string]string{"url": redirectURL}
	return c.do(ctx, http.MethodPost, "/account/verification", nil, body, nil)
}

func (c *AppwriteClient) UpdateVerification(ctx context.Context, userID, secret string) error {
	body := map[string]string{"userId": userID, "secret": secret}
	return c.do(ctx, http.MethodPut, "/account/verification", nil, body, nil)
}

func (c *AppwriteClient) CreateJWT(ctx context.Context) (string, error) {
	var out struct {
		JWT string `json:"jwt"`
	}
	if err := c.do(ctx, http.MethodPost, "/account/jwts", nil, nil, &out); err != nil {
		return "", err
	}
	c.mu.Lock()
	c.jwt = out.JWT
	c.mu.Unlock()
	return out.JWT, nil
}

// --- DocumentStore ---

func (c *AppwriteClient) documentsPath(databaseID, collectionID string) string {
	return "/databases/" + databaseID + "/collections/" + collectionID + "/documents"
}

func (c *AppwriteClient) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (RawDocument, error) {
	body := map[string]any{"documentId": documentID, "data": data}
	var doc RawDocument
	if err := c.do(ctx, http.MethodPost, c.documentsPath(databaseID, collectionID), nil, body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *AppwriteClient) GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (RawDocument, error) {
	var doc RawDocument
	if err := c.do(ctx, http.MethodGet, c.documentsPath(databaseID, collectionID)+"/"+documentID, nil, nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *AppwriteClient) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (*DocumentList, error) {
	q := url.Values{}
	for _, query := range queries {
		q.Add("queries[]", query)
	}
	list := &DocumentList{}
	if err := c.do(ctx, http.MethodGet, c.documentsPath(databaseID, collectionID), q, nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *AppwriteClient) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (RawDocument, error) {
	body := map[string]any{"data": data}
	var doc RawDocument
	if err := c.do(ctx, http.MethodPatch, c.documentsPath(databaseID, collectionID)+"/"+documentID, nil, body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *AppwriteClient) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	return c.do(ctx, http.MethodDelete, c.documentsPath(databaseID, collectionID)+"/"+documentID, nil, nil, nil)
}

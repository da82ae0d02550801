package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"creatorum.org/internal/adminauth"
	"creatorum.org/internal/waitlist"
)

type apiClient struct {
	baseURL string
	client  *http.Client
	auth    *adminauth.Service
	t       *testing.T
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()

	authSvc := adminauth.NewService()
	if err := authSvc.SeedDefault(); err != nil {
		t.Fatalf("seed default admin: %v", err)
	}

	api := New(ReadyProbe{}, "test", authSvc, waitlist.NewInMemory())
	api.rateBurst = 1000
	api.ratePerSec = 1000

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{
		baseURL: srv.URL,
		client:  srv.Client(),
		auth:    authSvc,
		t:       t,
	}
}

func (c *apiClient) post(path string, body any, headers map[string]string) *http.Response {
	c.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}

func (c *apiClient) get(path string, params url.Values, headers map[string]string) *http.Response {
	c.t.Helper()
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		c.t.Fatalf("parse url: %v", err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("get request: %v", err)
	}
	return resp
}

// obtainToken logs in with the seeded bootstrap account.
func (c *apiClient) obtainToken() string {
	c.t.Helper()
	boot := c.auth.BootstrapCredentials()
	resp := c.post("/v1/admin/login", map[string]any{
		"email":    boot.Email,
		"password": boot.Password,
	}, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("unexpected login status: %d", resp.StatusCode)
	}
	var payload adminLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.t.Fatalf("decode login response: %v", err)
	}
	if payload.Token == "" {
		c.t.Fatalf("empty token issued")
	}
	return payload.Token
}

func decode[T any](t *testing.T, r *http.Response) T {
	t.Helper()
	defer r.Body.Close()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestAdminSignupLoginVerifyFlow(t *testing.T) {
	api := newTestAPI(t)
	invite := api.auth.BootstrapCredentials().InviteCode

	// Signup normalizes the email.
	resp := api.post("/v1/admin/signup", map[string]any{
		"email":       "Admin@Foo.com ",
		"password":    "longenough1",
		"invite_code": invite,
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected signup status: %d", resp.StatusCode)
	}
	created := decode[map[string]map[string]any](t, resp)
	if created["admin"]["email"] != "admin@foo.com" {
		t.Fatalf("expected normalized email, got %v", created["admin"]["email"])
	}

	// Login returns a bearer token usable on /v1/admin/me.
	resp = api.post("/v1/admin/login", map[string]any{
		"email":    "admin@foo.com",
		"password": "longenough1",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", resp.StatusCode)
	}
	login := decode[adminLoginResponse](t, resp)

	resp = api.get("/v1/admin/me", nil, map[string]string{"Authorization": "Bearer " + login.Token})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected me status: %d", resp.StatusCode)
	}
	me := decode[map[string]map[string]any](t, resp)
	if me["admin"]["email"] != "admin@foo.com" {
		t.Fatalf("unexpected me email: %v", me["admin"]["email"])
	}

	// Wrong password is a generic 401.
	resp = api.post("/v1/admin/login", map[string]any{
		"email":    "admin@foo.com",
		"password": "wrong",
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdminSignupRejections(t *testing.T) {
	api := newTestAPI(t)
	invite := api.auth.BootstrapCredentials().InviteCode

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"bad invite", map[string]any{"email": "a@b.co", "password": "longenough1", "invite_code": "nope"}, http.StatusForbidden},
		{"bad email", map[string]any{"email": "nope", "password": "longenough1", "invite_code": invite}, http.StatusBadRequest},
		{"weak password", map[string]any{"email": "a@b.co", "password": "short", "invite_code": invite}, http.StatusBadRequest},
		{"missing fields", map[string]any{"email": "a@b.co"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := api.post("/v1/admin/signup", tc.body, nil)
			resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}

	// The invite failure above must not have created the account.
	resp := api.post("/v1/admin/signup", map[string]any{
		"email": "a@b.co", "password": "longenough1", "invite_code": invite,
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 after earlier rejections, got %d", resp.StatusCode)
	}

	// And a second valid signup for the same address conflicts.
	resp = api.post("/v1/admin/signup", map[string]any{
		"email": "A@B.CO", "password": "longenough1", "invite_code": invite,
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/v1/admin/me", "/v1/admin/waitlist", "/v1/admin/waitlist/count"} {
		resp := api.get(path, nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s without token: expected 401, got %d", path, resp.StatusCode)
		}
		body := decode[map[string]any](t, resp)
		if body["error"] == "" {
			t.Fatalf("%s: expected error message", path)
		}
	}

	resp := api.get("/v1/admin/me", nil, map[string]string{"Authorization": "Bearer not.a.token"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", resp.StatusCode)
	}
}

func TestWaitlistFlow(t *testing.T) {
	api := newTestAPI(t)

	resp := api.post("/v1/waitlist", map[string]any{
		"full_name": "Ada Lovelace",
		"email":     "ada@example.com",
		"role":      "Creator",
		"goals":     []string{"find brand deals", "growing as a creator"},
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected create status: %d", resp.StatusCode)
	}
	created := decode[map[string]map[string]any](t, resp)
	if created["entry"]["email"] != "ada@example.com" {
		t.Fatalf("unexpected entry email: %v", created["entry"]["email"])
	}

	// Same email again conflicts.
	resp = api.post("/v1/waitlist", map[string]any{
		"full_name": "Ada Again",
		"email":     "ADA@example.com ",
		"role":      "Brand",
		"goals":     "growing as a creator",
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	// Malformed bodies are 400.
	resp = api.post("/v1/waitlist", map[string]any{
		"full_name": "No Goals",
		"email":     "none@example.com",
		"role":      "Creator",
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	resp = api.get("/v1/waitlist", url.Values{"limit": []string{"10"}}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected list status: %d", resp.StatusCode)
	}
	page := decode[listWaitlistResponse](t, resp)
	if len(page.Entries) != 1 || page.Limit != 10 {
		t.Fatalf("unexpected page: %+v", page)
	}

	resp = api.get("/v1/waitlist/count", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected count status: %d", resp.StatusCode)
	}
	count := decode[map[string]any](t, resp)
	if count["count"].(float64) != 1 {
		t.Fatalf("unexpected count: %v", count["count"])
	}

	// The admin view of the waitlist needs a token.
	token := api.obtainToken()
	resp = api.get("/v1/admin/waitlist", nil, map[string]string{"Authorization": "Bearer " + token})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected admin list status: %d", resp.StatusCode)
	}
	adminPage := decode[listWaitlistResponse](t, resp)
	if len(adminPage.Entries) != 1 {
		t.Fatalf("unexpected admin page: %+v", adminPage)
	}
}

func TestHealthAndInfo(t *testing.T) {
	api := newTestAPI(t)

	resp := api.get("/healthz", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected healthz status: %d", resp.StatusCode)
	}
	health := decode[map[string]any](t, resp)
	if health["service"] != "creatorum-api" {
		t.Fatalf("unexpected service name: %v", health["service"])
	}

	resp = api.get("/readyz", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected readyz status: %d", resp.StatusCode)
	}
}

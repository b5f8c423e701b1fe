package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/memory"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/services"
)

const testToken = "test-csrf-token"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(t *testing.T) (http.Handler, *services.Vault) {
	t.Helper()

	gw := services.NewGateway(memory.NewCredentialStore(), memory.NewGroupStore())
	vault := services.NewVault(gw)
	require.NoError(t, vault.Reset(context.Background()))

	h, err := NewHandler(vault, discardLogger())
	require.NoError(t, err)
	return h.Routes(), vault
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	form.Set(csrfFormField, testToken)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testToken})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewHandler_RequiresVault(t *testing.T) {
	_, err := NewHandler(nil, nil)
	assert.Error(t, err)
}

func TestRoutes_RedirectToMenu(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, path := range []string{"/", "/home", "/index", "/default", "/index.html", "/default.html"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, h, path)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/menu", rec.Header().Get("Location"))
		})
	}
}

func TestRoutes_Health(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRoutes_Menu(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(t, h, "/menu")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Display All Groups")
	assert.Contains(t, body, "Join Two Groups")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestRoutes_ListGroups(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(t, h, "/groups")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, name := range []string{"All", "Financial", "Social"} {
		assert.Contains(t, rec.Body.String(), name)
	}
}

func TestRoutes_PrintGroup(t *testing.T) {
	h, _ := newTestHandler(t)

	t.Run("members without passwords", func(t *testing.T) {
		rec := get(t, h, "/groups/print?name=social")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Reddit: dudeguy")
		assert.Contains(t, body, "Facebook: budpal")
		assert.Contains(t, body, "phone alert")
		assert.NotContains(t, body, domain.SeedPassword)
	})

	t.Run("missing group", func(t *testing.T) {
		rec := get(t, h, "/groups/print?name=nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no name shows selector", func(t *testing.T) {
		rec := get(t, h, "/groups/print")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<select name="name">`)
	})
}

func TestRoutes_ListCredentials(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(t, h, "/credentials")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bank 2: dudeguy")
	assert.NotContains(t, rec.Body.String(), domain.SeedPassword)
}

func TestRoutes_FormIssuesCSRFCookie(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(t, h, "/groups/new")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, csrfCookieName, cookies[0].Name)
	assert.Len(t, cookies[0].Value, csrfTokenBytes*2)
	assert.Contains(t, rec.Body.String(), cookies[0].Value)
}

func TestRoutes_RejectsMissingCSRF(t *testing.T) {
	h, vault := newTestHandler(t)

	form := url.Values{"name": {"Work"}, "security": {"5"}}
	req := httptest.NewRequest(http.MethodPost, "/groups/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	_, err := vault.GetGroup(context.Background(), "Work")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoutes_CreateGroup(t *testing.T) {
	h, vault := newTestHandler(t)

	rec := post(t, h, "/groups/new", url.Values{"name": {"work"}, "security": {"5"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Work")

	g, err := vault.GetGroup(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, 5, g.SecurityFactor)

	tests := []struct {
		name   string
		form   url.Values
		status int
	}{
		{"duplicate", url.Values{"name": {"WORK"}, "security": {"3"}}, http.StatusConflict},
		{"not a number", url.Values{"name": {"Games"}, "security": {"abc"}}, http.StatusBadRequest},
		{"out of range", url.Values{"name": {"Games"}, "security": {"11"}}, http.StatusBadRequest},
		{"empty name", url.Values{"name": {" "}, "security": {"2"}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/groups/new", tt.form)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRoutes_DeleteGroup(t *testing.T) {
	h, vault := newTestHandler(t)
	ctx := context.Background()

	rec := post(t, h, "/groups/delete", url.Values{"name": {"Social"}})
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := vault.GetGroup(ctx, "Social")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	creds, err := vault.ListCredentials(ctx)
	require.NoError(t, err)
	assert.Len(t, creds, 5)

	rec = post(t, h, "/groups/delete", url.Values{"name": {"Social"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_UnionGroups(t *testing.T) {
	h, vault := newTestHandler(t)

	rec := post(t, h, "/groups/union", url.Values{"first": {"Social"}, "second": {"Financial"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Social/Financial")
	assert.Contains(t, rec.Body.String(), "Security level 10")

	g, err := vault.GetGroup(context.Background(), "social/financial")
	require.NoError(t, err)
	assert.Equal(t, 5, g.Len())

	rec = post(t, h, "/groups/union", url.Values{"first": {"Social"}, "second": {"Financial"}})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRoutes_CreateCredential(t *testing.T) {
	h, vault := newTestHandler(t)
	ctx := context.Background()

	t.Run("two-factor", func(t *testing.T) {
		rec := post(t, h, "/credentials/new", url.Values{
			"group":     {"Financial"},
			"site":      {"bank 3"},
			"url":       {"www.bank3.com"},
			"username":  {"dudeguy"},
			"password":  {"s3cret"},
			"confirm":   {"s3cret"},
			"method":    {"phone app"},
			"auth_info": {"pin"},
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		c, err := vault.GetCredential(ctx, "Bank 3: dudeguy")
		require.NoError(t, err)
		assert.True(t, c.IsTwoFactor())
		assert.Equal(t, "pin", c.AuthInfo())
		assert.NotEmpty(t, c.LastChanged())

		all, err := vault.GetGroup(ctx, "All")
		require.NoError(t, err)
		assert.Equal(t, 6, all.Len())
	})

	tests := []struct {
		name   string
		form   url.Values
		status int
	}{
		{
			name:   "duplicate",
			form:   url.Values{"group": {"Social"}, "site": {"reddit"}, "url": {"www.reddit.com"}, "username": {"dudeguy"}, "password": {"x"}, "confirm": {"x"}},
			status: http.StatusConflict,
		},
		{
			name:   "password mismatch",
			form:   url.Values{"group": {"Social"}, "site": {"Mastodon"}, "username": {"me"}, "password": {"x"}, "confirm": {"y"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown group",
			form:   url.Values{"group": {"Games"}, "site": {"Steam"}, "url": {"store.steampowered.com"}, "username": {"me"}, "password": {"x"}, "confirm": {"x"}},
			status: http.StatusNotFound,
		},
		{
			name:   "missing username",
			form:   url.Values{"group": {"Social"}, "site": {"Steam"}, "url": {"store.steampowered.com"}, "password": {"x"}, "confirm": {"x"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing url",
			form:   url.Values{"group": {"Social"}, "site": {"Steam"}, "url": {""}, "username": {"me"}, "password": {"x"}, "confirm": {"x"}},
			status: http.StatusBadRequest,
		},
		{
			name: "method without auth info",
			form: url.Values{"group": {"Social"}, "site": {"Steam"}, "url": {"store.steampowered.com"}, "username": {"me"},
				"password": {"x"}, "confirm": {"x"}, "method": {"phone app"}, "auth_info": {""}},
			status: http.StatusBadRequest,
		},
		{
			name: "auth info without method",
			form: url.Values{"group": {"Social"}, "site": {"Steam"}, "url": {"store.steampowered.com"}, "username": {"me"},
				"password": {"x"}, "confirm": {"x"}, "auth_info": {"pin"}},
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/credentials/new", tt.form)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	_, err := vault.GetCredential(ctx, "Steam: me")
	assert.ErrorIs(t, err, domain.ErrNotFound, "rejected forms store nothing")
}

func TestRoutes_RemoveCredential(t *testing.T) {
	h, vault := newTestHandler(t)
	ctx := context.Background()

	rec := post(t, h, "/credentials/remove", url.Values{"group": {"Social"}, "key": {"Reddit: budpal"}})
	require.Equal(t, http.StatusOK, rec.Code)

	g, err := vault.GetGroup(ctx, "Social")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	rec = post(t, h, "/credentials/remove", url.Values{"group": {"Social"}, "key": {"Reddit: budpal"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_ChangePassword(t *testing.T) {
	h, vault := newTestHandler(t)

	rec := post(t, h, "/credentials/password", url.Values{
		"key": {"Bank 1: dudeguy"}, "password": {"n3w"}, "confirm": {"n3w"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "n3w")

	c, err := vault.GetCredential(context.Background(), "Bank 1: dudeguy")
	require.NoError(t, err)
	assert.Equal(t, "n3w", c.Password())

	rec = post(t, h, "/credentials/password", url.Values{
		"key": {"Bank 1: dudeguy"}, "password": {"a"}, "confirm": {"b"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, "/credentials/password", url.Values{
		"key": {"Nowhere: nobody"}, "password": {"a"}, "confirm": {"a"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", domain.ErrAlreadyExists), http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrDanglingReference), http.StatusInternalServerError},
		{errors.New("store down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorStatus(tt.err), tt.err.Error())
	}
}

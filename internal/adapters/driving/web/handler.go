// Package web serves the password manager as HTML forms.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
)

// pageNames lists every content template; each is parsed with layout.html.
var pageNames = []string{
	"menu",
	"groups",
	"group",
	"group_select",
	"group_new",
	"group_delete",
	"group_union",
	"credentials",
	"credential_new",
	"credential_remove",
	"credential_password",
	"result",
	"error",
}

// Handler serves the browser front end over a vault.
type Handler struct {
	vault  driving.VaultService
	logger *slog.Logger
	pages  map[string]*template.Template
}

// NewHandler parses the page templates and returns a handler over vault.
func NewHandler(vault driving.VaultService, logger *slog.Logger) (*Handler, error) {
	if vault == nil {
		return nil, errors.New("web: vault is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Handler{vault: vault, logger: logger, pages: pages}, nil
}

// credentialView is the display shape of a credential. Passwords are
// never rendered.
type credentialView struct {
	Key         string
	URL         string
	LastChanged string
	TwoFactor   bool
	Method      string
	AuthInfo    string
}

type groupView struct {
	Name           string
	SecurityFactor int
	Count          int
	Members        []credentialView
}

type pageData struct {
	Title       string
	CSRF        string
	Message     string
	Groups      []groupView
	Group       *groupView
	Credentials []credentialView
}

func newCredentialView(c *domain.Credential) credentialView {
	return credentialView{
		Key:         c.Key(),
		URL:         c.URL(),
		LastChanged: c.LastChanged(),
		TwoFactor:   c.IsTwoFactor(),
		Method:      c.Method(),
		AuthInfo:    c.AuthInfo(),
	}
}

func newCredentialViews(creds []*domain.Credential) []credentialView {
	out := make([]credentialView, len(creds))
	for i, c := range creds {
		out[i] = newCredentialView(c)
	}
	return out
}

func newGroupView(g *domain.Group) groupView {
	return groupView{
		Name:           g.Name,
		SecurityFactor: g.SecurityFactor,
		Count:          g.Len(),
		Members:        newCredentialViews(g.Members()),
	}
}

func newGroupViews(groups []*domain.Group) []groupView {
	out := make([]groupView, len(groups))
	for i, g := range groups {
		out[i] = newGroupView(g)
	}
	return out
}

// render executes the named page into a buffer so a template failure can
// still produce a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	t, ok := h.pages[name]
	if !ok {
		h.logger.Error("unknown page", "page", name, "request_id", RequestID(r.Context()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("rendering page", "page", name, "error", err, "request_id", RequestID(r.Context()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// errorStatus maps a vault error onto an HTTP status.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// renderError shows err to the user. Server-side failures are logged and
// replaced by a generic message.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
		msg = "Something went wrong. Please try again."
	}
	h.renderMessage(w, r, status, "error", "Error", msg)
}

func (h *Handler) renderMessage(w http.ResponseWriter, r *http.Request, status int, page, title, msg string) {
	h.render(w, r, status, page, pageData{Title: title, Message: msg})
}

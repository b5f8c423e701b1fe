package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

var errPasswordMismatch = fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)

// checkForm parses the posted form and verifies its CSRF token.
func (h *Handler) checkForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.renderMessage(w, r, http.StatusBadRequest, "error", "Error", "The form could not be read.")
		return false
	}
	if !validateCSRF(r) {
		h.logger.Warn("csrf validation failed", "path", r.URL.Path, "request_id", RequestID(r.Context()))
		h.renderMessage(w, r, http.StatusForbidden, "error", "Error", "The form has expired. Please reload the page and try again.")
		return false
	}
	return true
}

// formPage renders a form pre-filled with the current groups and credentials.
func (h *Handler) formPage(w http.ResponseWriter, r *http.Request, page, title string) {
	groups, err := h.vault.ListGroups(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	creds, err := h.vault.ListCredentials(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, page, pageData{
		Title:       title,
		CSRF:        csrfToken(w, r),
		Groups:      newGroupViews(groups),
		Credentials: newCredentialViews(creds),
	})
}

func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "menu", pageData{Title: "Password Manager"})
}

func (h *Handler) handleRedirectMenu(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/menu", http.StatusFound)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.vault.ListGroups(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "groups", pageData{Title: "Groups", Groups: newGroupViews(groups)})
}

func (h *Handler) handlePrintGroup(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		h.formPage(w, r, "group_select", "Print a Group")
		return
	}

	g, err := h.vault.GetGroup(r.Context(), name)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	view := newGroupView(g)
	h.render(w, r, http.StatusOK, "group", pageData{Title: g.Name, Group: &view})
}

func (h *Handler) handleNewGroupForm(w http.ResponseWriter, r *http.Request) {
	h.formPage(w, r, "group_new", "Create New Group")
}

func (h *Handler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	if !h.checkForm(w, r) {
		return
	}

	security, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("security")))
	if err != nil {
		h.renderError(w, r, fmt.Errorf("%w: security level must be a whole number", domain.ErrInvalidInput))
		return
	}

	g, err := h.vault.CreateGroup(r.Context(), r.PostFormValue("name"), security)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderMessage(w, r, http.StatusCreated, "result", "Group Created",
		fmt.Sprintf("Group '%s' created with security level %d.", g.Name, g.SecurityFactor))
}

func (h *Handler) handleDeleteGroupForm(w http.ResponseWriter, r *http.Request) {
	h.formPage(w, r, "group_delete", "Delete Group")
}

func (h *Handler) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if !h.checkForm(w, r) {
		return
	}

	name := r.PostFormValue("name")
	if err := h.vault.DeleteGroup(r.Context(), name); err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderMessage(w, r, http.StatusOK, "result", "Group Deleted",
		fmt.Sprintf("Group '%s' deleted.", name))
}

func (h *Handler) handleUnionForm(w http.ResponseWriter, r *http.Request) {
	h.formPage(w, r, "group_union", "Join Two Groups")
}

func (h *Handler) handleUnion(w http.ResponseWriter, r *http.Request) {
	if !h.checkForm(w, r) {
		return
	}

	g, err := h.vault.UnionGroups(r.Context(), r.PostFormValue("first"), r.PostFormValue("second"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	view := newGroupView(g)
	h.render(w, r, http.StatusCreated, "group", pageData{Title: g.Name, Group: &view})
}

func (h *Handler) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.vault.ListCredentials(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "credentials", pageData{
		Title:       "Credentials",
		Credentials: newCredentialViews(creds),
	})
}

func (h *Handler) handleNewCredentialForm(w http.ResponseWriter, r *http.Request) {
	h.formPage(w, r, "credential_new", "Create New Credential")
}

func (h *Handler) handleCreateCredential(w http.ResponseWriter, r *http.Request) {
	if !h.checkForm(w, r) {
		return
	}

	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirm") {
		h.renderError(w, r, errPasswordMismatch)
		return
	}

	site := strings.TrimSpace(r.PostFormValue("site"))
	url := strings.TrimSpace(r.PostFormValue("url"))
	username := strings.TrimSpace(r.PostFormValue("username"))
	method := strings.TrimSpace(r.PostFormValue("method"))
	authInfo := strings.TrimSpace(r.PostFormValue("auth_info"))

	var cred *domain.Credential
	if method != "" || authInfo != "" {
		cred = domain.NewTwoFactorCredential(site, url, username, password, "", method, authInfo)
	} else {
		cred = domain.NewCredential(site, url, username, password, "")
	}

	group := r.PostFormValue("group")
	c, err := h.vault.AddCredential(r.Context(), group, cred)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderMessage(w, r, http.StatusCreated, "result", "Credential Created",
		fmt.Sprintf("Added '%s' to group '%s'.", c.Key(), group))
}

func (h *Handler) handleRemoveCredentialForm(w http.ResponseWriter, r *http.Request) {
	h.formPage(w, r, "credential_remove", "Remove Credential From a Group")
}

func (h *Handler) handleRemoveCredential(w http.ResponseWriter, r *http.Request) {
	if !h.checkForm(w, r) {
		return
	}

	group, key := r.PostFormValue("group"), r.PostFormValue("key")
	if err := h.vault.RemoveFromGroup(r.Context(), group, key); err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderMessage(w, r, http.StatusOK, "result", "Credential Removed",
		fmt.Sprintf("Removed '%s' from group '%s'.", key, group))
}

func (h *Handler) handlePasswordForm(w http.ResponseWriter, r *http.Request) {
	h.formPage(w, r, "credential_password", "Change Password")
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if !h.checkForm(w, r) {
		return
	}

	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirm") {
		h.renderError(w, r, errPasswordMismatch)
		return
	}

	c, err := h.vault.ChangePassword(r.Context(), r.PostFormValue("key"), password)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderMessage(w, r, http.StatusOK, "result", "Password Changed",
		fmt.Sprintf("Password for '%s' changed on %s.", c.Key(), c.LastChanged()))
}

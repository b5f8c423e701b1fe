package web

import "net/http"

// RegisterRoutes registers every page on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)

	mux.HandleFunc("GET /{$}", h.handleRedirectMenu)
	for _, alias := range []string{"/home", "/index", "/default", "/index.html", "/default.html"} {
		mux.HandleFunc("GET "+alias, h.handleRedirectMenu)
	}
	mux.HandleFunc("GET /menu", h.handleMenu)

	mux.HandleFunc("GET /groups", h.handleListGroups)
	mux.HandleFunc("GET /groups/print", h.handlePrintGroup)
	mux.HandleFunc("GET /groups/new", h.handleNewGroupForm)
	mux.HandleFunc("POST /groups/new", h.handleCreateGroup)
	mux.HandleFunc("GET /groups/delete", h.handleDeleteGroupForm)
	mux.HandleFunc("POST /groups/delete", h.handleDeleteGroup)
	mux.HandleFunc("GET /groups/union", h.handleUnionForm)
	mux.HandleFunc("POST /groups/union", h.handleUnion)

	mux.HandleFunc("GET /credentials", h.handleListCredentials)
	mux.HandleFunc("GET /credentials/new", h.handleNewCredentialForm)
	mux.HandleFunc("POST /credentials/new", h.handleCreateCredential)
	mux.HandleFunc("GET /credentials/remove", h.handleRemoveCredentialForm)
	mux.HandleFunc("POST /credentials/remove", h.handleRemoveCredential)
	mux.HandleFunc("GET /credentials/password", h.handlePasswordForm)
	mux.HandleFunc("POST /credentials/password", h.handleChangePassword)
}

// Routes returns a mux with every page registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

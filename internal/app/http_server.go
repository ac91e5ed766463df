// Package app wires HTTP, the control websocket, and keyboard state together.
package app

import (
	"encoding/json"
	"net/http"

	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/layouts"
)

// RegisterRoutes wires the API and websocket handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/layouts", a.handleLayouts)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	Held             []keyboard.SpecialKey `json:"held"`
	CapsLock         bool                  `json:"capsLock"`
	Layout           string                `json:"layout"`
	InputEnabled     bool                  `json:"inputEnabled"`
	ActionsPerformed int64                 `json:"actionsPerformed"`
	Authenticated    bool                  `json:"authenticated"`
}

type layoutsResponse struct {
	Presets   []layouts.Preset `json:"presets"`
	Installed []string         `json:"installed"`
	Active    string           `json:"active"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		a.logger.Warn("login rejected", "remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// handleLogout clears authentication state and lifts held keys.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	if err := a.control.ReleaseAll(); err != nil {
		a.logger.Error("release held keys on logout", "error", err)
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// handleState returns the session and keyboard state.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !a.requireAuth(w) {
		return
	}
	snap := a.session.Snapshot()
	state := a.control.State()
	writeJSON(w, stateResponse{
		Held:             state.Held,
		CapsLock:         state.CapsLock,
		Layout:           state.Layout,
		InputEnabled:     snap.InputEnabled,
		ActionsPerformed: a.ActionsPerformed(),
		Authenticated:    snap.Authenticated,
	})
}

// handleLayouts returns the configured presets and the installed layouts.
func (a *App) handleLayouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !a.requireAuth(w) {
		return
	}
	installed, err := a.control.InstalledLayouts()
	if err != nil {
		a.logger.Error("list keyboard layouts", "error", err)
		http.Error(w, "failed to list layouts", http.StatusInternalServerError)
		return
	}
	resp := layoutsResponse{
		Presets:   layouts.Sorted(a.presets),
		Installed: make([]string, 0, len(installed)),
		Active:    a.control.State().Layout,
	}
	for _, l := range installed {
		resp.Installed = append(resp.Installed, l.String())
	}
	writeJSON(w, resp)
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

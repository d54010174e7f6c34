package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dubemernest23/akuko/database"
	"github.com/Dubemernest23/akuko/errs"
	"github.com/Dubemernest23/akuko/metrics"
	"github.com/Dubemernest23/akuko/session"
)

type adminHandler struct {
	responder  Responder
	logger     zerolog.Logger
	adminRepo  *database.AdminRepo
	sessions   *session.Manager
	production bool
}

func newAdminHandler(db database.Database, sessions *session.Manager, development bool) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:  NewResponder(logger, development),
		logger:     logger,
		adminRepo:  db.AdminRepo(),
		sessions:   sessions,
		production: !development,
	}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login verifies the credentials against the stored bcrypt hash and issues
// a session cookie. Wrong username and wrong password are indistinguishable
// to the client.
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if payload.Username == "" || payload.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("username and password are required"))
			return
		}

		admin, err := h.adminRepo.FindByUsername(r.Context(), payload.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find admin", "admin", err))
			return
		}
		if admin == nil {
			metrics.IncLogin("failure")
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.Password)); err != nil {
			metrics.IncLogin("failure")
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		token, err := h.sessions.Create(r.Context(), admin.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.adminRepo.TouchLastLogin(r.Context(), admin.ID); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to record last login")
		}
		metrics.IncLogin("success")

		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.production,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(h.sessions.TTL().Seconds()),
		})

		h.responder.WriteJSON(w, map[string]string{
			"status":   "success",
			"username": admin.Username,
		})
	}
}

// logout destroys the session behind the cookie and expires it.
func (h adminHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
			if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
				h.logger.Warn().Err(err).Msg("Failed to destroy session")
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   h.production,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Dubemernest23/akuko/database"
	"github.com/Dubemernest23/akuko/errs"
	"github.com/Dubemernest23/akuko/metrics"
	"github.com/Dubemernest23/akuko/models"
	"github.com/Dubemernest23/akuko/services"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	postRepo    *database.PostRepo
	notifier    *services.Notifier
}

func newCommentHandler(db database.Database, notifier *services.Notifier, development bool) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger, development),
		logger:      logger,
		commentRepo: db.CommentRepo(),
		postRepo:    db.PostRepo(),
		notifier:    notifier,
	}
}

// commentPayload is the public comment submission body.
type commentPayload struct {
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
	Email      string `json:"email"`
	Website    string `json:"website"`
}

// createComment accepts a comment on a published post. The comment enters
// the moderation queue as pending and the operator is mailed best-effort.
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		post, err := h.postRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if post == nil || !post.IsPublished() {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		var payload commentPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		comment := models.Comment{
			PostID:     post.ID,
			AuthorName: payload.AuthorName,
			Content:    payload.Content,
			Email:      payload.Email,
			Website:    payload.Website,
			IPAddress:  clientIP(r),
		}

		if err := h.commentRepo.Add(r.Context(), &comment); err != nil {
			metrics.IncComment("rejected")
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}
		metrics.IncComment("accepted")

		// The comment is stored; a failed notification only costs the mail.
		if err := h.notifier.NotifyNewComment(&comment, post.Title); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to send comment notification")
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, comment)
	}
}

// listComments lists comments for moderation, optionally filtered by
// ?status=pending|approved|spam. Admin only.
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		switch status {
		case "", models.CommentStatusPending, models.CommentStatusApproved, models.CommentStatusSpam:
		default:
			h.responder.WriteError(w, errs.NewBadRequestError("invalid status filter"))
			return
		}

		comments, err := h.commentRepo.FindByStatus(r.Context(), status)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"comments": comments,
			"total":    len(comments),
		})
	}
}

// moderateComment approves a pending comment or marks it as spam.
func (h commentHandler) moderateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, ok := h.commentID(w, r)
		if !ok {
			return
		}

		var payload struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.commentRepo.SetStatus(r.Context(), commentID, payload.Status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("moderate comment", "comment", err))
			return
		}

		if adminID, err := ctxGetAdminID(r.Context()); err == nil {
			h.logger.Info().
				Str("adminID", adminID.String()).
				Str("commentID", commentID.String()).
				Str("status", payload.Status).
				Msg("Comment moderated")
		}

		comment, err := h.commentRepo.FindByID(r.Context(), commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}
		h.responder.WriteJSON(w, comment)
	}
}

// deleteComment removes a comment outright. Admin only.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, ok := h.commentID(w, r)
		if !ok {
			return
		}

		if err := h.commentRepo.Delete(r.Context(), commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted successfully",
		})
	}
}

func (h commentHandler) commentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "commentID")
	if raw == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing commentID"))
		return uuid.Nil, false
	}
	commentID, err := uuid.Parse(raw)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid commentID"))
		return uuid.Nil, false
	}
	return commentID, true
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Dubemernest23/akuko/database"
	"github.com/Dubemernest23/akuko/errs"
	"github.com/Dubemernest23/akuko/metrics"
	"github.com/Dubemernest23/akuko/models"
)

type postHandler struct {
	responder   Responder
	logger      zerolog.Logger
	postRepo    *database.PostRepo
	commentRepo *database.CommentRepo
	tagRepo     *database.TagRepo
}

func newPostHandler(db database.Database, development bool) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:   NewResponder(logger, development),
		logger:      logger,
		postRepo:    db.PostRepo(),
		commentRepo: db.CommentRepo(),
		tagRepo:     db.TagRepo(),
	}
}

// PostWithComments is the public post page payload.
type PostWithComments struct {
	Post     models.Post       `json:"post"`
	Comments []*models.Comment `json:"comments"`
}

// PostCollection is a paginated list of posts.
type PostCollection struct {
	Posts  []*models.Post `json:"posts"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Total  int            `json:"total"`
}

// postPayload is the admin create/update request body.
type postPayload struct {
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Excerpt       string      `json:"excerpt"`
	FeaturedImage string      `json:"featuredImage"`
	Status        string      `json:"status"`
	TagIDs        []uuid.UUID `json:"tagIds"`
}

// getPublishedPosts lists published posts, newest first, with limit/offset
// pagination (defaults 10/0).
func (h postHandler) getPublishedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 10)
		if err != nil || limit < 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid limit"))
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil || offset < 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid offset"))
			return
		}

		posts, err := h.postRepo.FindPublished(r.Context(), limit, offset)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find published posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, PostCollection{
			Posts:  posts,
			Limit:  limit,
			Offset: offset,
			Total:  len(posts),
		})
	}
}

// getPostBySlug serves a single published post with its approved comments
// and bumps the view counter.
func (h postHandler) getPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.postRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if post == nil || !post.IsPublished() {
			// Unpublished posts are invisible on the public site.
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		// Lost increments would only skew a vanity counter, but the single
		// UPDATE keeps concurrent views exact anyway.
		if err := h.postRepo.IncrementViews(r.Context(), post.ID); err != nil {
			h.logger.Warn().Err(err).Str("slug", slug).Msg("Failed to increment post views")
		} else {
			post.Views++
		}
		metrics.IncPostView()

		comments, err := h.commentRepo.FindApprovedByPost(r.Context(), post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, PostWithComments{Post: *post, Comments: comments})
	}
}

// listAllPosts returns every post including drafts. Admin only.
func (h postHandler) listAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.postRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}
		h.responder.WriteJSON(w, PostCollection{Posts: posts, Total: len(posts)})
	}
}

// createPost creates a post; the slug is generated from the title, never
// taken from the request.
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := h.decodePostPayload(w, r)
		if !ok {
			return
		}

		slug, err := h.postRepo.UniqueSlug(r.Context(), payload.Title)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post := models.Post{
			Title:         payload.Title,
			Slug:          slug,
			Content:       payload.Content,
			Excerpt:       payload.Excerpt,
			FeaturedImage: payload.FeaturedImage,
			Status:        payload.Status,
		}
		if post.Status == "" {
			post.Status = models.PostStatusDraft
		}

		if err := h.postRepo.Add(r.Context(), &post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create post", "post", err))
			return
		}

		if post.IsPublished() {
			if err := h.postRepo.MarkPublished(r.Context(), &post); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("publish post", "post", err))
				return
			}
		}

		if err := h.attachTags(w, r, &post, payload.TagIDs); err != nil {
			return
		}

		created, err := h.postRepo.FindByID(r.Context(), post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created post", "post", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

// updatePost updates title, content and status. The slug is left alone so
// published URLs stay stable.
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		payload, ok := h.decodePostPayload(w, r)
		if !ok {
			return
		}

		post.Title = payload.Title
		post.Content = payload.Content
		post.Excerpt = payload.Excerpt
		post.FeaturedImage = payload.FeaturedImage
		if payload.Status != "" {
			post.Status = payload.Status
		}

		if post.IsPublished() && post.PublishedAt == nil {
			if err := h.postRepo.MarkPublished(r.Context(), post); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("publish post", "post", err))
				return
			}
		} else if err := h.postRepo.Update(r.Context(), post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update post", "post", err))
			return
		}

		if payload.TagIDs != nil {
			if err := h.attachTags(w, r, post, payload.TagIDs); err != nil {
				return
			}
		}

		updated, err := h.postRepo.FindByID(r.Context(), post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated post", "post", err))
			return
		}
		h.responder.WriteJSON(w, updated)
	}
}

// publishPost flips a draft or archived post to published.
func (h postHandler) publishPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		if err := h.postRepo.MarkPublished(r.Context(), post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("publish post", "post", err))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// deletePost removes a post and, through the FK cascade, its comments.
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		if err := h.postRepo.Delete(r.Context(), post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete post", "post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "post deleted successfully",
		})
	}
}

// replaceTags swaps a post's tag set.
func (h postHandler) replaceTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.loadPost(w, r)
		if !ok {
			return
		}

		var payload struct {
			TagIDs []uuid.UUID `json:"tagIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.attachTags(w, r, post, payload.TagIDs); err != nil {
			return
		}

		updated, err := h.postRepo.FindByID(r.Context(), post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated post", "post", err))
			return
		}
		h.responder.WriteJSON(w, updated)
	}
}

// loadPost resolves the postID path parameter. On failure the response is
// already written and ok is false.
func (h postHandler) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	postIDStr := chi.URLParam(r, "postID")
	if postIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing postID"))
		return nil, false
	}

	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
		return nil, false
	}

	post, err := h.postRepo.FindByID(r.Context(), postID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
		return nil, false
	}
	if post == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
		return nil, false
	}
	return post, true
}

func (h postHandler) decodePostPayload(w http.ResponseWriter, r *http.Request) (postPayload, bool) {
	var payload postPayload

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
		return payload, false
	}

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&payload); err != nil {
		h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode post request body")
		h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
		return payload, false
	}

	if payload.Title == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("title is required"))
		return payload, false
	}
	if payload.Content == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("content is required"))
		return payload, false
	}
	return payload, true
}

// attachTags resolves tag IDs and replaces the post's tag set. A response is
// written on failure.
func (h postHandler) attachTags(w http.ResponseWriter, r *http.Request, post *models.Post, tagIDs []uuid.UUID) error {
	if tagIDs == nil {
		return nil
	}

	tags := make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tag, err := h.tagRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return err
		}
		if tag == nil {
			err := errs.NewBadRequestError("unknown tag " + id.String())
			h.responder.WriteError(w, err)
			return err
		}
		tags = append(tags, *tag)
	}

	if err := h.postRepo.ReplaceTags(r.Context(), post, tags); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("replace post tags", "post", err))
		return err
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

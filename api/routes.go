package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes wires the public site, the admin area and the operational
// endpoints. Everything under /admin except login requires a live session.
func setupRoutes(r chi.Router, handlers *routeHandlers, sessions sessionMiddleware, rdb *redis.Client, responder Responder) {
	r.Get("/health-check", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Health check completed!!!"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public site
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/posts", handlers.postHandler.getPublishedPosts())
		r.Get("/posts/{slug}", handlers.postHandler.getPostBySlug())
		r.Post("/posts/{slug}/comments", handlers.commentHandler.createComment())
		r.Get("/tags/{slug}", handlers.tagHandler.getTagBySlug())

		r.With(loginRateLimiter(rdb, responder, 5, time.Minute)).
			Post("/admin/login", handlers.adminHandler.login())
	})

	// Admin area
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(sessions.authenticate)

		r.Post("/admin/logout", handlers.adminHandler.logout())

		r.Get("/admin/posts", handlers.postHandler.listAllPosts())
		r.Post("/admin/posts", handlers.postHandler.createPost())
		r.Put("/admin/posts/{postID}", handlers.postHandler.updatePost())
		r.Post("/admin/posts/{postID}/publish", handlers.postHandler.publishPost())
		r.Put("/admin/posts/{postID}/tags", handlers.postHandler.replaceTags())
		r.Delete("/admin/posts/{postID}", handlers.postHandler.deletePost())

		r.Get("/admin/comments", handlers.commentHandler.listComments())
		r.Put("/admin/comments/{commentID}/status", handlers.commentHandler.moderateComment())
		r.Delete("/admin/comments/{commentID}", handlers.commentHandler.deleteComment())

		r.Get("/admin/tags", handlers.tagHandler.listTags())
		r.Post("/admin/tags", handlers.tagHandler.createTag())
		r.Delete("/admin/tags/{tagID}", handlers.tagHandler.deleteTag())
	})
}

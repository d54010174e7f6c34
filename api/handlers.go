package api

import (
	"github.com/Dubemernest23/akuko/database"
	"github.com/Dubemernest23/akuko/services"
	"github.com/Dubemernest23/akuko/session"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, sessions *session.Manager, notifier *services.Notifier, development bool) *routeHandlers {
	return &routeHandlers{
		postHandler:    newPostHandler(db, development),
		commentHandler: newCommentHandler(db, notifier, development),
		adminHandler:   newAdminHandler(db, sessions, development),
		tagHandler:     newTagHandler(db, development),
	}
}

package routes

import (
	"log/slog"

	"gathr_server/controllers"
	"gathr_server/services"

	"github.com/gorilla/mux"
)

// RegisterGroupRoutes sets up routes for groups, membership and group posts under /api/groups
func RegisterGroupRoutes(r *mux.Router, groupService *services.GroupService, postService *services.PostService, log *slog.Logger) {
	groupController := controllers.NewGroupController(groupService, log)
	postController := controllers.NewPostController(postService, log)

	groupRouter := r.PathPrefix("/groups").Subrouter()
	groupRouter.HandleFunc("", groupController.ListGroups).Methods("GET")
	groupRouter.HandleFunc("", groupController.CreateGroup).Methods("POST")
	groupRouter.HandleFunc("/{id}", groupController.GetGroup).Methods("GET")
	groupRouter.HandleFunc("/{id}", groupController.UpdateGroup).Methods("PUT")
	groupRouter.HandleFunc("/{id}", groupController.DeleteGroup).Methods("DELETE")
	groupRouter.HandleFunc("/{id}/join", groupController.JoinGroup).Methods("POST")
	groupRouter.HandleFunc("/{id}/join", groupController.LeaveGroup).Methods("DELETE")
	groupRouter.HandleFunc("/{id}/posts", postController.ListGroupPosts).Methods("GET")
	groupRouter.HandleFunc("/{id}/posts", postController.CreatePost).Methods("POST")
}

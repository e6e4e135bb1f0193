package routes

import (
	"log/slog"

	"gathr_server/controllers"
	"gathr_server/services"

	"github.com/gorilla/mux"
)

// RegisterPostRoutes sets up routes for likes, comments and personal posts under /api/posts
func RegisterPostRoutes(r *mux.Router, postService *services.PostService, personalPostService *services.PersonalPostService, log *slog.Logger) {
	postController := controllers.NewPostController(postService, log)
	personalController := controllers.NewPersonalPostController(personalPostService, log)

	postRouter := r.PathPrefix("/posts").Subrouter()

	// Personal (profile feed) posts. Registered before the {id} routes so
	// mux does not capture "personal" as a post id.
	postRouter.HandleFunc("/personal", personalController.ListProfileFeed).Methods("GET")
	postRouter.HandleFunc("/personal", personalController.CreatePersonalPost).Methods("POST")
	postRouter.HandleFunc("/personal/{id}/like", personalController.LikePersonalPost).Methods("POST")
	postRouter.HandleFunc("/personal/{id}/like", personalController.UnlikePersonalPost).Methods("DELETE")

	// Group posts
	postRouter.HandleFunc("/{id}", postController.UpdatePost).Methods("PUT")
	postRouter.HandleFunc("/{id}", postController.DeletePost).Methods("DELETE")
	postRouter.HandleFunc("/{id}/like", postController.LikePost).Methods("POST")
	postRouter.HandleFunc("/{id}/like", postController.UnlikePost).Methods("DELETE")
	postRouter.HandleFunc("/{id}/comments", postController.ListComments).Methods("GET")
	postRouter.HandleFunc("/{id}/comments", postController.CreateComment).Methods("POST")
}

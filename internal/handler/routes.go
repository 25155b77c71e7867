package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/signup", h.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout-all", h.LogoutAll).Methods(http.MethodPost)
	api.HandleFunc("/me", h.Me).Methods(http.MethodGet)

	api.HandleFunc("/companies", h.CreateCompany).Methods(http.MethodPost)
	api.HandleFunc("/companies/{id:[0-9]+}/competitions", h.CreateCompetition).Methods(http.MethodPost)

	api.HandleFunc("/competitions", h.ListCompetitions).Methods(http.MethodGet)
	api.HandleFunc("/competitions/all", h.ListAllCompetitions).Methods(http.MethodGet)
	api.HandleFunc("/competitions/bookmark", h.Bookmark).Methods(http.MethodPost)
	api.HandleFunc("/competitions/{id:[0-9]+}/bookmark", h.BookmarkStatus).Methods(http.MethodGet)
	api.HandleFunc("/competitions/{id:[0-9]+}/deliveries", h.SubmitDelivery).Methods(http.MethodPost)
	api.HandleFunc("/competitions/{id:[0-9]+}/deliveries", h.ListCompetitionDeliveries).Methods(http.MethodGet)
	api.HandleFunc("/bookmarks", h.ListBookmarks).Methods(http.MethodGet)

	api.HandleFunc("/deliveries", h.ListMyDeliveries).Methods(http.MethodGet)
	api.HandleFunc("/deliveries/{id:[0-9]+}/status", h.UpdateDeliveryStatus).Methods(http.MethodPatch)

	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts", h.GetFeed).Methods(http.MethodGet)
	api.HandleFunc("/posts/like", h.LikePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}/like", h.LikeStatus).Methods(http.MethodGet)

	api.HandleFunc("/uploads", h.PresignUpload).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

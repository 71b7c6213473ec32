package routes

import (
	"net/http"

	"blog/internal/handlers"
	"blog/internal/middleware"
	"blog/internal/models"
	"blog/internal/web"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Blog         *handlers.BlogHandler
	Comment      *handlers.CommentHandler
	Share        *handlers.ShareHandler
	Feed         *handlers.FeedHandler
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	AdminPost    *handlers.AdminPostHandler
	AdminComment *handlers.AdminCommentHandler
	View         *web.Renderer
}

func InitRoutes(router *mux.Router, h Handlers, jwtSecret string) {
	router.StrictSlash(true)
	router.NotFoundHandler = middleware.RequestID(http.HandlerFunc(h.View.NotFound))

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(h.View.ServerError))
	router.Use(middleware.Logging)
	router.Use(middleware.Metrics)

	// --- Служебные ---
	router.HandleFunc("/healthz", h.Health.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	router.PathPrefix("/static/").Handler(web.Static())

	// --- Админский JSON API ---
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.AdminFastLane)

	posts := admin.PathPrefix("/posts").Subrouter()
	posts.Use(middleware.AnyRole(models.RoleAdmin, models.RoleAuthor))
	posts.HandleFunc("", h.AdminPost.List).Methods(http.MethodGet)
	posts.HandleFunc("", h.AdminPost.Create).Methods(http.MethodPost)
	posts.HandleFunc("/{id:[0-9]+}", h.AdminPost.Get).Methods(http.MethodGet)
	posts.HandleFunc("/{id:[0-9]+}", h.AdminPost.Update).Methods(http.MethodPatch)
	posts.HandleFunc("/{id:[0-9]+}", h.AdminPost.Delete).Methods(http.MethodDelete)
	posts.HandleFunc("/{id:[0-9]+}/status", h.AdminPost.SetStatus).Methods(http.MethodPatch)
	posts.HandleFunc("/{id:[0-9]+}/comments", h.AdminComment.ListForPost).Methods(http.MethodGet)

	comments := admin.PathPrefix("/comments").Subrouter()
	comments.Use(middleware.OnlyRole(models.RoleAdmin))
	comments.HandleFunc("/{id:[0-9]+}", h.AdminComment.SetActive).Methods(http.MethodPatch)
	comments.HandleFunc("/{id:[0-9]+}", h.AdminComment.Delete).Methods(http.MethodDelete)

	// --- Публичная часть блога ---
	router.HandleFunc("/", h.Blog.List).Methods(http.MethodGet)
	router.HandleFunc("/tag/{tag_slug}/", h.Blog.List).Methods(http.MethodGet)
	router.HandleFunc("/search/", h.Blog.Search).Methods(http.MethodGet)
	router.HandleFunc("/feed/", h.Feed.RSS).Methods(http.MethodGet)
	router.HandleFunc("/sitemap.xml", h.Feed.Sitemap).Methods(http.MethodGet)
	router.HandleFunc("/{year:[0-9]{4}}/{month:[0-9]{1,2}}/{day:[0-9]{1,2}}/{slug:[-a-zA-Z0-9_]+}/", h.Blog.Detail).Methods(http.MethodGet)
	router.HandleFunc("/{post_id:[0-9]+}/share/", h.Share.Share).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/{post_id:[0-9]+}/comment/", h.Comment.Create).Methods(http.MethodPost)
}

package routes

import (
	"hrbot/internal/config"
	"hrbot/internal/handlers"
	"hrbot/internal/middleware"
	"hrbot/internal/models"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	nodeHandler *handlers.NodeHandler,
	buttonHandler *handlers.ButtonHandler,
	imageHandler *handlers.ImageHandler,
	hrHandler *handlers.HRRequestHandler,
	importHandler *handlers.ImportHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/login", authHandler.Login).Methods("POST")

	// --- API для бота ---
	v1 := api.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/auth/telegram", authHandler.TelegramAuth).Methods("POST")
	v1.HandleFunc("/nodes/root", nodeHandler.GetRootNode).Methods("GET")
	v1.HandleFunc("/nodes/{id:[0-9]+}", nodeHandler.GetNode).Methods("GET")
	v1.HandleFunc("/hr-request", hrHandler.CreateHRRequest).Methods("POST")
	v1.HandleFunc("/hr-requests", hrHandler.ListHRRequests).Methods("GET")

	// --- Админ-панель: JWT + привилегированная роль ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.Use(middleware.AdminFastLane)
	admin.Use(middleware.AnyRole(models.RoleAdmin, models.RoleManager))

	admin.HandleFunc("/nodes", nodeHandler.CreateNode).Methods("POST")
	admin.HandleFunc("/nodes/{id:[0-9]+}", nodeHandler.UpdateNode).Methods("PATCH")
	admin.HandleFunc("/nodes/{id:[0-9]+}", nodeHandler.DeleteNode).Methods("DELETE")

	admin.HandleFunc("/buttons", buttonHandler.CreateButton).Methods("POST")
	admin.HandleFunc("/buttons/{id:[0-9]+}", buttonHandler.UpdateButton).Methods("PATCH")
	admin.HandleFunc("/buttons/{id:[0-9]+}", buttonHandler.DeleteButton).Methods("DELETE")

	admin.HandleFunc("/images", imageHandler.CreateImage).Methods("POST")
	admin.HandleFunc("/images/{id:[0-9]+}", imageHandler.UpdateImage).Methods("PATCH")
	admin.HandleFunc("/images/{id:[0-9]+}", imageHandler.DeleteImage).Methods("DELETE")

	admin.HandleFunc("/hr-requests", hrHandler.ListAllHRRequests).Methods("GET")
	admin.HandleFunc("/hr-requests/{id:[0-9]+}/answer", hrHandler.AnswerHRRequest).Methods("PATCH")

	admin.HandleFunc("/users/import", importHandler.ImportUsers).Methods("POST")
}

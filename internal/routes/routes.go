package routes

import (
	"github.com/BradenHooton/refusebot/internal/handlers"
	"github.com/BradenHooton/refusebot/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	chatHandler *handlers.ChatHandler,
	statusHandler *handlers.StatusHandler,
	burstConfig middleware.BurstGuardConfig,
) {
	// All endpoints are public; the chat endpoint carries an in-process burst
	// guard in front of the store-backed per-IP attempt limit.
	router.With(middleware.BurstGuardByIP(burstConfig)).Post("/api/chat", chatHandler.HandleChat)
	router.Get("/api/status", statusHandler.GetStatus)
}

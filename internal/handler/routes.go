package handler

import (
	"net/http"

	"github.com/inmodescribe/backend/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	generation *service.GenerationService,
	history *service.HistoryService,
	limiter *service.TokenBucket,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	generateHandler := NewGenerateHandler(generation, limiter)
	historyHandler := NewHistoryHandler(history)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	mux.Handle("POST /api/generate", RequireAuth(auth, http.HandlerFunc(generateHandler.HandleGenerate)))
	mux.Handle("GET /api/history", RequireAuth(auth, http.HandlerFunc(historyHandler.HandleList)))
	mux.Handle("GET /api/history/{id}", RequireAuth(auth, http.HandlerFunc(historyHandler.HandleGet)))
}

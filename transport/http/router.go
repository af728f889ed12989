package http

import (
	"log/slog"

	"github.com/defai/walletgate/service"
	"github.com/gin-gonic/gin"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, vaultService *service.VaultService, logger *slog.Logger) *gin.Engine {
	router := gin.Default()

	handlers := NewHandlers(authService, vaultService, logger)

	// SIWE handshake: these two endpoints are the entry point to auth and
	// take no bearer token.
	router.GET("/nonce", handlers.Nonce)
	router.POST("/verify-signature", handlers.VerifySignature)

	// Session lifecycle
	auth := router.Group("/auth")
	{
		auth.POST("/refresh", handlers.Refresh)
		auth.POST("/logout", handlers.Logout)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/me", handlers.Me)
		api.GET("/vaults", handlers.ListVaults)
		api.POST("/vaults", handlers.CreateVault)
	}

	return router
}

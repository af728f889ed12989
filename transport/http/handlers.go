package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/service"
	"github.com/gin-gonic/gin"
)

// NonceCookie is the cookie carrying the issued nonce. HttpOnly and Secure:
// page script can never read or forge it, and verification reads the nonce
// from here, not from anything the client echoes back.
const NonceCookie = "siwe"

// Handlers contains HTTP handlers for the auth and vault endpoints
type Handlers struct {
	authService  *service.AuthService
	vaultService *service.VaultService
	logger       *slog.Logger
}

// NewHandlers creates the handler set
func NewHandlers(authService *service.AuthService, vaultService *service.VaultService, logger *slog.Logger) *Handlers {
	return &Handlers{
		authService:  authService,
		vaultService: vaultService,
		logger:       logger,
	}
}

// Nonce handles GET /nonce: issues a fresh single-use nonce and stores it
// in the nonce cookie, superseding any earlier one.
func (h *Handlers) Nonce(c *gin.Context) {
	nonce, err := h.authService.IssueNonce()
	if err != nil {
		h.logger.Error("nonce generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate nonce"})
		return
	}

	c.SetCookie(NonceCookie, nonce, int(core.ChallengeValidity/time.Second), "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"nonce": nonce})
}

// VerifySignature handles POST /verify-signature. The comparison nonce
// comes from the request-bound cookie; the body's nonce is matched against
// it but never trusted on its own.
func (h *Handlers) VerifySignature(c *gin.Context) {
	var req struct {
		Payload core.SignedAuthPayload `json:"payload" binding:"required"`
		Nonce   string                 `json:"nonce" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}

	issuedNonce, err := c.Cookie(NonceCookie)
	if err != nil {
		issuedNonce = ""
	}

	// The cookie is spent after this attempt, whatever the verdict.
	c.SetCookie(NonceCookie, "", -1, "/", "", true, true)

	result, err := h.authService.VerifySignature(c.Request.Context(), &req.Payload, issuedNonce)
	if err != nil {
		if isVerificationFailure(err) {
			// One user-visible outcome, but the exact reason stays in the
			// logs for diagnosis.
			h.logger.Info("signature verification rejected",
				"reason", err, "address", req.Payload.Address)
			c.JSON(http.StatusOK, gin.H{"status": "success", "isValid": false})
			return
		}

		h.logger.Error("signature verification errored", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"isValid":      true,
		"address":      result.Address,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// isVerificationFailure tells a rejected payload apart from an internal
// error. Rejections share one user-visible outcome.
func isVerificationFailure(err error) bool {
	return errors.Is(err, core.ErrNonceMismatch) ||
		errors.Is(err, core.ErrNonceConsumed) ||
		errors.Is(err, core.ErrPayloadExpired) ||
		errors.Is(err, core.ErrPayloadNotYetValid) ||
		errors.Is(err, core.ErrInvalidSignature) ||
		errors.Is(err, core.ErrInvalidAddress)
}

// Refresh handles token refresh
func (h *Handlers) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	accessToken, refreshToken, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Failed to refresh tokens"

		switch {
		case errors.Is(err, core.ErrInvalidToken):
			statusCode = http.StatusBadRequest
			errorMsg = "Invalid refresh token"
		case errors.Is(err, core.ErrTokenExpired):
			statusCode = http.StatusUnauthorized
			errorMsg = "Refresh token expired"
		case errors.Is(err, core.ErrTokenInvalidated):
			statusCode = http.StatusUnauthorized
			errorMsg = "Refresh token has been invalidated"
		}

		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
		"expires_in":    300, // 5 minutes in seconds
	})
}

// Logout handles session logout
func (h *Handlers) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, core.ErrTokenExpired) {
			// Expired already means logged out.
			c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns information about the authenticated user
func (h *Handlers) Me(c *gin.Context) {
	address, exists := c.Get("userAddress")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// ListVaults returns vault records, optionally filtered by chain
func (h *Handlers) ListVaults(c *gin.Context) {
	vaults, err := h.vaultService.List(c.Request.Context(), c.Query("chain"))
	if err != nil {
		h.logger.Error("failed to list vaults", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vaults"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vaults": vaults})
}

// CreateVault registers a vault record
func (h *Handlers) CreateVault(c *gin.Context) {
	var vault core.Vault
	if err := c.ShouldBindJSON(&vault); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.vaultService.Register(c.Request.Context(), vault); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vault": vault})
}

// Package api provides the HTTP handlers for the ski tutor service.
package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/powderlabs/skitutor/chat"
	"github.com/powderlabs/skitutor/domain"
)

// Handler handles HTTP requests.
type Handler struct {
	svc *chat.Service
}

// NewHandler creates a new handler.
func NewHandler(svc *chat.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", h.Chat)
	e.POST("/clear", h.Clear)
	e.GET("/health", h.Health)
}

// Chat handles one conversation turn.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	response, sessionID, err := h.svc.SubmitTurn(ctx, req.Message, req.SessionID)
	if err != nil {
		log.Printf("ERROR: failed to process turn: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to process message"})
	}

	return c.JSON(http.StatusOK, domain.ChatResponse{
		Response:  response,
		SessionID: sessionID,
	})
}

// Clear removes a session's history. Idempotent: unknown or absent ids still
// acknowledge.
// POST /clear
func (h *Handler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ClearRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.svc.ClearSession(ctx, req.SessionID); err != nil {
		log.Printf("WARN: failed to clear session %s: %v", req.SessionID, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

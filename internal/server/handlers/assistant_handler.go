package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/domain/models"
	service "github.com/aruizdev/tablero/internal/service/assistant"
)

// AssistantHandler handles the conversational assistant webhook.
type AssistantHandler struct {
	svc    service.ChatService
	logger *zap.Logger
}

// NewAssistantHandler constructs the HTTP handler adapter.
func NewAssistantHandler(svc service.ChatService, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{svc: svc, logger: logger}
}

// Verify responds to the webhook verification challenge.
func (h *AssistantHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	resp, err := h.svc.VerifyWebhookToken(mode, token, challenge)
	if err != nil {
		h.logger.Warn("webhook verification failed", zap.Error(err))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, resp)
}

// Receive ingests an inbound assistant message and replies synchronously.
func (h *AssistantHandler) Receive(c *gin.Context) {
	var msg models.AssistantMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		h.logger.Warn("invalid assistant payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	reply, err := h.svc.HandleMessage(c.Request.Context(), msg)
	if err != nil {
		h.logger.Error("failed processing assistant message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

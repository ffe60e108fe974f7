package handler

import (
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/pkg/serverutils"
	internalWS "photostudio-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// NotificationHandler streams ledger events to admin dashboards.
type NotificationHandler struct {
	hub    *internalWS.Hub
	auth   fiber.Handler
	logger logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, auth fiber.Handler, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:    hub,
		auth:   auth,
		logger: log,
	}
}

// RegisterRoutes mounts GET /ws/ledger. Browsers cannot set headers on a
// websocket handshake, so the token may arrive as ?token=.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/ledger", h.auth, serverutils.RequireRole("admin"), h.upgradeRequired, h.ServeWs)
}

func (h *NotificationHandler) upgradeRequired(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// ServeWs hands the upgraded connection to the hub.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	userID, err := serverutils.ActorID(c)
	if err != nil {
		return err
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID.String()})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID.String()})
	})(c)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/food-ordering-app/hub"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type OrderSocketController struct {
	Hub      *hub.Hub
	upgrader websocket.Upgrader
}

// NewOrderSocketController accepts upgrades from the given origins. An empty
// list accepts any origin.
func NewOrderSocketController(h *hub.Hub, allowedOrigins []string) *OrderSocketController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &OrderSocketController{
		Hub: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// Subscribe upgrades the connection and keeps it registered until the client
// goes away. Incoming messages are ignored.
func (sc *OrderSocketController) Subscribe(c *gin.Context) {
	userID := actorFrom(c).UserID
	ws, err := sc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	sc.Hub.Register(ws, userID)
	defer sc.Hub.Unregister(ws)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

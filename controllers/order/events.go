package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Lihoubrak/shopping-api/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// writeWait caps how long a broadcast waits on a single client before the
// connection is dropped, so one stalled socket cannot wedge order handlers.
const writeWait = 5 * time.Second

// OrderEvent is pushed to websocket clients on order creation and every
// status change.
type OrderEvent struct {
	Type    string        `json:"type"`
	OrderID uint          `json:"order_id"`
	Status  models.Status `json:"status"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// OrderEventsHandler upgrades the connection and keeps it registered until
// the client goes away.
func OrderEventsHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

func broadcastOrderEvent(event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}

package handlers

import (
	"log"
	"net/http"

	"github.com/Jarecamang/ParkingPassport/internal/websocket"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // same-origin enforcement happens at the proxy
	},
}

// FeedHandler upgrades authenticated admin connections to the live
// search-history feed. The session cookie is checked by the Auth middleware
// before the upgrade.
type FeedHandler struct {
	hub *websocket.Hub
}

func NewFeedHandler(hub *websocket.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

func (h *FeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [FeedHandler.Handle] upgrade failed: %v", err)
		return
	}

	websocket.NewClient(h.hub, conn).Register()
}

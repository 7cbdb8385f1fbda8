package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/walterdalec/hexfield/internal/constants"
	"github.com/walterdalec/hexfield/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Battles are addressed by unguessable ids; the stream carries no
	// credentials, so cross-origin reads are acceptable.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	streamWriteWait = 10 * time.Second
	streamPingEvery = 30 * time.Second
)

// Stream upgrades to a websocket and pushes resolved battle events as they
// happen. The socket closes when the battle is evicted or the client leaves.
func (h *BattleHandler) Stream(c *gin.Context) {
	id := battleID(c)
	if id == "" {
		return
	}
	events, cancel, err := h.arena.Subscribe(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleID: id})
		return
	}

	go func() {
		defer cancel()
		defer conn.Close()

		// Drain reads so close frames and pongs are processed.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					cancel()
					return
				}
			}
		}()

		ticker := time.NewTicker(streamPingEvery)
		defer ticker.Stop()
		for {
			select {
			case e, ok := <-events:
				if !ok {
					conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(streamWriteWait))
					return
				}
				conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteJSON(e); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
}

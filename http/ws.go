package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"homeprice/service"
)

const (
	socketReadLimit = 4096
	socketIdle      = 5 * time.Minute
)

// socketReply carries either a quote or an error for one request frame.
type socketReply struct {
	Quote *service.Quote `json:"quote,omitempty"`
	Error string         `json:"error,omitempty"`
}

// handleEstimateSocket answers each JSON request frame with one reply frame
// until the client closes the connection or goes idle.
func (h *Handlers) handleEstimateSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	requestID := GetRequestID(r.Context())
	conn.SetReadLimit(socketReadLimit)

	for {
		conn.SetReadDeadline(time.Now().Add(socketIdle))

		req := service.DefaultRequest()
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket closed", zap.String("request_id", requestID), zap.Error(err))
			}
			return
		}

		var reply socketReply
		if err := req.Validate(); err != nil {
			reply.Error = err.Error()
		} else if quote, err := h.svc.Estimate(r.Context(), req); err != nil {
			h.logger.Error("estimate failed", zap.String("request_id", requestID), zap.Error(err))
			reply.Error = "estimate failed"
		} else {
			reply.Quote = &quote
		}

		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Debug("websocket write failed", zap.String("request_id", requestID), zap.Error(err))
			return
		}
	}
}

func isWebSocketUpgrade(r *http.Request) bool {
	return websocket.IsWebSocketUpgrade(r)
}

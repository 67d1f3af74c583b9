package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rustyeddy/nodesim/report"
)

const (
	writeWait = 10 * time.Second
	idleWait  = 5 * time.Minute
)

// handleStream pages a run to one browser table. The connection owns
// its Paginator, so two tabs viewing the same run scroll independently.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookup(r.PathValue("id"))
	if !ok {
		s.sendError(w, http.StatusNotFound, "run not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.WithField("run_id", run.record.RunID)
	log.Debug("stream opened")

	pager := report.NewPaginator(run.days, report.BatchSize)
	for {
		conn.SetReadDeadline(time.Now().Add(idleWait))

		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("stream read")
			}
			return
		}

		var reply any
		switch msg.Type {
		case "more":
			offset := pager.Loaded()
			batch := pager.Next()
			reply = batchMessage{
				Type:      "batch",
				RunID:     run.record.RunID,
				Offset:    offset,
				Loaded:    pager.Loaded(),
				Total:     pager.Total(),
				BatchSize: pager.BatchSize(),
				HasMore:   pager.HasMore(),
				Rows:      report.Rows(batch),
			}
		case "reset":
			pager.Reset()
			continue
		default:
			reply = errorMessage{Type: "error", Error: "unknown message type " + msg.Type}
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			log.WithError(err).Debug("stream write")
			return
		}
	}
}

package ws

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rangecard/backend/internal/ballistics"
	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/solutions"
)

// Message types sent on a trajectory stream
const (
	TypePoint      = "point"
	TypeDone       = "done"
	TypeNoSolution = "no_solution"
	TypeError      = "error"
)

// StreamMessage is one frame of a trajectory stream
type StreamMessage struct {
	Type    string            `json:"type"`
	Index   int               `json:"index"`
	Point   *ballistics.Point `json:"point,omitempty"`
	Result  *solutions.Result `json:"result,omitempty"`
	Message string            `json:"message,omitempty"`
}

// ServeTrajectory upgrades the request, then answers each solutions.Request the
// client sends with a "point" frame per sample followed by "done" (or a single
// "no_solution" / "error" frame). Samples are generated lazily as they are written.
func ServeTrajectory(svc *solutions.Service, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req solutions.Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] trajectory read error: %v", err)
			}
			return
		}
		if err := streamOne(r.Context(), svc, conn, req); err != nil {
			log.Printf("[WS] trajectory write error: %v", err)
			return
		}
	}
}

func streamOne(ctx context.Context, svc *solutions.Service, conn *websocket.Conn, req solutions.Request) error {
	req.OmitTrajectory = true
	res, err := svc.Solve(ctx, req)
	if err != nil {
		msg := "internal error"
		if errors.Is(err, solutions.ErrInvalidRequest) || errors.Is(err, cartridges.ErrNotFound) {
			msg = err.Error()
		}
		return write(conn, StreamMessage{Type: TypeError, Message: msg})
	}

	angle, ok := res.Solution.Angle()
	if !ok {
		return write(conn, StreamMessage{Type: TypeNoSolution, Result: res})
	}

	for i, p := range ballistics.Samples(res.MuzzleVelocity, angle, res.Gravity, res.Steps) {
		if err := write(conn, StreamMessage{Type: TypePoint, Index: i, Point: &p}); err != nil {
			return err
		}
	}
	return write(conn, StreamMessage{Type: TypeDone, Result: res})
}

func write(conn *websocket.Conn, msg StreamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/deepmindcheck/web/internal/metrics"
	"github.com/deepmindcheck/web/internal/middleware/session"
	"github.com/deepmindcheck/web/internal/view"
	"github.com/deepmindcheck/web/internal/workflow"
	"github.com/deepmindcheck/web/pkg/debounce"
	"github.com/deepmindcheck/web/pkg/logger"
	"github.com/deepmindcheck/web/pkg/textstat"
)

// CounterSocketHandler feeds the live character counter. Clients stream
// draft snapshots over the socket and replies are debounced on the trailing
// edge, so a typing burst produces a single measurement of the final draft.
type CounterSocketHandler struct {
	workflow *workflow.Workflow
	window   time.Duration
}

func NewCounterSocketHandler(wf *workflow.Workflow, window time.Duration) *CounterSocketHandler {
	return &CounterSocketHandler{
		workflow: wf,
		window:   window,
	}
}

func (h *CounterSocketHandler) HandleConnection(c *websocket.Conn) {
	sessionID := session.FromConn(c)
	logger.Debug("Counter socket opened", zap.String("session_id", sessionID))

	metrics.CounterConnections.Inc()
	defer metrics.CounterConnections.Dec()
	defer c.Close()

	// WriteJSON does not allow concurrent writers, and the debounce timer
	// runs on its own goroutine.
	var writeMu sync.Mutex
	send := func(text string) {
		counter := view.BuildCounter(
			h.workflow.LengthStatus(text),
			textstat.Measure(text),
			h.workflow.Limits(),
		)

		writeMu.Lock()
		defer writeMu.Unlock()
		err := c.WriteJSON(struct {
			Type string `json:"type"`
			view.Counter
		}{Type: "count", Counter: counter})
		if err != nil {
			logger.Debug("Counter socket write failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}

	d := debounce.New(h.window, send)
	defer d.Stop()

	for {
		var msg struct {
			Text string `json:"text"`
		}

		if err := c.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				logger.Warn("Counter socket closed unexpectedly",
					zap.String("session_id", sessionID),
					zap.Error(err),
				)
			} else {
				logger.Debug("Counter socket closed", zap.String("session_id", sessionID))
			}
			break
		}

		d.Trigger(msg.Text)
	}
}

// Package server exposes the execution engine over a WebSocket endpoint for
// the reporting front end: one image and metric selection per connection,
// per-metric results pushed back, then the connection is closed.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vk/uimetricsgo/internal/ctxlog"
	"github.com/vk/uimetricsgo/internal/engine"
	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
	"github.com/vk/uimetricsgo/internal/result"
	"github.com/vk/uimetricsgo/internal/runconfig"
)

// writeTimeout is the deadline for a single write to a client.
const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Allow all origins — callers should restrict access at the
	// reverse-proxy level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ExecuteRequest is the single message a client sends after connecting.
type ExecuteRequest struct {
	// Data is the Base64-encoded PNG payload.
	Data string `json:"data"`

	// GuiType tags the capture: desktop=0, mobile=1.
	GuiType int `json:"gui_type"`

	// Metrics selects and parameterizes the metrics to execute, in order.
	Metrics []MetricRequest `json:"metrics"`
}

// MetricRequest selects one metric.
type MetricRequest struct {
	Id         string         `json:"id"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// resultEnvelope pushes one metric outcome to the client.
type resultEnvelope struct {
	Type   string              `json:"type"`
	Metric string              `json:"metric"`
	Result result.MetricResult `json:"result"`
}

// errorEnvelope reports a run-level failure to the client.
type errorEnvelope struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// doneEnvelope closes a successful exchange with the summary counts.
type doneEnvelope struct {
	Type      string `json:"type"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
}

// Server serves the execution engine over HTTP/WebSocket.
type Server struct {
	addr        string
	handle      *registry.Handle
	coordinator *engine.Coordinator
	logger      *slog.Logger
}

// New creates a Server bound to addr, executing against the registry
// snapshot current at the time each request arrives.
func New(addr string, handle *registry.Handle, coordinator *engine.Coordinator, logger *slog.Logger) *Server {
	return &Server{addr: addr, handle: handle, coordinator: coordinator, logger: logger}
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("WebSocket server listening.", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleWS runs one execute exchange per connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed.", "error", err)
		return
	}
	defer conn.Close()

	ctx := ctxlog.WithLogger(r.Context(), s.logger)

	var req ExecuteRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.writeError(conn, "invalid request: "+err.Error())
		return
	}

	raw := &runconfig.Raw{}
	for _, m := range req.Metrics {
		raw.Metrics = append(raw.Metrics, runconfig.RawEntry{
			Id:         m.Id,
			Enabled:    true,
			Parameters: m.Parameters,
		})
	}

	reg := s.handle.Current()
	cfg, err := runconfig.Resolve(raw, reg)
	if err != nil {
		s.writeError(conn, err.Error())
		return
	}

	image := &metric.GuiImage{
		Data:    []byte(req.Data),
		GuiType: metric.GuiType(req.GuiType),
	}

	run, err := s.coordinator.Execute(ctx, cfg, reg, image)
	if err != nil {
		s.writeError(conn, err.Error())
		return
	}

	for _, res := range run.Results {
		if err := s.writeJSON(conn, resultEnvelope{Type: "result", Metric: res.Id, Result: res}); err != nil {
			s.logger.Error("Failed to push result.", "metric", res.Id, "error", err)
			return
		}
	}
	_ = s.writeJSON(conn, doneEnvelope{
		Type:      "done",
		Succeeded: run.Succeeded,
		Failed:    run.Failed,
		Skipped:   run.Skipped,
	})
}

func (s *Server) writeError(conn *websocket.Conn, message string) {
	_ = s.writeJSON(conn, errorEnvelope{Type: "error", Message: message})
}

func (s *Server) writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}

// Package server is the HTTP transport of one agent service: it publishes
// the agent identity document, bridges inbound streaming message sends onto
// the executor's event bus as Server-Sent Events, and accepts cancellation
// requests. The transport relays events verbatim; all lifecycle semantics
// live in the executor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/executor"
	"github.com/cinemesh/cinemesh/logging"
)

// Options configure the agent server.
type Options struct {
	Logger logging.Logger
	// BusBufferSize sets event buffering between the executor and the SSE
	// relay loop.
	BusBufferSize int
}

// Server hosts one agent executor behind the streaming HTTP surface.
type Server struct {
	card   a2a.AgentCard
	exec   executor.AgentExecutor
	tasks  *TaskStore
	logger logging.Logger
	engine *gin.Engine

	busBufferSize int
}

// sendParams is the body of a streaming message send.
type sendParams struct {
	Message a2a.Message `json:"message"`
}

// cancelParams is the body of a cancellation request.
type cancelParams struct {
	TaskID string `json:"taskId"`
}

// New constructs a Server for the given identity document and executor.
func New(card a2a.AgentCard, exec executor.AgentExecutor, optFns ...func(o *Options)) *Server {
	opts := Options{
		Logger:        logging.NoOpLogger{},
		BusBufferSize: 64,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		card:          card,
		exec:          exec,
		tasks:         NewTaskStore(),
		logger:        logging.WithComponent(opts.Logger, "server"),
		busBufferSize: opts.BusBufferSize,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	engine.GET("/.well-known/agent.json", s.handleAgentCard)
	engine.POST("/message/stream", s.handleMessageStream)
	engine.POST("/tasks/cancel", s.handleCancel)
	engine.GET("/tasks/:id", s.handleGetTask)
	engine.GET("/health", s.handleHealth)

	s.engine = engine
	return s
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "agent", s.card.Name)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, s.card)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "agent": s.card.Name})
}

// handleMessageStream runs one execution pass and relays its event stream to
// the caller as Server-Sent Events.
func (s *Server) handleMessageStream(c *gin.Context) {
	var params sendParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	reqCtx := executor.RequestContext{UserMessage: params.Message}
	if params.Message.TaskID != "" {
		task := s.tasks.Get(params.Message.TaskID)
		if task == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("task not found: %s", params.Message.TaskID)})
			return
		}
		reqCtx.Task = task
		s.tasks.Record(task.ID, params.Message)
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	bus := executor.NewBus(func(o *executor.BusOptions) { o.BufferSize = s.busBufferSize })
	go func() {
		defer bus.Close()
		if err := s.exec.Execute(c.Request.Context(), reqCtx, bus); err != nil {
			s.logger.Error("execution pass aborted", "error", err.Error())
		}
	}()

	for event := range bus.Events() {
		s.tasks.Apply(event)

		data, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("encode event", "error", err.Error())
			continue
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			// Client went away; drain remaining events so the task store
			// still observes the terminal state.
			s.logger.Warn("client disconnected mid-stream", "error", err.Error())
			for ev := range bus.Events() {
				s.tasks.Apply(ev)
			}
			return
		}
		c.Writer.Flush()
	}
}

// handleCancel records a cancellation request. Acceptance does not imply
// effect; the running pass observes the flag after its back-end step.
func (s *Server) handleCancel(c *gin.Context) {
	var params cancelParams
	if err := c.ShouldBindJSON(&params); err != nil || params.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId required"})
		return
	}

	if err := s.exec.Cancel(params.TaskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("cancellation requested", "task_id", params.TaskID)
	c.JSON(http.StatusAccepted, gin.H{"taskId": params.TaskID})
}

func (s *Server) handleGetTask(c *gin.Context) {
	task := s.tasks.Get(c.Param("id"))
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("task not found: %s", c.Param("id"))})
		return
	}
	c.JSON(http.StatusOK, task)
}

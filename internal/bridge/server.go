// Package bridge exposes the workbench commands to the web frontend over a
// local HTTP API.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/CodexForgeBR/daedalus/internal/clean"
	"github.com/CodexForgeBR/daedalus/internal/deps"
	"github.com/CodexForgeBR/daedalus/internal/greet"
	"github.com/CodexForgeBR/daedalus/internal/logging"
	"github.com/CodexForgeBR/daedalus/internal/project"
	"github.com/CodexForgeBR/daedalus/internal/toolchain"
)

// Server serves the command bridge.
type Server struct {
	Addr    string
	Version string
	Prober  *deps.Prober
	// DefaultFlags are passed to iverilog when a project sets none.
	DefaultFlags string
	SimTimeout   time.Duration

	// Toolchain runs share output paths, so only one runs at a time.
	runMu sync.Mutex
}

// Start listens on s.Addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logging.Info("command bridge listening on " + s.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Handler builds the gin engine with every route mounted.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(requestLogger())
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": s.Version})
	})
	api.GET("/schema", schemaHandler)

	invoke := api.Group("/invoke")
	invoke.POST("/greet", s.greetHandler)
	invoke.POST("/check_dependencies", s.checkDependenciesHandler)
	invoke.POST("/clean_project", s.cleanProjectHandler)
	invoke.POST("/compile", s.compileHandler)
	invoke.POST("/simulate", s.simulateHandler)
	invoke.POST("/view_waveform", s.viewWaveformHandler)

	api.POST("/project/open", s.openProjectHandler)
	api.POST("/project/save", s.saveProjectHandler)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Debug(fmt.Sprintf("%s %s %d %s", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), logging.FormatDuration(time.Since(start))))
	}
}

func (s *Server) prober() *deps.Prober {
	if s.Prober == nil {
		return deps.NewProber(nil)
	}
	return s.Prober
}

func (s *Server) greetHandler(c *gin.Context) {
	var req GreetRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, greet.Greet(req.Name))
}

func (s *Server) checkDependenciesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.prober().Probe())
}

func (s *Server) cleanProjectHandler(c *gin.Context) {
	var req CleanRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, clean.CleanProject(req.resolved()))
}

func (s *Server) compileHandler(c *gin.Context) {
	s.runStep(c, (*toolchain.Runner).Compile)
}

func (s *Server) simulateHandler(c *gin.Context) {
	s.runStep(c, (*toolchain.Runner).Simulate)
}

type stepFunc func(*toolchain.Runner, context.Context, *project.Settings) (*toolchain.Result, error)

func (s *Server) runStep(c *gin.Context, step stepFunc) {
	var req ProjectRequest
	if !bind(c, &req) {
		return
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	runner := toolchain.NewRunner(s.prober().Resolve(), nil)
	runner.DefaultFlags = s.DefaultFlags
	runner.SimTimeout = s.SimTimeout
	res, err := step(runner, c.Request.Context(), req.settings())
	if err != nil {
		writeError(c, err, res)
		return
	}
	c.JSON(http.StatusOK, RunResponse{Result: res})
}

func (s *Server) viewWaveformHandler(c *gin.Context) {
	var req ProjectRequest
	if !bind(c, &req) {
		return
	}
	runner := toolchain.NewRunner(s.prober().Resolve(), nil)
	if err := runner.ViewWaveform(req.settings()); err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"started": true})
}

func (s *Server) openProjectHandler(c *gin.Context) {
	var req OpenRequest
	if !bind(c, &req) {
		return
	}
	settings, err := project.Load(req.Path)
	if err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) saveProjectHandler(c *gin.Context) {
	var req SaveRequest
	if !bind(c, &req) {
		return
	}
	if err := project.Save(req.Project, req.Path); err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": req.Path})
}

// bind decodes the JSON body into req. An empty body is accepted for
// requests whose fields are all optional.
func bind(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		if err := binding.Validator.ValidateStruct(req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return false
		}
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func writeError(c *gin.Context, err error, res *toolchain.Result) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, toolchain.ErrToolMissing):
		status = http.StatusPreconditionFailed
	case errors.Is(err, toolchain.ErrToolFailed), errors.Is(err, toolchain.ErrTimeout):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, toolchain.ErrNoSources), errors.Is(err, project.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		status = http.StatusNotFound
	}
	c.JSON(status, RunResponse{Result: res, Error: err.Error()})
}

package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/normsend/normsend-go/api/controllers"
	"github.com/normsend/normsend-go/api/middlewares"
	"github.com/normsend/normsend-go/api/notifyhub"
	"github.com/normsend/normsend-go/tool"
)

// Server is the local HTTP control API the presentation layer talks to.
type Server struct {
	port   int
	hub    *notifyhub.Hub
	engine *gin.Engine
	server *http.Server
	mu     sync.RWMutex
}

// NewServer creates the control API server. The hub doubles as the
// presentation sink the core publishes to.
func NewServer(port int, hub *notifyhub.Hub) *Server {
	return &Server{
		port: port,
		hub:  hub,
	}
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	engine.Use(gin.Recovery())

	v1 := engine.Group("/api/norm/v1", middlewares.OnlyAllowLocal)
	{
		v1.GET("/health", controllers.Health)            // Service reachability probe
		v1.GET("/files", controllers.FilesList)          // Current pending file list
		v1.POST("/files", controllers.FilesAdd)          // Selection event: add candidate paths
		v1.DELETE("/files/:index", controllers.FilesRemove)
		v1.POST("/submit", controllers.Submit)           // Start the batch upload
		v1.GET("/status", controllers.Status)            // Progress snapshot
		v1.GET("/results/:jobId", controllers.Results)   // Cached batch results
		v1.GET("/qrcode/:jobId", controllers.BatchDownloadQRCode)
		v1.GET("/notify", notifyhub.HandleNotifyWS(s.hub))
	}

	return engine
}

// Start runs the control API server. Blocks until the server stops.
func (s *Server) Start() error {
	s.mu.Lock()
	s.engine = s.setupRoutes()
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Control API listening on http://%s", addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("control API server failed: %v", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the search, chat, and schedule services over HTTP.
package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uninavi/uninavi/internal/chat"
	"github.com/uninavi/uninavi/internal/schedule"
	"github.com/uninavi/uninavi/pkg/types"
)

const apiVersion = "1.0.0"

// defaultAllowedOrigins serves the local and deployed frontend.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"https://*.vercel.app",
}

// SearchEngine runs one university search end to end.
type SearchEngine interface {
	Run(ctx context.Context, filters types.SearchFilters, progress func(types.ProgressEvent), sink func(types.UniversityRecord)) []types.UniversityRecord
}

// Counselor answers career counseling questions.
type Counselor interface {
	Reply(ctx context.Context, message string, history []chat.Exchange) string
	ReplyStream(ctx context.Context, message string, history []chat.Exchange, fn func(delta string) error) error
}

// Server holds the service dependencies behind the HTTP surface.
type Server struct {
	engine         SearchEngine
	counselor      Counselor
	store          *schedule.Store
	allowedOrigins []string
	logw           io.Writer
}

// NewServer wires the services into a Server. store may be nil, in which
// case the schedule routes are not registered.
func NewServer(engine SearchEngine, counselor Counselor, store *schedule.Store, cfg types.ServerConfig, logw io.Writer) *Server {
	if logw == nil {
		logw = io.Discard
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultAllowedOrigins
	}
	return &Server{
		engine:         engine,
		counselor:      counselor,
		store:          store,
		allowedOrigins: origins,
		logw:           logw,
	}
}

// Router constructs the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.POST("/api/search", s.handleSearch)
	r.POST("/api/search/stream", s.handleSearchStream)
	r.POST("/api/chat", s.handleChat)
	r.POST("/api/chat/stream", s.handleChatStream)

	if s.store != nil {
		r.GET("/api/schedules", s.handleListSchedules)
		r.POST("/api/schedules", s.handleCreateSchedule)
		r.GET("/api/schedules/stats", s.handleScheduleStats)
		r.GET("/api/schedules/:id", s.handleGetSchedule)
		r.PUT("/api/schedules/:id", s.handleUpdateSchedule)
		r.DELETE("/api/schedules/:id", s.handleDeleteSchedule)
		r.POST("/api/schedules/import", s.handleImportSchedules)
	}
	return r
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to UniNavi API", "version": apiVersion})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// corsMiddleware allows the configured frontend origins. Origins may
// carry a single * wildcard, e.g. https://*.vercel.app.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(origin, s.allowedOrigins) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, pattern := range allowed {
		if pattern == origin || pattern == "*" {
			return true
		}
		if star := strings.Index(pattern, "*"); star >= 0 {
			prefix, suffix := pattern[:star], pattern[star+1:]
			if len(origin) > len(prefix)+len(suffix) &&
				strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
				return true
			}
		}
	}
	return false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uninavi/uninavi/internal/schedule"
	"github.com/uninavi/uninavi/pkg/types"
)

func userID(c *gin.Context) string {
	if id := c.Query("userId"); id != "" {
		return id
	}
	return schedule.DefaultUserID
}

func (s *Server) handleListSchedules(c *gin.Context) {
	filters := schedule.Filters{
		Type:         c.Query("type"),
		UniversityID: c.Query("universityId"),
	}
	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		filters.Start = start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		filters.End = end
	}

	events, err := s.store.List(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if events == nil {
		events = []schedule.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"schedules": events, "count": len(events)})
}

func (s *Server) handleGetSchedule(c *gin.Context) {
	ev, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, schedule.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) handleCreateSchedule(c *gin.Context) {
	var form schedule.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev, err := s.store.Create(c.Request.Context(), form, userID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (s *Server) handleUpdateSchedule(c *gin.Context) {
	var form schedule.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev, err := s.store.Update(c.Request.Context(), c.Param("id"), form, userID(c))
	if errors.Is(err, schedule.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) handleDeleteSchedule(c *gin.Context) {
	err := s.store.Delete(c.Request.Context(), c.Param("id"), userID(c))
	if errors.Is(err, schedule.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) handleScheduleStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleImportSchedules derives and saves schedule events from a search
// result record.
func (s *Server) handleImportSchedules(c *gin.Context) {
	var rec types.UniversityRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.store.ImportUniversity(c.Request.Context(), rec, userID(c), s.logw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if created == nil {
		created = []schedule.Event{}
	}
	c.JSON(http.StatusCreated, gin.H{"schedules": created, "count": len(created)})
}

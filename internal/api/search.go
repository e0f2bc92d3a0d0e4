// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uninavi/uninavi/pkg/types"
)

type searchResponse struct {
	Universities []types.UniversityRecord `json:"universities"`
	Count        int                      `json:"count"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var filters types.SearchFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records := s.engine.Run(c.Request.Context(), filters, nil, nil)
	if records == nil {
		records = []types.UniversityRecord{}
	}
	c.JSON(http.StatusOK, searchResponse{Universities: records, Count: len(records)})
}

type sseEvent struct {
	name string
	data any
}

// writeSSE emits one server-sent event frame.
func writeSSE(w io.Writer, ev sseEvent) error {
	data, err := json.Marshal(ev.data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, data)
	return err
}

func sseHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
}

// handleSearchStream runs the search while streaming progress, then each
// record, then a completion marker. Client disconnect cancels the
// pipeline.
func (s *Server) handleSearchStream(c *gin.Context) {
	var filters types.SearchFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sseHeaders(c)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events := make(chan sseEvent, 64)
	emit := func(ev sseEvent) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(events)
		records := s.engine.Run(ctx, filters, func(ev types.ProgressEvent) {
			payload := map[string]any{"stage": ev.Stage}
			for k, v := range ev.Detail {
				payload[k] = v
			}
			emit(sseEvent{"progress", payload})
		}, nil)

		if ctx.Err() != nil {
			return
		}
		total := len(records)
		for i, rec := range records {
			if !emit(sseEvent{"result", gin.H{"index": i + 1, "total": total, "university": rec}}) {
				return
			}
		}
		emit(sseEvent{"complete", gin.H{"total": total}})
	}()

	flusher, _ := c.Writer.(http.Flusher)
	for ev := range events {
		if err := writeSSE(c.Writer, ev); err != nil {
			fmt.Fprintf(s.logw, "warning: search stream write failed: %v\n", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

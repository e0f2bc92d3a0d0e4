// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uninavi/uninavi/internal/chat"
	"github.com/uninavi/uninavi/pkg/types"
)

type chatRequest struct {
	Message string           `json:"message" binding:"required"`
	History []types.ChatTurn `json:"history"`
}

type chatResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := s.counselor.Reply(c.Request.Context(), req.Message, chat.PairHistory(req.History))
	c.JSON(http.StatusOK, chatResponse{Message: reply})
}

// handleChatStream relays answer deltas as server-sent events, closing
// with a complete marker or an error event.
func (s *Server) handleChatStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sseHeaders(c)

	history := chat.PairHistory(req.History)
	flusher, _ := c.Writer.(http.Flusher)
	send := func(ev sseEvent) error {
		if err := writeSSE(c.Writer, ev); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	err := s.counselor.ReplyStream(c.Request.Context(), req.Message, history, func(delta string) error {
		return send(sseEvent{"delta", gin.H{"content": delta}})
	})
	if err != nil {
		fmt.Fprintf(s.logw, "warning: chat stream failed: %v\n", err)
		if writeErr := send(sseEvent{"error", gin.H{"message": err.Error()}}); writeErr != nil && writeErr != io.ErrClosedPipe {
			fmt.Fprintf(s.logw, "warning: chat stream error write failed: %v\n", writeErr)
		}
		return
	}
	if err := send(sseEvent{"complete", gin.H{}}); err != nil {
		fmt.Fprintf(s.logw, "warning: chat stream complete write failed: %v\n", err)
	}
}

// internal/server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/models"
)

// Headroom over max_query_length for the JSON envelope and escaping.
const bodyOverheadBytes = 1024

func (s *Server) maxQueryLength() int {
	maxLen := s.config.Server.MaxQueryLength
	if maxLen <= 0 {
		maxLen = 500
	}
	return maxLen
}

// chatRequestSchema validates the POST /chat body before it reaches the
// engine. The query length cap is enforced here, not in the router.
func (s *Server) chatRequestSchema() map[string]interface{} {
	maxLen := s.maxQueryLength()
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"query"},
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
				"maxLength": maxLen,
			},
		},
		"additionalProperties": false,
	}
}

func (s *Server) handleChat(c *gin.Context) {
	// Cap the read before buffering; the schema cap alone would pull an
	// arbitrarily large body into memory first.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body,
		int64(s.maxQueryLength())+bodyOverheadBytes)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.writeError(c, commonerrors.NewValidationError("request body too large or unreadable"))
		return
	}

	schemaLoader := gojsonschema.NewGoLoader(s.chatRequestSchema())
	documentLoader := gojsonschema.NewBytesLoader(body)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		s.writeError(c, commonerrors.NewValidationError(fmt.Sprintf("body is not valid JSON: %v", err)))
		return
	}
	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			details[i] = desc.String()
		}
		s.writeError(c, commonerrors.NewValidationError(fmt.Sprintf("%v", details)))
		return
	}

	var req models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(c, commonerrors.NewValidationError(err.Error()))
		return
	}

	resp, err := s.engine.Ask(c.Request.Context(), req.Query)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
	})
}

func (s *Server) handleReady(c *gin.Context) {
	if s.airports == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "airport dataset not loaded",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"airports": s.airports,
	})
}

func (s *Server) handleIntents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     s.registry.Version,
		"lastUpdated": s.registry.LastUpdated,
		"intents":     s.registry.Intents,
		"ruleOrder":   s.engine.Router().Rules(),
	})
}

func (s *Server) writeError(c *gin.Context, err error) {
	stdErr, ok := commonerrors.AsStandard(err)
	if !ok {
		stdErr = commonerrors.NewValidationError(err.Error())
	}

	status := commonerrors.HTTPStatus(stdErr.Code)
	if status == http.StatusOK {
		// Codes that normally become guidance text should never reach
		// here; answer with a client error rather than a fake success.
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"error": gin.H{
			"code":      string(stdErr.Code),
			"message":   stdErr.Message,
			"details":   stdErr.Details,
			"retryable": stdErr.Retryable,
		},
	})
}

package httpapi

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/oracle"
)

type submitRequest struct {
	Content string `json:"content" binding:"required"`
	Score   uint64 `json:"score"`
}

type thresholdRequest struct {
	Threshold uint64 `json:"threshold"`
}

type callbackRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Payload   string `json:"payload" binding:"required"`
	Proof     string `json:"proof" binding:"required"`
}

// statusFor maps protocol sentinels onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, cipherwatch.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, cipherwatch.ErrNotFound), errors.Is(err, cipherwatch.ErrUnknownRequest):
		return http.StatusNotFound
	case errors.Is(err, cipherwatch.ErrNotHighRisk),
		errors.Is(err, cipherwatch.ErrAlreadyRevealed),
		errors.Is(err, cipherwatch.ErrThresholdAlreadySet),
		errors.Is(err, cipherwatch.ErrDuplicateRequest):
		return http.StatusConflict
	case errors.Is(err, cipherwatch.ErrThresholdNotSet),
		errors.Is(err, cipherwatch.ErrInvalidProof),
		errors.Is(err, cipherwatch.ErrMalformedPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleSetThreshold(c *gin.Context) {
	var req thresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sealed, err := s.codec.SealScore(req.Threshold)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.protocol.SetThreshold(callerIdentity(c), sealed); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sealedContent, err := s.codec.SealText(req.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	sealedScore, err := s.codec.SealScore(req.Score)
	if err != nil {
		s.fail(c, err)
		return
	}

	recordID, err := s.protocol.Submit(c.Request.Context(), sealedContent, sealedScore)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record_id": recordID})
}

func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleStatus(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	state, err := s.protocol.Status(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record_id": id, "state": state})
}

func (s *Server) handleRequestReveal(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	reqID, err := s.protocol.RequestReveal(c.Request.Context(), callerIdentity(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"record_id": id, "request_id": string(reqID)})
}

func (s *Server) handleReadAlert(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	content, revealed, err := s.protocol.ReadAlert(callerIdentity(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record_id": id, "content": content, "revealed": revealed})
}

func (s *Server) decodeCallback(c *gin.Context) (oracle.Callback, bool) {
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return oracle.Callback{}, false
	}
	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload must be base64"})
		return oracle.Callback{}, false
	}
	proof, err := base64.StdEncoding.DecodeString(req.Proof)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof must be base64"})
		return oracle.Callback{}, false
	}
	return oracle.Callback{
		RequestID: cipherwatch.RequestID(req.RequestID),
		Payload:   payload,
		Proof:     proof,
	}, true
}

func (s *Server) handleRiskCallback(c *gin.Context) {
	cb, ok := s.decodeCallback(c)
	if !ok {
		return
	}
	if err := s.protocol.ResolveRiskEvaluation(c.Request.Context(), cb); err != nil {
		s.log.Warn("risk callback rejected",
			zap.String("request_id", string(cb.RequestID)),
			zap.Error(err))
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resolved": true})
}

func (s *Server) handleRevealCallback(c *gin.Context) {
	cb, ok := s.decodeCallback(c)
	if !ok {
		return
	}
	if err := s.protocol.ResolveReveal(c.Request.Context(), cb); err != nil {
		s.log.Warn("reveal callback rejected",
			zap.String("request_id", string(cb.RequestID)),
			zap.Error(err))
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resolved": true})
}

package relay

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/snonux/codetranslator/internal/languages"
	"codeberg.org/snonux/codetranslator/internal/provider"
	"codeberg.org/snonux/codetranslator/internal/translation"
)

// Generic failure body. Upstream details stay in the server log.
const failureMessage = "Something went wrong."

// Translate relays one translation request. Provider failures before the
// first chunk fail the whole request with 500; once bytes are on the wire
// an upstream failure just ends the body early.
func (s *Server) Translate(c *gin.Context) {
	reqID := c.GetString(requestIDKey)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req translation.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if err := req.CheckLanguages(); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	prompt := translation.BuildPrompt(req)

	stream, err := s.provider.Stream(ctx, prompt)
	if err != nil {
		if errors.Is(err, provider.ErrNotConfigured) {
			log.Printf("[%s] configuration error: %v", reqID, err)
		} else {
			log.Printf("[%s] provider request failed: %v", reqID, err)
		}
		c.String(http.StatusInternalServerError, failureMessage)
		return
	}
	defer stream.Close()

	// Pull the first chunk before committing to a 200
	first, err := stream.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		log.Printf("[%s] provider stream failed before first chunk: %v", reqID, err)
		c.String(http.StatusInternalServerError, failureMessage)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)

	if errors.Is(err, io.EOF) {
		c.Writer.WriteHeaderNow()
		return
	}

	chunks := 0
	emit := func(chunk string) error {
		if _, err := c.Writer.WriteString(chunk); err != nil {
			return err
		}
		c.Writer.Flush()
		chunks++
		return nil
	}

	if err := emit(first); err != nil {
		log.Printf("[%s] client went away: %v", reqID, err)
		return
	}

	if err := translation.Drain(stream, emit); err != nil {
		log.Printf("[%s] stream ended early after %d chunks: %v", reqID, chunks, err)
		return
	}

	log.Printf("[%s] %s -> %s relayed %d chunks", reqID, req.InputLanguage, req.OutputLanguage, chunks)
}

// Languages lists the supported languages
func (s *Server) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": languages.All(),
		"defaults": gin.H{
			"inputLanguage":  languages.DefaultInput,
			"outputLanguage": languages.DefaultOutput,
		},
		"maxCodeLength": translation.MaxCodeLength,
	})
}

// Health reports liveness
func (s *Server) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// NotFound answers unknown routes
func (s *Server) NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "not found")
}

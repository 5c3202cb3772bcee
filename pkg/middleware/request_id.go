package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the gin context key for request ID
	RequestIDContextKey = "request_id"
	// ReplayedHeader marks a response served from the idempotency store
	ReplayedHeader = "X-Idempotent-Replay"
)

type requestIDKey struct{}

// StoredResponse is a write response kept for replay
type StoredResponse struct {
	Status int
	Body   []byte
}

// RequestIDStore stores processed write responses keyed by request ID
type RequestIDStore interface {
	Store(ctx context.Context, key string, response StoredResponse, ttl time.Duration) error
	// Get returns ErrRequestIDNotFound for unknown or expired keys
	Get(ctx context.Context, key string) (StoredResponse, error)
}

// InMemoryRequestIDStore is an in-memory implementation of RequestIDStore
type InMemoryRequestIDStore struct {
	mu      sync.Mutex
	store   map[string]requestIDEntry
	cleanup *time.Ticker
	done    chan struct{}
	once    sync.Once
}

type requestIDEntry struct {
	response  StoredResponse
	expiresAt time.Time
}

// NewInMemoryRequestIDStore creates a store that evicts expired entries every minute until Close
func NewInMemoryRequestIDStore() *InMemoryRequestIDStore {
	s := &InMemoryRequestIDStore{
		store:   make(map[string]requestIDEntry),
		cleanup: time.NewTicker(time.Minute),
		done:    make(chan struct{}),
	}
	go s.cleanupExpired()
	return s
}

func (s *InMemoryRequestIDStore) Store(ctx context.Context, key string, response StoredResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[key] = requestIDEntry{
		response:  response,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *InMemoryRequestIDStore) Get(ctx context.Context, key string) (StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.store[key]
	if !exists {
		return StoredResponse{}, ErrRequestIDNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.store, key)
		return StoredResponse{}, ErrRequestIDNotFound
	}
	return entry.response, nil
}

// Close stops the cleanup goroutine
func (s *InMemoryRequestIDStore) Close() {
	s.once.Do(func() {
		s.cleanup.Stop()
		close(s.done)
	})
}

func (s *InMemoryRequestIDStore) cleanupExpired() {
	for {
		select {
		case <-s.done:
			return
		case now := <-s.cleanup.C:
			s.mu.Lock()
			for id, entry := range s.store {
				if now.After(entry.expiresAt) {
					delete(s.store, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

var ErrRequestIDNotFound = &RequestIDError{Message: "request ID not found"}

type RequestIDError struct {
	Message string
}

func (e *RequestIDError) Error() string {
	return e.Message
}

// RequestIDMiddleware extracts or generates X-Request-ID header
func RequestIDMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			logger.Debug("Generated new request ID",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
			)
		}

		c.Set(RequestIDContextKey, requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID retrieves the request ID from the Gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}

// RequestIDFromContext retrieves the request ID from a request context
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// IdempotencyMiddleware replays the stored response of a write request whose
// X-Request-ID was already processed successfully, and stores new 2xx responses.
// Only client-supplied request IDs take part. Mount it after AuthMiddleware:
// the replay key includes the authenticated user and a digest of the body.
func IdempotencyMiddleware(store RequestIDStore, logger *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) || c.GetHeader(RequestIDHeader) == "" {
			c.Next()
			return
		}

		key, err := idempotencyKey(c)
		if err != nil {
			logger.Warn("Failed to read request body for idempotency", zap.Error(err))
			c.Next()
			return
		}

		cached, err := store.Get(c.Request.Context(), key)
		if err == nil {
			logger.Info("Duplicate request detected, returning stored response",
				zap.String("request_id", GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Header(ReplayedHeader, "true")
			if len(cached.Body) == 0 {
				c.AbortWithStatus(cached.Status)
				return
			}
			c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		}
		if err != ErrRequestIDNotFound {
			// fail open
			logger.Warn("Error reading idempotency store", zap.String("key", key), zap.Error(err))
		}

		writer := &responseWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if len(c.Errors) > 0 || status < 200 || status >= 300 {
			return
		}
		if err := store.Store(c.Request.Context(), key, StoredResponse{Status: status, Body: writer.body}, ttl); err != nil {
			logger.Warn("Failed to store response for idempotency",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
		}
	}
}

// idempotencyKey restores the request body after hashing it
func idempotencyKey(c *gin.Context) (string, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	digest := sha256.Sum256(body)

	return c.Request.Method + " " + c.Request.URL.Path + " " + GetRequestID(c) + " " +
		c.GetString(UsernameContextKey) + " " + hex.EncodeToString(digest[:]), nil
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}

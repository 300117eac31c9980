// Package gin exposes the aggregation engine over HTTP.
//
// The engine itself is transport-agnostic; this package is the only
// place that knows about status codes and wire framing. Search results
// are streamed as NDJSON so clients see entities as sites respond, not
// after the slowest site finishes.
package gin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bookhound"
	"bookhound/aggregate"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Ensure Server implements http.Handler.
var _ http.Handler = (*Server)(nil)

// Server serves the REST API over an Aggregator.
type Server struct {
	aggregator *aggregate.Aggregator
	logger     *slog.Logger
	engine     *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a Server over aggregator.
func NewServer(aggregator *aggregate.Aggregator, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		aggregator: aggregator,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.GET("/libraries", s.handleLibraries)
	engine.GET("/search", s.handleSearch)
	s.engine = engine
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// requestLogger tags every request with an ID and logs one line per
// request. An inbound X-Request-ID is honored so callers can correlate.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		begin := time.Now()
		c.Next()

		s.logger.Info("http request",
			"id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
		)
	}
}

func (s *Server) handleLibraries(c *gin.Context) {
	libraries, err := s.aggregator.GetLibraries(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"libraries": libraries})
}

// searchLine is one NDJSON line of the search stream.
type searchLine struct {
	Entities []bookhound.SearchEntity `json:"entities"`
}

func (s *Server) handleSearch(c *gin.Context) {
	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		s.abort(c, bookhound.Errorf(bookhound.EINVALID, "term query parameter required"))
		return
	}
	libraryIDs := splitIDs(c.QueryArray("library_ids"))
	if len(libraryIDs) == 0 {
		s.abort(c, bookhound.Errorf(bookhound.EINVALID, "library_ids query parameter required"))
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)
	for entity := range s.aggregator.Search(c.Request.Context(), term, libraryIDs) {
		if err := enc.Encode(searchLine{Entities: []bookhound.SearchEntity{entity}}); err != nil {
			// The client went away; producers stop via the request context.
			return
		}
		c.Writer.Flush()
	}
}

// splitIDs accepts both repeated parameters and comma-joined values.
func splitIDs(raw []string) []string {
	var ids []string
	for _, r := range raw {
		for _, id := range strings.Split(r, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (s *Server) abort(c *gin.Context, err error) {
	code := bookhound.ErrorCode(err)
	c.AbortWithStatusJSON(httpStatus(code), gin.H{
		"code":    code,
		"message": bookhound.ErrorMessage(err),
	})
}

func httpStatus(code string) int {
	switch code {
	case bookhound.EINVALID:
		return http.StatusBadRequest
	case bookhound.ENOTFOUND:
		return http.StatusNotFound
	case bookhound.ESTRUCTURE, bookhound.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

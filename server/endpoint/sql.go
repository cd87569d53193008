package endpoint

import (
	"context"

	"github.com/gin-gonic/gin"
)

// SQLBridge is the relational bridge as seen by the HTTP layer.
type SQLBridge interface {
	Load(ctx context.Context, locator string) (string, error)
	Select(ctx context.Context, locator, stmt string, params []any) ([]map[string]any, error)
	Execute(ctx context.Context, locator, stmt string, params []any) error
	Close(ctx context.Context, locator string) error
}

// SQLHandler serves the /sql routes.
type SQLHandler struct {
	bridge SQLBridge
}

// NewSQLHandler creates a SQLHandler.
func NewSQLHandler(bridge SQLBridge) *SQLHandler {
	return &SQLHandler{bridge: bridge}
}

type loadRequest struct {
	Path string `json:"path" validate:"required"`
}

type statementRequest struct {
	DB     string `json:"db" validate:"required"`
	Query  string `json:"query" validate:"required"`
	Values []any  `json:"values"`
}

type closeRequest struct {
	DB string `json:"db"`
}

// Load resolves a locator and returns the store path.
func (h *SQLHandler) Load(c *gin.Context) {
	var req loadRequest
	if err := bindJSON(c, &req); err != nil {
		RespondWithError(c, err)
		return
	}
	path, err := h.bridge.Load(c.Request.Context(), req.Path)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, path)
}

// Select runs a row-returning statement.
func (h *SQLHandler) Select(c *gin.Context) {
	var req statementRequest
	if err := bindJSON(c, &req); err != nil {
		RespondWithError(c, err)
		return
	}
	rows, err := h.bridge.Select(c.Request.Context(), req.DB, req.Query, req.Values)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, rows)
}

// Execute runs a statement without returning rows.
func (h *SQLHandler) Execute(c *gin.Context) {
	var req statementRequest
	if err := bindJSON(c, &req); err != nil {
		RespondWithError(c, err)
		return
	}
	if err := h.bridge.Execute(c.Request.Context(), req.DB, req.Query, req.Values); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, nil)
}

// Close always succeeds; a missing or malformed body is ignored.
func (h *SQLHandler) Close(c *gin.Context) {
	var req closeRequest
	_ = bindJSON(c, &req)
	if err := h.bridge.Close(c.Request.Context(), req.DB); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, nil)
}

// Package mcp exposes the portfolio view-model to MCP clients over a
// streamable HTTP endpoint.
package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/config"
	"github.com/alphapie/pieview/internal/loader"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates a new MCP handler with the portfolio tools registered.
func NewHandler(l *loader.Loader, logger *common.Logger) *Handler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	mcpSrv, toolCount := newMCPServer(l)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// newMCPServer builds the MCP server with all tools registered.
func newMCPServer(l *loader.Loader) (*mcpserver.MCPServer, int) {
	s := mcpserver.NewMCPServer(
		"pieview",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	return s, RegisterTools(s, l)
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer. The endpoint is
// read-only and unauthenticated, like the rest of the portal.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}

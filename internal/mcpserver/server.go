// Package mcpserver exposes the calculators as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/currency"
	"github.com/zephyrtronium/calc/history"
)

// Name and Version identify the server to clients.
const (
	Name    = "calc"
	Version = "0.1.0"
)

// Config holds the dependencies of the tools.
type Config struct {
	// Places is the number of decimal places expression results are
	// rounded to. Nil means calc.DefaultPlaces.
	Places *int
	// Converter serves the convert tool. The tool is not registered if it is
	// nil.
	Converter *currency.Converter
	// History records every tool call. Nil disables recording.
	History history.Recorder
	Log     *slog.Logger
	// Now is the clock used by the age tool.
	Now func() time.Time
}

// Server is the calculator MCP server.
type Server struct {
	mcpServer *server.MCPServer
	cfg       Config
}

// New creates a server with every tool registered.
func New(cfg Config) *Server {
	if cfg.History == nil {
		cfg.History = history.Nop{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{
		mcpServer: server.NewMCPServer(Name, Version, server.WithToolCapabilities(false)),
		cfg:       cfg,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	places := calc.DefaultPlaces
	if s.cfg.Places != nil {
		places = *s.cfg.Places
	}
	eval := &EvaluateTool{places: places, rec: s.cfg.History, log: s.cfg.Log}
	s.mcpServer.AddTool(eval.GetTool(), eval.Handle)

	bmiTool := &BMITool{rec: s.cfg.History, log: s.cfg.Log}
	s.mcpServer.AddTool(bmiTool.GetTool(), bmiTool.Handle)

	ageTool := &AgeTool{now: s.cfg.Now, rec: s.cfg.History, log: s.cfg.Log}
	s.mcpServer.AddTool(ageTool.GetTool(), ageTool.Handle)

	if s.cfg.Converter != nil {
		conv := &ConvertTool{conv: s.cfg.Converter, rec: s.cfg.History, log: s.cfg.Log}
		s.mcpServer.AddTool(conv.GetTool(), conv.Handle)
	}
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves requests on stdin and stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.cfg.Log.Info("starting MCP server", "name", Name, "version", Version)
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}
	return nil
}

// record logs a failure to record history rather than failing the call.
func record(ctx context.Context, rec history.Recorder, log *slog.Logger, e history.Entry) {
	if err := rec.Record(ctx, e); err != nil {
		log.Warn("failed to record history", "panel", e.Panel, "error", err)
	}
}

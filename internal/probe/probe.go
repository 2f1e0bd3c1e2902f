// Package probe starts a context server command the way the host would and
// checks that it answers the MCP initialize handshake.
package probe

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/container-use/container-use-mcp/internal/branding"
	"github.com/container-use/container-use-mcp/internal/host"
)

// Session is the part of an MCP client the probe needs.
type Session interface {
	Initialize(ctx context.Context, req mcp.InitializeRequest) (*mcp.InitializeResult, error)
	ListTools(ctx context.Context, req mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	Close() error
}

// Dialer starts cmd and returns a connected session.
type Dialer func(ctx context.Context, cmd *host.Command) (Session, error)

// StdioDialer launches cmd as a subprocess speaking MCP over stdin/stdout.
// The subprocess inherits the current environment plus cmd.Env.
func StdioDialer(_ context.Context, cmd *host.Command) (Session, error) {
	c, err := client.NewStdioMCPClient(cmd.Command, cmd.Environ(), cmd.Args...)
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", cmd, err)
	}
	return c, nil
}

// Report summarizes a successful probe.
type Report struct {
	Command         string        `json:"command"`
	ServerName      string        `json:"server_name"`
	ServerVersion   string        `json:"server_version"`
	ProtocolVersion string        `json:"protocol_version"`
	Tools           []string      `json:"tools"`
	Elapsed         time.Duration `json:"elapsed"`
}

// Options configures Run.
type Options struct {
	Dialer        Dialer
	ClientVersion string
}

// Run connects to the server started by cmd, performs the initialize
// handshake, and lists its tools. The caller bounds the run through ctx.
func Run(ctx context.Context, cmd *host.Command, opts Options) (*Report, error) {
	dial := opts.Dialer
	if dial == nil {
		dial = StdioDialer
	}
	version := opts.ClientVersion
	if version == "" {
		version = "dev"
	}

	start := time.Now()
	session, err := dial(ctx, cmd)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    branding.CLIName(),
		Version: version,
	}

	result, err := session.Initialize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("initializing %s: %w", cmd, err)
	}

	report := &Report{
		Command:         cmd.String(),
		ServerName:      result.ServerInfo.Name,
		ServerVersion:   result.ServerInfo.Version,
		ProtocolVersion: result.ProtocolVersion,
	}

	if result.Capabilities.Tools != nil {
		tools, err := session.ListTools(ctx, mcp.ListToolsRequest{})
		if err != nil {
			return nil, fmt.Errorf("listing tools: %w", err)
		}
		for _, t := range tools.Tools {
			report.Tools = append(report.Tools, t.Name)
		}
		sort.Strings(report.Tools)
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

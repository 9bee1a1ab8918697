// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes keysort capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/keysort"
)

const serverInstructions = `keysort MCP server — deduplicates, sorts, checks, and canonicalizes the member keys of JSON and YAML documents. Values and array order are never modified.

Configuration: All defaults are configurable via KEYSORT_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- KEYSORT_CACHE_ENABLED (default: true) — disable document caching entirely
- KEYSORT_CACHE_MAX_ENTRIES (default: 10) — maximum cached parsed documents
- KEYSORT_CACHE_TTL (default: 15m) — cache TTL for parsed documents
- KEYSORT_HTTP_TIMEOUT (default: 30s) — timeout for URL document fetches
- KEYSORT_MAX_FILE_SIZE (default: 52428800) — input size cap in bytes
- KEYSORT_ALLOW_PRIVATE_URLS (default: false) — allow URL inputs that resolve to private/loopback IPs

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Default pagination bounds for change and issue lists.
const (
	defaultResultLimit = 100
	maxResultLimit     = 1000
)

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "keysort", Version: keysort.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "sort_keys",
		Description: "Deduplicate and sort the member keys of a JSON or YAML document. Duplicate keys are removed first (first occurrence wins), then remaining keys are reordered by the chosen sort order. Values and array element order are never modified. Use recursive=true to sort nested objects at every depth. Use dry_run=true to preview changes without producing the document. Use output to write the result to a file instead of returning it inline.",
	}, handleSortKeys)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_keys",
		Description: "Check a JSON or YAML document for duplicate member keys and keys that deviate from a sort order, without modifying it. Returns issues with JSONPath locations and source line/column numbers. Duplicate keys report as errors, ordering deviations as warnings. Use offset/limit to paginate through results.",
	}, handleCheckKeys)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "canonicalize",
		Description: "Produce the RFC 8785 (JCS) canonical JSON form of a JSON or YAML document: duplicate keys removed, keys in canonical order, minimal escaping, no insignificant whitespace. The output is byte-stable and suitable for hashing and signing.",
	}, handleCanonicalize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sort_policies",
		Description: "List the available sort order policy identifiers with a description of each. These are the values accepted by the order parameter of sort_keys and check_keys, and by dotted policy values in custom order maps.",
	}, handleListSortPolicies)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to defaultResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = defaultResultLimit
	}
	if limit > maxResultLimit {
		limit = maxResultLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

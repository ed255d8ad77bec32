// Package server implements the MCP (Model Context Protocol) server for badge verification.
//
// The server exposes the badge checks as MCP tools so an assistant can verify
// badges without shelling out to the CLI.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Badge Verification:
//   - badge_verify: Size, circle and happy color verdicts in one call
//   - badge_check_circle: Circle boundary check with measured radius
//   - badge_average_color: Average HSL color and happy band verdict
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// # Image Caching
//
// The badge_* tools drop the image from the cache after each call, so the next
// call decodes the file again and verdicts follow the file on disk.
// image_load and image_dimensions keep the decoded image cached by path until
// a badge tool runs on it.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, when there is one
//
// # Usage
//
//	srv := server.New(server.WithVersion(Version))
//	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server

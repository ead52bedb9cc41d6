// Package mcpserver bridges a tool registry onto the Model Context
// Protocol. Tools are registered as typed handler functions whose argument
// structs are reflected into JSON schemas, then exposed to MCP clients over
// stdio or streamable HTTP via mark3labs/mcp-go.
package mcpserver

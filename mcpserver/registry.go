package mcpserver

import (
	"context"
	"encoding/json"
	"sync"
)

// Tool defines a callable tool exposed to MCP clients.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string
	// Description explains what the tool does (helps the model decide when to use it).
	Description string
	// Parameters is a JSON Schema object defining the tool parameters.
	Parameters json.RawMessage
}

// ToolCall represents a request to invoke a tool.
type ToolCall struct {
	// ID is a unique identifier for this call, used for log correlation.
	ID string `json:"id"`
	// Name is the name of the tool to invoke.
	Name string `json:"name"`
	// Arguments is a JSON string containing the arguments to pass.
	Arguments string `json:"arguments"`
}

// Handler is a function that executes a tool call and returns the result
// content string, or an error if execution failed.
type Handler func(ctx context.Context, call ToolCall) (string, error)

// TypedHandler is a handler whose arguments are automatically unmarshaled
// from the tool call's JSON arguments.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

// registeredTool combines a tool definition with its handler.
type registeredTool struct {
	tool    Tool
	handler Handler
}

// Registry manages registered tools and their handlers.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]registeredTool),
	}
}

// Register adds a tool with its handler to the registry.
// Returns an error if a tool with the same name is already registered.
func (r *Registry) Register(tool Tool, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return &ErrToolAlreadyRegistered{Name: tool.Name}
	}

	r.tools[tool.Name] = registeredTool{tool: tool, handler: handler}
	r.order = append(r.order, tool.Name)
	return nil
}

// RegisterFunc registers a tool with a typed handler that automatically
// unmarshals the arguments JSON into the specified type T. The tool's
// parameter schema is generated from T's struct tags (see SchemaFor).
//
// Example:
//
//	type sleepArgs struct {
//	    Date string `json:"date" desc:"Date in YYYY-MM-DD format" required:"true"`
//	}
//
//	mcpserver.RegisterFunc(registry, "get_sleep_data", "Get sleep data for a date",
//	    func(ctx context.Context, args sleepArgs) (string, error) { ... })
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	schema, err := SchemaFor[T]()
	if err != nil {
		return err
	}

	t := Tool{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}

	handler := func(ctx context.Context, call ToolCall) (string, error) {
		var args T
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return "", err
			}
		}
		return fn(ctx, args)
	}

	return r.Register(t, handler)
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := RegisterFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}

// Call executes the named tool's handler. Returns ErrToolNotFound when no
// such tool is registered.
func (r *Registry) Call(ctx context.Context, call ToolCall) (string, error) {
	handler, ok := r.Get(call.Name)
	if !ok {
		return "", &ErrToolNotFound{Name: call.Name}
	}
	return handler(ctx, call)
}

// Get retrieves a handler by tool name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return rt.handler, true
}

// GetTool retrieves a tool definition by name.
func (r *Registry) GetTool(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return Tool{}, false
	}
	return rt.tool, true
}

// Tools returns all registered tool definitions in registration order.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].tool)
	}
	return tools
}

// Names returns the names of all registered tools in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

package mcp

import (
	"context"

	"patlens/internal/insights"
	"patlens/internal/logging"

	"github.com/google/uuid"
)

// Dispatcher resolves tool calls against the registry and runs them
// through the query builder and the API gateway. It is transport-free;
// the server layer adapts its output to MCP result shapes.
type Dispatcher struct {
	client *insights.Client
	apiKey string
}

// NewDispatcher creates a dispatcher backed by client. apiKey is appended
// to every query when set.
func NewDispatcher(client *insights.Client, apiKey string) *Dispatcher {
	return &Dispatcher{client: client, apiKey: apiKey}
}

// Tools returns the registry entries in table order.
func (d *Dispatcher) Tools() []insights.ToolSpec {
	return insights.Registry()
}

// Call runs one tool. A blank name is a bad request and an unregistered
// name is not found; nil args resolve to an empty map. Missing optional
// arguments never fail locally — the upstream enforces its own
// "keywords or ipc" rule.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	if name == "" {
		return "", &insights.BadRequestError{Reason: "tool name must be a non-empty string"}
	}
	spec, ok := insights.Lookup(name)
	if !ok {
		return "", &insights.NotFoundError{Tool: name}
	}
	if args == nil {
		args = map[string]any{}
	}

	callID := shortID()
	logging.Info("call %s: %s args=%v", callID, name, args)

	q := insights.BuildQuery(spec.ArgNames(), args, spec.Defaults, d.apiKey)
	result, err := d.client.Call(ctx, spec.Endpoint, q)
	if err != nil {
		logging.Error("call %s: %s failed (status %d): %v", callID, name, insights.StatusOf(err), err)
		return "", err
	}

	logging.Debug("call %s: %s returned %d bytes", callID, name, len(result))
	return result, nil
}

func shortID() string {
	return uuid.NewString()[:8]
}

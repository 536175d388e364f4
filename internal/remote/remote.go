// Package remote implements the comparison RemoteStore over the comparison REST API.
package remote

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/agentstation/toolcompare/internal/transport"
	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/tools"
)

// API paths.
const (
	comparisonPath = "comparison"
	toolsPath      = "tools"
)

// Client talks to the comparison endpoints and the tool catalog.
type Client struct {
	http *transport.Client

	// lookups collapses concurrent GET /tools/{id} calls for the same id.
	lookups singleflight.Group
}

var (
	_ comparison.RemoteStore  = (*Client)(nil)
	_ comparison.ToolResolver = (*Client)(nil)
)

// New creates a Client on top of an HTTP transport.
func New(http *transport.Client) *Client {
	return &Client{http: http}
}

// NewFromURL creates a Client for the API rooted at baseURL.
func NewFromURL(baseURL string, opts ...transport.Option) (*Client, error) {
	http, err := transport.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return New(http), nil
}

// addRequest is the body of POST /comparison.
type addRequest struct {
	ToolID string `json:"tool_id"`
}

// List implements comparison.RemoteStore (GET /comparison).
func (c *Client) List(ctx context.Context) ([]tools.Tool, error) {
	resp, err := c.http.Get(ctx, comparisonPath)
	if err != nil {
		return nil, errors.WrapRemote("list", err)
	}

	var out []tools.Tool
	if err := transport.DecodeResponse(resp, &out); err != nil {
		return nil, errors.WrapRemote("list", err)
	}
	if out == nil {
		out = []tools.Tool{}
	}
	return out, nil
}

// Add implements comparison.RemoteStore (POST /comparison).
func (c *Client) Add(ctx context.Context, toolID string) error {
	resp, err := c.http.PostJSON(ctx, addRequest{ToolID: toolID}, comparisonPath)
	if err != nil {
		return errors.WrapRemote("add", err)
	}
	return errors.WrapRemote("add", transport.DecodeResponse(resp, nil))
}

// Remove implements comparison.RemoteStore (DELETE /comparison/{id}).
func (c *Client) Remove(ctx context.Context, toolID string) error {
	resp, err := c.http.Delete(ctx, comparisonPath, toolID)
	if err != nil {
		return errors.WrapRemote("remove", err)
	}
	return errors.WrapRemote("remove", transport.DecodeResponse(resp, nil))
}

// Tool implements comparison.ToolResolver (GET /tools/{id}).
// Concurrent lookups of the same id share one request. The shared request
// outlives any single caller; each caller still returns when its own ctx ends.
func (c *Client) Tool(ctx context.Context, toolID string) (tools.Tool, error) {
	ch := c.lookups.DoChan(toolID, func() (any, error) {
		return c.fetchTool(context.WithoutCancel(ctx), toolID)
	})

	select {
	case <-ctx.Done():
		return tools.Tool{}, errors.WrapRemote("tool", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return tools.Tool{}, res.Err
		}
		return res.Val.(tools.Tool).Clone(), nil
	}
}

func (c *Client) fetchTool(ctx context.Context, toolID string) (tools.Tool, error) {
	resp, err := c.http.Get(ctx, toolsPath, toolID)
	if err != nil {
		return tools.Tool{}, errors.WrapRemote("tool", err)
	}

	var tool tools.Tool
	if err := transport.DecodeResponse(resp, &tool); err != nil {
		if errors.IsNotFound(err) {
			err = &errors.NotFoundError{Resource: "tool", ID: toolID, Err: err}
		}
		return tools.Tool{}, errors.WrapRemote("tool", err)
	}
	if tool.ID == "" {
		tool.ID = toolID
	}
	return tool, nil
}

// Package bridge exposes the agent tools over a process-local list/call
// protocol: newline-delimited JSON requests on an input stream, one JSON
// response per request on an output stream. Handled tool names never produce
// a protocol-level error; tool failures travel inside the result text as an
// embedded error object. Only an unrecognized tool name is a protocol error.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/cinemesh/cinemesh/logging"
	"github.com/cinemesh/cinemesh/tool"
)

// Method names of the bridge protocol.
const (
	MethodListTools = "tools/list"
	MethodCallTool  = "tools/call"
)

// Request is one inbound protocol frame.
type Request struct {
	ID     any             `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is one outbound protocol frame. Exactly one of Result and Error
// is set.
type Response struct {
	ID     any            `json:"id,omitempty"`
	Result any            `json:"result,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

// ResponseError is a protocol-level failure.
type ResponseError struct {
	Message string `json:"message"`
}

// ToolDescriptor is one entry of a tools/list result.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// callParams is the expected params shape of a tools/call request.
type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// callResult wraps the tool outcome the way consumers expect it: a single
// text content block whose text is the JSON-encoded shaped result.
type callResult struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Options configure the bridge server.
type Options struct {
	Logger logging.Logger
}

// Server answers bridge protocol requests from a tool registry.
type Server struct {
	tools  *tool.Registry
	logger logging.Logger

	mu sync.Mutex // serializes response writes
}

// NewServer constructs a Server over the given registry.
func NewServer(tools *tool.Registry, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Server{tools: tools, logger: logging.WithComponent(opts.Logger, "bridge")}
}

// Serve reads newline-delimited requests from r until EOF, writing one
// response per request to w. Undecodable lines produce a protocol error
// frame and the loop continues.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("undecodable request frame", "error", err.Error())
			if err := s.write(w, Response{Error: &ResponseError{Message: "invalid request: " + err.Error()}}); err != nil {
				return err
			}
			continue
		}
		if err := s.write(w, s.Handle(ctx, req)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Handle dispatches one request to the matching protocol operation.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	switch req.Method {
	case MethodListTools:
		return Response{ID: req.ID, Result: s.listTools()}
	case MethodCallTool:
		return s.callTool(ctx, req)
	default:
		return Response{ID: req.ID, Error: &ResponseError{Message: fmt.Sprintf("unknown method: %s", req.Method)}}
	}
}

func (s *Server) listTools() []ToolDescriptor {
	all := s.tools.All()
	descriptors := make([]ToolDescriptor, len(all))
	for i, t := range all {
		descriptors[i] = ToolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.Parameters(),
		}
	}
	return descriptors
}

func (s *Server) callTool(ctx context.Context, req Request) Response {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return Response{ID: req.ID, Error: &ResponseError{Message: "invalid call params: " + err.Error()}}
	}

	t, ok := s.tools.Get(params.Name)
	if !ok {
		// The single protocol-level failure of the call path.
		return Response{ID: req.ID, Error: &ResponseError{Message: fmt.Sprintf("unknown tool: %s", params.Name)}}
	}

	args := params.Arguments
	if args == nil {
		args = map[string]any{}
	}

	text := s.invoke(ctx, t, args)
	return Response{ID: req.ID, Result: callResult{
		Content: []contentBlock{{Type: "text", Text: text}},
	}}
}

// invoke runs the tool and encodes its outcome. Failures are embedded as an
// error object in the content text, never surfaced as protocol errors.
func (s *Server) invoke(ctx context.Context, t tool.Tool, args map[string]any) string {
	result, err := t.Call(ctx, args)
	if err != nil {
		s.logger.Warn("tool call failed", "tool", t.Name(), "error", err.Error())
		return encodeError(err.Error())
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return encodeError("encode tool result: " + err.Error())
	}
	return string(encoded)
}

func encodeError(msg string) string {
	encoded, _ := json.Marshal(map[string]string{"error": msg})
	return string(encoded)
}

func (s *Server) write(w io.Writer, resp Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

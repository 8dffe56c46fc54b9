package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/cropresize-mcp/internal/cropresize"
	"github.com/ironsheep/cropresize-mcp/internal/host"
	"github.com/ironsheep/cropresize-mcp/internal/pixel"
	"github.com/ironsheep/cropresize-mcp/internal/transform"
)

// kindInvalidArgument labels tool arguments that could not be decoded.
const kindInvalidArgument = "InvalidArgument"

var errInvalidArgument = errors.New("invalid argument")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "crop_and_resize_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolErrorData is the data member of a failed tools/call response.
type ToolErrorData struct {
	// Kind is InputSizeMismatch, InvalidDimensions, CropOutOfBounds,
	// InvalidArgument or Internal.
	Kind string `json:"kind"`

	// Detail names the failed precondition and the offending values.
	Detail string `json:"detail"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000 and
// a ToolErrorData payload.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	entry := s.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"tool":       params.Name,
	})
	start := time.Now()

	result, err := s.executeTool(params.Name, params.Arguments)
	elapsed := time.Since(start)
	if err != nil {
		data := ToolErrorData{Kind: errorKind(err), Detail: err.Error()}
		entry.WithFields(logrus.Fields{
			"kind":    data.Kind,
			"elapsed": elapsed,
		}).WithError(err).Warn("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", data)
	}
	entry.WithField("elapsed", elapsed).Info("tool completed")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Core
	case "crop_and_resize_image":
		return s.handleCropAndResizeImage(args)
	case "crop_plan":
		return s.handleCropPlan(args)

	// Host helpers
	case "crop_and_resize_file":
		return s.handleCropAndResizeFile(args)
	case "crop_preview":
		return s.handleCropPreview(args)
	case "image_load":
		return s.handleImageLoad(args)
	case "image_list":
		return s.handleImageList(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArgument, name)
	}
}

// errorKind maps err to the kind reported in ToolErrorData.
func errorKind(err error) string {
	if errors.Is(err, errInvalidArgument) {
		return kindInvalidArgument
	}
	return cropresize.Kind(err)
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgument, err)
	}
	return nil
}

// CropResult is the payload of a successful crop_and_resize_* call.
type CropResult struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Channels   int    `json:"channels"`
	ByteLength int    `json:"byte_length"`
	RGBABase64 string `json:"rgba_base64"`

	// Summary lets a client check the result without decoding it.
	Summary pixel.Summary `json:"summary"`
}

func newCropResult(g *pixel.Grid) *CropResult {
	buf := pixel.Encode(g)
	return &CropResult{
		Width:      g.Width,
		Height:     g.Height,
		Channels:   pixel.Channels,
		ByteLength: len(buf),
		RGBABase64: base64.StdEncoding.EncodeToString(buf),
		Summary:    pixel.Summarize(g),
	}
}

// === Core Handlers ===

type cropAndResizeImageArgs struct {
	RGBABase64   string `json:"rgba_base64"`
	InputWidth   int    `json:"input_width"`
	InputHeight  int    `json:"input_height"`
	OutputWidth  int    `json:"output_width"`
	OutputHeight int    `json:"output_height"`
}

func (s *Server) handleCropAndResizeImage(args json.RawMessage) (interface{}, error) {
	var a cropAndResizeImageArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	input, err := base64.StdEncoding.DecodeString(a.RGBABase64)
	if err != nil {
		return nil, fmt.Errorf("%w: rgba_base64: %v", errInvalidArgument, err)
	}

	out, err := s.engine.CropAndResizeImage(input, a.InputWidth, a.InputHeight, a.OutputWidth, a.OutputHeight)
	if err != nil {
		return nil, err
	}
	return newCropResult(&pixel.Grid{Width: a.OutputWidth, Height: a.OutputHeight, Pix: out}), nil
}

type cropPlanArgs struct {
	InputWidth   int `json:"input_width"`
	InputHeight  int `json:"input_height"`
	OutputWidth  int `json:"output_width"`
	OutputHeight int `json:"output_height"`
}

func (s *Server) handleCropPlan(args json.RawMessage) (interface{}, error) {
	var a cropPlanArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.engine.Plan(
		pixel.Dimensions{Width: a.InputWidth, Height: a.InputHeight},
		pixel.Dimensions{Width: a.OutputWidth, Height: a.OutputHeight},
	)
}

// === Host Helper Handlers ===

type cropAndResizeFileArgs struct {
	Path         string `json:"path"`
	OutputWidth  int    `json:"output_width"`
	OutputHeight int    `json:"output_height"`
}

func (s *Server) handleCropAndResizeFile(args json.RawMessage) (interface{}, error) {
	var a cropAndResizeFileArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	g, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := s.engine.CropAndResizeGrid(g, pixel.Dimensions{Width: a.OutputWidth, Height: a.OutputHeight})
	if err != nil {
		return nil, err
	}
	return newCropResult(out), nil
}

type cropPreviewArgs struct {
	Path         string `json:"path"`
	OutputWidth  int    `json:"output_width"`
	OutputHeight int    `json:"output_height"`
	OutlineColor string `json:"outline_color"`
}

// PreviewResult is the payload of crop_preview.
type PreviewResult struct {
	Plan transform.Plan `json:"plan"`
	Fits bool           `json:"fits"`
	*host.PreviewImage
}

func (s *Server) handleCropPreview(args json.RawMessage) (interface{}, error) {
	var a cropPreviewArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	outline, err := host.ParseOutlineColor(a.OutlineColor)
	if err != nil {
		return nil, fmt.Errorf("%w: outline_color: %v", errInvalidArgument, err)
	}

	g, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	p, err := s.engine.Preview(g, pixel.Dimensions{Width: a.OutputWidth, Height: a.OutputHeight})
	if err != nil {
		return nil, err
	}
	img, err := host.RenderPreview(p.Scaled, p.Plan.Crop, outline)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{Plan: p.Plan, Fits: p.Fits, PreviewImage: img}, nil
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return host.LoadImageInfo(s.cache, a.Path)
}

type imageListArgs struct {
	Dir string `json:"dir"`
}

func (s *Server) handleImageList(args json.RawMessage) (interface{}, error) {
	var a imageListArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Dir == "" {
		a.Dir = s.cfg.ImageDir
	}
	return host.ListImages(a.Dir)
}

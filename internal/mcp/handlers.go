package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/blogdex/internal/config"
	"github.com/hpungsan/blogdex/internal/errors"
	"github.com/hpungsan/blogdex/internal/index"
	"github.com/hpungsan/blogdex/internal/logging"
	"github.com/hpungsan/blogdex/internal/post"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cfg *config.Config
	log *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{cfg: cfg, log: logging.OrNop(log)}
}

// ListRequest represents the arguments for blog_list.
type ListRequest struct {
	Year   string `json:"year,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// FetchRequest represents the arguments for blog_fetch.
type FetchRequest struct {
	Slug            string `json:"slug"`
	IncludeMarkdown *bool  `json:"include_markdown,omitempty"`
}

// Pagination describes a page of list results.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// ListOutput is the result of blog_list.
type ListOutput struct {
	Items      []post.Post `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// FetchOutput is the result of blog_fetch.
type FetchOutput struct {
	post.Post
	Markdown *string `json:"markdown,omitempty"`
}

// HandleList handles the blog_list tool.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if args.Year != "" && !post.IsYear(args.Year) {
		return errorResult(errors.NewInvalidRequest("year must be four digits (YYYY)")), nil
	}
	if args.Offset < 0 {
		return errorResult(errors.NewInvalidRequest("offset must be >= 0")), nil
	}

	posts, err := index.Load(h.cfg.ResolvedOutputPath())
	if err != nil {
		return errorResult(err), nil
	}

	if args.Year != "" {
		filtered := make([]post.Post, 0, len(posts))
		for _, p := range posts {
			if p.Year() == args.Year {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	limit := args.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	total := len(posts)
	start := min(args.Offset, total)
	end := min(start+limit, total)

	return successResult(ListOutput{
		Items: posts[start:end],
		Pagination: Pagination{
			Limit:   limit,
			Offset:  args.Offset,
			Total:   total,
			HasMore: end < total,
		},
	})
}

// HandleFetch handles the blog_fetch tool.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if args.Slug == "" {
		return errorResult(errors.NewInvalidRequest("slug is required")), nil
	}

	posts, err := index.Load(h.cfg.ResolvedOutputPath())
	if err != nil {
		return errorResult(err), nil
	}

	p, err := index.FindBySlug(posts, args.Slug)
	if err != nil {
		return errorResult(err), nil
	}

	out := FetchOutput{Post: p}
	if args.IncludeMarkdown == nil || *args.IncludeMarkdown {
		md, err := index.ReadMarkdown(h.cfg.ContentRoot, p)
		if err != nil {
			return errorResult(err), nil
		}
		out.Markdown = &md
	}

	return successResult(out)
}

// HandleGenerate handles the blog_generate tool.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := index.Generate(index.FromConfig(h.cfg), h.log)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	bErr := errors.As(err)

	errorObj := map[string]any{
		"code":    bErr.Code,
		"message": bErr.Message,
		"status":  bErr.Status,
	}
	// Internal details may carry file paths; keep them out of tool output.
	if bErr.Code != errors.ErrInternal && len(bErr.Details) > 0 {
		errorObj["details"] = bErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

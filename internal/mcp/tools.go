package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool("blog_list",
	mcp.WithDescription("List blog posts from the generated index, newest first. Returns slug, title, date, path, and summary for each post."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("year",
		mcp.Description("Only return posts from this year (YYYY)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of posts to return (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of posts to skip"),
	),
)

var fetchToolDef = mcp.NewTool("blog_fetch",
	mcp.WithDescription("Fetch one blog post by slug, including its markdown source."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Post slug (date and name), e.g. \"2024-01-15-my-first-post\""),
	),
	mcp.WithBoolean("include_markdown",
		mcp.Description("Include the markdown source (default true)"),
	),
)

var generateToolDef = mcp.NewTool("blog_generate",
	mcp.WithDescription("Regenerate the blog index from the configured content root and write it to disk."),
	mcp.WithDestructiveHintAnnotation(false),
)

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerCreateEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerListTagsTool(srv, svc)
	registerQuestionTool(srv, svc)
	registerReportTool(srv, svc)
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List journal entries, newest first, with an excerpt of each."),
		mcp.WithArray("tags",
			mcp.Description("Only entries carrying all of these tags."),
			mcp.WithStringItems(),
		),
		mcp.WithString("start",
			mcp.Description("Only entries on or after this date (YYYY-MM-DD)."),
		),
		mcp.WithString("end",
			mcp.Description("Only entries on or before this date (YYYY-MM-DD)."),
		),
		mcp.WithString("last",
			mcp.Description("Only entries in a window ending today, such as 2w or 3mo. Overrides start."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Tags  []string `json:"tags"`
			Start string   `json:"start"`
			End   string   `json:"end"`
			Last  string   `json:"last"`
			Limit int      `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		entries, err := svc.ListEntries(ctx, ListOptions{
			Tags:  args.Tags,
			Start: args.Start,
			End:   args.End,
			Last:  args.Last,
			Limit: args.Limit,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count":   len(entries),
			"entries": entries,
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier, including its full text."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_entry",
		mcp.WithDescription("Write a new journal entry."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Body of the entry."),
		),
		mcp.WithString("title",
			mcp.Description("Optional title."),
		),
		mcp.WithString("entry_date",
			mcp.Description("Optional date or RFC3339 timestamp, defaults to now."),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags for the entry."),
			mcp.WithStringItems(),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title     string   `json:"title"`
			Content   string   `json:"content"`
			EntryDate string   `json:"entry_date"`
			Tags      []string `json:"tags"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateEntry(ctx, CreateOptions{
			Title:     args.Title,
			Content:   args.Content,
			EntryDate: args.EntryDate,
			Tags:      args.Tags,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Change the title, content or date of an entry. Omitted fields keep their value."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to update."),
		),
		mcp.WithString("title",
			mcp.Description("New title."),
		),
		mcp.WithString("content",
			mcp.Description("New body."),
		),
		mcp.WithString("entry_date",
			mcp.Description("New date or RFC3339 timestamp."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID        string  `json:"id"`
			Title     *string `json:"title"`
			Content   *string `json:"content"`
			EntryDate *string `json:"entry_date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UpdateEntry(ctx, UpdateOptions{
			ID:        args.ID,
			Title:     args.Title,
			Content:   args.Content,
			EntryDate: args.EntryDate,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEntry(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "deleted": true})
	})
}

func registerListTagsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tags",
		mcp.WithDescription("List known tags with the number of entries carrying each."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ts, err := svc.Tags(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"count": len(ts), "tags": ts})
	})
}

func registerQuestionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"generate_question",
		mcp.WithDescription("Ask the journal backend for a reflection question."),
		mcp.WithString("suggestion",
			mcp.Description("Optional theme for the question."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Suggestion string `json:"suggestion"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		q, err := svc.Question(ctx, args.Suggestion)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(q), nil
	})
}

func registerReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"report",
		mcp.WithDescription("Summarise entries written in a recent window, grouped by month."),
		mcp.WithString("last",
			mcp.Description("Window ending today such as 2w or 3mo, defaults to 1mo."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Last string `json:"last"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		rep, err := svc.Report(ctx, args.Last)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(rep)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}

// Package mcptools exposes concert logging and summaries as MCP tools.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"concert-stats/internal/concertstats"
	"concert-stats/internal/prompt"
)

type LogConcertParams struct {
	UserID string   `json:"user_id" mcp:"user identifier"`
	Artist string   `json:"artist" mcp:"artist or band name"`
	Venue  string   `json:"venue" mcp:"venue name"`
	Date   string   `json:"date" mcp:"concert date, YYYY-MM-DD"`
	Rating *float64 `json:"rating,omitempty" mcp:"optional rating"`
}

type StatsParams struct {
	UserID string `json:"user_id" mcp:"user identifier"`
}

type SummaryParams struct {
	UserID  string `json:"user_id" mcp:"user identifier"`
	Variant string `json:"variant,omitempty" mcp:"prompt variant: baseline, json or structured"`
}

// Tools implements the MCP tool handlers on top of the concert service.
type Tools struct {
	svc *concertstats.Service
}

func New(svc *concertstats.Service) *Tools {
	return &Tools{svc: svc}
}

// Register adds every tool to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_concert",
		Description: "Logs an attended concert for a user",
	}, t.LogConcert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "concert_stats",
		Description: "Returns total concerts, unique artists and average rating for a user",
	}, t.Stats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "concert_summary",
		Description: "Generates an AI summary of a user's concert history with recommendations",
	}, t.Summary)
}

func (t *Tools) LogConcert(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[LogConcertParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	rec, err := t.svc.LogConcert(ctx, args.UserID, args.Artist, args.Venue, args.Date, args.Rating)
	if err != nil {
		return errorResult(err), nil
	}
	return textResult(fmt.Sprintf("Logged %s at %s (%s), rating %s", rec.Artist, rec.Venue, rec.Date, rec.RatingString())), nil
}

func (t *Tools) Stats(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[StatsParams]) (*mcp.CallToolResultFor[any], error) {
	st, err := t.svc.Stats(ctx, params.Arguments.UserID)
	if err != nil {
		return errorResult(err), nil
	}
	return textResult(fmt.Sprintf("Concerts: %d\nUnique artists: %d\nRated: %d\nAverage rating: %.2f",
		st.TotalCount, st.UniqueArtistCount, st.RatedCount, st.AverageRating)), nil
}

func (t *Tools) Summary(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[SummaryParams]) (*mcp.CallToolResultFor[any], error) {
	variant, err := prompt.ParseVariant(params.Arguments.Variant)
	if err != nil {
		return errorResult(err), nil
	}
	sum, err := t.svc.GenerateSummary(ctx, params.Arguments.UserID, variant)
	if err != nil {
		return errorResult(err), nil
	}
	text := "Summary: " + sum.Text
	if len(sum.Recommendations) > 0 {
		text += "\nRecommendations: " + strings.Join(sum.Recommendations, ", ")
	}
	return textResult(text), nil
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "❌ " + err.Error()}},
	}
}

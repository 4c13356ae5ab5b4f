package api

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/massive-bench/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the classification tools on srv.
func RegisterMCPTools(srv *server.MCPServer, svc *Service, logger *slog.Logger) {
	eps := newEndpoints(svc, logger)

	kit.RegisterMCPTool(srv, mcp.NewTool("classify_utterance",
		mcp.WithDescription("Rank the intents of one utterance with the model trained for a locale (e.g. en-US)."),
		mcp.WithString("locale", mcp.Required(), mcp.Description("Locale of the utterance, e.g. fr-FR")),
		mcp.WithString("utterance", mcp.Required(), mcp.Description("The utterance to classify")),
	), eps.classify, func(args map[string]any) (any, error) {
		locale, _ := args["locale"].(string)
		text, _ := args["utterance"].(string)
		if locale == "" {
			return nil, fmt.Errorf("locale is required")
		}
		return &classifyReq{Locale: locale, Text: text}, nil
	})

	kit.RegisterMCPTool(srv, mcp.NewTool("classify_batch",
		mcp.WithDescription(fmt.Sprintf("Classify up to %d utterances of one locale.", MaxBatch)),
		mcp.WithString("locale", mcp.Required(), mcp.Description("Locale of the utterances")),
		mcp.WithString("utterances", mcp.Required(), mcp.Description("Newline-separated utterances")),
	), eps.classifyBatch, func(args map[string]any) (any, error) {
		locale, _ := args["locale"].(string)
		raw, _ := args["utterances"].(string)
		if locale == "" {
			return nil, fmt.Errorf("locale is required")
		}
		var texts []string
		for _, line := range strings.Split(raw, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				texts = append(texts, line)
			}
		}
		return &classifyBatchReq{Locale: locale, Texts: texts}, nil
	})

	kit.RegisterMCPTool(srv, mcp.NewTool("list_locales",
		mcp.WithDescription("List the locales with a loaded model (intent, utterance and feature counts)."),
	), eps.listLocales, func(map[string]any) (any, error) { return nil, nil })
}

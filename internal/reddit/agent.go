// Package reddit analyzes Reddit discussion for topics by driving a
// Bright Data MCP server with a Gemini tool-calling agent.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Atharva080324/TrueScan/internal/logger"
)

// ErrToolBudgetExceeded is returned when the agent keeps requesting tools
// past its call budget.
var ErrToolBudgetExceeded = errors.New("tool call budget exceeded")

// Generator runs a raw Gemini generate call. Satisfied by llm.Gemini.
type Generator interface {
	GenerateContent(
		ctx context.Context,
		contents []*genai.Content,
		cfg *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// ToolCaller exposes the MCP server's tools to the agent.
type ToolCaller interface {
	Tools(ctx context.Context) ([]ToolDef, error)
	Call(ctx context.Context, name string, args map[string]any) (string, error)
}

// AgentConfig configures the tool-calling loop.
type AgentConfig struct {
	// MaxToolCalls bounds the number of tool invocations per run.
	MaxToolCalls int
	// MaxTokens caps each model response.
	MaxTokens int32
}

// Agent is a bounded Gemini function-calling loop over MCP tools.
type Agent struct {
	gen   Generator
	tools ToolCaller
	cfg   AgentConfig
	log   logger.Logger
}

// NewAgent creates an agent.
func NewAgent(gen Generator, tools ToolCaller, cfg AgentConfig, log logger.Logger) *Agent {
	if cfg.MaxToolCalls <= 0 {
		cfg.MaxToolCalls = 8
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1500
	}
	return &Agent{gen: gen, tools: tools, cfg: cfg, log: log}
}

// Run executes the agent loop: the model may request tool calls, whose
// outputs are fed back until it produces a final text answer or exhausts
// its tool budget.
func (a *Agent) Run(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	toolDefs, err := a.tools.Tools(ctx)
	if err != nil {
		return "", fmt.Errorf("discover tools: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: a.cfg.MaxTokens,
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemPrompt)},
		}
	}
	if decls := toGeminiDeclarations(toolDefs); len(decls) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{genai.NewPartFromText(userPrompt)}},
	}

	calls := 0
	for {
		resp, err := a.gen.GenerateContent(ctx, contents, cfg)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", errors.New("no candidates in model response")
		}

		cand := resp.Candidates[0]
		contents = append(contents, cand.Content)

		functionCalls := collectFunctionCalls(cand.Content)
		if len(functionCalls) == 0 {
			text := collectText(cand.Content)
			if text == "" {
				return "", errors.New("empty model response")
			}
			return text, nil
		}

		var responseParts []*genai.Part
		for _, fc := range functionCalls {
			calls++
			if calls > a.cfg.MaxToolCalls {
				return "", fmt.Errorf("%w: limit %d", ErrToolBudgetExceeded, a.cfg.MaxToolCalls)
			}

			a.log.Debug("Agent tool call",
				logger.String("tool", fc.Name),
				logger.Int("call", calls),
			)

			output, callErr := a.tools.Call(ctx, fc.Name, fc.Args)
			if callErr != nil {
				if ctx.Err() != nil {
					return "", ctx.Err()
				}
				// Feed the failure back so the model can adjust.
				output = fmt.Sprintf("tool error: %v", callErr)
			}

			responseParts = append(responseParts,
				genai.NewPartFromFunctionResponse(fc.Name, map[string]any{"output": output}))
		}

		contents = append(contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: responseParts,
		})
	}
}

// collectFunctionCalls extracts function call parts from a content block.
func collectFunctionCalls(content *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, p := range content.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// collectText concatenates the text parts of a content block.
func collectText(content *genai.Content) string {
	var sb strings.Builder
	for _, p := range content.Parts {
		if p.Text != "" {
			sb.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

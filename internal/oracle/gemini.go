package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps the Gemini API for cognition and world generation.
type Client struct {
	model *genai.GenerativeModel
	gc    *genai.Client
}

// NewClient creates a Gemini client. Returns nil if apiKey is empty,
// which disables deliberate cognition and world generation.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	if modelName == "" {
		modelName = defaultModel
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{model: gc.GenerativeModel(modelName), gc: gc}, nil
}

// Enabled returns true if the client has a configured model.
func (c *Client) Enabled() bool {
	return c != nil && c.model != nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.gc == nil {
		return nil
	}
	return c.gc.Close()
}

// complete sends a prompt and returns the first text part of the reply.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("oracle not configured")
	}
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(text), nil
}

// Consult asks the model for the next deliberate action.
func (c *Client) Consult(ctx context.Context, snap Snapshot, stimulus string) (Decision, error) {
	prompt := consultPrompt(snap, stimulus)
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return Decision{}, err
	}
	d, err := decodeDecision(raw)
	if err != nil {
		return Decision{}, err
	}
	slog.Debug("oracle decision", "action", d.Action, "goal", d.Goal)
	return d, nil
}

// decodeDecision parses a consultation reply. A null or absent action
// is legitimate: the model may decide that a thought is the whole
// response. Only a reply carrying neither action nor monologue is an
// error.
func decodeDecision(raw string) (Decision, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return Decision{}, fmt.Errorf("no JSON object in consultation reply")
	}
	var d Decision
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return Decision{}, fmt.Errorf("parse decision: %w", err)
	}
	if d.Action == "" && d.Monologue == "" {
		return Decision{}, fmt.Errorf("decision carries no action and no monologue")
	}
	return d, nil
}

// ProposePlan asks the model to draft a multi-step plan toward a goal.
func (c *Client) ProposePlan(ctx context.Context, snap Snapshot, goal string) (PlanDraft, error) {
	prompt := planPrompt(snap, goal)
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return PlanDraft{}, err
	}
	payload := extractJSON(raw)
	if payload == "" {
		return PlanDraft{}, fmt.Errorf("no JSON object in plan reply")
	}
	var draft PlanDraft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return PlanDraft{}, fmt.Errorf("parse plan: %w", err)
	}
	if draft.Goal == "" {
		draft.Goal = goal
	}
	return draft, nil
}

// Freeform asks the model for unstructured prose.
func (c *Client) Freeform(ctx context.Context, prompt string) (string, error) {
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

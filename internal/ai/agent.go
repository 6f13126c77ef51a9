package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"retail-sense/internal/config"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("assistant is not configured")

// maxToolRounds bounds how many times the model may call tools for one question.
const maxToolRounds = 4

var tools = []*genai.Tool{
	{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "check_inventory",
				Description: "Search warehouse inventory. Use this to find ANY article details like inventoryID, name, category, quantity, stock status or unit price.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString, Description: "Optional text matched against item name, brand or category"},
					},
				},
			},
			{
				Name:        "list_low_stock",
				Description: "List articles at or below their reorder threshold.",
			},
			{
				Name:        "get_order_summary",
				Description: "Get order revenue and counts by status for a date range.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
						"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
					},
					Required: []string{"start_date", "end_date"},
				},
			},
			{
				Name:        "list_promotions",
				Description: "List promotions with their codes, discounts, validity and usage.",
			},
		},
	},
}

// RunAgent answers a back-office question, letting the model call the
// read-only tools above against db.
func RunAgent(ctx context.Context, cfg config.AssistantConfig, db *gorm.DB, userMessage string) (string, error) {
	if cfg.APIKey == "" {
		return "", ErrDisabled
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(cfg.Model)
	model.Tools = tools
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt(time.Now())))

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", err
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			result, err := ExecuteTool(ctx, db, call.Name, call.Args)
			if err != nil {
				zap.L().Warn("assistant tool failed", zap.String("tool", call.Name), zap.Error(err))
				result = map[string]any{"error": err.Error()}
			}
			replies = append(replies, genai.FunctionResponse{Name: call.Name, Response: result})
		}

		if resp, err = session.SendMessage(ctx, replies...); err != nil {
			return "", err
		}
	}

	return printResponse(resp), nil
}

func systemPrompt(now time.Time) string {
	return fmt.Sprintf(`Today is %s. You are the back-office assistant of a fashion retailer.

RULES:
1. If a manager asks about an article by NAME, call 'check_inventory' with that name; do not ask for an ID.
2. For stock levels, prices or details of articles, always read them from 'check_inventory'. Never guess numbers.
3. For "what should I reorder" questions use 'list_low_stock'.
4. For sales or revenue use 'get_order_summary'. Cancelled orders are already excluded from revenue.
5. For discounts and promo codes use 'list_promotions'.
6. You cannot change data. If asked to, explain which screen of the back office does it.`, now.Format("2006-01-02"))
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func printResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I could not find an answer to that."
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "I completed the action."
	}
	return sb.String()
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini calls the Gemini API through the official Go SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider for the given API key and model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Label() string { return g.model }

func (g *Gemini) Chat(ctx context.Context, messages []Message, tools []ToolDef) (Response, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		case RoleTool:
			// Tool results go back as function responses on the user side.
			var result interface{}
			if err := json.Unmarshal([]byte(m.Content), &result); err != nil {
				result = m.Content
			}
			part := genai.NewPartFromFunctionResponse(m.ToolName, map[string]interface{}{"result": result})
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))
		}
	}

	var cfg *genai.GenerateContentConfig
	if len(tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(tools))
		for _, t := range tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  toolDefSchema(t),
			})
		}
		cfg = &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{FunctionDeclarations: decls}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("gemini send: %w", err)
	}

	if calls := resp.FunctionCalls(); len(calls) > 0 {
		call := calls[0]
		args := make(map[string]json.RawMessage, len(call.Args))
		for k, v := range call.Args {
			b, _ := json.Marshal(v)
			args[k] = b
		}
		return Response{ToolCall: &ToolCall{ID: call.Name, Name: call.Name, Args: args}}, nil
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Response{}, fmt.Errorf("gemini returned empty content")
	}
	return Response{Text: text}, nil
}

// toolDefSchema converts a ToolDef's JSON-Schema parameters to genai.Schema.
// Only the flat object shapes our tool specs use are mapped.
func toolDefSchema(t ToolDef) *genai.Schema {
	schema := &genai.Schema{Type: genai.TypeObject}

	props, _ := t.Parameters["properties"].(map[string]interface{})
	if props == nil {
		return schema
	}

	schema.Properties = make(map[string]*genai.Schema, len(props))
	for name, rawProp := range props {
		propMap, ok := rawProp.(map[string]interface{})
		if !ok {
			continue
		}
		prop := &genai.Schema{}
		if desc, ok := propMap["description"].(string); ok {
			prop.Description = desc
		}
		switch propMap["type"] {
		case "integer":
			prop.Type = genai.TypeInteger
		case "boolean":
			prop.Type = genai.TypeBoolean
		default:
			prop.Type = genai.TypeString
		}
		schema.Properties[name] = prop
	}

	if req, ok := t.Parameters["required"].([]string); ok {
		schema.Required = req
	}
	return schema
}

var _ Provider = (*Gemini)(nil)

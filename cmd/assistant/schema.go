package main

import (
	"github.com/google/generative-ai-go/genai"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// functionTools turns the server's MCP tools into Gemini function declarations
func functionTools(tools []*sdkmcp.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  convertSchema(tool.InputSchema),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// convertSchema maps a decoded JSON schema onto the subset Gemini accepts.
// Anything it cannot read becomes an empty object schema.
func convertSchema(schema any) *genai.Schema {
	m, ok := schema.(map[string]any)
	if !ok {
		return &genai.Schema{Type: genai.TypeObject}
	}

	result := &genai.Schema{Type: schemaType(m["type"])}
	if desc, ok := m["description"].(string); ok {
		result.Description = desc
	}

	if enum, ok := m["enum"].([]any); ok {
		for _, v := range enum {
			if s, ok := v.(string); ok {
				result.Enum = append(result.Enum, s)
			}
		}
	}

	if required, ok := m["required"].([]any); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				result.Required = append(result.Required, s)
			}
		}
	}

	if props, ok := m["properties"].(map[string]any); ok {
		result.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			result.Properties[name] = convertSchema(prop)
		}
	}

	if items, ok := m["items"]; ok && result.Type == genai.TypeArray {
		result.Items = convertSchema(items)
	}

	return result
}

func schemaType(v any) genai.Type {
	// jsonschema allows a list such as ["null", "string"]
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok && s != "null" {
				v = s
				break
			}
		}
	}

	switch v {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}

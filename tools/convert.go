package tools

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// ToOpenAIFormat converts catalog tools to the OpenAI function-tool format.
// Both sides are JSON Schema; the input schema maps straight into
// FunctionParameters.
func ToOpenAIFormat(catalog []mcptypes.Tool) []openai.ChatCompletionToolUnionParam {
	if len(catalog) == 0 {
		return nil
	}

	result := make([]openai.ChatCompletionToolUnionParam, len(catalog))
	for i, tool := range catalog {
		params := openai.FunctionParameters{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}

		result[i] = openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  params,
			},
		)
	}
	return result
}

// ToAnthropicFormat converts catalog tools to Anthropic's tool-use format.
func ToAnthropicFormat(catalog []mcptypes.Tool) []anthropic.ToolUnionParam {
	if len(catalog) == 0 {
		return nil
	}

	result := make([]anthropic.ToolUnionParam, len(catalog))
	for i, tool := range catalog {
		inputSchema := anthropic.ToolInputSchemaParam{
			// Type defaults to "object" when omitted
			Properties: tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			inputSchema.Required = tool.InputSchema.Required
		}

		result[i] = anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: inputSchema,
			},
		}
	}
	return result
}

// ToOllamaFormat converts catalog tools to the Ollama API tool format.
func ToOllamaFormat(catalog []mcptypes.Tool) []api.Tool {
	if len(catalog) == 0 {
		return nil
	}

	result := make([]api.Tool, 0, len(catalog))
	for _, tool := range catalog {
		result = append(result, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  convertInputSchemaToOllama(tool.InputSchema),
			},
		})
	}
	return result
}

func convertInputSchemaToOllama(inputSchema mcptypes.ToolInputSchema) api.ToolFunctionParameters {
	params := api.ToolFunctionParameters{
		Type:       inputSchema.Type,
		Required:   inputSchema.Required,
		Properties: make(map[string]api.ToolProperty),
	}
	for propName, propValue := range inputSchema.Properties {
		params.Properties[propName] = convertOllamaProperty(propValue)
	}
	return params
}

func convertOllamaProperty(propValue any) api.ToolProperty {
	toolProp := api.ToolProperty{}

	propMap, ok := propValue.(map[string]any)
	if !ok {
		bytes, err := json.Marshal(propValue)
		if err != nil {
			return toolProp
		}
		var m map[string]any
		if err := json.Unmarshal(bytes, &m); err != nil {
			return toolProp
		}
		propMap = m
	}

	if typeVal, ok := propMap["type"]; ok {
		switch t := typeVal.(type) {
		case string:
			toolProp.Type = api.PropertyType{t}
		case []string:
			toolProp.Type = api.PropertyType(t)
		case []any:
			types := make([]string, 0, len(t))
			for _, v := range t {
				if s, ok := v.(string); ok {
					types = append(types, s)
				}
			}
			toolProp.Type = api.PropertyType(types)
		}
	}

	if desc, ok := propMap["description"].(string); ok {
		toolProp.Description = desc
	}

	if enumVal, ok := propMap["enum"]; ok {
		if enumSlice, ok := enumVal.([]any); ok {
			toolProp.Enum = enumSlice
		}
	}

	return toolProp
}

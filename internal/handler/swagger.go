package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/cashflow/cashflow-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec is the subset of an OpenAPI 3.0 document the API publishes
type OpenAPI3Spec struct {
	OpenAPI    string         `json:"openapi"`
	Info       map[string]any `json:"info"`
	Servers    []Server       `json:"servers"`
	Paths      map[string]any `json:"paths"`
	Components map[string]any `json:"components,omitempty"`
}

// Server is an OpenAPI 3.0 server entry
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

const (
	definitionsPrefix = "#/definitions/"
	schemasPrefix     = "#/components/schemas/"
)

// rewriteRefs points every $ref at components/schemas
func rewriteRefs(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, definitionsPrefix, schemasPrefix, 1)
				continue
			}
			out[key] = rewriteRefs(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return data
	}
}

// convertOperation moves body and formData parameters into a requestBody,
// wraps plain parameter types in a schema and response schemas in content.
func convertOperation(op map[string]any) map[string]any {
	out := make(map[string]any, len(op))
	for key, value := range op {
		switch key {
		case "parameters", "responses", "consumes", "produces":
		default:
			out[key] = rewriteRefs(value)
		}
	}

	consumes := mediaType(op["consumes"], "application/json")
	produces := mediaType(op["produces"], "application/json")

	var (
		params     []any
		formProps  = map[string]any{}
		formNeeded []any
	)
	raw, _ := op["parameters"].([]any)
	for _, p := range raw {
		param, ok := p.(map[string]any)
		if !ok {
			continue
		}
		switch param["in"] {
		case "body":
			out["requestBody"] = map[string]any{
				"description": param["description"],
				"required":    param["required"],
				"content": map[string]any{
					consumes: map[string]any{"schema": rewriteRefs(param["schema"])},
				},
			}
		case "formData":
			name, _ := param["name"].(string)
			prop := map[string]any{"type": param["type"], "description": param["description"]}
			if param["type"] == "file" {
				prop = map[string]any{"type": "string", "format": "binary", "description": param["description"]}
			}
			formProps[name] = prop
			if required, _ := param["required"].(bool); required {
				formNeeded = append(formNeeded, name)
			}
		default:
			params = append(params, convertParameter(param))
		}
	}
	if len(formProps) > 0 {
		schema := map[string]any{"type": "object", "properties": formProps}
		if len(formNeeded) > 0 {
			schema["required"] = formNeeded
		}
		out["requestBody"] = map[string]any{
			"content": map[string]any{consumes: map[string]any{"schema": schema}},
		}
	}
	if len(params) > 0 {
		out["parameters"] = params
	}

	responses := map[string]any{}
	rawResponses, _ := op["responses"].(map[string]any)
	for code, r := range rawResponses {
		resp, ok := r.(map[string]any)
		if !ok {
			continue
		}
		converted := map[string]any{"description": resp["description"]}
		if schema, ok := resp["schema"]; ok {
			converted["content"] = map[string]any{produces: map[string]any{"schema": rewriteRefs(schema)}}
		}
		if headers, ok := resp["headers"].(map[string]any); ok {
			h := make(map[string]any, len(headers))
			for name, header := range headers {
				if hv, ok := header.(map[string]any); ok {
					h[name] = map[string]any{
						"description": hv["description"],
						"schema":      map[string]any{"type": hv["type"]},
					}
				}
			}
			converted["headers"] = h
		}
		responses[code] = converted
	}
	out["responses"] = responses
	return out
}

// convertParameter wraps the type fields of a Swagger 2.0 parameter in a schema
func convertParameter(param map[string]any) map[string]any {
	out := make(map[string]any)
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			out[field] = val
		}
	}

	schema := make(map[string]any)
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = rewriteRefs(val)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

func mediaType(v any, fallback string) string {
	if list, ok := v.([]any); ok && len(list) > 0 {
		if s, ok := list[0].(string); ok {
			return s
		}
	}
	return fallback
}

// ServeOpenAPI3Spec serves the generated Swagger 2.0 document converted to
// OpenAPI 3.0. The server entry points at the host the request came in on.
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read API documentation")
	}

	var swagger2 map[string]any
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse API documentation")
	}

	info, _ := swagger2["info"].(map[string]any)
	basePath, _ := swagger2["basePath"].(string)

	paths := make(map[string]any)
	rawPaths, _ := swagger2["paths"].(map[string]any)
	for path, item := range rawPaths {
		methods, ok := item.(map[string]any)
		if !ok {
			continue
		}
		converted := make(map[string]any, len(methods))
		for method, op := range methods {
			if operation, ok := op.(map[string]any); ok {
				converted[method] = convertOperation(operation)
			}
		}
		paths[path] = converted
	}

	components := make(map[string]any)
	if definitions, ok := swagger2["definitions"].(map[string]any); ok {
		components["schemas"] = rewriteRefs(definitions)
	}

	return c.JSON(http.StatusOK, OpenAPI3Spec{
		OpenAPI: "3.0.3",
		Info:    info,
		Servers: []Server{
			{URL: c.Scheme() + "://" + c.Request().Host + basePath, Description: "This server"},
		},
		Paths:      paths,
		Components: components,
	})
}

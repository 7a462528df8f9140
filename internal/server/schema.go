package server

// ToolSpec describes the service operations so agents and clients can
// register them.
func ToolSpec() map[string]interface{} {
	params := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"is_latex":      prop("boolean", "response is LaTeX"),
			"symbols":       prop("object", "symbol name -> {latex, aliases}"),
			"atol":          prop("number", "absolute tolerance when rationalizing decimals"),
			"rtol":          prop("number", "relative tolerance when rationalizing decimals"),
			"strict_syntax": prop("boolean", "reject implicit multiplication"),
			"rationalise":   prop("boolean", "convert decimals to fractions while parsing"),
			"simplify":      prop("boolean", "simplify while parsing"),
		},
	}
	return map[string]interface{}{
		"tools": []map[string]interface{}{
			tool("evaluate", "Grade a response against an expected answer",
				[]string{"response", "answer"},
				map[string]interface{}{
					"response": prop("string", "student response"),
					"answer":   prop("string", "expected answer"),
					"params":   params,
				}),
			tool("preview", "Render a response as LaTeX and plain text",
				[]string{"response"},
				map[string]interface{}{
					"response": prop("string", "student response"),
					"params":   params,
				}),
		},
	}
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func tool(name, description string, required []string, props map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": props,
			"required":   required,
		},
	}
}

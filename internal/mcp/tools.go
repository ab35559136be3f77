package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "analyze_resume",
		Description: "Score résumé text against the configured keyword profiles. Returns the ATS score, matched counts, missing keywords and sections, and sentence-level feedback.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Plain text of the résumé",
				},
				"domain": map[string]interface{}{
					"type":        "string",
					"description": "Score against this profile instead of classifying (case-insensitive)",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Name recorded with the analysis when history is enabled (default: mcp)",
				},
				"save": map[string]interface{}{
					"type":        "boolean",
					"description": "Record the analysis in history (requires history to be enabled)",
				},
			},
			"required": []string{"text"},
		},
	},
	{
		Name:        "list_profiles",
		Description: "List the configured domain profiles with their keywords, and the section headers every résumé is checked for.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
	{
		Name:        "list_history",
		Description: "List past analyses, newest first. Only available when history is enabled.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"domain": map[string]interface{}{
					"type":        "string",
					"description": "Only show analyses scored against this domain",
				},
				"since_days": map[string]interface{}{
					"type":        "integer",
					"description": "Only show analyses from the last N days",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_analysis",
		Description: "Get a stored analysis by ID.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Analysis ID as shown by list_history",
				},
			},
			"required": []string{"id"},
		},
	},
}

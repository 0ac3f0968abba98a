package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// parseArgs decodes a tool-call argument string. The agent retries on
// its own when it gets the parse error back as an observation.
func parseArgs(arguments string, v interface{}) error {
	if err := json.Unmarshal([]byte(arguments), v); err != nil {
		return fmt.Errorf("parsing JSON input: %v", err)
	}
	return nil
}

func prettyJSON(raw json.RawMessage) string {
	if raw == nil {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

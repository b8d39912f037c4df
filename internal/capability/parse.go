package capability

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrParseResponse indicates a model response that could not be decoded.
var ErrParseResponse = errors.New("capability: unparseable response")

var jsonBlockRegex = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// decodeResponse parses a model response into out. Direct JSON is
// attempted first, then JSON wrapped in a markdown code block.
func decodeResponse(content string, out any) error {
	content = strings.TrimSpace(content)
	if err := json.Unmarshal([]byte(content), out); err == nil {
		return nil
	}

	matches := jsonBlockRegex.FindStringSubmatch(content)
	if len(matches) >= 2 {
		cleaned := strings.TrimSpace(matches[1])
		if err := json.Unmarshal([]byte(cleaned), out); err == nil {
			return nil
		}
	}

	return ErrParseResponse
}

func clampConfidence(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

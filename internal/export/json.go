// =============================================================================
// DATANORM-AZ Processor - JSON Screen Output
// =============================================================================
//
// Renders query results as indented JSON with vertically aligned colons,
// which keeps wide price records readable on a terminal. Alignment is a
// screen-output concern only; exported files never pass through here.
//
// =============================================================================

package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are numbers on screen, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// RenderJSON marshals v with two-space indentation and aligns the colons
// of each indentation level.
func RenderJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}
	return AlignColons(string(data)), nil
}

var keyLinePattern = regexp.MustCompile(`^(\s+)"([^"]+)":\s+(.+)$`)

// AlignColons pads the keys of an indented JSON document so that all colons
// at the same indentation depth line up.
func AlignColons(jsonStr string) string {
	lines := strings.Split(jsonStr, "\n")
	if len(lines) <= 1 {
		return jsonStr
	}

	// Longest key per indentation depth.
	maxKeyLen := make(map[int]int)
	for _, line := range lines {
		match := keyLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		indent, key := len(match[1]), len(match[2])
		if key > maxKeyLen[indent] {
			maxKeyLen[indent] = key
		}
	}
	if len(maxKeyLen) == 0 {
		return jsonStr
	}

	result := make([]string, len(lines))
	for i, line := range lines {
		match := keyLinePattern.FindStringSubmatch(line)
		if match == nil {
			result[i] = line
			continue
		}
		indent, key, value := match[1], match[2], match[3]
		padding := strings.Repeat(" ", maxKeyLen[len(indent)]-len(key))
		result[i] = fmt.Sprintf("%s%s%q: %s", indent, padding, key, value)
	}
	return strings.Join(result, "\n")
}

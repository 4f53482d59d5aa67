// https://rapidapi.com/dream-interpretation/api/ai-dream-interpretation-dream-dictionary-dream-analysis
package rapidapi

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/at-ishikawa/dreamer/internal/interpretation"
)

// meaningFields are probed in order on an object payload.
var meaningFields = []string{"meaning", "interpretation", "result", "description", "text"}

// ExtractMeaning pulls the meaning text out of a dream dictionary payload whose
// shape is not fixed. It returns an error wrapping interpretation.ErrNoResult
// for malformed, scalar, or empty payloads.
func ExtractMeaning(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("malformed payload: %s > %w", truncate(string(body)), interpretation.ErrNoResult)
	}

	payload := gjson.ParseBytes(body)
	switch {
	case payload.IsObject():
		return meaningFromObject(payload)
	case payload.IsArray():
		return meaningFromArray(payload)
	}
	return "", fmt.Errorf("unexpected payload: %s > %w", truncate(payload.Raw), interpretation.ErrNoResult)
}

func meaningFromObject(payload gjson.Result) (string, error) {
	if len(payload.Map()) == 0 {
		return "", fmt.Errorf("empty object > %w", interpretation.ErrNoResult)
	}

	for _, field := range meaningFields {
		if text := fieldText(payload.Get(field)); text != "" {
			return text, nil
		}
	}

	var parts []string
	payload.ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String && value.String() != "" {
			parts = append(parts, value.String())
		}
		return true
	})
	if len(parts) > 0 {
		return strings.Join(parts, "\n"), nil
	}
	return payload.Raw, nil
}

func meaningFromArray(payload gjson.Result) (string, error) {
	items := payload.Array()
	if len(items) == 0 {
		return "", fmt.Errorf("empty array > %w", interpretation.ErrNoResult)
	}

	first := items[0]
	switch {
	case first.Type == gjson.String && first.String() != "":
		return first.String(), nil
	case first.IsObject():
		var text string
		first.ForEach(func(_, value gjson.Result) bool {
			if value.Type == gjson.String && value.String() != "" {
				text = value.String()
				return false
			}
			return true
		})
		if text != "" {
			return text, nil
		}
	}
	return payload.Raw, nil
}

// fieldText returns a probed field as text. Falsy values (missing, null, false,
// 0, "", [] and {}) count as absent; other non-string values are kept as JSON.
func fieldText(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return value.String()
	case gjson.Null, gjson.False:
		return ""
	case gjson.Number:
		if value.Num == 0 {
			return ""
		}
		return value.Raw
	case gjson.True:
		return value.Raw
	case gjson.JSON:
		if value.IsArray() && len(value.Array()) == 0 {
			return ""
		}
		if value.IsObject() && len(value.Map()) == 0 {
			return ""
		}
		return value.Raw
	}
	return ""
}

func truncate(s string) string {
	const limit = 200
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

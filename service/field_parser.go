package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

// fieldParser turns a candidate JSON-ish span into named amounts. Parsers are
// tried in order of decreasing strictness; the first success wins.
type fieldParser func(span string) (map[string]float64, error)

var fieldParsers = []fieldParser{
	parseStrictJSON,
	parseLooseLiteral,
}

// braceSpan returns the greedy first-'{' to last-'}' span of the reply. Model
// replies often wrap the object in prose or code fences, so the match is over
// the whole text, not line-anchored.
func braceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func parseStrictJSON(span string) (map[string]float64, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, err
	}
	return amountsFrom(raw)
}

// parseLooseLiteral repairs the dialects models actually emit: single-quoted
// keys, Python literals, trailing commas. The repaired text must then pass a
// strict parse.
func parseLooseLiteral(span string) (map[string]float64, error) {
	repaired := strings.ReplaceAll(span, "'", `"`)
	repaired = strings.ReplaceAll(repaired, "None", "null")
	repaired = strings.ReplaceAll(repaired, "True", "true")
	repaired = strings.ReplaceAll(repaired, "False", "false")
	repaired = strings.ReplaceAll(repaired, ",}", "}")
	repaired = strings.ReplaceAll(repaired, ", }", "}")
	repaired = strings.ReplaceAll(repaired, ",]", "]")

	var raw map[string]any
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		return nil, err
	}
	return amountsFrom(raw)
}

// amountsFrom keeps only the nine expected keys, coercing numbers and numeric
// strings. A value of the wrong type is treated as absent rather than failing
// the record. Only a completely empty object is rejected; a non-empty object
// with no recognized keys is a valid parse whose fields all default to 0.
func amountsFrom(raw map[string]any) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty object")
	}
	out := make(map[string]float64, len(dto.FieldNames))
	for _, name := range dto.FieldNames {
		v, ok := raw[name]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			out[name] = t
		case string:
			out[name] = dto.ParseAmount(t)
		case nil:
			// treat as absent
		default:
			// booleans, arrays etc. carry no amount
		}
	}
	return out, nil
}

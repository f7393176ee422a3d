// Package normalize coerces loosely-structured provider responses into the
// canonical scene fields. Every function is total: malformed input resolves
// to a safe default, never an error.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"talespin/pkg/utils"
)

const (
	// DefaultText is returned when the provider gave nothing usable.
	DefaultText = "The adventure continues..."
	// RecoveryText is returned when inspecting the response itself blew up.
	RecoveryText = "The story continues..."
)

// DefaultChoices returns a fresh copy of the fallback action triple.
func DefaultChoices() []string {
	return []string{
		"Continue exploring",
		"Take a different path",
		"Stop and observe your surroundings",
	}
}

// Kind tags the recognized shapes of a provider response envelope.
type Kind int

const (
	Unrecognized Kind = iota
	PlainString
	ObjectWithOutput
	ObjectWithTextLike
	ArrayOfStrings
)

var textKeys = []string{"output", "text", "content", "response", "message"}

// Classify inspects a decoded provider response and tags its shape.
func Classify(raw any) Kind {
	switch v := raw.(type) {
	case string:
		return PlainString
	case []string, []any:
		return ArrayOfStrings
	case map[string]any:
		if _, ok := v["output"].(string); ok {
			return ObjectWithOutput
		}
		for _, k := range textKeys {
			if _, ok := v[k]; ok {
				return ObjectWithTextLike
			}
		}
		if _, ok := v["data"]; ok {
			return ObjectWithTextLike
		}
	}
	return Unrecognized
}

// Text extracts narrative text from a raw provider response.
func Text(raw any) (out string) {
	defer func() {
		if recover() != nil {
			out = RecoveryText
		}
	}()

	if raw == nil {
		return DefaultText
	}

	switch Classify(raw) {
	case PlainString:
		s := raw.(string)
		if strings.TrimSpace(s) == "" {
			return DefaultText
		}
		// Some gateways wrap the completion in {"output": "..."} and send it
		// as a string body.
		var obj map[string]any
		if err := json.Unmarshal([]byte(s), &obj); err == nil {
			if v, ok := obj["output"].(string); ok && v != "" {
				return v
			}
		}
		return s
	case ObjectWithOutput, ObjectWithTextLike:
		m := raw.(map[string]any)
		if d, ok := m["data"]; ok {
			if v := textFrom(d); v != "" {
				return v
			}
		}
		if v := textFrom(m); v != "" {
			return v
		}
		return stringify(raw)
	default:
		return stringify(raw)
	}
}

// textFrom pulls a usable string out of a string or object value, checking
// the known text-carrying keys in priority order.
func textFrom(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for _, k := range textKeys {
			if s, ok := t[k].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// stringify is the last resort: surface the whole structure rather than lose
// it silently.
func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil || len(b) == 0 || string(b) == "null" {
		return RecoveryText
	}
	return string(b)
}

// Choices extracts exactly three choices from a raw provider response.
func Choices(raw any) (out []string) {
	defer func() {
		if recover() != nil {
			out = DefaultChoices()
		}
	}()

	switch v := raw.(type) {
	case nil:
		return DefaultChoices()
	case []string:
		return finalize(v)
	case []any:
		return finalize(coerceStrings(v))
	case string:
		return finalize(extract(v))
	case map[string]any:
		payload, ok := payloadOf(v)
		if !ok {
			return DefaultChoices()
		}
		switch p := payload.(type) {
		case []string:
			return finalize(p)
		case []any:
			return finalize(coerceStrings(p))
		case string:
			return finalize(extract(p))
		}
		return DefaultChoices()
	}
	return DefaultChoices()
}

var payloadKeys = []string{"choices", "options", "output", "text", "content", "response", "message", "data"}

func payloadOf(m map[string]any) (any, bool) {
	for _, k := range payloadKeys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

var (
	fencedArrayRX = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")
	quotedRX      = regexp.MustCompile(`"([^"\n]+)"`)
	listMarkerRX  = regexp.MustCompile(`^\s*(?:[-*•]+|\(?\d+[.)]?)\s*`)
)

// extract runs the layered parse cascade over free-form model output:
// fenced JSON array, then bare JSON array, then quoted substrings, then
// list-looking lines. The first extraction that yields anything wins.
func extract(s string) []string {
	if m := fencedArrayRX.FindStringSubmatch(s); m != nil {
		if got := parseArray(m[1]); len(got) > 0 {
			return got
		}
	}

	if cleaned := utils.CleanJSON(s); strings.HasPrefix(cleaned, "[") {
		if got := parseArray(cleaned); len(got) > 0 {
			return got
		}
	}

	if ms := quotedRX.FindAllStringSubmatch(s, -1); len(ms) > 0 {
		got := make([]string, 0, len(ms))
		for _, m := range ms {
			got = append(got, m[1])
		}
		return got
	}

	return listLines(s)
}

func parseArray(s string) []string {
	var arr []any
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil
	}
	return coerceStrings(arr)
}

func coerceStrings(in []any) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if s := textFrom(t); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// listLines treats the output as an enumerated list. A single bare line is
// prose, not a list, so it does not count as an extraction.
func listLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "```") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "options") || strings.Contains(lower, "choices") {
			continue
		}
		line = strings.TrimSpace(listMarkerRX.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == 3 {
			break
		}
	}
	if len(out) < 2 {
		return nil
	}
	return out
}

// finalize trims, drops near-duplicates, pads with defaults and truncates so
// the result is always exactly three entries.
func finalize(in []string) []string {
	out := make([]string, 0, 3)
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || similarToAny(out, c) {
			continue
		}
		out = append(out, c)
		if len(out) == 3 {
			return out
		}
	}
	for _, d := range DefaultChoices() {
		if len(out) == 3 {
			return out
		}
		if !similarToAny(out, d) {
			out = append(out, d)
		}
	}
	for i, d := 0, DefaultChoices(); len(out) < 3; i++ {
		out = append(out, d[i%3])
	}
	return out
}

func similarToAny(have []string, c string) bool {
	for _, h := range have {
		if utils.Similarity(h, c) >= 0.9 {
			return true
		}
	}
	return false
}

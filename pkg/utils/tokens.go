package utils

import (
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

func NumTokens(text string) (int, error) {
	tkm, err := tiktoken.EncodingForModel("gpt-4-0613")
	if err != nil {
		return 0, err
	}

	return len(tkm.Encode(text, nil, nil)), nil
}

// TrimToTokens keeps at most budget tokens from the end of text, so the most
// recent narrative survives. Falls back to a rune cut when the encoding is
// unavailable (offline, unknown model).
func TrimToTokens(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	tkm, err := tiktoken.EncodingForModel("gpt-4-0613")
	if err != nil {
		return trimRunesFromFront(text, budget*4)
	}
	tokens := tkm.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}
	return tkm.Decode(tokens[len(tokens)-budget:])
}

func trimRunesFromFront(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[len(r)-n:])
}

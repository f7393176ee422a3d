package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var ChoiceListSchema = generateSchema[ChoiceList]()

// ChoicesResponseFormat asks the model for a strict JSON object holding the
// three next actions. Providers that ignore response formats still get the
// normalization cascade applied to whatever they return.
func ChoicesResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "story_choices",
		Description: openai.String("Three distinct actions the player can take next"),
		Schema:      ChoiceListSchema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}

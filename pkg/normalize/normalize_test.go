package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlainString(t *testing.T) {
	assert.Equal(t, "You step into the clearing.", Text("You step into the clearing."))
}

func TestTextDefaults(t *testing.T) {
	assert.Equal(t, DefaultText, Text(nil))
	assert.Equal(t, DefaultText, Text(""))
	assert.Equal(t, DefaultText, Text("   "))
}

func TestTextStringEmbeddedOutput(t *testing.T) {
	assert.Equal(t, "The cave mouth yawns.", Text(`{"output":"The cave mouth yawns."}`))
	// unparseable strings come back verbatim
	assert.Equal(t, `{"output": truncated`, Text(`{"output": truncated`))
}

func TestTextObjectShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"output field", map[string]any{"output": "from output"}, "from output"},
		{"text field", map[string]any{"text": "from text"}, "from text"},
		{"data holding string", map[string]any{"data": "from data"}, "from data"},
		{"data holding object", map[string]any{"data": map[string]any{"content": "nested content"}}, "nested content"},
		{"data priority order", map[string]any{"data": map[string]any{"message": "low", "output": "high"}}, "high"},
		{"response field via data", map[string]any{"data": map[string]any{"response": "resp"}}, "resp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.raw))
		})
	}
}

func TestTextStringifiesUnknownShapes(t *testing.T) {
	got := Text(map[string]any{"foo": "bar"})
	assert.Equal(t, `{"foo":"bar"}`, got)

	got = Text([]any{"a", "b"})
	assert.Equal(t, `["a","b"]`, got)
}

func TestTextNeverEmpty(t *testing.T) {
	inputs := []any{
		nil, "", "  ", 42, 3.14, true,
		[]any{}, map[string]any{}, map[string]any{"data": nil},
		map[string]any{"output": 7},
	}
	for _, raw := range inputs {
		assert.NotEmpty(t, Text(raw), "input %#v", raw)
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []any{
		"plain", `{"output":"x"}`, map[string]any{"text": "y"}, nil, []any{"z"},
	}
	for _, raw := range inputs {
		assert.Equal(t, Text(raw), Text(raw))
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, PlainString, Classify("hi"))
	assert.Equal(t, ArrayOfStrings, Classify([]string{"a"}))
	assert.Equal(t, ArrayOfStrings, Classify([]any{"a"}))
	assert.Equal(t, ObjectWithOutput, Classify(map[string]any{"output": "a"}))
	assert.Equal(t, ObjectWithTextLike, Classify(map[string]any{"content": "a"}))
	assert.Equal(t, ObjectWithTextLike, Classify(map[string]any{"data": "a"}))
	assert.Equal(t, Unrecognized, Classify(42))
	assert.Equal(t, Unrecognized, Classify(map[string]any{"foo": "a"}))
}

func TestChoicesArrayPassthrough(t *testing.T) {
	got := Choices([]string{"Open the door", "Run away", "Shout for help"})
	assert.Equal(t, []string{"Open the door", "Run away", "Shout for help"}, got)
}

func TestChoicesFencedJSONRoundTrip(t *testing.T) {
	raw := "Here you go:\n```json\n[\"Enter the tower\",\"Circle around the walls\",\"Signal the guards\"]\n```\n"
	got := Choices(raw)
	assert.Equal(t, []string{"Enter the tower", "Circle around the walls", "Signal the guards"}, got)
}

func TestChoicesBareJSONArray(t *testing.T) {
	got := Choices(`["Dig deeper","Seal the tunnel","Mark the spot and leave"]`)
	assert.Equal(t, []string{"Dig deeper", "Seal the tunnel", "Mark the spot and leave"}, got)
}

func TestChoicesQuotedSubstrings(t *testing.T) {
	raw := `Your options are: 1. "Cross the bridge" 2. "Wade through the river" 3. "Camp until morning"`
	got := Choices(raw)
	assert.Equal(t, []string{"Cross the bridge", "Wade through the river", "Camp until morning"}, got)
}

func TestChoicesNumberedLines(t *testing.T) {
	raw := "1. Climb the rigging\n2. Hide below deck\n3. Confront the captain"
	got := Choices(raw)
	assert.Equal(t, []string{"Climb the rigging", "Hide below deck", "Confront the captain"}, got)
}

func TestChoicesLineFiltering(t *testing.T) {
	raw := "Here are the choices:\n```\n- Follow the tracks\n- Double back quietly\n- Light a torch\n```"
	got := Choices(raw)
	assert.Equal(t, []string{"Follow the tracks", "Double back quietly", "Light a torch"}, got)
}

func TestChoicesProseNormalizesToDefaults(t *testing.T) {
	got := Choices("no quotes or brackets here")
	assert.Equal(t, DefaultChoices(), got)
}

func TestChoicesDefaults(t *testing.T) {
	for _, raw := range []any{nil, 42, []string{}, []any{}, map[string]any{}, map[string]any{"usage": 12}, ""} {
		assert.Equal(t, DefaultChoices(), Choices(raw), "input %#v", raw)
	}
}

func TestChoicesObjectPayloads(t *testing.T) {
	got := Choices(map[string]any{"choices": []any{"March north", "Hold position", "Send a scout"}})
	assert.Equal(t, []string{"March north", "Hold position", "Send a scout"}, got)

	got = Choices(map[string]any{"output": "```json\n[\"Knock twice\",\"Pick the lock\",\"Walk away\"]\n```"})
	assert.Equal(t, []string{"Knock twice", "Pick the lock", "Walk away"}, got)
}

func TestChoicesPadsWithDefaults(t *testing.T) {
	got := Choices([]string{"Swim for the shore"})
	require.Len(t, got, 3)
	assert.Equal(t, "Swim for the shore", got[0])
	assert.Equal(t, "Continue exploring", got[1])
	assert.Equal(t, "Take a different path", got[2])
}

func TestChoicesTruncatesToThree(t *testing.T) {
	got := Choices([]string{"First move", "Second move", "Third move", "Fourth move", "Fifth move"})
	assert.Equal(t, []string{"First move", "Second move", "Third move"}, got)
}

func TestChoicesDropsNearDuplicates(t *testing.T) {
	got := Choices([]string{"Open the door", "Open the door!", "Climb out the window"})
	require.Len(t, got, 3)
	assert.Equal(t, "Open the door", got[0])
	assert.Equal(t, "Climb out the window", got[1])
	assert.Equal(t, "Continue exploring", got[2])
}

func TestChoicesAlwaysThreeNonEmpty(t *testing.T) {
	inputs := []any{
		nil, "", "garbage", "```broken fence", `"one quoted"`,
		[]string{"", "  ", "x"}, map[string]any{"text": "\n\n\n"},
		map[string]any{"choices": "options: none"}, 99,
	}
	for _, raw := range inputs {
		got := Choices(raw)
		require.Len(t, got, 3, "input %#v", raw)
		for _, c := range got {
			assert.NotEmpty(t, c, "input %#v", raw)
		}
	}
}

func TestChoicesIdempotent(t *testing.T) {
	inputs := []any{
		"1. Go\n2. Stay\n3. Run", []string{"a1", "b2", "c3"}, nil,
		map[string]any{"output": `["x y","z w","q r"]`},
	}
	for _, raw := range inputs {
		assert.Equal(t, Choices(raw), Choices(raw))
	}
}

package schema

// Scene is one step of the story as returned to the client. ImageURL and
// AudioURL are nil when the corresponding generation degraded. Choices always
// holds exactly three entries by the time a Scene leaves the generator.
type Scene struct {
	Text     string   `json:"text"`
	ImageURL *string  `json:"imageUrl"`
	AudioURL *string  `json:"audioUrl"`
	Choices  []string `json:"choices"`
}

// Clone returns a deep copy so history entries are not aliased by the
// current scene.
func (s Scene) Clone() Scene {
	out := s
	if s.ImageURL != nil {
		v := *s.ImageURL
		out.ImageURL = &v
	}
	if s.AudioURL != nil {
		v := *s.AudioURL
		out.AudioURL = &v
	}
	out.Choices = append([]string(nil), s.Choices...)
	return out
}

// ChoiceList is the structured-outputs shape requested from the choices call.
type ChoiceList struct {
	Choices []string `json:"choices" jsonschema_description:"Exactly three distinct next actions the player can take, each a short imperative sentence"`
}

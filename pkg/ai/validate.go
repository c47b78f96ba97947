package ai

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/narrative.schema.json
var narrativeSchemaJSON string

var narrativeSchema = jsonschema.MustCompileString("narrative.schema.json", narrativeSchemaJSON)

// ValidateNarrative parses the reasoning service reply and rejects anything
// that deviates from the narrative schema.
func ValidateNarrative(content []byte) (Narrative, error) {
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return Narrative{}, fmt.Errorf("%w: empty content", ErrInvalidNarrative)
	}

	var document interface{}
	if err := json.Unmarshal([]byte(trimmed), &document); err != nil {
		return Narrative{}, fmt.Errorf("%w: parse json: %v", ErrInvalidNarrative, err)
	}

	if err := narrativeSchema.Validate(document); err != nil {
		return Narrative{}, fmt.Errorf("%w: %v", ErrInvalidNarrative, err)
	}

	var narrative Narrative
	if err := json.Unmarshal([]byte(trimmed), &narrative); err != nil {
		return Narrative{}, fmt.Errorf("%w: decode narrative: %v", ErrInvalidNarrative, err)
	}

	return narrative, nil
}

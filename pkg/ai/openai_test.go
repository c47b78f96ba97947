package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	content string
	err     error
	noReply bool
	request openai.ChatCompletionRequest
}

func (s *stubCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.request = request
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	if s.noReply {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Model: "test-model",
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: s.content}},
		},
		Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 20},
	}, nil
}

const validNarrative = `{
  "improvement_recommendations": ["Run one more mock interview"],
  "prioritized_actions": ["Finish the system design checklist", "Review company news"],
  "strength_areas": ["Company research"],
  "weakness_areas": ["Practice hours"],
  "predicted_outcome": "possible"
}`

func TestNarrateReturnsValidatedNarrative(t *testing.T) {
	stub := &stubCompleter{content: validNarrative}
	narrator := newOpenAINarrator(stub, OpenAIConfig{Logger: zerolog.Nop()})

	narrative, err := narrator.Narrate(context.Background(), NarrativeInput{
		JobTitle:           "Backend Engineer",
		OverallProbability: 74,
		ConfidenceLevel:    "high",
		PendingTasks:       []string{"System design drill"},
	})
	require.NoError(t, err)
	require.Equal(t, OutcomePossible, narrative.PredictedOutcome)
	require.Len(t, narrative.PrioritizedActions, 2)
	require.Equal(t, "test-model", narrative.Raw["model"])

	require.Equal(t, openai.GPT4oMini, stub.request.Model)
	require.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, stub.request.ResponseFormat.Type)
	userPrompt := stub.request.Messages[1].Content
	require.True(t, strings.Contains(userPrompt, "Overall success probability: 74"))
	require.True(t, strings.Contains(userPrompt, "- System design drill"))
}

func TestNarrateWrapsTransportErrors(t *testing.T) {
	narrator := newOpenAINarrator(&stubCompleter{err: errors.New("connection refused")}, OpenAIConfig{})

	_, err := narrator.Narrate(context.Background(), NarrativeInput{})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNarrativeUnavailable))
}

func TestNarrateKeepsDeadlineErrors(t *testing.T) {
	narrator := newOpenAINarrator(&stubCompleter{err: fmt.Errorf("post: %w", context.DeadlineExceeded)}, OpenAIConfig{})

	_, err := narrator.Narrate(context.Background(), NarrativeInput{})
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	require.False(t, errors.Is(err, ErrNarrativeUnavailable))
}

func TestNarrateRejectsEmptyChoices(t *testing.T) {
	narrator := newOpenAINarrator(&stubCompleter{noReply: true}, OpenAIConfig{})

	_, err := narrator.Narrate(context.Background(), NarrativeInput{})
	require.True(t, errors.Is(err, ErrNarrativeUnavailable))
}

func TestNarrateRejectsSchemaViolations(t *testing.T) {
	narrator := newOpenAINarrator(&stubCompleter{content: `{"predicted_outcome": "likely"}`}, OpenAIConfig{})

	_, err := narrator.Narrate(context.Background(), NarrativeInput{})
	require.True(t, errors.Is(err, ErrInvalidNarrative))
}

func TestNewOpenAINarratorRequiresKey(t *testing.T) {
	_, err := NewOpenAINarrator(OpenAIConfig{})
	require.Error(t, err)
}

func TestValidateNarrative(t *testing.T) {
	cases := []struct {
		name    string
		content string
		valid   bool
	}{
		{name: "valid", content: validNarrative, valid: true},
		{name: "empty arrays", content: `{"improvement_recommendations":[],"prioritized_actions":[],"strength_areas":[],"weakness_areas":[],"predicted_outcome":"uncertain"}`, valid: true},
		{name: "not json", content: "Sure! Here is your plan:", valid: false},
		{name: "blank", content: "   ", valid: false},
		{name: "missing key", content: `{"improvement_recommendations":[],"prioritized_actions":[],"strength_areas":[],"predicted_outcome":"likely"}`, valid: false},
		{name: "bad enum", content: `{"improvement_recommendations":[],"prioritized_actions":[],"strength_areas":[],"weakness_areas":[],"predicted_outcome":"certain"}`, valid: false},
		{name: "non string item", content: `{"improvement_recommendations":[1],"prioritized_actions":[],"strength_areas":[],"weakness_areas":[],"predicted_outcome":"likely"}`, valid: false},
		{name: "rewritten score", content: `{"improvement_recommendations":[],"prioritized_actions":[],"strength_areas":[],"weakness_areas":[],"predicted_outcome":"likely","overall_probability":99}`, valid: false},
		{name: "array root", content: `[]`, valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateNarrative([]byte(tc.content))
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, ErrInvalidNarrative))
		})
	}
}

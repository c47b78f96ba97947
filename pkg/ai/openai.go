package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "careerprep",
		Subsystem: "ai",
		Name:      "narrative_duration_seconds",
		Help:      "Duration of narrative generation requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careerprep",
		Subsystem: "ai",
		Name:      "narrative_failures_total",
		Help:      "Number of narrative generation failures",
	}, []string{"model", "reason"})
)

// OpenAIConfig defines configuration options for the OpenAI narrator.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// chatCompleter is the subset of the OpenAI client the narrator needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAINarrator implements Narrator against the OpenAI chat completion API.
type OpenAINarrator struct {
	client chatCompleter
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAINarrator builds a narrator using the provided configuration.
func NewOpenAINarrator(cfg OpenAIConfig) (*OpenAINarrator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return newOpenAINarrator(openai.NewClientWithConfig(config), cfg), nil
}

func newOpenAINarrator(client chatCompleter, cfg OpenAIConfig) *OpenAINarrator {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 800
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &OpenAINarrator{
		client: client,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/noah-isme/career-prep-api/pkg/ai/openai"),
		logger: logger,
	}
}

// Model returns the configured model name.
func (n *OpenAINarrator) Model() string {
	return n.cfg.Model
}

// Narrate sends the computed scores to OpenAI and validates the reply.
func (n *OpenAINarrator) Narrate(parent context.Context, input NarrativeInput) (Narrative, error) {
	ctx, span := n.tracer.Start(parent, "openai.narrate", trace.WithAttributes(
		attribute.String("model", n.cfg.Model),
		attribute.Int("overall_probability", input.OverallProbability),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       n.cfg.Model,
		MaxTokens:   n.cfg.MaxTokens,
		Temperature: n.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: narratorSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildUserPrompt(input),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := n.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(n.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		n.fail(span, "transport", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return Narrative{}, fmt.Errorf("openai narrate: %w", err)
		}
		return Narrative{}, fmt.Errorf("%w: openai narrate: %v", ErrNarrativeUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("%w: no choices returned from openai", ErrNarrativeUnavailable)
		n.fail(span, "empty", err)
		return Narrative{}, err
	}

	narrative, err := ValidateNarrative([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		n.fail(span, "schema", err)
		return Narrative{}, err
	}

	narrative.Raw = map[string]interface{}{
		"model": resp.Model,
		"usage": resp.Usage,
	}

	n.logger.Debug().
		Str("model", n.cfg.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("narrative generated")

	return narrative, nil
}

func (n *OpenAINarrator) fail(span trace.Span, reason string, err error) {
	aiFailures.WithLabelValues(n.cfg.Model, reason).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func narratorSystemPrompt() string {
	return "You are an interview preparation coach. The numeric scores you receive were computed deterministically " +
		"and are final: repeat them verbatim if you mention them and never recompute or adjust them. Respond with a JSON " +
		"object containing exactly these keys: improvement_recommendations (array of strings), prioritized_actions " +
		"(array of strings, most important first), strength_areas (array of strings), weakness_areas (array of strings) " +
		"and predicted_outcome (one of \"likely\", \"possible\", \"uncertain\"). Do not include any other keys."
}

func buildUserPrompt(input NarrativeInput) string {
	builder := strings.Builder{}
	builder.WriteString("# Interview\n")
	fmt.Fprintf(&builder, "Role: %s\n", fallback(input.JobTitle, "unknown role"))
	fmt.Fprintf(&builder, "Company: %s\n", fallback(input.Company, "unknown company"))
	fmt.Fprintf(&builder, "Interview type: %s\n", fallback(input.InterviewType, "general"))
	builder.WriteString("\n## Scores (0-100, final)\n")
	fmt.Fprintf(&builder, "Overall success probability: %d\n", input.OverallProbability)
	fmt.Fprintf(&builder, "Confidence level: %s\n", input.ConfidenceLevel)
	fmt.Fprintf(&builder, "Preparation score: %d\n", input.PreparationScore)
	fmt.Fprintf(&builder, "Role match score: %d\n", input.RoleMatchScore)
	fmt.Fprintf(&builder, "Company research score: %d\n", input.CompanyResearchScore)
	fmt.Fprintf(&builder, "Practice hours score: %d\n", input.PracticeHoursScore)
	fmt.Fprintf(&builder, "Task completion score: %d\n", input.TaskCompletionScore)
	fmt.Fprintf(&builder, "Mock interview score: %d\n", input.MockInterviewScore)
	fmt.Fprintf(&builder, "Question practice score: %d\n", input.QuestionPracticeScore)
	builder.WriteString("\n## History\n")
	fmt.Fprintf(&builder, "Historical success rate: %.1f%%\n", input.HistoricalSuccessRate)
	fmt.Fprintf(&builder, "Performance trend: %s\n", input.PerformanceTrend)
	if len(input.PendingTasks) > 0 {
		builder.WriteString("\n## Open preparation tasks\n")
		for _, task := range input.PendingTasks {
			builder.WriteString("- ")
			builder.WriteString(task)
			builder.WriteString("\n")
		}
	}
	builder.WriteString("\nReturn JSON.")
	return builder.String()
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

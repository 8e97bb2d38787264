// Package chat answers user questions about the weather, preferring the
// external model and degrading to deterministic payload-based answers.
package chat

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"weather-assistant/facts"
	"weather-assistant/models"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
)

// fallbackNotice is appended to fallback answers so users know the reply came
// straight from the weather data.
const fallbackNotice = "(using direct weather data due to connection issues)"

// assistantAttempts is how many times the model is tried before falling back.
const assistantAttempts = 2

// Service runs one chat turn end to end: model call (or fallback), fact
// extraction, validation against the payload, and rendering. Every turn
// produces a message; callers never see a raw error.
type Service struct {
	assistant Assistant
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a chat service. A nil assistant means every turn is
// answered by the fallback responder.
func NewService(assistant Assistant, logger *slog.Logger) *Service {
	return &Service{
		assistant: assistant,
		logger:    logger,
		now:       time.Now,
	}
}

// Ask answers one user query against the payload for a location. The reply
// text always passes through extraction and validation so downstream code
// sees one uniform fact shape regardless of where the text came from.
func (s *Service) Ask(ctx context.Context, query string, history []models.Turn, payload models.WeatherPayload, place string) models.ChatMessage {
	raw, usedFallback := s.rawAnswer(ctx, query, history, payload, place)

	fact, cleaned := facts.Extract(raw, s.logger)
	fact, note, corrected := facts.Validate(fact, payload, cleaned, s.now())
	if note != "" {
		s.logger.Info("corrected assistant reply", "location", place, "note", note)
	}

	return models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Text:      corrected,
		HTML:      s.renderHTML(corrected),
		Fact:      fact,
		Fallback:  usedFallback,
		CreatedAt: s.now(),
	}
}

// rawAnswer returns the model's reply, or the annotated fallback answer when
// the model is unavailable or keeps failing.
func (s *Service) rawAnswer(ctx context.Context, query string, history []models.Turn, payload models.WeatherPayload, place string) (string, bool) {
	if s.assistant != nil {
		prompt := BuildPrompt(payload, history, query, place)
		for attempt := 1; attempt <= assistantAttempts; attempt++ {
			reply, err := s.assistant.Generate(ctx, prompt)
			if err == nil && reply != "" {
				return reply, false
			}
			s.logger.Warn("assistant call failed", "assistant", s.assistant.Name(),
				"attempt", attempt, "error", err)
			if ctx.Err() != nil {
				break
			}
		}
	}
	return Fallback(query, payload, place) + "\n\n" + fallbackNotice, true
}

// renderHTML converts the reply markdown to HTML for the chat surface.
func (s *Service) renderHTML(text string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		s.logger.Warn("markdown render failed", "error", err)
		return ""
	}
	return buf.String()
}

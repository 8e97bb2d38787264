package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"weather-assistant/logging"
	"weather-assistant/models"
)

// scriptedAssistant returns a fixed reply or error and counts how often it
// was called.
type scriptedAssistant struct {
	reply string
	err   error
	calls int
}

func (a *scriptedAssistant) Generate(ctx context.Context, prompt string) (string, error) {
	a.calls++
	return a.reply, a.err
}

func (a *scriptedAssistant) Name() string { return "scripted" }

var _ Assistant = (*scriptedAssistant)(nil)

func servicePayload() models.WeatherPayload {
	return models.WeatherPayload{
		Location: "London",
		Current: &models.CurrentConditions{
			Temp:      21.4,
			WindSpeed: 5,
			Weather:   []models.ConditionRef{{Main: "Clouds", Description: "scattered clouds"}},
		},
		Hourly: []models.HourlyPoint{{Pop: 0.42}},
	}
}

func TestAskWithWorkingAssistant(t *testing.T) {
	assistant := &scriptedAssistant{
		reply: `It's about 21°C with scattered clouds. [WEATHER_DATA]{"temperature": 21.4, "condition": "Clouds"}[/WEATHER_DATA]`,
	}
	svc := NewService(assistant, logging.Discard())

	msg := svc.Ask(context.Background(), "How's the weather?", nil, servicePayload(), "London")

	if msg.Fallback {
		t.Fatal("working assistant must not flag fallback")
	}
	if assistant.calls != 1 {
		t.Fatalf("assistant called %d times, want 1", assistant.calls)
	}
	if !msg.Fact.Verified {
		t.Fatal("accurate structured reply must verify")
	}
	if strings.Contains(msg.Text, "[WEATHER_DATA]") {
		t.Fatalf("data block leaked into text: %q", msg.Text)
	}
	if msg.ID == "" || msg.Role != "assistant" {
		t.Fatalf("bad message envelope: %+v", msg)
	}
	if !strings.Contains(msg.HTML, "<p>") {
		t.Fatalf("HTML not rendered: %q", msg.HTML)
	}
}

func TestAskFallsBackAfterRetries(t *testing.T) {
	assistant := &scriptedAssistant{err: errors.New("upstream unavailable")}
	svc := NewService(assistant, logging.Discard())

	msg := svc.Ask(context.Background(), "Will it rain?", nil, servicePayload(), "London")

	if !msg.Fallback {
		t.Fatal("failing assistant must produce a fallback message")
	}
	if assistant.calls != assistantAttempts {
		t.Fatalf("assistant called %d times, want %d", assistant.calls, assistantAttempts)
	}
	if !strings.Contains(msg.Text, "42%") {
		t.Fatalf("fallback text %q missing payload answer", msg.Text)
	}
	if !strings.Contains(msg.Text, fallbackNotice) {
		t.Fatalf("fallback text %q missing the notice", msg.Text)
	}
}

func TestAskWithoutAssistant(t *testing.T) {
	svc := NewService(nil, logging.Discard())

	msg := svc.Ask(context.Background(), "Will it rain?", nil, servicePayload(), "London")

	if !msg.Fallback {
		t.Fatal("nil assistant must always fall back")
	}
}

func TestAskCorrectsInaccurateReply(t *testing.T) {
	assistant := &scriptedAssistant{
		reply: `[WEATHER_DATA]{"temperature": 30, "condition": "Clouds"}[/WEATHER_DATA]It's a hot one.`,
	}
	svc := NewService(assistant, logging.Discard())

	msg := svc.Ask(context.Background(), "How hot?", nil, servicePayload(), "London")

	if msg.Fact.Verified {
		t.Fatal("inaccurate reply must lose its verified flag")
	}
	if msg.Fact.Temperature == nil || *msg.Fact.Temperature != 21.4 {
		t.Fatalf("temperature = %v, want corrected to 21.4", msg.Fact.Temperature)
	}
	if !strings.Contains(msg.Fact.CorrectionNote, "21.4°C") {
		t.Fatalf("correction note = %q", msg.Fact.CorrectionNote)
	}
}

func TestBuildPromptFlattensOldHistory(t *testing.T) {
	var history []models.Turn
	for i := 0; i < 7; i++ {
		history = append(history,
			models.Turn{Role: "user", Text: fmt.Sprintf("question %d", i)},
			models.Turn{Role: "assistant", Text: fmt.Sprintf("answer %d", i)},
		)
	}

	prompt := BuildPrompt(servicePayload(), history, "And now?", "London")

	if !strings.Contains(prompt, "Earlier user questions: question 0; question 1") {
		t.Fatalf("old questions not flattened:\n%s", prompt)
	}
	// the last ten turns survive verbatim, older answers do not
	if !strings.Contains(prompt, "User: question 2\n") || !strings.Contains(prompt, "Assistant: answer 6\n") {
		t.Fatalf("recent turns missing:\n%s", prompt)
	}
	if strings.Contains(prompt, "answer 1\n") {
		t.Fatalf("old assistant answer leaked:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "User: And now?\nAssistant:") {
		t.Fatalf("prompt tail wrong:\n%s", prompt)
	}
}

func TestBuildPromptShortHistoryVerbatim(t *testing.T) {
	history := []models.Turn{
		{Role: "user", Text: "first"},
		{Role: "assistant", Text: "reply"},
	}

	prompt := BuildPrompt(servicePayload(), history, "second", "London")

	if strings.Contains(prompt, "Earlier user questions") {
		t.Fatalf("short history must not be flattened:\n%s", prompt)
	}
	if !strings.Contains(prompt, "User: first\n") || !strings.Contains(prompt, "Assistant: reply\n") {
		t.Fatalf("turns missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Next hour: 42% chance of precipitation") {
		t.Fatalf("payload digest missing:\n%s", prompt)
	}
}

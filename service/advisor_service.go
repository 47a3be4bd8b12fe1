package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

// Canned replies used when the model is unavailable. The dialogue always
// produces something; inference failures are never shown as errors.
const (
	fallbackQuestion   = "What is your primary goal for tax-saving this year?"
	fallbackSuggestion = "Sorry, I couldn't generate suggestions at this time."
)

// AdvisorService runs the two-step advisory dialogue over a stored record:
// one generated question, then personalized suggestions from the answer.
type AdvisorService struct {
	model   GenerativeClient
	timeout time.Duration
	logPath string
	logger  zerolog.Logger
}

func NewAdvisorService(model GenerativeClient, timeout time.Duration, logPath string, logger zerolog.Logger) *AdvisorService {
	return &AdvisorService{
		model:   model,
		timeout: timeout,
		logPath: logPath,
		logger:  logger.With().Str("component", "advisor_service").Logger(),
	}
}

// Question asks the model for one opening question about the user's goals or
// habits, grounded in their financial record.
func (s *AdvisorService) Question(ctx context.Context, rec *dto.FinancialRecord) string {
	prompt := fmt.Sprintf(`You are a friendly financial advisor. Based on the user's summarized annual financial data, ask one single, concise, and thought-provoking question to better understand their financial goals or habits. The question should help you give better tax advice. Ask about their goals or habits, not for more numbers. Return ONLY the question.

Example: If deduction_80c is 0, you might ask: "Are you currently exploring any tax-saving investment options like ELSS or PPF?"

User's Data: %s`, recordJSON(rec))

	reply, err := s.model.GenerateText(ctx, prompt, s.timeout)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.logger.Warn().Err(err).Msg("question generation failed, using fallback question")
		return fallbackQuestion
	}
	return strings.TrimSpace(reply)
}

// Suggestions turns the question/answer exchange into a short list of
// actionable tax-saving suggestions and appends the exchange to the
// conversation log. A log-write failure never fails the request.
func (s *AdvisorService) Suggestions(ctx context.Context, rec *dto.FinancialRecord, question, answer string) []string {
	prompt := fmt.Sprintf(`You are an expert tax advisor in India. Based on the user's financial data, your initial question, and their answer, provide a list of 3-5 personalized, actionable tax-saving suggestions. Format the response as a simple, unformatted list separated by newlines, with each suggestion starting with a hyphen.

User's Financial Data: %s
Your Initial Question: %q
User's Answer: %q`, recordJSON(rec), question, answer)

	var suggestions []string
	reply, err := s.model.GenerateText(ctx, prompt, s.timeout)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.logger.Warn().Err(err).Msg("suggestion generation failed, using fallback")
		suggestions = []string{fallbackSuggestion}
	} else {
		suggestions = splitSuggestions(reply)
	}

	entry := dto.ConversationLogEntry{
		SessionID:   rec.SessionID,
		Timestamp:   time.Now().UTC(),
		Question:    question,
		Answer:      answer,
		Suggestions: suggestions,
	}
	if err := s.appendLog(entry); err != nil {
		s.logger.Error().Err(err).Msg("failed to write conversation log")
	}

	return suggestions
}

func splitSuggestions(reply string) []string {
	lines := strings.Split(strings.TrimSpace(reply), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return []string{fallbackSuggestion}
	}
	return out
}

// appendLog writes one JSON line per exchange. O_APPEND keeps concurrent
// requests from interleaving partial lines.
func (s *AdvisorService) appendLog(entry dto.ConversationLogEntry) error {
	f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open conversation log: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode log entry: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

func recordJSON(rec *dto.FinancialRecord) string {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

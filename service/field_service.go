package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

// GenerativeClient is the remote language model. One attempt per call, no
// retries; errors are soft as far as field extraction is concerned.
type GenerativeClient interface {
	GenerateText(ctx context.Context, prompt string, timeout time.Duration) (string, error)
}

// FieldService asks the model to read salary-document text into the nine
// monetary fields. It never fails: whatever goes wrong, the caller gets a
// complete, defaulted record.
type FieldService struct {
	model          GenerativeClient
	timeout        time.Duration
	maxPromptChars int
	logger         zerolog.Logger
}

func NewFieldService(model GenerativeClient, timeout time.Duration, maxPromptChars int, logger zerolog.Logger) *FieldService {
	return &FieldService{
		model:          model,
		timeout:        timeout,
		maxPromptChars: maxPromptChars,
		logger:         logger.With().Str("component", "field_service").Logger(),
	}
}

const extractionPromptHeader = `You are an expert financial data extractor. Analyze the following text from a salary slip or Form 16.
First, determine if the document represents a single month's salary.
If it is a monthly payslip, you MUST multiply the values for the fields gross_salary, basic_salary, hra_received, professional_tax, and tds by 12 to get the annual amount.
Fields like deduction_80c, deduction_80d, and rent_paid should be assumed to be annual figures and should NOT be multiplied.

Return ONLY a valid JSON object with the following keys, containing the correct annual numeric values (use 0 if a value is not found):
- gross_salary
- basic_salary
- hra_received
- rent_paid
- deduction_80c
- deduction_80d
- standard_deduction
- professional_tax
- tds

Do not include any explanation, only the final JSON object.
Example for a monthly slip with 50,000 gross salary: {"gross_salary": 600000, ...}

Text:
`

// ExtractFields produces a normalized FinancialRecord from raw document text.
// Whether the document is monthly or annual is delegated entirely to the
// model's judgment; there is no local verification of that classification.
// Only the first maxPromptChars characters of text are considered.
func (s *FieldService) ExtractFields(ctx context.Context, text string) *dto.FinancialRecord {
	prompt := s.buildPrompt(text)

	reply, err := s.model.GenerateText(ctx, prompt, s.timeout)
	if err != nil {
		s.logger.Warn().Err(err).Msg("model call failed, falling back to default record")
		return dto.DefaultRecord()
	}

	span, ok := braceSpan(reply)
	if !ok {
		s.logger.Warn().Msg("no JSON object found in model reply, falling back to default record")
		return dto.DefaultRecord()
	}

	for _, parse := range fieldParsers {
		fields, err := parse(span)
		if err != nil {
			continue
		}
		return s.recordFromFields(fields)
	}

	s.logger.Warn().Msg("model reply unparseable, falling back to default record")
	return dto.DefaultRecord()
}

func (s *FieldService) buildPrompt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > s.maxPromptChars {
		// silent truncation, long documents lose their tail; back off to a
		// rune boundary so a multibyte character is never cut in half
		n := s.maxPromptChars
		for n > 0 && !utf8.RuneStart(text[n]) {
			n--
		}
		text = text[:n]
	}
	return extractionPromptHeader + text + "\n"
}

// recordFromFields builds a record from whatever subset of keys the model
// returned. Missing keys become 0, negatives are clamped; a partial reply
// never fails the whole record.
func (s *FieldService) recordFromFields(fields map[string]float64) *dto.FinancialRecord {
	rec := &dto.FinancialRecord{TaxRegime: dto.RegimeNew}
	for _, name := range dto.FieldNames {
		if v, ok := fields[name]; ok {
			rec.Set(name, v)
		} else {
			s.logger.Warn().Str("field", name).Msg("field missing in model reply, defaulting to 0")
		}
	}
	return rec
}

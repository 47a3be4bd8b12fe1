package handler

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStore struct {
	records   map[string]*dto.FinancialRecord
	upsertErr error
	getErr    error
	upserts   []*dto.FinancialRecord
}

func newStubStore() *stubStore {
	return &stubStore{records: map[string]*dto.FinancialRecord{}}
}

func (s *stubStore) Upsert(_ context.Context, rec *dto.FinancialRecord) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserts = append(s.upserts, rec)
	s.records[rec.SessionID] = rec
	return nil
}

func (s *stubStore) GetBySessionID(_ context.Context, sessionID string) (*dto.FinancialRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	rec, ok := s.records[sessionID]
	if !ok {
		return nil, dto.ErrSessionNotFound
	}
	return rec, nil
}

type stubExtractor struct {
	text      string
	err       error
	lastPath  string
	deleteArg bool // delete the file like the real extractor does
}

func (s *stubExtractor) Extract(path string) (string, error) {
	s.lastPath = path
	if s.deleteArg {
		os.Remove(path)
	}
	return s.text, s.err
}

type stubFields struct {
	record *dto.FinancialRecord
}

func (s *stubFields) ExtractFields(_ context.Context, _ string) *dto.FinancialRecord {
	rec := *s.record
	return &rec
}

type stubAdvisor struct {
	question    string
	suggestions []string
}

func (s *stubAdvisor) Question(_ context.Context, _ *dto.FinancialRecord) string {
	return s.question
}

func (s *stubAdvisor) Suggestions(_ context.Context, _ *dto.FinancialRecord, _, _ string) []string {
	return s.suggestions
}

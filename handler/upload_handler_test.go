package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

func uploadRouter(t *testing.T, extractor *stubExtractor, fields *stubFields) *gin.Engine {
	t.Helper()
	r := gin.New()
	h := NewUploadHandler(extractor, fields, t.TempDir(), 10*1024*1024, zerolog.Nop())
	r.POST("/api/v1/upload", h.Upload)
	r.GET("/api/v1/form", h.EmptyForm)
	return r
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	extractor := &stubExtractor{text: "GROSS SALARY 83,333 BASIC 41,667", deleteArg: true}
	fields := &stubFields{record: &dto.FinancialRecord{
		GrossSalary: 1000000,
		BasicSalary: 500000,
		TaxRegime:   dto.RegimeNew,
	}}
	r := uploadRouter(t, extractor, fields)

	body, contentType := multipartUpload(t, "document", "payslip.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// A fresh session id is assigned and threaded into the record.
	_, err := uuid.Parse(resp.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, resp.SessionID, resp.Record.SessionID)
	assert.Equal(t, 1000000.0, resp.Record.GrossSalary)

	// The saved file is named after the session id.
	assert.Contains(t, extractor.lastPath, resp.SessionID)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	r := uploadRouter(t, &stubExtractor{}, &stubFields{record: dto.DefaultRecord()})

	body, contentType := multipartUpload(t, "document", "payslip.docx", []byte("not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestUploadRejectsMissingFile(t *testing.T) {
	r := uploadRouter(t, &stubExtractor{}, &stubFields{record: dto.DefaultRecord()})

	body, contentType := multipartUpload(t, "something_else", "payslip.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	r := gin.New()
	h := NewUploadHandler(&stubExtractor{}, &stubFields{record: dto.DefaultRecord()}, t.TempDir(), 16, zerolog.Nop())
	r.POST("/api/v1/upload", h.Upload)

	body, contentType := multipartUpload(t, "document", "payslip.pdf", bytes.Repeat([]byte("x"), 64))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrFileTooLarge.Error())
}

func TestUploadExtractionFailure(t *testing.T) {
	extractor := &stubExtractor{
		err:       &dto.ExtractionError{Stage: "text-layer", Err: assert.AnError},
		deleteArg: true,
	}
	r := uploadRouter(t, extractor, &stubFields{record: dto.DefaultRecord()})

	body, contentType := multipartUpload(t, "document", "payslip.pdf", []byte("%PDF broken"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "EXTRACTION_FAILED")
}

func TestEmptyForm(t *testing.T) {
	r := uploadRouter(t, &stubExtractor{}, &stubFields{record: dto.DefaultRecord()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/form", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	_, err := uuid.Parse(resp.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, 50000.0, resp.Record.StandardDeduction)
	assert.Equal(t, dto.RegimeNew, resp.Record.TaxRegime)
}

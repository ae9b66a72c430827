package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gradebook/internal/gradebook"
	"gradebook/internal/handler"
	"gradebook/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(in report.Input) (string, error) {
	args := m.Called(in)
	return args.String(0), args.Error(1)
}

func TestGenerateAnalysis(t *testing.T) {
	r, _ := newTestRouter(t, true)

	w := do(r, http.MethodPost, "/api/report", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analysis string `json:"analysis"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Analysis, "# Grade Analysis Summary\n")
	assert.Contains(t, resp.Analysis, "- Class average: 79.2%\n")
	assert.Contains(t, resp.Analysis, "- Students at risk of failing: 0\n")
}

func TestGenerateAnalysisEmptyGradebook(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := do(r, http.MethodPost, "/api/report", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Class average: N/A%")
}

func TestGenerateAnalysisPassesJoinedData(t *testing.T) {
	store := gradebook.NewStore()
	require.NoError(t, gradebook.Seed(store))

	mockAnalyzer := new(MockAnalyzer)
	mockAnalyzer.On("Analyze", report.Input{Students: store.Join(), Subjects: store.Subjects()}).Return("ok", nil)

	h := handler.NewReportHandler(store, mockAnalyzer)
	w := httptest.NewRecorder()
	h.GenerateAnalysis(w, httptest.NewRequest(http.MethodPost, "/api/report", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"analysis":"ok"}`, w.Body.String())
	mockAnalyzer.AssertExpectations(t)
}

func TestGenerateAnalysisFailure(t *testing.T) {
	mockAnalyzer := new(MockAnalyzer)
	mockAnalyzer.On("Analyze", mock.AnythingOfType("report.Input")).Return("", errors.New("model unavailable"))

	h := handler.NewReportHandler(gradebook.NewStore(), mockAnalyzer)
	w := httptest.NewRecorder()
	h.GenerateAnalysis(w, httptest.NewRequest(http.MethodPost, "/api/report", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate analysis. Please try again.")
	assert.NotContains(t, w.Body.String(), "model unavailable")
}

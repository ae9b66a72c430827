package handler

import (
	"log"
	"net/http"

	"gradebook/internal/gradebook"
	"gradebook/internal/report"
)

const analysisFailedMessage = "Failed to generate analysis. Please try again."

type ReportHandler struct {
	store    *gradebook.Store
	analyzer report.Analyzer
}

func NewReportHandler(store *gradebook.Store, analyzer report.Analyzer) *ReportHandler {
	return &ReportHandler{store: store, analyzer: analyzer}
}

// GenerateAnalysis runs the analyzer over the current gradebook.
func (h *ReportHandler) GenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	in := report.Input{
		Students: h.store.Join(),
		Subjects: h.store.Subjects(),
	}

	analysis, err := h.analyzer.Analyze(in)
	if err != nil {
		log.Println("Error generating analysis:", err)
		http.Error(w, analysisFailedMessage, http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"analysis": analysis})
}

package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Users     *UserHandler
	Gradebook *GradebookHandler
	Report    *ReportHandler
	Import    *ImportHandler
	Progress  *ProgressHandler
}

// NewRouter registers every API route on the root router, so a known path
// requested with the wrong method answers 405.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/users", h.Users.ListUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/users", h.Users.CreateUser).Methods(http.MethodPost)

	r.HandleFunc("/api/students", h.Gradebook.ListStudents).Methods(http.MethodGet)
	r.HandleFunc("/api/students", h.Gradebook.CreateStudent).Methods(http.MethodPost)
	r.HandleFunc("/api/students/{id}", h.Gradebook.DeleteStudent).Methods(http.MethodDelete)

	r.HandleFunc("/api/subjects", h.Gradebook.ListSubjects).Methods(http.MethodGet)
	r.HandleFunc("/api/subjects", h.Gradebook.CreateSubject).Methods(http.MethodPost)
	r.HandleFunc("/api/subjects/{id}", h.Gradebook.DeleteSubject).Methods(http.MethodDelete)

	r.HandleFunc("/api/grades", h.Gradebook.ListGrades).Methods(http.MethodGet)
	r.HandleFunc("/api/grades", h.Gradebook.UpsertGrade).Methods(http.MethodPut)
	r.HandleFunc("/api/gradebook", h.Gradebook.Gradebook).Methods(http.MethodGet)

	r.HandleFunc("/api/report", h.Report.GenerateAnalysis).Methods(http.MethodPost)

	r.HandleFunc("/api/grades/import", h.Import.ImportGrades).Methods(http.MethodPost)
	r.HandleFunc("/api/imports", h.Progress.GetAllProgress).Methods(http.MethodGet)
	r.HandleFunc("/api/imports/file", h.Progress.GetFileProgress).Methods(http.MethodGet)
	r.HandleFunc("/api/imports/events", h.Progress.SSEProgress).Methods(http.MethodGet)
	r.HandleFunc("/api/imports/{id}", h.Progress.GetJobProgress).Methods(http.MethodGet)

	return r
}

package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gradebook/internal/gradebook"

	"github.com/gorilla/mux"
)

type entityRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type gradeRequest struct {
	StudentID string  `json:"studentId" validate:"required"`
	SubjectID string  `json:"subjectId" validate:"required"`
	Grade     float64 `json:"grade" validate:"gte=0,lte=100"`
}

const invalidGradeMessage = "Please enter valid student, subject, and grade (0-100)"

// GradebookHandler exposes the student, subject and grade forms and tables.
type GradebookHandler struct {
	store *gradebook.Store
}

func NewGradebookHandler(store *gradebook.Store) *GradebookHandler {
	return &GradebookHandler{store: store}
}

func (h *GradebookHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": h.store.Students()})
}

func (h *GradebookHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req entityRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Please enter both student ID and name", http.StatusBadRequest)
		return
	}

	if err := h.store.AddStudent(req.ID, req.Name); err != nil {
		h.entityError(w, "Student", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Student added successfully",
		"data":    gradebook.Student{ID: req.ID, Name: req.Name},
	})
}

func (h *GradebookHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.store.DeleteStudent(id) {
		log.Printf("Delete of unknown student %q", id)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Student and associated grades deleted"})
}

func (h *GradebookHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": h.store.Subjects()})
}

func (h *GradebookHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req entityRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Please enter both subject ID and name", http.StatusBadRequest)
		return
	}

	if err := h.store.AddSubject(req.ID, req.Name); err != nil {
		h.entityError(w, "Subject", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Subject added successfully",
		"data":    gradebook.Subject{ID: req.ID, Name: req.Name},
	})
}

func (h *GradebookHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.store.DeleteSubject(id) {
		log.Printf("Delete of unknown subject %q", id)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Subject and associated grades deleted"})
}

func (h *GradebookHandler) ListGrades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": h.store.GradeRows()})
}

func (h *GradebookHandler) UpsertGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, invalidGradeMessage, http.StatusBadRequest)
		return
	}

	created, err := h.store.UpsertGrade(req.StudentID, req.SubjectID, req.Grade)
	if err != nil {
		http.Error(w, invalidGradeMessage, http.StatusBadRequest)
		return
	}

	status, message := http.StatusOK, "Grade updated successfully"
	if created {
		status, message = http.StatusCreated, "Grade added successfully"
	}
	writeJSON(w, status, map[string]interface{}{
		"message": message,
		"data":    gradebook.Grade{StudentID: req.StudentID, SubjectID: req.SubjectID, Grade: req.Grade},
	})
}

// Gradebook returns every student with their resolved grades.
func (h *GradebookHandler) Gradebook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": h.store.Join()})
}

func (h *GradebookHandler) entityError(w http.ResponseWriter, kind string, err error) {
	switch {
	case errors.Is(err, gradebook.ErrDuplicateID):
		http.Error(w, kind+" ID already exists", http.StatusConflict)
	case errors.Is(err, gradebook.ErrMissingField):
		http.Error(w, "Please enter both "+strings.ToLower(kind)+" ID and name", http.StatusBadRequest)
	default:
		log.Printf("Error adding %s: %v", strings.ToLower(kind), err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

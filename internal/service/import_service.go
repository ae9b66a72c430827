package service

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gradebook/internal/gradebook"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"

	// progressEvery is how many rows are applied between progress broadcasts.
	progressEvery = 100
)

type ProgressInfo struct {
	ID           string
	FileName     string
	TotalRecords int
	Processed    int
	Skipped      int
	Status       string // "processing", "completed", "error"
	Error        string
	StartTime    time.Time
	EndTime      time.Time
}

// ImportService loads grade sheets into the gradebook and tracks the progress
// of each import job.
type ImportService struct {
	store             *gradebook.Store
	fileProgressMap   map[string]*ProgressInfo // keyed by job ID
	fileProgressLock  sync.RWMutex
	progressListeners map[chan *ProgressInfo]bool
	listenerLock      sync.RWMutex
}

func NewImportService(store *gradebook.Store) *ImportService {
	return &ImportService{
		store:             store,
		fileProgressMap:   make(map[string]*ProgressInfo),
		progressListeners: make(map[chan *ProgressInfo]bool),
	}
}

func (s *ImportService) RegisterProgressListener(ch chan *ProgressInfo) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	s.progressListeners[ch] = true
}

// UnregisterProgressListener removes a client from receiving progress updates
func (s *ImportService) UnregisterProgressListener(ch chan *ProgressInfo) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	delete(s.progressListeners, ch)
}

// BroadcastProgress sends a copy of progress to every listener that is ready.
func (s *ImportService) BroadcastProgress(progress *ProgressInfo) {
	s.listenerLock.RLock()
	defer s.listenerLock.RUnlock()

	for listener := range s.progressListeners {
		update := *progress
		select {
		case listener <- &update:
		default:
		}
	}
}

func (s *ImportService) updateProgress(jobID string, processed, skipped int) {
	s.fileProgressLock.Lock()
	defer s.fileProgressLock.Unlock()

	if progress, exists := s.fileProgressMap[jobID]; exists {
		progress.Processed += processed
		progress.Skipped += skipped
		if progress.Processed > progress.TotalRecords {
			progress.Processed = progress.TotalRecords
		}
		s.BroadcastProgress(progress)
	}
}

func (s *ImportService) updateProgressError(jobID string, errorMsg string) {
	s.fileProgressLock.Lock()
	defer s.fileProgressLock.Unlock()

	if progress, exists := s.fileProgressMap[jobID]; exists {
		progress.Status = StatusError
		progress.Error = errorMsg
		progress.EndTime = time.Now()
		s.BroadcastProgress(progress)
	}
}

// GetFileProgress returns the most recently started import of fileName.
func (s *ImportService) GetFileProgress(fileName string) *ProgressInfo {
	s.fileProgressLock.RLock()
	defer s.fileProgressLock.RUnlock()

	var latest *ProgressInfo
	for _, progress := range s.fileProgressMap {
		if progress.FileName != fileName {
			continue
		}
		if latest == nil || progress.StartTime.After(latest.StartTime) ||
			(progress.StartTime.Equal(latest.StartTime) && progress.ID > latest.ID) {
			latest = progress
		}
	}
	if latest == nil {
		return nil
	}

	copyProgress := *latest
	return &copyProgress
}

func (s *ImportService) GetProgress(jobID string) *ProgressInfo {
	s.fileProgressLock.RLock()
	defer s.fileProgressLock.RUnlock()

	if progress, exists := s.fileProgressMap[jobID]; exists {
		copyProgress := *progress
		return &copyProgress
	}

	return nil
}

// GetAllFileProgress returns every tracked import, oldest first.
func (s *ImportService) GetAllFileProgress() []*ProgressInfo {
	s.fileProgressLock.RLock()
	defer s.fileProgressLock.RUnlock()

	result := make([]*ProgressInfo, 0, len(s.fileProgressMap))
	for _, progress := range s.fileProgressMap {
		copyProgress := *progress
		result = append(result, &copyProgress)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			if result[i].FileName == result[j].FileName {
				return result[i].ID < result[j].ID
			}
			return result[i].FileName < result[j].FileName
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})

	return result
}

// gradeColumns maps the header names of a grade sheet to column indexes.
type gradeColumns struct {
	studentID, studentName, subjectID, subjectName, grade int
}

func parseHeader(header []string) (gradeColumns, error) {
	cols := gradeColumns{-1, -1, -1, -1, -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "student_id", "studentid":
			cols.studentID = i
		case "student_name", "studentname":
			cols.studentName = i
		case "subject_id", "subjectid":
			cols.subjectID = i
		case "subject_name", "subjectname":
			cols.subjectName = i
		case "grade":
			cols.grade = i
		}
	}
	if cols.studentID < 0 || cols.subjectID < 0 || cols.grade < 0 {
		return cols, errors.New("header must contain student_id, subject_id and grade columns")
	}
	return cols, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ProcessCSV imports the grade sheet stored at filePath as job jobID, reporting
// progress under the uploaded fileName. An empty jobID gets a fresh one and an
// empty fileName falls back to the base of filePath. Rows are applied in file
// order, so a later row for the same student and subject wins. Rows that fail
// validation are counted as skipped.
func (s *ImportService) ProcessCSV(jobID, fileName, filePath string) error {
	if jobID == "" {
		jobID = uuid.NewString()
	}
	if fileName == "" {
		fileName = filepath.Base(filePath)
	}
	startTime := time.Now()

	s.fileProgressLock.Lock()
	s.fileProgressMap[jobID] = &ProgressInfo{
		ID:        jobID,
		FileName:  fileName,
		Status:    StatusProcessing,
		StartTime: startTime,
	}
	s.fileProgressLock.Unlock()

	file, err := os.Open(filePath)
	if err != nil {
		s.updateProgressError(jobID, "Failed to open file: "+err.Error())
		return errors.Wrap(err, "opening grade sheet")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		err = errors.New("file is empty")
	}
	if err != nil {
		s.updateProgressError(jobID, "Failed to read header: "+err.Error())
		return errors.Wrap(err, "reading header")
	}
	cols, err := parseHeader(header)
	if err != nil {
		s.updateProgressError(jobID, err.Error())
		return err
	}

	records, err := reader.ReadAll()
	if err != nil {
		s.updateProgressError(jobID, "Failed to read records: "+err.Error())
		return errors.Wrap(err, "reading records")
	}

	s.fileProgressLock.Lock()
	s.fileProgressMap[jobID].TotalRecords = len(records)
	s.fileProgressLock.Unlock()

	processed, skipped := 0, 0
	for line, record := range records {
		if err := s.applyRecord(record, cols); err != nil {
			log.Printf("Skipping row %d of %s: %v", line+2, fileName, err)
			skipped++
		}
		processed++

		if processed == progressEvery {
			s.updateProgress(jobID, processed, skipped)
			processed, skipped = 0, 0
		}
	}

	s.fileProgressLock.Lock()
	if progress, exists := s.fileProgressMap[jobID]; exists {
		progress.Skipped += skipped
		progress.Status = StatusCompleted
		progress.EndTime = time.Now()
		progress.Processed = progress.TotalRecords
		s.BroadcastProgress(progress)
	}
	s.fileProgressLock.Unlock()

	log.Printf("Import %s completed for %s in %v\n", jobID, fileName, time.Since(startTime))

	return nil
}

func (s *ImportService) applyRecord(record []string, cols gradeColumns) error {
	studentID := field(record, cols.studentID)
	subjectID := field(record, cols.subjectID)

	if name := field(record, cols.studentName); name != "" {
		if err := s.store.AddStudent(studentID, name); err != nil && !errors.Is(err, gradebook.ErrDuplicateID) {
			return err
		}
	}
	if name := field(record, cols.subjectName); name != "" {
		if err := s.store.AddSubject(subjectID, name); err != nil && !errors.Is(err, gradebook.ErrDuplicateID) {
			return err
		}
	}

	grade, err := strconv.ParseFloat(field(record, cols.grade), 64)
	if err != nil {
		return errors.Wrap(err, "grade")
	}
	_, err = s.store.UpsertGrade(studentID, subjectID, grade)
	return err
}

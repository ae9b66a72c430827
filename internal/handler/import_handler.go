package handler

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

type Importer interface {
	ProcessCSV(jobID, fileName, filePath string) error
}

type importJob struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
}

type ImportHandler struct {
	importer  Importer
	uploadDir string
	maxBytes  int64
	wg        sync.WaitGroup
}

func NewImportHandler(importer Importer, uploadDir string, maxBytes int64) *ImportHandler {
	return &ImportHandler{importer: importer, uploadDir: uploadDir, maxBytes: maxBytes}
}

// ImportGrades stores every uploaded grade sheet and imports it in the
// background. Each upload is its own job and is saved under a job-prefixed
// name, so uploads sharing a file name never overwrite each other.
func (h *ImportHandler) ImportGrades(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		http.Error(w, "Failed to create uploads directory", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "File too large or bad request", http.StatusRequestEntityTooLarge)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	fileNames := make([]string, 0, len(files))
	jobs := make([]importJob, 0, len(files))
	for _, fh := range files {
		job := importJob{ID: uuid.NewString(), FileName: filepath.Base(fh.Filename)}
		savePath := filepath.Join(h.uploadDir, job.ID+"_"+job.FileName)
		if err := saveUpload(fh, savePath); err != nil {
			log.Println("Error saving the file:", err)
			continue
		}
		fileNames = append(fileNames, job.FileName)
		jobs = append(jobs, job)

		h.wg.Add(1)
		go func(job importJob, filePath string) {
			defer h.wg.Done()
			if err := h.importer.ProcessCSV(job.ID, job.FileName, filePath); err != nil {
				log.Printf("Error importing file %s: %v", filePath, err)
			}
		}(job, savePath)
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Files uploaded successfully and import started",
		"files":   fileNames,
		"jobs":    jobs,
	})
}

// Wait blocks until every import started by this handler has finished.
func (h *ImportHandler) Wait() {
	h.wg.Wait()
}

func saveUpload(fh *multipart.FileHeader, savePath string) error {
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	outFile, err := os.Create(savePath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(outFile, file); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/listahan/listahan/internal/export"
	"github.com/listahan/listahan/internal/extract"
	"github.com/listahan/listahan/internal/models"
	"go.uber.org/zap"
)

// extractResponse is the envelope for POST /api/v1/extract.
type extractResponse struct {
	Success       bool                 `json:"success"`
	BatchID       string               `json:"batch_id"`
	Data          []*models.FileResult `json:"data"`
	TotalStudents int                  `json:"total_students"`
}

// exportRequest is the body for both export endpoints. The extraction data is
// echoed back by the client from a previous extract call; the default values
// apply batch-wide to columns not derived from the PDF.
type exportRequest struct {
	Data []*models.FileResult `json:"data"`
	models.ExportDefaults
}

// sheetExportRequest adds the Google Sheets destination.
type sheetExportRequest struct {
	exportRequest
	SpreadsheetID   string `json:"spreadsheet_id"`
	SpreadsheetName string `json:"spreadsheet_name"`
	WorksheetName   string `json:"worksheet_name"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		s.respondError(w, http.StatusBadRequest, "no files provided")
		return
	}
	if len(uploads) > s.config.MaxUploadFiles {
		s.respondError(w, http.StatusBadRequest, "too many files in upload")
		return
	}

	inputs := make([]extract.Input, 0, len(uploads))
	for _, fh := range uploads {
		name := filepath.Base(fh.Filename)
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			s.logger.Warn("skipping non-PDF upload", zap.String("file", name))
			continue
		}
		file, err := fh.Open()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "cannot read uploaded file "+name)
			return
		}
		content, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "cannot read uploaded file "+name)
			return
		}
		inputs = append(inputs, extract.Input{Content: content, Filename: name})
	}
	if len(inputs) == 0 {
		s.respondError(w, http.StatusBadRequest, "no valid PDF files found in upload")
		return
	}

	batchID := uuid.NewString()
	s.logger.Info("extract request",
		zap.String("batch_id", batchID),
		zap.Int("files", len(inputs)),
	)
	batch, err := s.extractor.ExtractBatch(r.Context(), inputs)
	if err != nil {
		// Client went away mid-batch; nothing useful to send.
		s.logger.Warn("extract batch cancelled", zap.String("batch_id", batchID), zap.Error(err))
		return
	}
	s.respondJSON(w, http.StatusOK, extractResponse{
		Success:       true,
		BatchID:       batchID,
		Data:          batch.Files,
		TotalStudents: batch.TotalStudents,
	})
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rows := export.Rows(req.Data, req.ExportDefaults)
	if len(rows) == 0 {
		s.respondError(w, http.StatusBadRequest, "no student records to export")
		return
	}
	s.logger.Info("excel export request", zap.Int("records", len(rows)))

	buf, err := export.WriteWorkbook(req.Data, req.ExportDefaults)
	if err != nil {
		s.logger.Error("excel export failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename=attendance_export.xlsx`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportSheet(w http.ResponseWriter, r *http.Request) {
	var req sheetExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(export.Rows(req.Data, req.ExportDefaults)) == 0 {
		s.respondError(w, http.StatusBadRequest, "no student records to export")
		return
	}
	if _, err := os.Stat(s.exportCfg.CredentialsPath); errors.Is(err, os.ErrNotExist) {
		s.respondError(w, http.StatusNotFound, "Google credentials file not found: "+s.exportCfg.CredentialsPath)
		return
	}

	cfg := export.SheetsConfig{
		CredentialsPath: s.exportCfg.CredentialsPath,
		SpreadsheetID:   req.SpreadsheetID,
		SpreadsheetName: req.SpreadsheetName,
		WorksheetName:   req.WorksheetName,
	}
	if cfg.SpreadsheetID == "" {
		cfg.SpreadsheetID = s.exportCfg.SpreadsheetID
	}
	if cfg.SpreadsheetName == "" {
		cfg.SpreadsheetName = s.exportCfg.SpreadsheetName
	}
	if cfg.WorksheetName == "" {
		cfg.WorksheetName = s.exportCfg.WorksheetName
	}

	s.logger.Info("gsheet export request",
		zap.String("spreadsheet_id", cfg.SpreadsheetID),
		zap.String("worksheet", cfg.WorksheetName),
	)
	url, err := export.PushToGoogleSheet(r.Context(), cfg, req.Data, req.ExportDefaults)
	if err != nil {
		s.logger.Error("gsheet export failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Exported to Google Sheets: " + url,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

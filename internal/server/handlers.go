package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-bias-checker/internal/analysis"
	"github.com/jonathan/resume-bias-checker/internal/ingestion"
	"github.com/jonathan/resume-bias-checker/internal/pipeline"
	"github.com/jonathan/resume-bias-checker/internal/rendering"
	"github.com/jonathan/resume-bias-checker/internal/store"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

// uploadField is the multipart form field carrying the CSV file
const uploadField = "file"

// MethodologyResponse represents the response for /methodology
type MethodologyResponse struct {
	Intro          string                         `json:"intro"`
	ThresholdRatio float64                        `json:"threshold_ratio"`
	Sections       []rendering.MethodologySection `json:"sections"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMethodology describes how groups are inferred and judged
func (s *Server) handleMethodology(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, MethodologyResponse{
		Intro:          rendering.MethodologyIntro,
		ThresholdRatio: analysis.ThresholdRatio,
		Sections:       rendering.Methodology(),
	})
}

// handleAnalyze runs the pipeline on an uploaded CSV and replaces the stored session
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, closeBody, err := s.openUpload(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer closeBody()

	result, err := pipeline.RunCSV(r.Context(), body, s.runOptions(nil))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.saveResult(r.Context(), result); err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeStream runs the pipeline on an uploaded CSV and streams
// progress via SSE. The upload is parsed before the stream opens so a
// malformed file is still answered with 400.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	body, closeBody, err := s.openUpload(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer closeBody()

	rows, err := ingestion.ParseCSV(body)
	if err != nil {
		s.fail(w, r, fmt.Errorf("failed to parse CSV: %w", err))
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.runOptions(func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventProgress, event); err != nil {
			s.logger.Warn("failed to write SSE event", zap.Error(err))
		}
	})
	records := ingestion.NewNormalizer(opts.Random, s.logger).Normalize(rows)

	result, err := pipeline.Run(r.Context(), records, opts)
	if err != nil {
		s.logger.Warn("streaming analysis failed", zap.Error(err))
		sse.WriteError(err.Error())
		return
	}
	if err := s.saveResult(r.Context(), result); err != nil {
		s.logger.Error("failed to save session", zap.Error(err))
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(result)
}

// handleSample analyzes the built-in dataset and replaces the stored session
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	result, err := pipeline.Run(r.Context(), ingestion.SampleRecords(), s.runOptions(nil))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.saveResult(r.Context(), result); err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetResults restores the stored session
func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	result, err := store.Restore(r.Context(), s.store, s.opts.SessionKey)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleDeleteResults clears the stored session
func (s *Server) handleDeleteResults(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), s.opts.SessionKey); err != nil {
		s.fail(w, r, fmt.Errorf("failed to delete session: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReportTeX exports the stored session as LaTeX source
func (s *Server) handleReportTeX(w http.ResponseWriter, r *http.Request) {
	tex, err := s.renderReport(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.attachment(w, "application/x-tex", "tex", []byte(tex))
}

// handleReportPDF exports the stored session as a compiled PDF
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	tex, err := s.renderReport(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	pdf, err := rendering.CompilePDF(r.Context(), tex, s.opts.ReportWorkDir)
	if err != nil {
		var compileErr *rendering.CompilationError
		if errors.As(err, &compileErr) && compileErr.LogOutput != "" {
			s.logger.Debug("pdflatex output", zap.String("log", compileErr.LogOutput))
		}
		s.fail(w, r, fmt.Errorf("failed to export PDF: %w", err))
		return
	}
	s.attachment(w, "application/pdf", "pdf", pdf)
}

func (s *Server) renderReport(ctx context.Context) (string, error) {
	result, err := store.Restore(ctx, s.store, s.opts.SessionKey)
	if err != nil {
		return "", err
	}
	tex, err := rendering.RenderLaTeX(rendering.BuildReportData(result, s.now()))
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return tex, nil
}

func (s *Server) attachment(w http.ResponseWriter, contentType, ext string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": rendering.ReportFileName(s.now(), ext)}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("failed to write report", zap.Error(err))
	}
}

// openUpload returns the CSV body of r: the multipart file field for form
// uploads, otherwise the raw request body. Both are capped at MaxUploadBytes.
func (s *Server) openUpload(w http.ResponseWriter, r *http.Request) (io.Reader, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, err
		}
		return nil, nil, &ErrValidation{Field: uploadField, Message: "multipart upload requires a CSV file field"}
	}
	return file, func() { _ = file.Close() }, nil
}

func (s *Server) runOptions(onProgress pipeline.ProgressCallback) pipeline.RunOptions {
	return pipeline.RunOptions{
		OnProgress: onProgress,
		Pacing:     s.opts.Pacing,
		Random:     s.opts.Random,
		Logger:     s.logger,
	}
}

// saveResult replaces the stored session with the records of result
func (s *Server) saveResult(ctx context.Context, result *types.AnalysisResult) error {
	if err := store.SaveSession(ctx, s.store, s.opts.SessionKey, result.Resumes); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

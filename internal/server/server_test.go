package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-bias-checker/internal/ingestion"
	"github.com/jonathan/resume-bias-checker/internal/server/ratelimit"
	"github.com/jonathan/resume-bias-checker/internal/store"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

const twoResumeCSV = "name,text,score\n" +
	"Keisha Washington,Mentored staff and supported teams,64\n" +
	"John Smith,Led teams and achieved results,88\n"

var fixedNow = time.Date(2026, 3, 7, 15, 4, 5, 0, time.UTC)

func newTestServer(t *testing.T, opts Options) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	if opts.RateLimit == nil {
		opts.RateLimit = &ratelimit.Config{Enabled: false}
	}
	if opts.Random == nil {
		opts.Random = ingestion.NewSeededRandom(1)
	}
	s := New(st, opts)
	s.now = func() time.Time { return fixedNow }
	t.Cleanup(s.rateLimiter.Stop)
	return s, st
}

func do(t *testing.T, s *Server, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) types.AnalysisResult {
	t.Helper()
	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), w.Body.String())
	return result
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp["error"]
}

func multipartBody(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, "resumes.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := do(t, s, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMethodologyEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := do(t, s, http.MethodGet, "/methodology", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp MethodologyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 0.8, resp.ThresholdRatio, 1e-9)
	assert.NotEmpty(t, resp.Intro)
	assert.NotEmpty(t, resp.Sections)
}

func TestAnalyze_RawCSV(t *testing.T) {
	s, st := newTestServer(t, Options{})

	w := do(t, s, http.MethodPost, "/analyze", strings.NewReader(twoResumeCSV), "text/csv")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decodeResult(t, w)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.ResumeCount)
	require.Len(t, result.Groups, 2)
	assert.Equal(t, "Male - White", result.Groups[0].Demographic)
	assert.Equal(t, "Female - Black", result.Groups[1].Demographic)
	assert.True(t, result.BiasDetected)
	assert.InDelta(t, 70.4, result.Threshold, 1e-9)

	records, err := store.LoadSession(context.Background(), st, store.DefaultSessionKey)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Keisha Washington", records[0].Name)
	assert.Equal(t, types.GenderFemale, records[0].InferredGender)
}

func TestAnalyze_Multipart(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	body, contentType := multipartBody(t, "file", twoResumeCSV)

	w := do(t, s, http.MethodPost, "/analyze", body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, decodeResult(t, w).ResumeCount)
}

func TestAnalyze_MultipartWithoutFile(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	body, contentType := multipartBody(t, "", "")

	w := do(t, s, http.MethodPost, "/analyze", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "file")
}

func TestAnalyze_ParseErrorKeepsStoredSession(t *testing.T) {
	s, st := newTestServer(t, Options{})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/sample", nil, "").Code)

	w := do(t, s, http.MethodPost, "/analyze", strings.NewReader(""), "text/csv")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "failed to parse CSV")

	records, err := store.LoadSession(context.Background(), st, store.DefaultSessionKey)
	require.NoError(t, err)
	assert.Len(t, records, 10)
}

func TestAnalyze_TooLarge(t *testing.T) {
	s, st := newTestServer(t, Options{MaxUploadBytes: 64})
	big := "name,text,score\n" + strings.Repeat("Jane Doe,Helped the team,70\n", 20)

	w := do(t, s, http.MethodPost, "/analyze", strings.NewReader(big), "text/csv")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	_, err := st.Load(context.Background(), store.DefaultSessionKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAnalyze_CustomSessionKey(t *testing.T) {
	s, st := newTestServer(t, Options{SessionKey: "teamSession"})

	w := do(t, s, http.MethodPost, "/analyze", strings.NewReader(twoResumeCSV), "text/csv")
	require.Equal(t, http.StatusOK, w.Code)

	_, err := st.Load(context.Background(), "teamSession")
	assert.NoError(t, err)
	_, err = st.Load(context.Background(), store.DefaultSessionKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

type sseEvent struct {
	name string
	data string
}

func readEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if current.name != "" {
				events = append(events, current)
			}
			current = sseEvent{}
		}
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestAnalyzeStream(t *testing.T) {
	s, st := newTestServer(t, Options{})

	w := do(t, s, http.MethodPost, "/analyze/stream", strings.NewReader(twoResumeCSV), "text/csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	events := readEvents(t, w.Body.String())
	require.Len(t, events, 4)
	for _, e := range events[:3] {
		assert.Equal(t, EventProgress, e.name)
	}
	assert.Contains(t, events[0].data, "Processing resume 1 of 2...")
	assert.Contains(t, events[2].data, "Calculating bias metrics...")

	require.Equal(t, EventComplete, events[3].name)
	var payload CompletePayload
	require.NoError(t, json.Unmarshal([]byte(events[3].data), &payload))
	assert.Equal(t, "completed", payload.Status)
	require.NotNil(t, payload.Result)
	assert.Equal(t, payload.Result.RunID, payload.RunID)
	assert.Equal(t, 2, payload.Result.ResumeCount)

	_, err := st.Load(context.Background(), store.DefaultSessionKey)
	assert.NoError(t, err)
}

func TestAnalyzeStream_ParseErrorIsPlainJSON(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := do(t, s, http.MethodPost, "/analyze/stream", strings.NewReader(""), "text/csv")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestSample(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := do(t, s, http.MethodPost, "/sample", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	result := decodeResult(t, w)
	assert.Equal(t, 10, result.ResumeCount)
	require.Len(t, result.Groups, 7)
	assert.Equal(t, "Male - Black", result.Groups[0].Demographic)
	assert.Equal(t, "Female - Black", result.Groups[6].Demographic)
	assert.True(t, result.BiasDetected)
	assert.InDelta(t, 73.2, result.Threshold, 1e-9)
	assert.Equal(t, "High", result.RiskLevel)
}

func TestGetResults(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	sample := decodeResult(t, do(t, s, http.MethodPost, "/sample", nil, ""))

	w := do(t, s, http.MethodGet, "/results", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	restored := decodeResult(t, w)
	assert.Equal(t, sample.Groups, restored.Groups)
	assert.Equal(t, sample.Resumes, restored.Resumes)
	assert.Equal(t, sample.BiasDetected, restored.BiasDetected)
}

func TestGetResults_NoSession(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := do(t, s, http.MethodGet, "/results", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, store.ErrNotFound.Error(), decodeError(t, w))
}

func TestGetResults_InvalidSession(t *testing.T) {
	s, st := newTestServer(t, Options{})
	require.NoError(t, st.Save(context.Background(), store.DefaultSessionKey, []byte(`[{"id":"resume_1"}]`)))

	w := do(t, s, http.MethodGet, "/results", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteResults(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/sample", nil, "").Code)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/results", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/results", nil, "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/results", nil, "").Code)
}

func TestReportTeX(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/sample", nil, "").Code)

	w := do(t, s, http.MethodGet, "/report.tex", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-tex", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Resume_Bias_Report_2026-03-07.tex", w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), `\documentclass`))
	assert.Contains(t, w.Body.String(), "BIAS DETECTED")
}

func TestReportTeX_NoSession(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := do(t, s, http.MethodGet, "/report.tex", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportPDF(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("Skipping: pdflatex not installed")
	}
	s, _ := newTestServer(t, Options{ReportWorkDir: t.TempDir()})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/sample", nil, "").Code)

	w := do(t, s, http.MethodGet, "/report.pdf", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Resume_Bias_Report_2026-03-07.pdf", w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestReportPDF_CompilerMissing(t *testing.T) {
	s, st := newTestServer(t, Options{})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/sample", nil, "").Code)
	before, err := st.Load(context.Background(), store.DefaultSessionKey)
	require.NoError(t, err)

	t.Setenv("PATH", "")
	w := do(t, s, http.MethodGet, "/report.pdf", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeError(t, w), "pdflatex not found")

	after, err := st.Load(context.Background(), store.DefaultSessionKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := do(t, s, http.MethodOptions, "/analyze", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := do(t, s, http.MethodGet, "/analyze", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, Options{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/sample", Method: http.MethodPost, Limit: 1, Window: time.Hour, Burst: 1},
		},
	}})

	first := do(t, s, http.MethodPost, "/sample", nil, "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := do(t, s, http.MethodPost, "/sample", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil, "").Code)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := New(store.NewMemoryStore(), Options{Port: 0})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

package resumes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-intel/internal/bootstrap"
	"resume-intel/internal/shared/config"
)

const fixtureResume = `Jordan Smith
jordan.smith@example.com
(555) 123-4567

SUMMARY
Backend engineer with six years of experience building data platforms.

EXPERIENCE
Senior Software Engineer at Initech Inc
2019 - Present
- Developed a streaming ingestion service in Go and Python
- Managed Kubernetes deployments and improved latency by 40%
- Led a team of 4 engineers

EDUCATION
Bachelor of Science in Computer Science
State University, 2016

SKILLS
Go, Python, Docker, Kubernetes, PostgreSQL, AWS
`

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func uploadFixture(t *testing.T, router *gin.Engine, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-Id", "user-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadAndAnalyze(t *testing.T) {
	router := newTestApp(t)

	resp := uploadFixture(t, router, "resume.txt", fixtureResume)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ResumeID  string `json:"resumeId"`
		Engine    string `json:"extractionEngine"`
		WordCount int    `json:"wordCount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ResumeID == "" {
		t.Fatalf("expected resumeId, got empty")
	}
	if created.Engine != "plaintext" {
		t.Fatalf("expected plaintext engine, got %q", created.Engine)
	}
	if created.WordCount == 0 {
		t.Fatalf("expected non-zero word count")
	}

	// Analyze against a job description.
	payload := strings.NewReader(`{"jobDescription":"Looking for a Go engineer with Docker and Terraform experience"}`)
	reqAnalyze := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/"+created.ResumeID+"/analyze", payload)
	reqAnalyze.Header.Set("Content-Type", "application/json")
	reqAnalyze.Header.Set("X-User-Id", "user-test")
	respAnalyze := httptest.NewRecorder()
	router.ServeHTTP(respAnalyze, reqAnalyze)

	if respAnalyze.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", respAnalyze.Code, respAnalyze.Body.String())
	}

	var analysis struct {
		Score struct {
			OverallScore int `json:"overall_score"`
		} `json:"ats_score"`
		Skills []struct {
			Name string `json:"name"`
		} `json:"skills"`
		Gap struct {
			HasJobDescription bool `json:"has_job_description"`
		} `json:"gap_report"`
	}
	if err := json.NewDecoder(respAnalyze.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if analysis.Score.OverallScore <= 0 || analysis.Score.OverallScore > 100 {
		t.Fatalf("overall score out of range: %d", analysis.Score.OverallScore)
	}
	if len(analysis.Skills) == 0 {
		t.Fatalf("expected extracted skills")
	}
	if !analysis.Gap.HasJobDescription {
		t.Fatalf("expected gap report to record the job description")
	}

	// The analyzed flag should now show up in the list.
	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	reqList.Header.Set("X-User-Id", "user-test")
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", respList.Code)
	}
	var list []struct {
		ResumeID string `json:"resumeId"`
		Analyzed bool   `json:"analyzed"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || !list[0].Analyzed {
		t.Fatalf("expected one analyzed resume, got %+v", list)
	}
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	router := newTestApp(t)

	resp := uploadFixture(t, router, "resume.png", "not really an image")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}

	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error.Code != "unsupported_format" {
		t.Fatalf("expected unsupported_format, got %q", errResp.Error.Code)
	}
}

func TestAnalyzeUnknownResume(t *testing.T) {
	router := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/nope/analyze", nil)
	req.Header.Set("X-User-Id", "user-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestResumesAreScopedToUser(t *testing.T) {
	router := newTestApp(t)

	resp := uploadFixture(t, router, "resume.txt", fixtureResume)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created struct {
		ResumeID string `json:"resumeId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	// A different user must not see the resume.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/"+created.ResumeID+"/analyze", nil)
	req.Header.Set("X-User-Id", "someone-else")
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req)

	if resp2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign user, got %d", resp2.Code)
	}
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	router := newTestApp(t)

	payload, _ := json.Marshal(map[string]string{"text": fixtureResume})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var analysis struct {
		Sections map[string]string `json:"sections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if _, ok := analysis.Sections["skills"]; !ok {
		t.Fatalf("expected a skills section, got %v", analysis.Sections)
	}
}

func TestAnalyzeTextTooShort(t *testing.T) {
	router := newTestApp(t)

	payload, _ := json.Marshal(map[string]string{"text": "too short"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestConvertEndpoint(t *testing.T) {
	router := newTestApp(t)

	resp := uploadFixture(t, router, "resume.txt", fixtureResume)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created struct {
		ResumeID string `json:"resumeId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	payload := strings.NewReader(`{"keywords":["Terraform"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/"+created.ResumeID+"/convert", payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-test")
	respConvert := httptest.NewRecorder()
	router.ServeHTTP(respConvert, req)

	if respConvert.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", respConvert.Code, respConvert.Body.String())
	}

	var rebuilt struct {
		ATSText string `json:"ats_text"`
	}
	if err := json.NewDecoder(respConvert.Body).Decode(&rebuilt); err != nil {
		t.Fatalf("decode convert response: %v", err)
	}
	if !strings.Contains(rebuilt.ATSText, "Terraform") {
		t.Fatalf("expected injected keyword in rebuilt text")
	}
	if !strings.Contains(rebuilt.ATSText, "SKILLS") {
		t.Fatalf("expected a skills heading in rebuilt text")
	}

	// The same conversion must also come back as a Word document.
	reqDocx := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/"+created.ResumeID+"/convert?format=docx", strings.NewReader(`{}`))
	reqDocx.Header.Set("Content-Type", "application/json")
	reqDocx.Header.Set("X-User-Id", "user-test")
	respDocx := httptest.NewRecorder()
	router.ServeHTTP(respDocx, reqDocx)

	if respDocx.Code != http.StatusOK {
		t.Fatalf("expected 200 for docx, got %d: %s", respDocx.Code, respDocx.Body.String())
	}
	docx := respDocx.Body.Bytes()
	if len(docx) < 4 || docx[0] != 'P' || docx[1] != 'K' {
		t.Fatalf("docx response is not a zip archive")
	}
}

func TestConvertUploadEndpoint(t *testing.T) {
	router := newTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(fixtureResume)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.WriteField("keywords", "Terraform, Ansible"); err != nil {
		t.Fatalf("write keywords field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-Id", "user-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var rebuilt struct {
		ATSText string `json:"ats_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rebuilt); err != nil {
		t.Fatalf("decode convert response: %v", err)
	}
	for _, kw := range []string{"Terraform", "Ansible"} {
		if !strings.Contains(rebuilt.ATSText, kw) {
			t.Fatalf("expected injected keyword %q in rebuilt text", kw)
		}
	}
}

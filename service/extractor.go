package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/calendar"
	"github.com/Yeisssons/helios-contract-analysis-sub000/config"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
)

// ExtractorService is the client for the external AI document-analysis API.
// The API follows a task model: create a task for a file URL, then poll its
// status or receive a signed callback when analysis finishes.
type ExtractorService struct {
	config     *config.ExtractorConfig
	httpClient *http.Client
}

// AnalysisTaskRequest represents the request to create an analysis task
type AnalysisTaskRequest struct {
	URL          string `json:"url"`
	ModelVersion string `json:"model_version"`
	Callback     string `json:"callback,omitempty"`
	Seed         string `json:"seed,omitempty"`
	DataID       string `json:"data_id,omitempty"`
}

// AnalysisTaskResponse represents the response from task creation
type AnalysisTaskResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    struct {
		TaskID string `json:"task_id"`
	} `json:"data"`
}

// AnalysisStatusResponse represents the task status query response
type AnalysisStatusResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	TraceID string `json:"trace_id"`
	Data    struct {
		TaskID   string          `json:"task_id"`
		DataID   string          `json:"data_id"`
		State    string          `json:"state"` // pending, running, done, failed
		Result   *AnalysisResult `json:"result,omitempty"`
		ErrorMsg string          `json:"err_msg,omitempty"`
	} `json:"data"`
}

// AnalysisResult is the structured payload the extraction service produces
// for one document. Extracted values arrive as arbitrary JSON and are
// resolved to strings once, at ingestion.
type AnalysisResult struct {
	ContractType     string                `json:"contract_type,omitempty"`
	Sector           string                `json:"sector,omitempty"`
	EffectiveDate    string                `json:"effective_date,omitempty"`
	RenewalDate      string                `json:"renewal_date,omitempty"`
	NoticePeriodDays int                   `json:"notice_period_days,omitempty"`
	RiskScore        *float64              `json:"risk_score,omitempty"`
	ExtractedData    map[string]any        `json:"extracted_data,omitempty"`
	SourceQuotes     map[string]string     `json:"source_quotes,omitempty"`
	FlaggedClauses   []model.FlaggedClause `json:"flagged_clauses,omitempty"`
	Alerts           []string              `json:"alerts,omitempty"`
	Summary          string                `json:"summary,omitempty"`
}

func NewExtractorService(cfg *config.ExtractorConfig) *ExtractorService {
	return &ExtractorService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// CreateTask creates a new analysis task for the file at fileURL.
func (s *ExtractorService) CreateTask(ctx context.Context, fileURL, dataID string) (*AnalysisTaskResponse, error) {
	reqBody := AnalysisTaskRequest{
		URL:          fileURL,
		ModelVersion: s.config.ModelVersion,
		DataID:       dataID,
	}

	if s.config.CallbackURL != "" {
		reqBody.Callback = s.config.CallbackURL
		reqBody.Seed = s.config.Seed
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIURL+"/analyze/task", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result AnalysisTaskResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if result.Code != 0 {
		return nil, fmt.Errorf("extractor API error: %s", result.Message)
	}

	return &result, nil
}

// GetTaskStatus queries the status of a task. A finished task carries the
// analysis result inline.
func (s *ExtractorService) GetTaskStatus(ctx context.Context, taskID string) (*AnalysisStatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/analyze/task/%s", s.config.APIURL, taskID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIToken)
	req.Header.Set("Accept", "*/*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result AnalysisStatusResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Code != 0 {
		return nil, fmt.Errorf("extractor API error: %s", result.Message)
	}

	return &result, nil
}

// VerifyCallback verifies the callback checksum.
// Checksum = SHA256(uid + seed + content)
func (s *ExtractorService) VerifyCallback(checksum, content, uid string) bool {
	data := uid + s.config.Seed + content
	hash := sha256.Sum256([]byte(data))
	expected := hex.EncodeToString(hash[:])
	return checksum == expected
}

// FetchResult fetches an analysis result from a direct URL, used by the
// callback flow when the payload references the result instead of inlining it.
func (s *ExtractorService) FetchResult(ctx context.Context, resultURL string) (*AnalysisResult, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", resultURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	var result AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}

	return &result, nil
}

// ResolveFields flattens raw extracted values to strings. Strings pass
// through, numbers and booleans are formatted, anything structured is kept
// as compact JSON. This happens once at ingestion so nothing downstream has
// to re-sniff value types.
func ResolveFields(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			out[name] = v
		case float64:
			out[name] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[name] = strconv.FormatBool(v)
		case nil:
			out[name] = ""
		default:
			if data, err := json.Marshal(v); err == nil {
				out[name] = string(data)
			}
		}
	}
	return out
}

// ApplyAnalysis merges an analysis result into a document. Structured fields
// are set when the result carries them; extracted fields merge into the
// existing map, where values the user already corrected win over incoming
// ones and incoming values fill unspecified slots and new keys.
func ApplyAnalysis(doc *model.Document, result *AnalysisResult) {
	if result.ContractType != "" {
		doc.ContractType = result.ContractType
	}
	if result.Sector != "" {
		doc.Sector = result.Sector
	}
	if result.NoticePeriodDays > 0 {
		doc.NoticePeriodDays = result.NoticePeriodDays
	}
	if result.RiskScore != nil {
		doc.RiskScore = result.RiskScore
	}
	if result.Summary != "" {
		doc.Summary = result.Summary
	}
	if len(result.FlaggedClauses) > 0 {
		doc.FlaggedClauses = result.FlaggedClauses
	}
	if len(result.Alerts) > 0 {
		doc.Alerts = result.Alerts
	}

	if date, ok := calendar.ExtractDate(result.EffectiveDate); ok {
		doc.EffectiveDate = &date
	}
	if date, ok := calendar.ExtractDate(result.RenewalDate); ok {
		doc.RenewalDate = &date
	}

	incoming := ResolveFields(result.ExtractedData)
	if len(incoming) > 0 && doc.ExtractedData == nil {
		doc.ExtractedData = make(map[string]string, len(incoming))
	}
	for name, value := range incoming {
		if existing, ok := doc.ExtractedData[name]; ok && model.IsSpecified(existing) {
			continue
		}
		doc.ExtractedData[name] = value
	}

	if len(result.SourceQuotes) > 0 && doc.SourceQuotes == nil {
		doc.SourceQuotes = make(map[string]string, len(result.SourceQuotes))
	}
	for name, quote := range result.SourceQuotes {
		if _, ok := doc.SourceQuotes[name]; !ok {
			doc.SourceQuotes[name] = quote
		}
	}
}

// Package webui provides the GenerateAPI organism for REST API handlers.
// This file contains the JSON endpoints the single-page UI talks to:
// generation, history, image serving, option discovery, status and
// metrics.
package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bhavyasri23-dev/ai-image-generator/history"
	"github.com/bhavyasri23-dev/ai-image-generator/imagegen"
	"github.com/bhavyasri23-dev/ai-image-generator/logging"
	"github.com/bhavyasri23-dev/ai-image-generator/metrics"
	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie that ties a browser to its history.
const SessionCookieName = "ui_session"

// GenerationService is the slice of imagegen.Generator the API needs.
// Tests substitute a fake; production wiring passes the real generator.
type GenerationService interface {
	Generate(ctx context.Context, req promptgen.GenerationRequest) (*imagegen.GenerationResult, error)
}

// GenerateAPI is an organism that provides REST API handlers for the
// image generation UI. It composes the prompt builder, the generation
// service, the session store (which owns per-session history) and the
// metrics collector.
//
// Endpoints:
// - POST /api/generate           - Run a generation for this session
// - GET  /api/history            - This session's history, newest first
// - POST /api/history/clear      - Drop this session's history
// - GET  /api/images/{id}/{n}    - Serve one generated image
// - GET  /api/options            - Style/mode/angle/resolution tokens and defaults
// - GET  /api/status             - System health status
// - GET  /api/metrics            - Generation metrics
type GenerateAPI struct {
	builder      *promptgen.Builder
	presets      promptgen.Presets
	service      GenerationService
	sessions     *SessionStore
	store        metrics.MetricsCollector
	limiter      *RateLimiter
	logger       *logging.Logger
	providerName string
	versionInfo  VersionInfo
	cookieSecure bool
	defaultLimit int
	maxLimit     int
}

// VersionInfo contains version metadata for the status endpoint.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// GenerateAPIConfig configures the GenerateAPI behavior.
type GenerateAPIConfig struct {
	// Presets supplies the option tokens served by /api/options.
	Presets promptgen.Presets

	// ProviderName is reported by /api/status (e.g. "huggingface").
	ProviderName string

	// VersionInfo contains application version metadata
	VersionInfo VersionInfo

	// CookieSecure sets the Secure flag on session cookies.
	CookieSecure bool

	// DefaultLimit is the default number of items in list endpoints
	DefaultLimit int

	// MaxLimit is the maximum number of items that can be requested
	MaxLimit int

	// GenerateRateLimit is the number of generation submissions allowed
	// per client IP per minute before requests are rejected with 429.
	// Zero uses the default; negative disables the limiter.
	GenerateRateLimit int
}

// DefaultGenerateAPIConfig returns a default configuration.
func DefaultGenerateAPIConfig() GenerateAPIConfig {
	return GenerateAPIConfig{
		Presets:           promptgen.DefaultPresets(),
		ProviderName:      "huggingface",
		DefaultLimit:      20,
		MaxLimit:          100,
		GenerateRateLimit: DefaultGenerateRateLimit,
		VersionInfo: VersionInfo{
			Version: "0.0.0",
		},
	}
}

// DefaultGenerateRateLimit is the per-IP generation submissions allowed
// per minute. Generous for a human clicking Generate, tight enough to
// keep a misbehaving script from burning the API quota.
const DefaultGenerateRateLimit = 10

// NewGenerateAPI creates a new GenerateAPI.
// builder validates and assembles prompts, service runs generations,
// sessions owns per-browser history, store collects metrics.
func NewGenerateAPI(builder *promptgen.Builder, service GenerationService, sessions *SessionStore, store metrics.MetricsCollector, logger *logging.Logger, config GenerateAPIConfig) *GenerateAPI {
	if config.DefaultLimit < 1 {
		config.DefaultLimit = 20
	}
	if config.MaxLimit < 1 {
		config.MaxLimit = 100
	}
	if config.Presets.Styles == nil {
		config.Presets = promptgen.DefaultPresets()
	}
	if config.GenerateRateLimit == 0 {
		config.GenerateRateLimit = DefaultGenerateRateLimit
	}

	var limiter *RateLimiter
	if config.GenerateRateLimit > 0 {
		limiter = NewRateLimiter(config.GenerateRateLimit, 1, 1)
	}

	return &GenerateAPI{
		builder:      builder,
		presets:      config.Presets,
		service:      service,
		sessions:     sessions,
		store:        store,
		limiter:      limiter,
		logger:       logger,
		providerName: config.ProviderName,
		versionInfo:  config.VersionInfo,
		cookieSecure: config.CookieSecure,
		defaultLimit: config.DefaultLimit,
		maxLimit:     config.MaxLimit,
	}
}

// ensureSession returns the request's session, creating one (and
// setting the cookie) if the browser has none yet.
func (api *GenerateAPI) ensureSession(w http.ResponseWriter, r *http.Request) (*UISession, error) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if session, err := api.sessions.Get(c.Value); err == nil {
			return session, nil
		}
	}

	session, err := api.sessions.Create()
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   api.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	return session, nil
}

// lookupSession returns the request's session without creating one.
func (api *GenerateAPI) lookupSession(r *http.Request) (*UISession, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, false
	}
	session, err := api.sessions.Get(c.Value)
	if err != nil {
		return nil, false
	}
	return session, true
}

// GenerateRequest is the JSON body accepted by POST /api/generate.
type GenerateRequest struct {
	Prompt          string  `json:"prompt"`
	NegativePrompt  string  `json:"negative_prompt"`
	Style           string  `json:"style"`
	EnhancementMode string  `json:"enhancement_mode"`
	CameraAngle     string  `json:"camera_angle"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Steps           int     `json:"steps"`
	GuidanceScale   float64 `json:"guidance_scale"`
	NumImages       int     `json:"num_images"`
}

// GenerateResponse is the JSON response for a successful generation.
type GenerateResponse struct {
	Entry  history.Summary `json:"entry"`
	Images []string        `json:"images"`
}

// HandleGenerate handles POST /api/generate requests.
//
// Flow: validate and assemble the request, reject if this session
// already has a generation in flight (409), call the provider, record
// the outcome in metrics and, on success, in the session's history.
func (api *GenerateAPI) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Per-IP submission throttle, independent of the per-session
	// in-flight check below.
	if api.limiter != nil {
		ip := requestIP(r)
		allowed, retryAfter := api.limiter.Allow(ip)
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			api.writeError(w, http.StatusTooManyRequests, "too many generation requests, please slow down")
			return
		}
		api.limiter.RecordAttempt(ip)
	}

	session, err := api.ensureSession(w, r)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	var body GenerateRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := api.builder.Build(promptgen.Input{
		Prompt:          body.Prompt,
		NegativePrompt:  body.NegativePrompt,
		Style:           body.Style,
		EnhancementMode: body.EnhancementMode,
		CameraAngle:     body.CameraAngle,
		Width:           body.Width,
		Height:          body.Height,
		Steps:           body.Steps,
		GuidanceScale:   body.GuidanceScale,
		NumImages:       body.NumImages,
	})
	if err != nil {
		if verr, ok := promptgen.IsValidationError(err); ok {
			api.writeValidationError(w, verr)
			return
		}
		api.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// One generation per session at a time. A second submission while
	// one is running is rejected, never queued.
	if !session.TryBeginGeneration() {
		api.writeError(w, http.StatusConflict, "a generation is already running for this session")
		return
	}
	defer session.EndGeneration()

	start := time.Now()
	result, err := api.service.Generate(r.Context(), req)
	if err != nil {
		api.recordFailure(req, start, err)
		api.writeGenerationError(w, err)
		return
	}

	entry := session.History.Add(result)
	api.recordSuccess(req, result, start, entry.ID)

	if api.logger != nil {
		fields := append(logging.TimingFields(start, time.Now()),
			zap.String("entry_id", entry.ID),
			zap.Int("images", len(result.Images)))
		api.logger.Info("generation request served", fields...)
	}

	api.writeJSON(w, http.StatusOK, GenerateResponse{
		Entry:  entry.Summarize(),
		Images: imageURLs(entry.ID, len(entry.Images)),
	})
}

// recordSuccess feeds a completed generation into the metrics store.
func (api *GenerateAPI) recordSuccess(req promptgen.GenerationRequest, result *imagegen.GenerationResult, start time.Time, id string) {
	end := start.Add(result.Elapsed)
	api.store.RecordGeneration(metrics.GenerationRecord{
		ID:         id,
		Style:      string(req.Style),
		Provider:   result.Provider,
		Status:     metrics.GenerationStatusSuccess,
		StartTime:  start,
		EndTime:    end,
		Duration:   result.Elapsed,
		ImageCount: len(result.Images),
	})
}

// recordFailure feeds a failed generation into the metrics store.
func (api *GenerateAPI) recordFailure(req promptgen.GenerationRequest, start time.Time, err error) {
	record := metrics.GenerationRecord{
		ID:        uuid.NewString(),
		Style:     string(req.Style),
		Provider:  api.providerName,
		Status:    metrics.GenerationStatusError,
		StartTime: start,
		EndTime:   time.Now(),
		Duration:  time.Since(start),
		ErrorMsg:  err.Error(),
	}
	if apiErr, ok := imagegen.IsAPIError(err); ok {
		record.ErrorKind = string(apiErr.Kind)
	} else {
		record.ErrorKind = string(imagegen.KindUnknown)
	}
	api.store.RecordGeneration(record)
}

// writeGenerationError maps a provider failure to an HTTP response.
// The message is always the user-facing one, never raw provider text.
func (api *GenerateAPI) writeGenerationError(w http.ResponseWriter, err error) {
	apiErr, ok := imagegen.IsAPIError(err)
	if !ok {
		api.writeError(w, http.StatusBadGateway, "image generation failed")
		return
	}

	status := statusForErrorKind(apiErr.Kind)
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: apiErr.UserMessage(),
		Kind:    string(apiErr.Kind),
	}
	if apiErr.Kind == imagegen.KindModelLoading && apiErr.EstimatedTime > 0 {
		response.EstimatedTime = apiErr.EstimatedTime
	}
	api.writeJSON(w, status, response)
}

// statusForErrorKind maps provider error kinds to HTTP status codes.
func statusForErrorKind(kind imagegen.ErrorKind) int {
	switch kind {
	case imagegen.KindRateLimited:
		return http.StatusTooManyRequests
	case imagegen.KindModelLoading, imagegen.KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case imagegen.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		// Auth failures and rejected payloads are our problem with the
		// upstream, not the browser's.
		return http.StatusBadGateway
	}
}

// HistoryEntry is one history listing item with its image URLs.
type HistoryEntry struct {
	history.Summary
	Images []string `json:"images"`
}

// HistoryResponse represents the JSON response for /api/history.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Count   int            `json:"count"`
	Limit   int            `json:"limit"`
}

// HandleHistory handles GET /api/history requests.
// Entries are always newest first.
// Query parameters:
// - limit: maximum number of entries to return (default from config)
func (api *GenerateAPI) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session, err := api.ensureSession(w, r)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	limit := api.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > api.maxLimit {
		limit = api.maxLimit
	}

	summaries := session.History.List()
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	entries := make([]HistoryEntry, len(summaries))
	for i, s := range summaries {
		entries[i] = HistoryEntry{
			Summary: s,
			Images:  imageURLs(s.ID, s.ImageCount),
		}
	}

	api.writeJSON(w, http.StatusOK, HistoryResponse{
		Entries: entries,
		Count:   len(entries),
		Limit:   session.History.Limit(),
	})
}

// ClearResponse represents the JSON response for /api/history/clear.
type ClearResponse struct {
	Cleared int `json:"cleared"`
}

// HandleHistoryClear handles POST /api/history/clear requests.
func (api *GenerateAPI) HandleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session, err := api.ensureSession(w, r)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	cleared := session.History.Len()
	session.History.Clear()

	api.writeJSON(w, http.StatusOK, ClearResponse{Cleared: cleared})
}

// HandleImage handles GET /api/images/{entryID}/{index} requests.
// Images only exist inside the requesting session's history; other
// sessions' entry IDs 404.
func (api *GenerateAPI) HandleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session, ok := api.lookupSession(r)
	if !ok {
		api.writeError(w, http.StatusNotFound, "image not found")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/images/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		api.writeError(w, http.StatusNotFound, "image not found")
		return
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		api.writeError(w, http.StatusNotFound, "image not found")
		return
	}

	img, ok := session.History.Image(parts[0], index)
	if !ok {
		api.writeError(w, http.StatusNotFound, "image not found")
		return
	}

	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// ?download=1 turns the inline image into a file download.
	if r.URL.Query().Get("download") == "1" {
		filename := "image-" + parts[0] + "-" + parts[1] + extensionForContentType(contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}

	// Entries are immutable once stored, so the browser may cache
	// within the session.
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

// extensionForContentType picks a download filename extension.
func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}

// requestIP extracts the client IP address from the request.
// Proxy headers win over RemoteAddr so deployments behind a reverse
// proxy still rate limit per real client.
func requestIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs; use the first one
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// RemoteAddr includes the port
	if i := strings.LastIndexByte(r.RemoteAddr, ':'); i >= 0 {
		return r.RemoteAddr[:i]
	}
	return r.RemoteAddr
}

// imageURLs builds the image endpoints for a history entry.
func imageURLs(entryID string, count int) []string {
	urls := make([]string, count)
	for i := range urls {
		urls[i] = "/api/images/" + entryID + "/" + strconv.Itoa(i)
	}
	return urls
}

// OptionsResponse represents the JSON response for /api/options.
// The UI builds its form controls from this rather than hardcoding
// tokens.
type OptionsResponse struct {
	Styles           []promptgen.Style           `json:"styles"`
	EnhancementModes []promptgen.EnhancementMode `json:"enhancement_modes"`
	CameraAngles     []promptgen.CameraAngle     `json:"camera_angles"`
	Resolutions      []promptgen.Resolution      `json:"resolutions"`
	Defaults         OptionDefaults              `json:"defaults"`
	Bounds           OptionBounds                `json:"bounds"`
}

// OptionDefaults are the values the form starts with.
type OptionDefaults struct {
	Resolution    promptgen.Resolution `json:"resolution"`
	Steps         int                  `json:"steps"`
	GuidanceScale float64              `json:"guidance_scale"`
	NumImages     int                  `json:"num_images"`
}

// OptionBounds are the accepted ranges for numeric parameters.
type OptionBounds struct {
	MinSteps    int     `json:"min_steps"`
	MaxSteps    int     `json:"max_steps"`
	MinGuidance float64 `json:"min_guidance"`
	MaxGuidance float64 `json:"max_guidance"`
	MinImages   int     `json:"min_images"`
	MaxImages   int     `json:"max_images"`
}

// HandleOptions handles GET /api/options requests.
func (api *GenerateAPI) HandleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	response := OptionsResponse{
		Styles:           api.presets.StyleTokens(),
		EnhancementModes: api.presets.ModeTokens(),
		CameraAngles:     api.presets.AngleTokens(),
		Resolutions:      promptgen.AllowedResolutions,
		Defaults: OptionDefaults{
			Resolution:    promptgen.DefaultResolution,
			Steps:         promptgen.DefaultSteps,
			GuidanceScale: promptgen.DefaultGuidance,
			NumImages:     promptgen.DefaultImages,
		},
		Bounds: OptionBounds{
			MinSteps:    promptgen.MinSteps,
			MaxSteps:    promptgen.MaxSteps,
			MinGuidance: promptgen.MinGuidance,
			MaxGuidance: promptgen.MaxGuidance,
			MinImages:   promptgen.MinImages,
			MaxImages:   promptgen.MaxImages,
		},
	}

	api.writeJSON(w, http.StatusOK, response)
}

// StatusResponse represents the JSON response for /api/status.
type StatusResponse struct {
	Health     string    `json:"health"`
	Version    string    `json:"version"`
	BuildDate  string    `json:"build_date,omitempty"`
	GitCommit  string    `json:"git_commit,omitempty"`
	Uptime     string    `json:"uptime"`
	UptimeSecs float64   `json:"uptime_secs"`
	LastCheck  time.Time `json:"last_check"`
	Provider   string    `json:"provider"`
}

// HandleStatus handles GET /api/status requests.
func (api *GenerateAPI) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := api.store.GetSystemStatus()

	response := StatusResponse{
		Health:     status.Health,
		Version:    api.versionInfo.Version,
		BuildDate:  api.versionInfo.BuildDate,
		GitCommit:  api.versionInfo.GitCommit,
		Uptime:     formatDuration(status.Uptime),
		UptimeSecs: status.Uptime.Seconds(),
		LastCheck:  status.LastCheck,
		Provider:   api.providerName,
	}

	api.writeJSON(w, http.StatusOK, response)
}

// MetricsResponse represents the JSON response for /api/metrics.
type MetricsResponse struct {
	TotalRequests int64                            `json:"total_requests"`
	TotalSuccess  int64                            `json:"total_success"`
	TotalErrors   int64                            `json:"total_errors"`
	TotalImages   int64                            `json:"total_images"`
	SuccessRate   float64                          `json:"success_rate"`
	AvgDurationMS int64                            `json:"avg_duration_ms"`
	ByStyle       map[string]*metrics.StyleMetrics `json:"by_style"`
	Recent        []metrics.GenerationRecord       `json:"recent,omitempty"`
}

// HandleMetrics handles GET /api/metrics requests.
// Query parameters:
// - recent: number of recent generation records to include (default: 0)
func (api *GenerateAPI) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	m := api.store.GetGenerationMetrics()

	var successRate float64
	if m.TotalRequests > 0 {
		successRate = float64(m.TotalSuccess) / float64(m.TotalRequests) * 100
	}

	response := MetricsResponse{
		TotalRequests: m.TotalRequests,
		TotalSuccess:  m.TotalSuccess,
		TotalErrors:   m.TotalErrors,
		TotalImages:   m.TotalImages,
		SuccessRate:   successRate,
		AvgDurationMS: m.AvgDuration.Milliseconds(),
		ByStyle:       m.ByStyle,
	}

	if recentStr := r.URL.Query().Get("recent"); recentStr != "" {
		if limit, err := strconv.Atoi(recentStr); err == nil && limit > 0 {
			if limit > api.maxLimit {
				limit = api.maxLimit
			}
			response.Recent = api.store.GetRecentGenerations(limit)
		}
	}

	api.writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (api *GenerateAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", api.HandleGenerate)
	mux.HandleFunc("/api/history", api.HandleHistory)
	mux.HandleFunc("/api/history/clear", api.HandleHistoryClear)
	mux.HandleFunc("/api/images/", api.HandleImage)
	mux.HandleFunc("/api/options", api.HandleOptions)
	mux.HandleFunc("/api/status", api.HandleStatus)
	mux.HandleFunc("/api/metrics", api.HandleMetrics)
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error         string  `json:"error"`
	Message       string  `json:"message,omitempty"`
	Field         string  `json:"field,omitempty"`
	Kind          string  `json:"kind,omitempty"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func (api *GenerateAPI) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Best effort - headers already written
		if api.logger != nil {
			api.logger.Warn("failed to encode API response", zap.Error(err))
		}
	}
}

// writeError writes an error response.
func (api *GenerateAPI) writeError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	api.writeJSON(w, status, response)
}

// writeValidationError writes a 400 response naming the rejected field.
func (api *GenerateAPI) writeValidationError(w http.ResponseWriter, verr *promptgen.ValidationError) {
	response := ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: verr.Reason,
		Field:   verr.Field,
	}
	api.writeJSON(w, http.StatusBadRequest, response)
}

// formatDuration formats a duration into a human-readable string.
// This is a local helper that formats durations for the API.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Second).String()
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return strconv.Itoa(hours) + "h" + strconv.Itoa(minutes) + "m" + strconv.Itoa(seconds) + "s"
	}

	return strconv.Itoa(minutes) + "m" + strconv.Itoa(seconds) + "s"
}

// Package rest exposes the engine's search and fetch operations over HTTP.
// Handlers only call the engine's public operations; all logic lives below.
package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"news-engine/domain"
	"news-engine/logger"
	"news-engine/usecase"
	appOtel "news-engine/utils/otel"
)

// Handler contains all HTTP handlers for the news engine.
type Handler struct {
	searchUsecase *usecase.SearchNewsUsecase
	ingestUsecase *usecase.IngestNewsUsecase
	topicNames    func() []string
}

// NewHandler creates a new Handler. topicNames supplies the configured
// topic set for whole-round fetch requests.
func NewHandler(searchUsecase *usecase.SearchNewsUsecase, ingestUsecase *usecase.IngestNewsUsecase, topicNames func() []string) *Handler {
	return &Handler{
		searchUsecase: searchUsecase,
		ingestUsecase: ingestUsecase,
		topicNames:    topicNames,
	}
}

type SearchHit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Topics      []string  `json:"topics"`
	Text        string    `json:"text"`
}

type SearchResponse struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

type FetchRequest struct {
	Topic string `json:"topic"`
}

type FetchResponse struct {
	RunID  string         `json:"run_id,omitempty"`
	Stored int            `json:"stored"`
	Topics map[string]int `json:"topics"`
}

// SearchNews handles GET /v1/news/search.
func (h *Handler) SearchNews(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSearchOptions(r)
	if err != nil {
		logger.Logger.Error("bad search request", "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	entries, err := h.searchUsecase.Execute(r.Context(), opts)
	if m := appOtel.Metrics; m != nil {
		m.SearchDuration.Record(r.Context(), time.Since(start).Seconds())
	}
	if err != nil {
		logger.Logger.Error("search failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := SearchResponse{
		Query: opts.Query,
		Hits:  make([]SearchHit, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Hits = append(resp.Hits, SearchHit{
			ID:          entry.ID,
			Title:       entry.Metadata.Title,
			Source:      entry.Metadata.Source,
			URL:         entry.Metadata.URL,
			PublishedAt: entry.Metadata.PublishedAt,
			Topics:      entry.Metadata.Topics,
			Text:        entry.Text,
		})
	}

	logger.Logger.Info("search ok", "query", opts.Query, "count", len(resp.Hits))
	writeJSON(w, resp)
}

// FetchNews handles POST /v1/news/fetch. An empty or absent topic fetches
// every configured topic.
func (h *Handler) FetchNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req FetchRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}
	}

	if req.Topic != "" {
		entries, err := h.ingestUsecase.FetchTopic(r.Context(), req.Topic)
		if err != nil {
			logger.Logger.Error("fetch failed", "topic", req.Topic, "err", err)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}
		writeJSON(w, FetchResponse{
			Stored: len(entries),
			Topics: map[string]int{req.Topic: len(entries)},
		})
		return
	}

	summary, err := h.ingestUsecase.FetchTopics(r.Context(), h.topicNames())
	if err != nil {
		logger.Logger.Error("fetch all failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	perTopic := make(map[string]int, len(summary.PerTopic))
	for topic, entries := range summary.PerTopic {
		perTopic[topic] = len(entries)
	}
	writeJSON(w, FetchResponse{
		RunID:  summary.RunID,
		Stored: len(summary.Combined),
		Topics: perTopic,
	})
}

func parseSearchOptions(r *http.Request) (domain.SearchOptions, error) {
	q := r.URL.Query()

	opts := domain.SearchOptions{
		Query:               q.Get("q"),
		ConversationContext: q.Get("context"),
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, &badParamError{"limit", v}
		}
		opts.Limit = n
	}

	if v := q.Get("from"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			return opts, &badParamError{"from", v}
		}
		opts.FromDate = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			return opts, &badParamError{"to", v}
		}
		opts.ToDate = &t
	}

	if v := q.Get("sources"); v != "" {
		opts.Sources = splitParam(v)
		if err := domain.ValidateFilterValues(opts.Sources); err != nil {
			return opts, &badParamError{"sources", v}
		}
	}
	if v := q.Get("topics"); v != "" {
		opts.Topics = splitParam(v)
		if err := domain.ValidateFilterValues(opts.Topics); err != nil {
			return opts, &badParamError{"topics", v}
		}
	}

	return opts, nil
}

// parseTimeParam accepts RFC 3339 or epoch milliseconds.
func parseTimeParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	millis, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(millis), nil
}

func splitParam(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Logger.Error("encode failed", "err", err)
	}
}

type badParamError struct {
	param string
	value string
}

func (e *badParamError) Error() string {
	return "invalid " + e.param + " parameter: " + e.value
}

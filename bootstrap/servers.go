package bootstrap

import (
	"io"
	"net/http"

	"news-engine/config"
	"news-engine/middleware"
	"news-engine/rest"
	"news-engine/usecase"
	appOtel "news-engine/utils/otel"
)

// newHTTPServer creates the REST HTTP server.
func newHTTPServer(searchUsecase *usecase.SearchNewsUsecase, ingestUsecase *usecase.IngestNewsUsecase, topicNames func() []string, appCfg *config.Config, otelCfg appOtel.Config) *http.Server {
	restHandler := rest.NewHandler(searchUsecase, ingestUsecase, topicNames)

	mux := http.NewServeMux()

	healthHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})

	if otelCfg.Enabled {
		mux.Handle("/v1/news/search", middleware.OTelStatusHandlerFunc(restHandler.SearchNews, "GET /v1/news/search"))
		mux.Handle("/v1/news/fetch", middleware.OTelStatusHandlerFunc(restHandler.FetchNews, "POST /v1/news/fetch"))
		mux.Handle("/health", middleware.OTelStatusHandlerFunc(healthHandler, "GET /health"))
	} else {
		mux.HandleFunc("/v1/news/search", restHandler.SearchNews)
		mux.HandleFunc("/v1/news/fetch", restHandler.FetchNews)
		mux.Handle("/health", healthHandler)
	}

	return &http.Server{
		Addr:              appCfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: appCfg.HTTP.ReadHeaderTimeout,
	}
}

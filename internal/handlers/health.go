package handlers

import (
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/tappay/tappay/internal/logger"
)

// RootResponse is the liveness message.
// swagger:model RootResponse
type RootResponse struct {
	// Liveness message
	// default: TapPay API running
	Message string `json:"message"`
}

// TestResponse is the environment and connectivity diagnostic.
// swagger:model TestResponse
type TestResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseHost     string   `json:"database_host"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Tables           []string `json:"tables"`
}

// NewRootHandler returns the liveness handler.
// @Summary Liveness
// @Description Reports that the API is running
// @Tags health
// @Produce json
// @Success 200 {object} handlers.RootResponse "Liveness message"
// @Router / [get]
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, RootResponse{Message: "TapPay API running"})
	}
}

// NewTestHandler returns the connectivity diagnostic handler. It reports
// whether the database env vars are set, pings the database and lists up to
// ten table names. Diagnostic failures are reported in the body, never as an
// error status.
// @Summary Connectivity diagnostic
// @Description Reports environment configuration and database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} handlers.TestResponse "Diagnostic report"
// @Router /test [get]
func NewTestHandler(db *sqlx.DB) http.HandlerFunc {
	envFlag := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return "set"
		}
		return "not set"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := TestResponse{
			Backend:          "running",
			Database:         "not available",
			DatabaseHost:     envFlag("POSTGRES_HOST"),
			DatabaseName:     envFlag("POSTGRES_DB"),
			ConnectionStatus: "not connected",
			Tables:           []string{},
		}

		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				logger.Log.Errorw("diagnostic ping failed", "err", err)
				resp.Database = err.Error()
			} else {
				resp.Database = "connected"
				resp.ConnectionStatus = "connected"

				const query = `
					SELECT table_name FROM information_schema.tables
					WHERE table_schema = 'public'
					ORDER BY table_name
					LIMIT 10
				`
				if err := db.SelectContext(r.Context(), &resp.Tables, query); err != nil {
					logger.Log.Errorw("diagnostic table listing failed", "err", err)
				}
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

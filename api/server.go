// Package api exposes the bulletin converter over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/aqlanhadi/orcr/extractor"
	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/round2"
	"github.com/aqlanhadi/orcr/integrations/excel"
	"github.com/aqlanhadi/orcr/integrations/jsmodule"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxUploadMemory = 32 << 20

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
	// Options is the template for every request; round, strategy and year
	// may be overridden per request.
	Options extractor.Options
	// Round1Module is read for the smart round-2 strategy when the request
	// carries no round-1 module of its own.
	Round1Module string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
		Options: extractor.Options{
			Round:    1,
			Strategy: round2.Positional,
			Meta: common.Meta{
				Year:   2025,
				Type:   "NEET_PG",
				Exam:   "NEET_PG",
				Gender: "Gender-Neutral",
			},
			Defaults: common.DefaultDefaults(),
			Load:     common.DefaultLoadOptions(),
		},
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	router *chi.Mux
}

// New creates a new API server with the given configuration
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)
	s.router.Post("/parse", s.handleParse)
	s.router.Post("/rows", s.handleRows)
}

// Handler returns the http.Handler for the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ParseOptions holds the per-request overrides of /parse.
type ParseOptions struct {
	Round    int
	Strategy round2.Strategy
	Year     int
	Format   string
}

func (s *Server) parseOptions(r *http.Request) (ParseOptions, error) {
	opts := ParseOptions{
		Round:    s.config.Options.Round,
		Strategy: s.config.Options.Strategy,
		Year:     s.config.Options.Meta.Year,
		Format:   coalesce(r.FormValue("format"), "json"),
	}

	if v := r.FormValue("round"); v != "" {
		round, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid round %q", v)
		}
		opts.Round = round
	}
	if v := r.FormValue("strategy"); v != "" {
		strategy, err := round2.ParseStrategy(v)
		if err != nil {
			return opts, err
		}
		opts.Strategy = strategy
	}
	if v := r.FormValue("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid year %q", v)
		}
		opts.Year = year
	}

	return opts, nil
}

// handleParse converts an uploaded bulletin. The response is JSON holding the
// records and the run report, or the JS module / workbook when format asks for it.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Printf("%sError parsing multipart form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("%sError getting file from form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := s.parseOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := s.config.Options
	opts.Round = params.Round
	opts.Strategy = params.Strategy
	opts.Meta.Year = params.Year
	opts.Meta.Round = params.Round

	if opts.Round == 2 && opts.Strategy == round2.Smart {
		lookup, err := s.lookupFor(r, opts.Defaults)
		if err != nil {
			log.Printf("%sError loading round 1 module: %v", s.config.LogPrefix, err)
			http.Error(w, "Could not read round 1 module: "+err.Error(), http.StatusBadRequest)
			return
		}
		opts.Lookup = lookup
	}

	result, err := extractor.ProcessReader(file, header.Filename, opts)
	switch {
	case errors.Is(err, extractor.ErrNoEntries):
		http.Error(w, "No allotments found in "+header.Filename, http.StatusUnprocessableEntity)
		return
	case errors.Is(err, extractor.ErrUnknownRound), errors.Is(err, common.ErrUnsupportedFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("%sError processing %s: %v", s.config.LogPrefix, header.Filename, err)
		http.Error(w, "Could not process file: "+err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("%sRun %s: %d records from %s", s.config.LogPrefix, result.Report.RunID, len(result.Records), header.Filename)

	switch params.Format {
	case "js":
		r2, r1 := result.Round2Split()
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		if err := jsmodule.Write(w, result.Records, jsmodule.Header{
			Title:         fmt.Sprintf("NEET PG Round %d %d Cutoff Data", opts.Round, opts.Meta.Year),
			Generator:     "orcr serve",
			ExportName:    jsmodule.ExportName(opts.Round, opts.Meta.Year),
			RunID:         result.Report.RunID,
			Split:         opts.Round == 2,
			Round2Entries: r2,
			Round1Entries: r1,
		}); err != nil {
			log.Printf("%sError writing module: %v", s.config.LogPrefix, err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", jsmodule.ExportName(opts.Round, opts.Meta.Year)+".xlsx"))
		if err := excel.Write(w, result.Records, ""); err != nil {
			log.Printf("%sError writing workbook: %v", s.config.LogPrefix, err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// lookupFor prefers an uploaded "r1" module over the configured one.
func (s *Server) lookupFor(r *http.Request, defaults common.Defaults) (*round2.Lookup, error) {
	file, _, err := r.FormFile("r1")
	if errors.Is(err, http.ErrMissingFile) {
		if s.config.Round1Module == "" {
			return round2.NewLookup(nil, defaults), nil
		}
		return extractor.LoadLookup(s.config.Round1Module, defaults)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := jsmodule.Read(file)
	if err != nil {
		return nil, err
	}
	return round2.NewLookup(records, defaults), nil
}

// handleRows returns the cleaned tables of an upload without interpreting them.
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Could not read file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	tables, err := common.LoadTables(bytes.NewReader(fileBytes), header.Filename, s.config.Options.Load)
	if err != nil {
		log.Printf("%sError extracting rows: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not extract rows from file: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"filename": header.Filename,
		"tables":   tables,
	})
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Entry mirrors one row of the records database written by the fastascan CLI.
type Entry struct {
	Name     string `json:"name"`
	Length   int    `json:"length"`
	Alphabet string `json:"alphabet"`
	Sequence string `json:"sequence"`
}

// Code returns the accession-like first token of the record name, used as the
// record's URL identifier.
func (e Entry) Code() string {
	fields := strings.Fields(e.Name)
	if len(fields) == 0 {
		return e.Name
	}
	return fields[0]
}

// RecordsPage is used to render the base page and to carry query state
type RecordsPage struct {
	Records []Entry
	Query   string
	Sort    string
}

var templates *template.Template

func loadTemplates(dir string) error {
	t := template.New("")
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") {
			if _, err := t.ParseFiles(path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	templates = t
	return nil
}

// statusResponseWriter captures status and bytes written for logging
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// loggingMiddleware logs each request with method, path, status, size and duration
func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		duration := time.Since(start)
		logger.Printf("%s - %s %s %d %dB %s %q",
			r.RemoteAddr, r.Method, r.URL.RequestURI(), srw.status, srw.written, duration, r.UserAgent())
	})
}

// readDatabase reads and unmarshals the records JSON file at path
func readDatabase(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// filterRecords keeps the entries whose name or alphabet contains q
// (case-insensitive); an empty q keeps everything.
func filterRecords(entries []Entry, q string) []Entry {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return entries
	}
	return lo.Filter(entries, func(e Entry, _ int) bool {
		return strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Alphabet), q)
	})
}

// sortRecords orders entries in place: "length" descending, "name"
// alphabetical, anything else by record code.
func sortRecords(entries []Entry, mode string) {
	switch mode {
	case "length":
		sort.Slice(entries, func(i, j int) bool { return entries[i].Length > entries[j].Length })
	case "name":
		sort.Slice(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
		})
	default:
		sort.Slice(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Code()) < strings.ToLower(entries[j].Code())
		})
	}
}

func indexHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := readDatabase(dbPath)
		if err != nil {
			log.Printf("warning: failed to read database for index: %v", err)
			entries = []Entry{}
		}
		page := RecordsPage{Records: entries, Query: r.URL.Query().Get("q"), Sort: r.URL.Query().Get("sort")}
		if err := templates.ExecuteTemplate(w, "base.html", page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func recordsHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := readDatabase(dbPath)
		if err != nil {
			http.Error(w, "failed to read database", http.StatusInternalServerError)
			return
		}
		filtered := filterRecords(entries, r.URL.Query().Get("q"))
		sortRecords(filtered, r.URL.Query().Get("sort"))

		// render fragment (send only the slice)
		if err := templates.ExecuteTemplate(w, "records.html", filtered); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func findRecord(entries []Entry, code string) *Entry {
	for _, e := range entries {
		if e.Code() == code {
			ee := e
			return &ee
		}
	}
	return nil
}

func recordHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 3 || parts[2] == "" {
			http.Error(w, "missing record", http.StatusBadRequest)
			return
		}
		code := parts[2]
		entries, err := readDatabase(dbPath)
		if err != nil {
			http.Error(w, "failed to read database", http.StatusInternalServerError)
			return
		}
		found := findRecord(entries, code)
		if found == nil {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		// Fragment for HX requests, full page otherwise
		if r.Header.Get("HX-Request") == "true" || r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
			if err := templates.ExecuteTemplate(w, "detail.html", found); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			return
		}
		if err := templates.ExecuteTemplate(w, "record_page.html", found); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

// apiRecordsHandler returns the filtered, sorted records as JSON
func apiRecordsHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := readDatabase(dbPath)
		if err != nil {
			http.Error(w, "failed to read database", http.StatusInternalServerError)
			return
		}
		filtered := filterRecords(entries, r.URL.Query().Get("q"))
		sortRecords(filtered, r.URL.Query().Get("sort"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(filtered)
	}
}

// apiRecordHandler returns a single record as JSON by code
func apiRecordHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 4 || parts[3] == "" {
			http.Error(w, "missing record code", http.StatusBadRequest)
			return
		}
		code := parts[3]
		entries, err := readDatabase(dbPath)
		if err != nil {
			http.Error(w, "failed to read database", http.StatusInternalServerError)
			return
		}
		if found := findRecord(entries, code); found != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_ = json.NewEncoder(w).Encode(found)
			return
		}
		http.Error(w, "record not found", http.StatusNotFound)
	}
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP address to serve on")
	dbPath := flag.String("db", "records.json", "path to the records JSON database")
	templatesDir := flag.String("templates", "web/templates", "directory of HTML templates")
	logFile := flag.String("log", "", "path to write access logs (optional). If empty, logs go to stdout only")
	flag.Parse()

	if err := loadTemplates(*templatesDir); err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	// prepare mux so we can wrap with middleware
	mux := http.NewServeMux()
	static := http.FileServer(http.Dir("web/static"))
	mux.Handle("/static/", http.StripPrefix("/static/", static))
	mux.HandleFunc("/", indexHandler(*dbPath))
	mux.HandleFunc("/records", recordsHandler(*dbPath))
	mux.HandleFunc("/record/", recordHandler(*dbPath))
	// API endpoints for SPA-like interactions
	mux.HandleFunc("/api/records", apiRecordsHandler(*dbPath))
	mux.HandleFunc("/api/record/", apiRecordHandler(*dbPath))

	// configure logger
	var out io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := log.New(out, "fastascan: ", log.LstdFlags)

	// wrap mux with logging middleware
	handler := loggingMiddleware(logger, mux)

	srv := &http.Server{Addr: *addr, Handler: handler, ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second}
	fmt.Printf("serving records UI at http://%s/ (db=%s)\n", *addr, *dbPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

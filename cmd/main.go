package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/KirkinEgor/FASTA-parsing-and-processing/internal/config"
	"github.com/KirkinEgor/FASTA-parsing-and-processing/internal/fasta"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// Entry is one row of the records database consumed by the TUI and web
// front ends.
type Entry struct {
	Name     string `json:"name"`
	Length   int    `json:"length"`
	Alphabet string `json:"alphabet"`
	Sequence string `json:"sequence"`
}

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write buffers bytes until a newline is found; for each full line, write a timestamped
// line to the underlying writer. Partial lines are kept in the buffer.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	total := n
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			break
		}
		ts := time.Now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return total, err
		}
	}
	return total, nil
}

// terminalWriter wraps an io.Writer and exposes an Fd method so libraries that
// inspect the file descriptor (for TTY detection) can work with wrapped writers.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

// Fd exposes the underlying file descriptor (e.g., os.Stderr.Fd()).
func (tw *terminalWriter) Fd() uintptr { return tw.fd }

func main() {
	// CLI flags
	inputFlag := flag.String("in", "", "input FASTA file path (prompted for when empty)")
	outputFlag := flag.String("out", "records.json", "output JSON file path (empty to skip writing)")
	configFlag := flag.String("config", "", "path to config.json (optional)")
	limitFlag := flag.Int("limit", 0, "stop after this many records (0 = all)")
	printFlag := flag.Bool("print", false, "print each record's FASTA text, length and alphabet to stdout")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("fastascan", version)
		return
	}

	// load config (optional file)
	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// merge CLI flags into config (flags override config when provided)
	if *inputFlag != "" {
		cfg.InputFasta = *inputFlag
	}
	if *outputFlag != "" {
		cfg.OutputJSON = *outputFlag
	}

	// configure logger output
	var loggerOut io.Writer = os.Stderr
	var logFileHandle *os.File
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// write to both stderr and file so running interactively still shows logs
			loggerOut = io.MultiWriter(os.Stderr, f)
			logFileHandle = f
			defer func() { _ = logFileHandle.Close() }()
		}
	}
	// If stderr is a terminal-like device, force colors for libraries that honor FORCE_COLOR.
	if fi, err := os.Stderr.Stat(); err == nil {
		if fi.Mode()&os.ModeCharDevice != 0 {
			_ = os.Setenv("FORCE_COLOR", "1")
		}
	}
	// create logger backed by the timestamping writer and expose Fd so charm.log can detect TTY
	tw := &timestampWriter{w: loggerOut}
	termW := &terminalWriter{w: tw, fd: os.Stderr.Fd()}
	logger := log.New(termW)

	// apply log level from flags/config (flags override config)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			logger.SetLevel(log.DebugLevel)
		case "info", "":
			logger.SetLevel(log.InfoLevel)
		case "warn", "warning":
			logger.SetLevel(log.WarnLevel)
		case "error":
			logger.SetLevel(log.ErrorLevel)
		default:
			logger.SetLevel(log.InfoLevel)
			logger.Warn("unknown log_level in config.json, defaulting to info", "provided", cfg.LogLevel)
		}
	}

	logger.Debug("loaded config", "input_fasta", cfg.InputFasta, "output_json", cfg.OutputJSON, "log_file", cfg.LogFile, "log_level", cfg.LogLevel)
	logger.Info("starting fastascan", "input_fasta", cfg.InputFasta, "output_json", cfg.OutputJSON, "limit", *limitFlag)

	// bind the reader to the configured path, or fall back to the interactive
	// prompt as the path supplier
	var reader *fasta.Reader
	if cfg.InputFasta != "" {
		reader = fasta.NewFileReader(cfg.InputFasta)
	} else {
		logger.Info("no input path configured, prompting")
		reader = fasta.NewPromptReader(promptPath)
	}
	defer reader.Close()

	start := time.Now()
	var entries []Entry
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var malformed *fasta.MalformedError
			switch {
			case errors.As(err, &malformed):
				logger.Fatal("malformed fasta input", "line", malformed.Line, "content", malformed.Text)
			case errors.Is(err, fs.ErrNotExist):
				logger.Fatal("fasta source not found", "err", err)
			default:
				logger.Fatal("failed to read fasta input", "err", err)
			}
		}

		if *printFlag {
			fmt.Print(rec.Fasta())
			fmt.Println(rec.Len())
			fmt.Println(rec.Alphabet())
			fmt.Println()
		}

		entries = append(entries, Entry{
			Name:     rec.Header,
			Length:   rec.Len(),
			Alphabet: rec.Alphabet().String(),
			Sequence: rec.Sequence,
		})
		if *limitFlag > 0 && len(entries) >= *limitFlag {
			logger.Debug("record limit reached, stopping early", "limit", *limitFlag)
			break
		}
	}
	logger.Info("parsed fasta", "records", len(entries), "duration_ms", time.Since(start).Milliseconds())

	// summary: per-alphabet counts, total length, longest record
	counts := lo.CountValuesBy(entries, func(e Entry) string { return e.Alphabet })
	total := lo.SumBy(entries, func(e Entry) int { return e.Length })
	logger.Info("alphabet summary",
		"nucleotide", counts[fasta.AlphabetNucleotide.String()],
		"protein", counts[fasta.AlphabetProtein.String()],
		"unknown", counts[fasta.AlphabetUnknown.String()],
		"total_length", total)
	if len(entries) > 0 {
		longest := lo.MaxBy(entries, func(a, b Entry) bool { return a.Length > b.Length })
		logger.Info("longest record", "name", longest.Name, "length", longest.Length)
	}

	if cfg.OutputJSON == "" {
		logger.Info("no output path set, skipping database write")
		return
	}
	jsonData, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		logger.Fatal("json marshal failed", "err", err)
	}
	if err := os.WriteFile(cfg.OutputJSON, jsonData, 0o644); err != nil {
		logger.Fatal("failed to write output JSON", "path", cfg.OutputJSON, "err", err)
	}
	logger.Info("wrote output JSON", "path", cfg.OutputJSON, "records", len(entries))
}

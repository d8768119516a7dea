package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/roster/internal/config"
	"github.com/rshade/roster/internal/roster"
)

// fakeService is an in-memory employee service.
type fakeService struct {
	mu        sync.Mutex
	records   []roster.Record
	nextID    int
	token     string
	failGets  int // status returned for GET when non-zero
	verdict   *bool
	gets      int
	lastWrite roster.Record
}

func newFakeService(n int) *fakeService {
	titles := roster.JobTitles()
	svc := &fakeService{nextID: n + 1}
	for i := 1; i <= n; i++ {
		svc.records = append(svc.records, roster.Record{
			ID:       i,
			Name:     fmt.Sprintf("Employee %02d", i),
			JobTitle: titles[i%len(titles)],
			HireDate: roster.HireDate(fmt.Sprintf("2020-02-%02d", i)),
		})
	}
	return svc
}

func (s *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /employees", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.gets++
		if s.failGets != 0 {
			http.Error(w, "unavailable", s.failGets)
			return
		}
		_ = json.NewEncoder(w).Encode(s.records)
	})
	mux.HandleFunc("POST /employees", func(w http.ResponseWriter, r *http.Request) {
		var rec roster.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastWrite = rec
		if s.declined() {
			_, _ = io.WriteString(w, "false")
			return
		}
		rec.ID = s.nextID
		s.nextID++
		s.records = append(s.records, rec)
		_, _ = io.WriteString(w, "true")
	})
	mux.HandleFunc("PUT /employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		var rec roster.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastWrite = rec
		i := s.index(r.PathValue("id"))
		if i < 0 || s.declined() {
			_, _ = io.WriteString(w, "false")
			return
		}
		s.records[i] = rec
		_, _ = io.WriteString(w, "true")
	})
	mux.HandleFunc("DELETE /employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := s.index(r.PathValue("id"))
		if i < 0 || s.declined() {
			_, _ = io.WriteString(w, "false")
			return
		}
		s.records = slices.Delete(s.records, i, i+1)
		_, _ = io.WriteString(w, "true")
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (s *fakeService) declined() bool {
	return s.verdict != nil && !*s.verdict
}

func (s *fakeService) index(raw string) int {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return slices.IndexFunc(s.records, func(r roster.Record) bool { return r.ID == id })
}

func (s *fakeService) record(id int) (roster.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return roster.Record{}, false
}

func (s *fakeService) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

func (s *fakeService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *fakeService) set(fn func(*fakeService)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// setupCLI isolates the environment and starts svc. It returns the roster
// home directory.
func setupCLI(t *testing.T, svc *fakeService) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvAPIToken, "")
	t.Setenv(config.EnvPageSize, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvCacheTTLSeconds, "")
	t.Setenv(config.EnvCacheEnabled, "")
	t.Setenv(config.EnvCacheDir, "")

	if svc != nil {
		srv := httptest.NewServer(svc.handler())
		t.Cleanup(srv.Close)
		t.Setenv(config.EnvAPIURL, srv.URL)
	} else {
		t.Setenv(config.EnvAPIURL, "")
	}

	setInteractive(t, false)
	return home
}

func setInteractive(t *testing.T, v bool) {
	t.Helper()
	orig := isInteractive
	isInteractive = func() bool { return v }
	t.Cleanup(func() { isInteractive = orig })
}

// execute runs the root command with args and returns everything written
// to stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, out)
	return out
}

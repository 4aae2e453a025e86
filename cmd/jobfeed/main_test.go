package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/jobfeed/internal/filter"
	"github.com/amishk599/jobfeed/internal/model"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"config", fmt.Errorf("%w: bad", model.ErrConfig), exitConfig},
		{"fetch", fmt.Errorf("%w: boom", model.ErrFetch), exitFatal},
		{"delivery", fmt.Errorf("%w: boom", model.ErrDelivery), exitFatal},
		{"persist", fmt.Errorf("%w: boom", model.ErrPersist), exitFatal},
		{"other", errors.New("unknown command"), exitFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestPrintVerdicts(t *testing.T) {
	var buf bytes.Buffer
	c := filter.NewTitleClassifier(filter.DefaultIncludeKeywords, filter.DefaultExcludeKeywords)

	require.NoError(t, printVerdicts(&buf, c, []string{"Data Analyst", "Senior Data Scientist", "Software Engineer"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ACCEPT"))
	assert.Contains(t, lines[0], `include "data analyst"`)
	assert.True(t, strings.HasPrefix(lines[1], "REJECT"))
	assert.Contains(t, lines[1], `exclude "senior "`)
	assert.Contains(t, lines[2], "no include keyword")
}

// isolateEnv points every state path at a temp dir and clears keys a
// developer machine might have set.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{
		"NOTIFIER", "DISCORD_WEBHOOK_URL", "SLACK_WEBHOOK_URL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"DEDUP_POLICY", "BYPASS_CLASSIFIER", "KEYWORDS_FILE", "STATE_BACKEND", "FETCH_RETRIES",
		"MAX_POSTS_PER_RUN",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("STATE_FILE", filepath.Join(dir, "seen_jobs.json"))
	t.Setenv("POST_INTERVAL", "0s")
	t.Setenv("LOG_LEVEL", "error")
	envFile = ""
	t.Cleanup(func() {
		envFile = ".env"
		rootCmd.PersistentFlags().Lookup("env-file").Changed = false
	})
	return dir
}

func TestExecute_ConfigErrorExitsTwo(t *testing.T) {
	isolateEnv(t)
	t.Setenv("NOTIFIER", "discord") // no webhook URL

	var stderr bytes.Buffer
	code := execute([]string{"run", "--env-file", ""}, &stderr)

	assert.Equal(t, exitConfig, code)
	assert.Contains(t, stderr.String(), "DISCORD_WEBHOOK_URL")
}

func TestExecute_MissingExplicitEnvFileExitsTwo(t *testing.T) {
	dir := isolateEnv(t)

	var stderr bytes.Buffer
	code := execute([]string{"classify", "--env-file", filepath.Join(dir, "nope.env"), "Data Analyst"}, &stderr)

	assert.Equal(t, exitConfig, code)
}

func TestExecute_Version(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	code := execute([]string{"version"}, io.Discard)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "jobfeed dev\n", out.String())
}

func TestExecute_RunDeliversAndPersists(t *testing.T) {
	dir := isolateEnv(t)

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"employer_name":"Acme","job_title":"Data Analyst","job_city":"Austin","job_state":"TX","job_apply_link":"https://acme.example/1","job_posted_at":"1d"},
			{"employer_name":"Globex","job_title":"Software Engineer"},
			{"employer_name":"Initech","job_title":"Business Analyst"}
		]`)
	}))
	defer feed.Close()

	var posts atomic.Int32
	var mu sync.Mutex
	var titles []string
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		var p struct {
			Embeds []struct {
				Title string `json:"title"`
			} `json:"embeds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&p); err == nil && len(p.Embeds) > 0 {
			mu.Lock()
			titles = append(titles, p.Embeds[0].Title)
			mu.Unlock()
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hook.Close()

	t.Setenv("JOBS_URL", feed.URL)
	t.Setenv("DISCORD_WEBHOOK_URL", hook.URL)

	code := execute([]string{"run"}, io.Discard)
	require.Equal(t, exitOK, code)
	assert.EqualValues(t, 1, posts.Load())
	mu.Lock()
	assert.Equal(t, []string{"Acme — Data Analyst"}, titles)
	mu.Unlock()

	data, err := os.ReadFile(filepath.Join(dir, "seen_jobs.json"))
	require.NoError(t, err)
	var keys []string
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 1)

	// Second run delivers the next candidate only.
	code = execute([]string{"run"}, io.Discard)
	require.Equal(t, exitOK, code)
	assert.EqualValues(t, 2, posts.Load())
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, titles, 2)
	assert.Equal(t, "Initech — Business Analyst", titles[1])
}

func TestExecute_RunDeliveryFailureExitsOne(t *testing.T) {
	dir := isolateEnv(t)

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"employer_name":"Acme","job_title":"Data Analyst"}]`)
	}))
	defer feed.Close()
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer hook.Close()

	t.Setenv("JOBS_URL", feed.URL)
	t.Setenv("DISCORD_WEBHOOK_URL", hook.URL)

	var stderr bytes.Buffer
	code := execute([]string{"run"}, &stderr)

	assert.Equal(t, exitFatal, code)
	assert.Contains(t, stderr.String(), "delivery failed")
	_, err := os.Stat(filepath.Join(dir, "seen_jobs.json"))
	assert.True(t, os.IsNotExist(err), "seen set must not be written after a failed delivery")
}

func TestExecute_CheckDoesNotPostOrPersist(t *testing.T) {
	dir := isolateEnv(t)

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"employer_name":"Acme","job_title":"Data Analyst"}]`)
	}))
	defer feed.Close()
	t.Setenv("JOBS_URL", feed.URL)

	code := execute([]string{"check"}, io.Discard)

	assert.Equal(t, exitOK, code)
	_, err := os.Stat(filepath.Join(dir, "seen_jobs.json"))
	assert.True(t, os.IsNotExist(err))
}

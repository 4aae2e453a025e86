package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobfeed/internal/adapter"
	"github.com/amishk599/jobfeed/internal/dispatcher"
	"github.com/amishk599/jobfeed/internal/filter"
	"github.com/amishk599/jobfeed/internal/model"
	"github.com/amishk599/jobfeed/internal/notifier"
)

// LookupFunc returns the value of a configuration key. os.LookupEnv fits.
type LookupFunc func(key string) (string, bool)

// Notifier kinds.
const (
	NotifierDiscord  = "discord"
	NotifierSlack    = "slack"
	NotifierTelegram = "telegram"
	NotifierLog      = "log"
)

// State backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the root configuration for jobfeed.
type Config struct {
	JobsURL        string
	HTTPTimeout    time.Duration
	FetchRetries   int
	MaxPostsPerRun int
	PostInterval   time.Duration

	Dedup    dispatcher.Policy
	Bypass   bool
	Keywords KeywordConfig
	State    StateConfig
	Notify   NotificationConfig
	Message  notifier.MessageOptions

	LogLevel  string
	LogFormat string
}

// KeywordConfig holds the classifier keyword lists.
type KeywordConfig struct {
	File    string // optional YAML source, empty when defaults are used
	Include []string
	Exclude []string
}

// StateConfig controls where the seen set lives.
type StateConfig struct {
	Backend     string // "json" or "sqlite"
	Path        string
	LockTimeout time.Duration
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type              string // discord, slack, telegram or log
	DiscordWebhookURL string
	SlackWebhookURL   string
	TelegramToken     string
	TelegramChatID    int64
}

// keywordFile is the YAML shape of KEYWORDS_FILE.
type keywordFile struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Load reads every key through lookup and parses it. Malformed values are
// reported together, wrapped in model.ErrConfig. Load does not check that
// the selected notifier has credentials; see Validate.
func Load(lookup LookupFunc) (*Config, error) {
	p := parser{lookup: lookup}

	cfg := &Config{
		JobsURL:        p.str("JOBS_URL", adapter.DefaultFeedURL),
		HTTPTimeout:    p.duration("HTTP_TIMEOUT", 45*time.Second),
		FetchRetries:   p.integer("FETCH_RETRIES", 0),
		MaxPostsPerRun: p.integer("MAX_POSTS_PER_RUN", 1),
		PostInterval:   p.duration("POST_INTERVAL", 500*time.Millisecond),
		Bypass:         p.boolean("BYPASS_CLASSIFIER", false),
		Keywords: KeywordConfig{
			File:    p.str("KEYWORDS_FILE", ""),
			Include: filter.DefaultIncludeKeywords,
			Exclude: filter.DefaultExcludeKeywords,
		},
		State: StateConfig{
			Backend:     strings.ToLower(p.str("STATE_BACKEND", BackendJSON)),
			Path:        p.str("STATE_FILE", "seen_jobs.json"),
			LockTimeout: p.duration("STATE_LOCK_TIMEOUT", 10*time.Second),
		},
		Notify: NotificationConfig{
			Type:              strings.ToLower(p.str("NOTIFIER", NotifierDiscord)),
			DiscordWebhookURL: p.str("DISCORD_WEBHOOK_URL", ""),
			SlackWebhookURL:   p.str("SLACK_WEBHOOK_URL", ""),
			TelegramToken:     p.str("TELEGRAM_BOT_TOKEN", ""),
		},
		Message: notifier.MessageOptions{
			SourceLabel: p.str("FEED_SOURCE_LABEL", notifier.DefaultSourceLabel),
			HomepageURL: p.str("FEED_HOMEPAGE_URL", notifier.DefaultHomepageURL),
			Footer:      p.str("MESSAGE_FOOTER", notifier.DefaultFooter),
		},
		LogLevel:  strings.ToLower(p.str("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(p.str("LOG_FORMAT", "text")),
	}

	if chat := p.str("TELEGRAM_CHAT_ID", ""); chat != "" {
		id, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			p.fail("TELEGRAM_CHAT_ID %q: not an integer", chat)
		}
		cfg.Notify.TelegramChatID = id
	}

	policy, err := dispatcher.ParsePolicy(strings.ToLower(p.str("DEDUP_POLICY", string(dispatcher.PolicySkipSeen))))
	if err != nil {
		p.fail("DEDUP_POLICY: %v", err)
	}
	cfg.Dedup = policy

	if cfg.Keywords.File != "" {
		include, exclude, err := loadKeywords(cfg.Keywords.File)
		if err != nil {
			p.fail("KEYWORDS_FILE: %v", err)
		}
		if include != nil {
			cfg.Keywords.Include = include
		}
		if exclude != nil {
			cfg.Keywords.Exclude = exclude
		}
	}

	if err := p.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and that the selected notifier has what it
// needs. All problems are reported together, wrapped in model.ErrConfig.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if _, err := url.ParseRequestURI(c.JobsURL); err != nil {
		add("JOBS_URL %q is not a valid URL", c.JobsURL)
	}
	if c.HTTPTimeout <= 0 {
		add("HTTP_TIMEOUT must be positive, got %v", c.HTTPTimeout)
	}
	if c.FetchRetries < 0 {
		add("FETCH_RETRIES must be >= 0, got %d", c.FetchRetries)
	}
	if c.MaxPostsPerRun < 0 {
		add("MAX_POSTS_PER_RUN must be >= 0, got %d", c.MaxPostsPerRun)
	}
	if c.PostInterval < 0 {
		add("POST_INTERVAL must be >= 0, got %v", c.PostInterval)
	}

	switch c.State.Backend {
	case BackendJSON, BackendSQLite:
	default:
		add("STATE_BACKEND must be %q or %q, got %q", BackendJSON, BackendSQLite, c.State.Backend)
	}
	if c.State.Path == "" {
		add("STATE_FILE must not be empty")
	}
	if c.State.LockTimeout <= 0 {
		add("STATE_LOCK_TIMEOUT must be positive, got %v", c.State.LockTimeout)
	}

	switch c.Notify.Type {
	case NotifierDiscord:
		if c.Notify.DiscordWebhookURL == "" {
			add("DISCORD_WEBHOOK_URL is required when NOTIFIER is %q", NotifierDiscord)
		} else if !isHTTPURL(c.Notify.DiscordWebhookURL) {
			add("DISCORD_WEBHOOK_URL must be an http(s) URL")
		}
	case NotifierSlack:
		if c.Notify.SlackWebhookURL == "" {
			add("SLACK_WEBHOOK_URL is required when NOTIFIER is %q", NotifierSlack)
		} else if !strings.HasPrefix(c.Notify.SlackWebhookURL, "https://hooks.slack.com/") {
			add("SLACK_WEBHOOK_URL must start with https://hooks.slack.com/")
		}
	case NotifierTelegram:
		if c.Notify.TelegramToken == "" {
			add("TELEGRAM_BOT_TOKEN is required when NOTIFIER is %q", NotifierTelegram)
		}
		if c.Notify.TelegramChatID == 0 {
			add("TELEGRAM_CHAT_ID is required when NOTIFIER is %q", NotifierTelegram)
		}
	case NotifierLog:
	default:
		add("NOTIFIER must be one of discord, slack, telegram, log; got %q", c.Notify.Type)
	}

	switch c.LogFormat {
	case "text", "json", "color":
	default:
		add("LOG_FORMAT must be text, json or color; got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		add("LOG_LEVEL must be debug, info, warn or error; got %q", c.LogLevel)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", model.ErrConfig, strings.Join(problems, "; "))
}

// WithLogNotifier returns a copy of c that delivers to the log instead of a
// chat sink. Commands that never send use it before Validate.
func (c *Config) WithLogNotifier() *Config {
	cp := *c
	cp.Notify.Type = NotifierLog
	return &cp
}

func loadKeywords(path string) (include, exclude []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read keywords: %w", err)
	}
	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, nil, fmt.Errorf("parse keywords %s: %w", path, err)
	}
	if kf.Include != nil && len(kf.Include) == 0 {
		return nil, nil, errors.New("include list is empty; every listing would be rejected")
	}
	return kf.Include, kf.Exclude, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}

// parser collects parse failures so Load can report them all at once.
type parser struct {
	lookup   LookupFunc
	problems []string
}

func (p *parser) fail(format string, args ...any) {
	p.problems = append(p.problems, fmt.Sprintf(format, args...))
}

func (p *parser) err() error {
	if len(p.problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", model.ErrConfig, strings.Join(p.problems, "; "))
}

// str returns the trimmed value of key, or def when unset or blank.
func (p *parser) str(key, def string) string {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

func (p *parser) integer(key string, def int) int {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail("%s %q: not an integer", key, raw)
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail("parse %s %q: %v", key, raw, err)
		return def
	}
	return d
}

func (p *parser) boolean(key string, def bool) bool {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail("%s %q: not a boolean", key, raw)
		return def
	}
	return b
}

package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr          string
	DBConnection  string
	LogLevel      string
	SessionSecret string

	Timeout int

	Webhook WebhookConfig
}

// WebhookConfig is handed to the webhook dispatcher as is.
type WebhookConfig struct {
	URL               string
	Secret            string
	Timeout           time.Duration
	Tries             int
	Backoff           string
	BackoffBase       time.Duration
	BackoffMax        time.Duration
	Headers           map[string]string
	VerifySSL         bool
	Queue             string
	HTTPVerb          string
	NumWorkers        int
	MaxRequestsPerMin int
}

func NewConfig() *Config {
	return &Config{
		Addr:         ":8081",
		DBConnection: "",
		LogLevel:     "info",
		Timeout:      15,
		Webhook: WebhookConfig{
			Timeout:     10 * time.Second,
			Tries:       5,
			Backoff:     "exponential",
			BackoffBase: time.Second,
			BackoffMax:  time.Minute,
			Headers: map[string]string{
				"Content-Type": "application/json",
				"X-App":        "OrderForm",
			},
			VerifySSL:         true,
			Queue:             "default",
			HTTPVerb:          "post",
			NumWorkers:        4,
			MaxRequestsPerMin: 600,
		},
	}
}

func Init(c *Config) error {
	return parse(c, flag.CommandLine, os.Args[1:])
}

func parse(c *Config, fs *flag.FlagSet, args []string) error {
	if err := fromEnv(c); err != nil {
		return err
	}

	fs.StringVar(&c.Addr, "a", c.Addr, "HTTP-server startup address and port")
	fs.StringVar(&c.DBConnection, "d", c.DBConnection, "database connection address")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")
	fs.StringVar(&c.Webhook.URL, "w", c.Webhook.URL, "webhook receiver URL")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if c.DBConnection == "" {
		return fmt.Errorf("set DATABASE_URI env variable")
	}
	if c.Webhook.URL == "" {
		return fmt.Errorf("set WEBHOOK_URL env variable")
	}
	if c.Webhook.Secret == "" {
		return fmt.Errorf("set WEBHOOK_SECRET env variable")
	}
	if c.Webhook.Tries < 1 {
		return fmt.Errorf("WEBHOOK_TRIES must be at least 1, got %d", c.Webhook.Tries)
	}

	return nil
}

func fromEnv(c *Config) error {
	if val, exist := os.LookupEnv("RUN_ADDRESS"); exist {
		c.Addr = val
	}
	if val, exist := os.LookupEnv("DATABASE_URI"); exist {
		c.DBConnection = val
	}
	if val, exist := os.LookupEnv("LOG_LEVEL"); exist {
		c.LogLevel = val
	}
	if val, exist := os.LookupEnv("SESSION_SECRET"); exist {
		c.SessionSecret = val
	}
	if err := envInt("REQUEST_TIMEOUT", &c.Timeout); err != nil {
		return err
	}

	w := &c.Webhook
	if val, exist := os.LookupEnv("WEBHOOK_URL"); exist {
		w.URL = val
	}
	if val, exist := os.LookupEnv("WEBHOOK_SECRET"); exist {
		w.Secret = val
	}
	if val, exist := os.LookupEnv("WEBHOOK_BACKOFF"); exist {
		w.Backoff = val
	}
	if val, exist := os.LookupEnv("WEBHOOK_QUEUE"); exist {
		w.Queue = val
	}
	if val, exist := os.LookupEnv("WEBHOOK_HTTP_VERB"); exist {
		w.HTTPVerb = val
	}
	if val, exist := os.LookupEnv("WEBHOOK_HEADERS"); exist {
		headers, err := ParseHeaders(val)
		if err != nil {
			return err
		}
		w.Headers = headers
	}
	if val, exist := os.LookupEnv("WEBHOOK_VERIFY_SSL"); exist {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("WEBHOOK_VERIFY_SSL: %w", err)
		}
		w.VerifySSL = b
	}

	var timeoutSec, baseMS, maxMS int
	if err := envInt("WEBHOOK_TIMEOUT", &timeoutSec); err != nil {
		return err
	}
	if timeoutSec > 0 {
		w.Timeout = time.Duration(timeoutSec) * time.Second
	}
	if err := envInt("WEBHOOK_BACKOFF_BASE_MS", &baseMS); err != nil {
		return err
	}
	if baseMS > 0 {
		w.BackoffBase = time.Duration(baseMS) * time.Millisecond
	}
	if err := envInt("WEBHOOK_BACKOFF_MAX_MS", &maxMS); err != nil {
		return err
	}
	if maxMS > 0 {
		w.BackoffMax = time.Duration(maxMS) * time.Millisecond
	}

	if err := envInt("WEBHOOK_TRIES", &w.Tries); err != nil {
		return err
	}
	if err := envInt("WEBHOOK_WORKERS", &w.NumWorkers); err != nil {
		return err
	}
	return envInt("WEBHOOK_RATE_PER_MIN", &w.MaxRequestsPerMin)
}

func envInt(key string, dst *int) error {
	val, exist := os.LookupEnv(key)
	if !exist {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// ParseHeaders reads "Key=Value,Key=Value".
func ParseHeaders(raw string) (map[string]string, error) {
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("WEBHOOK_HEADERS: malformed pair %q", pair)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}

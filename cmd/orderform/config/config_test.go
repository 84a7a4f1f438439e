package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("orderform", flag.ContinueOnError)
}

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/orders")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/orders")
	t.Setenv("WEBHOOK_SECRET", "s3cret")
}

func Test_Defaults(t *testing.T) {
	setRequiredEnv(t)

	c := NewConfig()
	require.NoError(t, parse(c, newFlagSet(), nil))

	assert.Equal(t, ":8081", c.Addr)
	assert.Equal(t, 15, c.Timeout)
	assert.Equal(t, 10*time.Second, c.Webhook.Timeout)
	assert.Equal(t, 5, c.Webhook.Tries)
	assert.Equal(t, "exponential", c.Webhook.Backoff)
	assert.True(t, c.Webhook.VerifySSL)
	assert.Equal(t, "default", c.Webhook.Queue)
	assert.Equal(t, "post", c.Webhook.HTTPVerb)
	assert.Equal(t, "application/json", c.Webhook.Headers["Content-Type"])
}

func Test_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RUN_ADDRESS", ":9000")
	t.Setenv("WEBHOOK_TIMEOUT", "3")
	t.Setenv("WEBHOOK_TRIES", "2")
	t.Setenv("WEBHOOK_BACKOFF", "linear")
	t.Setenv("WEBHOOK_BACKOFF_BASE_MS", "250")
	t.Setenv("WEBHOOK_BACKOFF_MAX_MS", "2000")
	t.Setenv("WEBHOOK_HEADERS", "Content-Type=application/json, X-App=Shop")
	t.Setenv("WEBHOOK_VERIFY_SSL", "false")
	t.Setenv("WEBHOOK_QUEUE", "webhooks")

	c := NewConfig()
	require.NoError(t, parse(c, newFlagSet(), nil))

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, 3*time.Second, c.Webhook.Timeout)
	assert.Equal(t, 2, c.Webhook.Tries)
	assert.Equal(t, "linear", c.Webhook.Backoff)
	assert.Equal(t, 250*time.Millisecond, c.Webhook.BackoffBase)
	assert.Equal(t, 2*time.Second, c.Webhook.BackoffMax)
	assert.Equal(t, map[string]string{"Content-Type": "application/json", "X-App": "Shop"}, c.Webhook.Headers)
	assert.False(t, c.Webhook.VerifySSL)
	assert.Equal(t, "webhooks", c.Webhook.Queue)
}

func Test_FlagsOverrideEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RUN_ADDRESS", ":9000")

	c := NewConfig()
	require.NoError(t, parse(c, newFlagSet(), []string{"-a", ":7000", "-w", "http://localhost:9999/hook"}))

	assert.Equal(t, ":7000", c.Addr)
	assert.Equal(t, "http://localhost:9999/hook", c.Webhook.URL)
}

func Test_RequiredValues(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		want  string
	}{
		{name: "database", unset: "DATABASE_URI", want: "DATABASE_URI"},
		{name: "webhook url", unset: "WEBHOOK_URL", want: "WEBHOOK_URL"},
		{name: "webhook secret", unset: "WEBHOOK_SECRET", want: "WEBHOOK_SECRET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			err := parse(NewConfig(), newFlagSet(), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func Test_InvalidNumbers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEBHOOK_TRIES", "many")

	err := parse(NewConfig(), newFlagSet(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBHOOK_TRIES")
}

func Test_ZeroTries(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEBHOOK_TRIES", "0")

	assert.Error(t, parse(NewConfig(), newFlagSet(), nil))
}

func Test_ParseHeaders(t *testing.T) {
	h, err := ParseHeaders("A=1,,B = two ")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two"}, h)

	_, err = ParseHeaders("novalue")
	assert.Error(t, err)
}

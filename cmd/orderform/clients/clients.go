package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orderform/cmd/orderform/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	SignatureHeader  = "Signature"
	TimestampHeader  = "Timestamp"
	DeliveryIDHeader = "X-Delivery-Id"
)

var ErrDeliveryFailed = errors.New("webhook delivery failed")

// WebhookCall is one signed delivery of Body to URL.
type WebhookCall struct {
	ID     string
	URL    string
	Body   []byte
	Secret string
}

type Sender interface {
	Send(ctx context.Context, call WebhookCall) error
}

type WebhookClient struct {
	client *resty.Client
	verb   string
	tries  int
	logger *zap.SugaredLogger
	now    func() time.Time
}

// Sign returns the hex HMAC-SHA256 of body keyed by secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func NewWebhookClient(conf config.WebhookConfig, logger *zap.SugaredLogger) (*WebhookClient, error) {
	strategy, err := NewBackoffStrategy(conf.Backoff, conf.BackoffBase, conf.BackoffMax)
	if err != nil {
		return nil, err
	}

	verb := strings.ToUpper(strings.TrimSpace(conf.HTTPVerb))
	if verb == "" {
		verb = http.MethodPost
	}
	tries := conf.Tries
	if tries < 1 {
		tries = 1
	}

	client := resty.New().
		SetTimeout(conf.Timeout).
		SetHeaders(conf.Headers).
		SetRetryCount(tries - 1).
		SetRetryWaitTime(strategy.NextDelay(1)).
		SetRetryMaxWaitTime(maxDelay(strategy, tries)).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			return strategy.NextDelay(resp.Request.Attempt), nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp == nil || resp.IsError()
		})

	if !conf.VerifySSL {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // Opt-in via WEBHOOK_VERIFY_SSL=false
	}
	if logger != nil {
		client.SetLogger(logger)
	}

	wc := &WebhookClient{
		client: client,
		verb:   verb,
		tries:  tries,
		logger: logger,
		now:    time.Now,
	}

	// Runs once per attempt, so every retry carries its own send time.
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader(TimestampHeader, strconv.FormatInt(wc.now().Unix(), 10))
		return nil
	})

	return wc, nil
}

func maxDelay(strategy BackoffStrategy, tries int) time.Duration {
	var longest time.Duration
	for attempt := 1; attempt <= tries; attempt++ {
		if d := strategy.NextDelay(attempt); d > longest {
			longest = d
		}
	}
	return longest
}

// Send delivers call, retrying per the client's backoff until tries run out.
func (wc *WebhookClient) Send(ctx context.Context, call WebhookCall) error {
	resp, err := wc.client.R().
		SetContext(ctx).
		SetHeader(SignatureHeader, Sign(call.Body, call.Secret)).
		SetHeader(DeliveryIDHeader, call.ID).
		SetBody(call.Body).
		Execute(wc.verb, call.URL)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrDeliveryFailed, wc.verb, call.URL, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: %s %s responded %s after %d attempts",
			ErrDeliveryFailed, wc.verb, call.URL, resp.Status(), resp.Request.Attempt)
	}

	return nil
}

// Package google translates text with the public Google Translate endpoint used by
// the "gtx" web client. No API key is required.
package google

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/tidwall/gjson"
	"resty.dev/v3"

	"github.com/at-ishikawa/dreamer/internal/translation"
)

const (
	DefaultBaseURL          = "https://translate.googleapis.com"
	DefaultTimeout          = 5 * time.Second
	DefaultMaxRetryAttempts = 2
	defaultRetryDelay       = 100 * time.Millisecond
)

var errEmptyTranslation = errors.New("empty translation")

type Config struct {
	BaseURL          string
	Timeout          time.Duration
	MaxRetryAttempts uint
	RetryDelay       time.Duration
}

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

var _ translation.Translator = (*Client)(nil)

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = defaultRetryDelay
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(config.BaseURL, "/"))
	client.SetTimeout(config.Timeout)

	return &Client{
		httpClient:       client,
		maxRetryAttempts: config.MaxRetryAttempts,
		retryDelay:       config.RetryDelay,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// isRetryableError reports whether the error is worth another request
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	// 5xx and rate limiting
	if strings.Contains(errStr, "response error 5") || strings.Contains(errStr, "response error 429") {
		return true
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	return false
}

// Translate implements the translation.Translator interface
func (client *Client) Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" || targetLanguage == sourceLanguage {
		return text, nil
	}

	var result string
	if err := retry.Do(
		func() error {
			translated, err := client.translate(ctx, text, targetLanguage, sourceLanguage)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = translated
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) translate(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     sourceLanguage,
			"tl":     targetLanguage,
			"dt":     "t",
			"q":      text,
		}).
		Get("/translate_a/single")
	if err != nil {
		return "", fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	translated, err := parseTranslation(response.String())
	if err != nil {
		return "", fmt.Errorf("parseTranslation > %w", err)
	}
	return translated, nil
}

// parseTranslation joins the translated segments of a response shaped like
// [[["translated", "original", ...], ...], null, "pt", ...].
func parseTranslation(body string) (string, error) {
	if !gjson.Valid(body) {
		return "", fmt.Errorf("invalid JSON: %s", body)
	}
	segments := gjson.Get(body, "0")
	if !segments.IsArray() {
		return "", fmt.Errorf("unexpected response shape: %s", body)
	}

	var builder strings.Builder
	for _, segment := range segments.Array() {
		builder.WriteString(segment.Get("0").String())
	}
	if strings.TrimSpace(builder.String()) == "" {
		return "", errEmptyTranslation
	}
	return builder.String(), nil
}

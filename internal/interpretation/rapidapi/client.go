package rapidapi

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/at-ishikawa/dreamer/internal/interpretation"
)

const (
	DefaultHost    = "ai-dream-interpretation-dream-dictionary-dream-analysis.p.rapidapi.com"
	DefaultTimeout = 8 * time.Second
)

type Config struct {
	Host      string
	Key       string
	Timeout   time.Duration
	TLSVerify bool
	// RequestsPerSecond limits outgoing calls. Zero disables the limit.
	RequestsPerSecond float64
	Burst             int
}

type Client struct {
	config     Config
	httpClient *resty.Client
	limiter    *rate.Limiter
}

var _ interpretation.Client = (*Client)(nil)

func NewClient(config Config) *Client {
	if config.Host == "" {
		config.Host = DefaultHost
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetTimeout(config.Timeout).
		SetHeader("x-rapidapi-key", config.Key).
		SetHeader("x-rapidapi-host", config.Host).
		SetHeader("Content-Type", "application/json")
	if !config.TLSVerify {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) // #nosec G402 -- opt-in via SSL_VERIFY=false
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

type interpretRequest struct {
	Symbol   string `json:"symbol"`
	Language string `json:"language"`
}

func (c *Client) url() string {
	return fmt.Sprintf("https://%s/dreamDictionary?noqueue=1", c.config.Host)
}

// Interpret implements the interpretation.Client interface.
// Over-limit calls fail immediately instead of waiting for a token.
func (c *Client) Interpret(ctx context.Context, symbol string) (string, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return "", fmt.Errorf("rate limit exceeded > %w", interpretation.ErrNoResult)
	}

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(interpretRequest{
			Symbol:   symbol,
			Language: interpretation.NativeLanguage,
		}).
		Post(c.url())
	if err != nil {
		return "", fmt.Errorf("client.R.Post > %w: %w", err, interpretation.ErrNoResult)
	}
	if res.StatusCode() != http.StatusOK && res.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("status code: %d, body: %s > %w", res.StatusCode(), truncate(string(res.Body())), interpretation.ErrNoResult)
	}

	meaning, err := ExtractMeaning(res.Body())
	if err != nil {
		return "", fmt.Errorf("ExtractMeaning > %w", err)
	}
	return meaning, nil
}

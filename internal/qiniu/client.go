package qiniu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanikLP1/qiniu-stats/internal/auth"
)

const DefaultBaseURL = "https://api.qiniuapi.com"

// Doer issues a single HTTP request. net/http клиент подходит как есть;
// в тестах подменяется транспорт.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client — тонкий клиент метрического API. Ключи аккаунта передаются в
// каждый вызов: один клиент обслуживает все аккаунты.
type Client struct {
	baseURL string
	http    Doer
	logger  *slog.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		// без ретраев и редиректов: сбои метрик гасятся выше как нули
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger.With(slog.String("comp", "qiniu_client")),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL exposes the configured API origin (нужен селекторным метрикам и
// тестам, без рефлексии).
func (c *Client) BaseURL() string { return c.baseURL }

// getJSON signs url with the QBox scheme (empty body), issues the GET and
// decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, cred auth.Credentials, url string, out any) error {
	authorization, err := auth.QBoxToken(cred, url, "")
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", authorization)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 256))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

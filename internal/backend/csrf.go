package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/deepmindcheck/web/pkg/logger"
)

// Token returns the current anti-forgery token: the service's cookie when
// the jar holds one, otherwise whatever PrimeCSRF scraped. Empty means the
// header is simply omitted.
func (c *Client) Token() string {
	if token := c.cookieToken(); token != "" {
		return token
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scraped
}

// PrimeCSRF fetches the prime page so the service sets its anti-forgery
// cookie in the jar, mirroring what a browser picks up on page load. When
// the response sets no cookie, the hidden form field in the page markup is
// scraped as a fallback.
func (c *Client) PrimeCSRF(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(c.primePath), nil)
	if err != nil {
		return fmt.Errorf("failed to create csrf prime request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportErr("csrf-prime", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serviceErr("csrf-prime", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if c.cookieToken() != "" {
		logger.Debug("Anti-forgery cookie primed")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to parse csrf prime page: %w", err)
	}

	token, ok := doc.Find("input[name=csrfmiddlewaretoken]").First().Attr("value")
	if !ok || token == "" {
		return fmt.Errorf("csrf prime page carries no token")
	}

	c.mu.Lock()
	c.scraped = token
	c.mu.Unlock()

	logger.Debug("Anti-forgery token scraped from prime page")
	return nil
}

func (c *Client) cookieToken() string {
	if c.httpClient.Jar == nil {
		return ""
	}
	for _, ck := range c.httpClient.Jar.Cookies(c.baseURL) {
		if ck.Name == c.csrfCookie && ck.Value != "" {
			return ck.Value
		}
	}
	return ""
}

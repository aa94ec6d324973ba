// Package ingest acquires new vocabulary: candidate terms extracted from web
// articles and ready-made translation pairs from tab-separated files.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"
)

// maxBodySize caps article downloads to prevent OOM from untrusted URLs.
const maxBodySize = 10 * 1024 * 1024

// FetchArticle downloads the URL and extracts its readable text. Browser-like
// headers are sent because many news sites block obvious non-browser clients.
func FetchArticle(ctx context.Context, rawURL string) (readability.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return readability.Article{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.8")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return readability.Article{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readability.Article{}, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return readability.Article{}, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return readability.Article{}, fmt.Errorf("body exceeds %d bytes", maxBodySize)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return readability.Article{}, fmt.Errorf("parse url: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return readability.Article{}, fmt.Errorf("extract article: %w", err)
	}
	return article, nil
}

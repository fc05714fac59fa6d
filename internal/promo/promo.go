// Package promo fetches the featured-project page shown beside the flash
// progress and reduces it to plain text for the terminal.
package promo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrEmpty is returned when the page has no readable text.
var ErrEmpty = errors.New("promo page has no text")

const (
	fetchTimeout = 5 * time.Second
	maxBodyBytes = 512 * 1024
)

// Content is the readable part of a promo page.
type Content struct {
	Title string
	Lines []string
}

// Fetcher downloads promo pages.
type Fetcher struct {
	http *http.Client
}

// NewFetcher returns a Fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{http: &http.Client{Timeout: fetchTimeout}}
}

// Fetch downloads url and extracts its text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Content{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.http.Do(req)
	if err != nil {
		return Content{}, fmt.Errorf("fetch promo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return Content{}, fmt.Errorf("promo %s returned status %d", url, resp.StatusCode)
	}
	return Extract(io.LimitReader(resp.Body, maxBodyBytes))
}

// Extract walks an HTML document and returns its title and visible text,
// one line per block element.
func Extract(r io.Reader) (Content, error) {
	var (
		content Content
		line    strings.Builder
		skip    int
		inTitle bool
	)
	flush := func() {
		text := strings.Join(strings.Fields(line.String()), " ")
		line.Reset()
		if text != "" {
			content.Lines = append(content.Lines, text)
		}
	}

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return Content{}, fmt.Errorf("parse promo: %w", err)
			}
			flush()
			if content.Title == "" && len(content.Lines) == 0 {
				return Content{}, ErrEmpty
			}
			return content, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Script || a == atom.Style || a == atom.Noscript:
				skip++
			case a == atom.Title:
				inTitle = true
			case isBlock(a):
				flush()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Script || a == atom.Style || a == atom.Noscript:
				if skip > 0 {
					skip--
				}
			case a == atom.Title:
				inTitle = false
			case isBlock(a):
				flush()
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := string(z.Text())
			if inTitle {
				content.Title = strings.Join(strings.Fields(text), " ")
				continue
			}
			line.WriteString(text)
			line.WriteByte(' ')
		}
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4,
		atom.H5, atom.H6, atom.Section, atom.Article, atom.Header, atom.Footer, atom.Tr:
		return true
	}
	return false
}

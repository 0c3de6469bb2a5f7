// Package fetch mirrors a competition's published result pages into a local
// directory so they can be scored like pages written by the scoring software.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/errgroup"

	"github.com/teamtotals/teamtotals/pkg/competition"
	"github.com/teamtotals/teamtotals/pkg/pipeline"
)

const (
	DefaultConcurrency = 4
	DefaultRetryMax    = 3
	userAgent          = "Mozilla/5.0 (X11; Linux x86_64; rv:83.0) Gecko/20100101 Firefox/83.0"
)

// Options configures Mirror. Zero values pick the defaults.
type Options struct {
	Concurrency int
	RetryMax    int
	Proxy       string
	Log         pipeline.Logger // optional; nil = no logging

	// Client replaces the client built from RetryMax and Proxy.
	Client *retryablehttp.Client
}

// NewClient returns a retrying HTTP client, optionally sending its requests
// through proxy.
func NewClient(proxy string, retryMax int) (*retryablehttp.Client, error) {
	client := retryablehttp.NewClient()
	client.Logger = log.New(io.Discard, "", 0)
	client.RetryMax = retryMax

	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %v", err)
		}
		client.HTTPClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}
	return client, nil
}

// Mirror downloads every result page linked from the index page at indexURL
// into dir and returns the written paths, sorted. Existing files are
// replaced. Links whose file name is not a result page are ignored.
func Mirror(ctx context.Context, indexURL, dir string, opts Options) ([]string, error) {
	client := opts.Client
	if client == nil {
		retryMax := opts.RetryMax
		if retryMax <= 0 {
			retryMax = DefaultRetryMax
		}
		var err error
		if client, err = NewClient(opts.Proxy, retryMax); err != nil {
			return nil, err
		}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL: %w", err)
	}
	body, err := get(ctx, client, indexURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing index %s: %w", indexURL, err)
	}

	links := Links(doc, base)
	if opts.Log != nil {
		opts.Log.Infof("Found %d result pages at %s", len(links), indexURL)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			target := filepath.Join(dir, fileName(link))
			if err := download(gctx, client, link, target); err != nil {
				return err
			}
			if opts.Log != nil {
				opts.Log.Debugf("Saved %s", target)
			}
			paths[i] = target
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// Links returns the absolute URLs of the result pages the document links to,
// each at most once, in document order.
func Links(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		u := base.ResolveReference(ref)
		u.Fragment = ""
		if _, ok := competition.ClassifyFile(fileName(u.String())); !ok {
			return
		}
		if seen[u.String()] {
			return
		}
		seen[u.String()] = true
		links = append(links, u.String())
	})
	return links
}

func fileName(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

func get(ctx context.Context, client *retryablehttp.Client, link string) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-transform")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", link, resp.Status)
	}
	return resp.Body, nil
}

func download(ctx context.Context, client *retryablehttp.Client, link, target string) error {
	body, err := get(ctx, client, link)
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", link, err)
	}
	return os.WriteFile(target, data, 0o644)
}

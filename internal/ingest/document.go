package ingest

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	rpdf "rsc.io/pdf"
)

var documentAnchorRegex = regexp.MustCompile(`(?i)(rfp|solicitation|attachment|amendment|statement of work|sow|specifications?|requirements)`)

var deadlineSnippetRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/20\d{2}\b`),
	regexp.MustCompile(`(?i)\b20\d{2}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},?\s+20\d{2}\b`),
}

// FetchedPage is the raw result of a document-page fetch.
type FetchedPage struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	FetchedAt   time.Time
}

// DocumentFetcher retrieves RFP document pages and attachments. Colly gives
// per-domain rate limiting and retries for free, which matters when the
// download endpoint hits arbitrary agency sites.
type DocumentFetcher struct {
	UserAgent      string
	MaxRetries     int
	RequestTimeout time.Duration
	DomainDelay    time.Duration
	MaxBodySize    int
}

func NewDocumentFetcher() *DocumentFetcher {
	return &DocumentFetcher{
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		MaxRetries:     2,
		RequestTimeout: 30 * time.Second,
		DomainDelay:    time.Second,
		MaxBodySize:    10 * 1024 * 1024,
	}
}

func (f *DocumentFetcher) buildCollector(host string) *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(f.UserAgent),
		colly.MaxBodySize(f.MaxBodySize),
		colly.AllowURLRevisit(),
		colly.AllowedDomains(host),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       f.DomainDelay,
	})
	c.SetRequestTimeout(f.RequestTimeout)
	return c
}

// Fetch retrieves one URL through the rate-limited collector. Cancelling ctx
// abandons the request; the in-flight transfer finishes in the background and
// its result is discarded.
func (f *DocumentFetcher) Fetch(ctx context.Context, targetURL string) (*FetchedPage, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	// AllowedDomains matches against the hostname without the port.
	c := f.buildCollector(parsed.Hostname())

	var result *FetchedPage
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result = &FetchedPage{
			URL:         r.Request.URL.String(),
			StatusCode:  r.StatusCode,
			ContentType: r.Headers.Get("Content-Type"),
			Body:        r.Body,
			FetchedAt:   time.Now(),
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		retries := 0
		if r.Request.Ctx.GetAny("retries") != nil {
			retries = r.Request.Ctx.GetAny("retries").(int)
		}
		if retries < f.MaxRetries {
			r.Request.Ctx.Put("retries", retries+1)
			r.Request.Retry()
			return
		}
		fetchErr = fmt.Errorf("fetch failed after %d retries: %w", f.MaxRetries, err)
	})

	// Visit blocks until the request (and any retries) finish; receiving from
	// done after that gives the happens-before edge for result and fetchErr.
	done := make(chan error, 1)
	go func() {
		if err := c.Visit(targetURL); err != nil {
			done <- fmt.Errorf("visit failed: %w", err)
			return
		}
		c.Wait()
		done <- nil
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, err
		}
	}

	if fetchErr != nil {
		return nil, fetchErr
	}
	if result == nil {
		return nil, fmt.Errorf("no response received for %s", targetURL)
	}
	return result, nil
}

// CollectDocumentLinks pulls likely solicitation-document URLs out of an
// HTML page: PDF hrefs, download links, and anchors whose text looks like
// procurement paperwork. Relative hrefs are resolved against baseURL.
func CollectDocumentLinks(baseURL, htmlBody string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	baseParsed, _ := url.Parse(baseURL)
	seen := map[string]bool{}
	var out []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		hrefLower := strings.ToLower(strings.TrimSpace(href))
		anchorText := strings.ToLower(strings.TrimSpace(sel.Text()))
		isLikelyDoc := documentAnchorRegex.MatchString(anchorText) ||
			strings.Contains(hrefLower, ".pdf") ||
			strings.Contains(hrefLower, "download") ||
			strings.Contains(hrefLower, "/document/")
		if !isLikelyDoc {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := ref.String()
		if baseParsed != nil {
			abs = baseParsed.ResolveReference(ref).String()
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
	})

	return out
}

// DocumentInfo is the metadata served by the download endpoint.
type DocumentInfo struct {
	URL           string   `json:"url"`
	ContentType   string   `json:"content_type"`
	SizeBytes     int      `json:"size_bytes"`
	Pages         int      `json:"pages,omitempty"`
	DeadlineHints []string `json:"deadline_hints,omitempty"`
	Links         []string `json:"links,omitempty"`
}

// InspectDocument fetches a document URL and reports what it found. PDFs get
// a page count plus any date strings that look like deadlines; HTML pages
// get their discovered document links instead.
func (f *DocumentFetcher) InspectDocument(ctx context.Context, targetURL string) (*DocumentInfo, error) {
	page, err := f.Fetch(ctx, targetURL)
	if err != nil {
		return nil, err
	}

	info := &DocumentInfo{
		URL:         page.URL,
		ContentType: page.ContentType,
		SizeBytes:   len(page.Body),
	}

	contentType := strings.ToLower(page.ContentType)
	if strings.Contains(contentType, "pdf") || strings.HasSuffix(strings.ToLower(targetURL), ".pdf") {
		pages, text, err := extractPDFText(page.Body)
		if err != nil {
			// An unreadable PDF is still a valid download target.
			return info, nil
		}
		info.Pages = pages
		info.DeadlineHints = scanDeadlineHints(text)
		return info, nil
	}

	info.Links = CollectDocumentLinks(page.URL, string(page.Body))
	return info, nil
}

// extractPDFText returns the page count and concatenated text content. The
// parser panics on some malformed files, hence the recover.
func extractPDFText(content []byte) (pages int, text string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("pdf parser panic: %v", recovered)
			pages, text = 0, ""
		}
	}()

	reader, err := rpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, "", err
	}

	pages = reader.NumPage()
	var builder strings.Builder
	for pageIndex := 1; pageIndex <= pages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		for _, fragment := range page.Content().Text {
			builder.WriteString(fragment.S)
			builder.WriteString(" ")
		}
		builder.WriteString("\n")
	}

	return pages, builder.String(), nil
}

func scanDeadlineHints(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, expr := range deadlineSnippetRegexes {
		for _, match := range expr.FindAllString(text, -1) {
			token := strings.TrimSpace(match)
			if !seen[token] {
				seen[token] = true
				out = append(out, token)
			}
		}
	}
	return out
}

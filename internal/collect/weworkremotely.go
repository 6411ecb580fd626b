package collect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sohia/remote-work-tracker/internal/fetch"
	"github.com/sohia/remote-work-tracker/internal/types"
)

// DefaultWeWorkRemotelyBaseURL is the public listing root.
const DefaultWeWorkRemotelyBaseURL = "https://weworkremotely.com"

// wwrBoard is the job_board label for records from this source.
const wwrBoard = "WeWorkRemotely"

// WeWorkRemotely scrapes the WeWorkRemotely listing pages. The board does
// not expose publication dates on listing pages, so the scrape date stands
// in as the publication date.
type WeWorkRemotely struct {
	baseURL    string
	pages      int
	delay      time.Duration
	opts       *fetch.Options
	useBrowser bool
}

// NewWeWorkRemotely builds a board scraper covering the first n listing
// pages. With useBrowser set, thin responses are retried through a headless
// browser, since the board sometimes serves a client-rendered shell. A
// non-positive timeout falls back to the default.
func NewWeWorkRemotely(baseURL string, pages int, delay, timeout time.Duration, useBrowser bool) *WeWorkRemotely {
	if pages < 1 {
		pages = 1
	}
	opts := fetch.DefaultOptions()
	if timeout > 0 {
		opts.Timeout = timeout
	}
	return &WeWorkRemotely{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		pages:      pages,
		delay:      delay,
		opts:       opts,
		useBrowser: useBrowser,
	}
}

func (c *WeWorkRemotely) Name() string { return wwrBoard }

// Collect walks the listing pages in order. A failing page is logged and
// skipped; partial results are better than none for a best-effort tracker.
func (c *WeWorkRemotely) Collect(ctx context.Context) ([]types.RawRecord, error) {
	scrapeDate := time.Now().Format("2006-01-02")

	var records []types.RawRecord
	for page := 1; page <= c.pages; page++ {
		if page > 1 {
			pause(ctx, c.delay)
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		pageURL := fmt.Sprintf("%s/remote-jobs?page=%d", c.baseURL, page)
		html, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			slog.WarnContext(ctx, "skipping listing page", "url", pageURL, "err", err)
			continue
		}

		batch, err := c.parseListings(html, scrapeDate)
		if err != nil {
			slog.WarnContext(ctx, "failed to parse listing page", "url", pageURL, "err", err)
			continue
		}
		slog.InfoContext(ctx, "scraped listing page", "url", pageURL, "jobs", len(batch))
		records = append(records, batch...)
	}
	return records, nil
}

func (c *WeWorkRemotely) fetchPage(ctx context.Context, pageURL string) (string, error) {
	res, err := fetch.URL(ctx, pageURL, c.opts)
	if err != nil {
		return "", err
	}
	if c.useBrowser && fetch.ShouldUseBrowser(res.Body) {
		return fetch.WithBrowser(ctx, pageURL, c.opts.Timeout)
	}
	return res.Body, nil
}

// parseListings extracts one raw record per job entry in the page's job
// sections. Entries missing a link or title are skipped.
func (c *WeWorkRemotely) parseListings(html, scrapeDate string) ([]types.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var records []types.RawRecord
	doc.Find("section.jobs").Each(func(_ int, section *goquery.Selection) {
		category := strings.TrimSpace(section.Find("h2").First().Text())

		section.Find("li").Each(func(_ int, li *goquery.Selection) {
			anchor := li.Find("a[href]").First()
			href, ok := anchor.Attr("href")
			if !ok {
				return
			}

			title := strings.TrimSpace(li.Find("span.title").First().Text())
			company := strings.TrimSpace(li.Find("span.company").First().Text())
			if title == "" || company == "" {
				return
			}

			region := strings.TrimSpace(li.Find("span.region").First().Text())
			if region == "" {
				region = "Remote"
			}

			records = append(records, types.RawRecord{
				"Job Title":                   title,
				"Company Name":                company,
				"Category":                    category,
				"Candidate Required Location": region,
				"Publication Date":            scrapeDate,
				"Source URL":                  c.absoluteURL(href),
				"Job Board":                   wwrBoard,
			})
		})
	})
	return records, nil
}

func (c *WeWorkRemotely) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.baseURL + href
}

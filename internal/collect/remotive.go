package collect

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sohia/remote-work-tracker/internal/fetch"
	"github.com/sohia/remote-work-tracker/internal/types"
)

// DefaultRemotiveBaseURL is the public Remotive API root.
const DefaultRemotiveBaseURL = "https://remotive.com"

// remotiveBoard is the job_board label for records from this source.
const remotiveBoard = "Remotive.com"

// Remotive collects postings from the Remotive remote-jobs REST API,
// one request per category with a politeness pause between requests.
// Remotive advises very low request volumes, so one sweep per run is all
// this collector ever does.
type Remotive struct {
	client *resty.Client
	limit  int
	delay  time.Duration
}

// NewRemotive builds a Remotive collector. limit caps jobs per category
// (0 means the API default); delay is the pause between category requests;
// a non-positive timeout falls back to the default.
func NewRemotive(baseURL string, limit int, delay, timeout time.Duration) *Remotive {
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	return &Remotive{client: client, limit: limit, delay: delay}
}

func (c *Remotive) Name() string { return remotiveBoard }

// Timeout reports the per-request HTTP timeout in effect.
func (c *Remotive) Timeout() time.Duration { return c.client.GetClient().Timeout }

type remotiveJob struct {
	ID                        int64  `json:"id"`
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	PublicationDate           string `json:"publication_date"`
	JobType                   string `json:"job_type"`
	Category                  string `json:"category"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	Salary                    string `json:"salary"`
	Description               string `json:"description"`
	URL                       string `json:"url"`
	CompanyLogo               string `json:"company_logo"`
}

type remotiveJobsResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveCategory struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type remotiveCategoriesResponse struct {
	Jobs []remotiveCategory `json:"jobs"`
}

// Categories fetches the list of category slugs known to the API.
func (c *Remotive) Categories(ctx context.Context) ([]string, error) {
	var payload remotiveCategoriesResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/api/remote-jobs/categories")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remotive categories: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remotive categories: HTTP status %d", resp.StatusCode())
	}

	slugs := make([]string, 0, len(payload.Jobs))
	for _, cat := range payload.Jobs {
		slugs = append(slugs, cat.Slug)
	}
	return slugs, nil
}

// Collect sweeps every category and returns the combined raw batch. A
// failing category is logged and skipped; it never aborts the sweep.
func (c *Remotive) Collect(ctx context.Context) ([]types.RawRecord, error) {
	categories, err := c.Categories(ctx)
	if err != nil {
		return nil, err
	}

	var records []types.RawRecord
	for i, category := range categories {
		if i > 0 {
			pause(ctx, c.delay)
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		batch, err := c.collectCategory(ctx, category)
		if err != nil {
			slog.WarnContext(ctx, "skipping remotive category", "category", category, "err", err)
			continue
		}
		slog.InfoContext(ctx, "fetched remotive category", "category", category, "jobs", len(batch))
		records = append(records, batch...)
	}
	return records, nil
}

func (c *Remotive) collectCategory(ctx context.Context, category string) ([]types.RawRecord, error) {
	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("category", category)
	if c.limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(c.limit))
	}

	var payload remotiveJobsResponse
	resp, err := req.SetResult(&payload).Get("/api/remote-jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remotive jobs: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remotive jobs: HTTP status %d", resp.StatusCode())
	}

	records := make([]types.RawRecord, 0, len(payload.Jobs))
	for _, job := range payload.Jobs {
		records = append(records, types.RawRecord{
			"Job ID":                      job.ID,
			"Job Title":                   job.Title,
			"Company Name":                job.CompanyName,
			"Publication Date":            job.PublicationDate,
			"Job Type":                    job.JobType,
			"Category":                    job.Category,
			"Candidate Required Location": job.CandidateRequiredLocation,
			"Salary Range":                job.Salary,
			"Job Description":             job.Description,
			"Source URL":                  job.URL,
			"Company Logo":                job.CompanyLogo,
			"Job Board":                   remotiveBoard,
		})
	}
	return records, nil
}

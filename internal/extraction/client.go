// Package extraction calls the external bill-extraction service and maps
// its response into ledger-ready items, degrading to a fixed sample bill
// when the service cannot produce usable results.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/okayfine/billsplit/internal/models"
)

// ErrExtractionFailed marks any reason the external call did not yield
// usable items: transport failure, non-2xx status, malformed body, or an
// empty item list. Callers of Extract never see it raw; it only drives
// the fallback path and logging.
var ErrExtractionFailed = errors.New("extraction failed")

const defaultTimeout = 60 * time.Second

// Client posts uploaded bill files to the extraction service.
type Client struct {
	// BaseURL is the service root, e.g. "http://localhost:8001/api".
	BaseURL string

	httpClient *http.Client
}

// NewClient creates a Client for the given service base URL. A zero
// timeout falls back to a 60s default; extraction is slow on large
// images.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Result is the outcome of one extraction attempt.
type Result struct {
	// Items are the extracted line items, in the service's order, or
	// the sample fallback.
	Items []models.ExtractedItem

	// Bill carries the service's full response metadata (totals,
	// confidence). Nil on the fallback path.
	Bill *models.ExtractedBill

	// Fallback is true when Items is the sample set rather than real
	// extraction output, so the caller can surface a notice.
	Fallback bool
}

// Extract posts the file to the service and returns its items. Exactly
// one attempt is made; every failure mode recovers to the sample fallback
// with Fallback set, so Extract itself never returns an error to act on.
//
// PDF uploads route to the process-pdf endpoint, everything else to
// process-image, mirroring the service's API.
func (c *Client) Extract(ctx context.Context, file io.Reader, filename, mediaType string) Result {
	bill, err := c.call(ctx, file, filename, mediaType)
	if err != nil {
		slog.Warn("extraction failed, using sample items", "filename", filename, "error", err)
		return Result{Items: SampleItems(), Fallback: true}
	}

	slog.Info("bill extracted",
		"filename", filename,
		"items_count", len(bill.Items),
		"confidence", bill.ConfidenceScore,
	)
	return Result{Items: bill.Items, Bill: bill}
}

func (c *Client) call(ctx context.Context, file io.Reader, filename, mediaType string) (*models.ExtractedBill, error) {
	endpoint := "process-image"
	if mediaType == "application/pdf" {
		endpoint = "process-pdf"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: build form: %v", ErrExtractionFailed, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("%w: read upload: %v", ErrExtractionFailed, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: close form: %v", ErrExtractionFailed, err)
	}

	url := fmt.Sprintf("%s/%s", c.BaseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrExtractionFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrExtractionFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: service returned status %d: %s", ErrExtractionFailed, resp.StatusCode, string(body))
	}

	var bill models.ExtractedBill
	if err := json.Unmarshal(body, &bill); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrExtractionFailed, err)
	}
	if err := validate(&bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// validate fails closed: a response with no items or with any malformed
// item is treated as a full extraction failure rather than partial data.
func validate(bill *models.ExtractedBill) error {
	if len(bill.Items) == 0 {
		return fmt.Errorf("%w: service returned no items", ErrExtractionFailed)
	}
	for i, item := range bill.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: item %d has no name", ErrExtractionFailed, i)
		}
		if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			return fmt.Errorf("%w: item %d has invalid price %v", ErrExtractionFailed, i, item.Price)
		}
	}
	return nil
}

// SampleItems returns the fixed demo bill used whenever extraction cannot
// produce usable items.
func SampleItems() []models.ExtractedItem {
	return []models.ExtractedItem{
		{Name: "Pasta Carbonara", Price: 16.99},
		{Name: "Caesar Salad", Price: 9.99},
		{Name: "Garlic Bread", Price: 5.99},
		{Name: "Tiramisu", Price: 7.99},
		{Name: "Iced Tea", Price: 3.99},
	}
}

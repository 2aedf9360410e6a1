// Package billing provides an outbound client for the billing ERP
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "releves/internal/platform/errors"
	"releves/internal/platform/logger"
	"releves/internal/services/readings/domain"
)

const (
	defaultTimeout = 5 * time.Second
	defaultUA      = "releves-api"
)

// Options configures the Client
type Options struct {
	// BaseURL of the billing ERP, empty disables the client
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// APIKey is sent as a bearer token when set
	APIKey string
}

// Client posts committed readings to the billing ERP
// it implements the readings NotifierPort
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("billing"),
	}
}

// notifyPayload is the wire shape the ERP expects
type notifyPayload struct {
	ReadingID   string    `json:"id_releve"`
	MeterSerial string    `json:"numero_serie"`
	AgentID     string    `json:"id_agent"`
	Date        time.Time `json:"date_releve"`
	Consumption int64     `json:"consommation"`
	Rollover    bool      `json:"rollover"`
}

// NotifyReading implements domain.NotifierPort
func (c *Client) NotifyReading(ctx context.Context, r domain.Reading) error {
	body, err := json.Marshal(notifyPayload{
		ReadingID:   r.ID,
		MeterSerial: r.MeterSerial,
		AgentID:     r.AgentID,
		Date:        r.Date,
		Consumption: r.Consumption,
		Rollover:    r.Rollover,
	})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "billing marshal failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/facturation/releves", bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "billing new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "billing request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("id_releve", r.ID).
		Msg("billing notify")

	if resp.StatusCode >= 300 {
		return perr.Unavailablef("billing returned status %d", resp.StatusCode)
	}
	return nil
}

var _ domain.NotifierPort = (*Client)(nil)

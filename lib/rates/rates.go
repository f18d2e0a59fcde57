// Package rates fetches live currency exchange rates from an
// open.er-api.com compatible provider and degrades to a configured
// fallback rate whenever the provider cannot be trusted.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"pricetrack/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("pricetrack.lib.rates")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput sets the location where all dumps of resty
// requests and responses made by this package will be written to.
// Call this before NewClient.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyInstrumentOutput = output
}

// Source tells where a quote's rate came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Quote is a single base to target exchange rate together with the
// moment the provider last refreshed it.
type Quote struct {
	Base      string
	Target    string
	Rate      decimal.Decimal
	UpdatedAt time.Time
	Source    Source
}

// latestPayload mirrors the provider's /latest/<BASE> response.
type latestPayload struct {
	Result             string                     `json:"result"`
	Rates              map[string]decimal.Decimal `json:"rates"`
	TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
}

type Options struct {
	// Endpoint is the provider root, e.g. "https://open.er-api.com/v6".
	Endpoint string
	// FallbackRate is returned by Fallback and by Resolve whenever the
	// live lookup fails for any reason.
	FallbackRate decimal.Decimal
	Timeout      time.Duration
}

type Client struct {
	http     *resty.Client
	fallback decimal.Decimal
}

func NewClient(options Options) *Client {
	if options.Timeout == 0 {
		options.Timeout = time.Second * 10
	}

	client := resty.New()
	client.SetBaseURL(options.Endpoint)
	client.SetTimeout(options.Timeout)
	client.SetHeader("accept", "application/json")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		http:     client,
		fallback: options.FallbackRate,
	}
}

// FetchLive asks the provider for the latest base to target rate.
// Every failure mode surfaces as an error: transport failures, non-2xx
// statuses, bodies that are not the expected JSON, a result marker
// other than "success", and a rates table missing the target code.
func (c *Client) FetchLive(ctx context.Context, base, target string) (Quote, error) {
	ctx, span := tracer.Start(ctx, "FetchLive")
	defer span.End()
	span.SetAttributes(
		attribute.String("base", base),
		attribute.String("target", target),
	)

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/latest/%s", base))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rate request failed")
		return Quote{}, err
	}
	if res.IsError() {
		err = fmt.Errorf("rate provider returned status %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "rate request failed")
		return Quote{}, err
	}

	var payload latestPayload
	err = json.Unmarshal(res.Body(), &payload)
	if err != nil {
		err = fmt.Errorf("could not parse rate payload: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed rate payload")
		return Quote{}, err
	}
	if payload.Result != "success" {
		err = fmt.Errorf("rate provider reported result %q", payload.Result)
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider-side failure")
		return Quote{}, err
	}
	rate, ok := payload.Rates[target]
	if !ok {
		err = fmt.Errorf("target currency %q missing from rates table", target)
		span.RecordError(err)
		span.SetStatus(codes.Error, "target currency missing")
		return Quote{}, err
	}

	return Quote{
		Base:      base,
		Target:    target,
		Rate:      rate,
		UpdatedAt: time.Unix(payload.TimeLastUpdateUnix, 0),
		Source:    SourceLive,
	}, nil
}

// Fallback returns the configured mock rate stamped with the current
// time, so a dead or misbehaving provider can never stall a run.
func (c *Client) Fallback(base, target string) Quote {
	return Quote{
		Base:      base,
		Target:    target,
		Rate:      c.fallback,
		UpdatedAt: time.Now(),
		Source:    SourceFallback,
	}
}

// Resolve fetches the live rate and degrades to Fallback on any
// failure. It never returns an error, the worst outcome is a quote
// carrying the fallback rate.
func (c *Client) Resolve(ctx context.Context, base, target string) Quote {
	quote, err := c.FetchLive(ctx, base, target)
	if err != nil {
		slog.WarnContext(
			ctx, "live rate lookup failed, using fallback rate",
			"base", base,
			"target", target,
			"fallback", c.fallback,
			"err", err,
		)
		return c.Fallback(base, target)
	}

	slog.InfoContext(
		ctx, "fetched live rate",
		"base", quote.Base,
		"target", quote.Target,
		"rate", quote.Rate,
		"updated_at", quote.UpdatedAt,
	)
	return quote
}

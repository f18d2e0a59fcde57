// Package pricefeed runs the scrape, convert, display, export
// pipeline end to end: products come off a storefront page, prices
// get converted with a live (or fallback) exchange rate, and the
// result lands on the console and in two export files.
package pricefeed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"pricetrack/lib/rates"
	"pricetrack/lib/scrapers/storefront"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("pricetrack.services.pricefeed")

type Options struct {
	Storefront storefront.Options
	Rates      rates.Options
	// Base is the currency products are priced in on the page.
	Base string
	// Target is the currency prices are converted into.
	Target string
	// CsvFile and JsonFile are overwritten wholesale on every run.
	CsvFile  string
	JsonFile string
	// Out receives the rendered table and notices. Defaults to
	// stdout.
	Out io.Writer
}

type Service struct {
	scraper  *storefront.Scraper
	rates    *rates.Client
	base     string
	target   string
	csvFile  string
	jsonFile string
	out      io.Writer
}

func NewService(options Options) Service {
	if options.CsvFile == "" {
		options.CsvFile = "product_prices_converted.csv"
	}
	if options.JsonFile == "" {
		options.JsonFile = "product_prices_converted.json"
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}

	return Service{
		scraper:  storefront.NewScraper(options.Storefront),
		rates:    rates.NewClient(options.Rates),
		base:     options.Base,
		target:   options.Target,
		csvFile:  options.CsvFile,
		jsonFile: options.JsonFile,
		out:      options.Out,
	}
}

// Run executes one full pipeline pass. A failed scrape aborts the run
// before anything is rendered or written. Everything after the scrape
// degrades instead of failing: the rate falls back to its configured
// mock value and a failed export is logged while the other one still
// gets attempted.
func (s Service) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	products, err := s.scraper.FetchProducts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")
		return fmt.Errorf("scrape products: %w", err)
	}

	quote := s.rates.Resolve(ctx, s.base, s.target)
	records := Convert(products, quote)
	span.SetAttributes(
		attribute.Int("record_count", len(records)),
		attribute.String("rate_source", string(quote.Source)),
	)

	RenderTable(s.out, records, quote)

	if len(records) == 0 {
		slog.InfoContext(ctx, "no records scraped, skipping exports")
		return nil
	}

	err = WriteCsv(records, s.csvFile)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(
			ctx, "could not write csv export",
			"file", s.csvFile, "err", err,
		)
	} else {
		slog.InfoContext(ctx, "wrote csv export", "file", s.csvFile)
	}

	err = WriteJson(records, s.jsonFile)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(
			ctx, "could not write json export",
			"file", s.jsonFile, "err", err,
		)
	} else {
		slog.InfoContext(ctx, "wrote json export", "file", s.jsonFile)
	}

	return nil
}

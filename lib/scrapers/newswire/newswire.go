// Package newswire grabs the current top headline off a news index
// page.
package newswire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"pricetrack/lib/htmlutil"
	"pricetrack/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("pricetrack.lib.scrapers.newswire")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput sets the location where all dumps of resty
// requests and responses made by this package will be written to.
// Call this before NewScraper.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyInstrumentOutput = output
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Options struct {
	// Url is the news index page to scrape.
	Url string
	// UserAgent is sent with every request. News sites in particular
	// turn away clients that do not look like a browser.
	UserAgent string
	Timeout   time.Duration
}

type Scraper struct {
	http *resty.Client
	url  string
}

func NewScraper(options Options) *Scraper {
	if options.UserAgent == "" {
		options.UserAgent = defaultUserAgent
	}
	if options.Timeout == 0 {
		options.Timeout = time.Second * 10
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", options.UserAgent)
	client.SetTimeout(options.Timeout)
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Scraper{
		http: client,
		url:  options.Url,
	}
}

// TopHeadline returns the first story heading on the page, flattened
// to a single line.
func (s *Scraper) TopHeadline(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "TopHeadline")
	defer span.End()
	span.SetAttributes(attribute.String("url", s.url))

	res, err := s.http.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not fetch news page")
		return "", err
	}
	if res.IsError() {
		err = fmt.Errorf("news site returned status %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not fetch news page")
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not parse news page")
		return "", err
	}

	headline := doc.Find("h2").First()
	if headline.Length() == 0 {
		err = errors.New("no headline found on page")
		span.RecordError(err)
		span.SetStatus(codes.Error, "no headline found")
		return "", err
	}

	return htmlutil.CleanText(headline.Text()), nil
}

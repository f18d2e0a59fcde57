// Package storefront scrapes product names and prices off a
// storefront catalogue page.
package storefront

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"pricetrack/lib/htmlutil"
	"pricetrack/lib/moneyutil"
	"pricetrack/lib/restyutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("pricetrack.lib.scrapers.storefront")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput sets the location where all dumps of resty
// requests and responses made by this package will be written to.
// Call this before NewScraper.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyInstrumentOutput = output
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Product is one catalogue entry as it appears on the page, price
// still in the storefront's own currency.
type Product struct {
	Name  string
	Price float64
}

type Options struct {
	// Url is the catalogue page to scrape.
	Url string
	// UserAgent is sent with every request. Some storefronts refuse
	// clients that do not look like a browser.
	UserAgent string
	// MaxItems caps how many products a single scrape returns. Zero
	// means no cap.
	MaxItems int
	Timeout  time.Duration
}

type Scraper struct {
	http     *resty.Client
	url      string
	maxItems int
}

func NewScraper(options Options) *Scraper {
	if options.UserAgent == "" {
		options.UserAgent = defaultUserAgent
	}
	if options.Timeout == 0 {
		options.Timeout = time.Second * 10
	}

	client := resty.New()
	client.SetTimeout(options.Timeout)
	client.SetHeader("user-agent", options.UserAgent)
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Scraper{
		http:     client,
		url:      options.Url,
		maxItems: options.MaxItems,
	}
}

// FetchProducts downloads the catalogue page and extracts the products
// listed on it. A product whose price text cannot be understood is
// kept with a zero price rather than dropped, so the rest of the row
// still shows up downstream.
func (s *Scraper) FetchProducts(ctx context.Context) ([]Product, error) {
	ctx, span := tracer.Start(ctx, "FetchProducts")
	defer span.End()
	span.SetAttributes(attribute.String("url", s.url))

	res, err := s.http.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not fetch catalogue page")
		return nil, err
	}
	if res.IsError() {
		err = fmt.Errorf("storefront returned status %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not fetch catalogue page")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not parse catalogue page")
		return nil, err
	}

	products := s.extractProducts(ctx, doc)
	span.SetAttributes(attribute.Int("product_count", len(products)))
	slog.InfoContext(
		ctx, "extracted products",
		"url", s.url,
		"count", len(products),
	)
	return products, nil
}

func (s *Scraper) extractProducts(ctx context.Context, doc *goquery.Document) []Product {
	products := []Product{}

	doc.Find("article.product_pod").EachWithBreak(
		func(_ int, pod *goquery.Selection) bool {
			if s.maxItems > 0 && len(products) >= s.maxItems {
				return false
			}

			name := pod.Find("h3 a").AttrOr("title", "N/A")
			priceText := pod.Find("p.price_color").Text()
			if priceText == "" {
				priceText = "£0.00"
			}

			price, err := moneyutil.ParseAmount(priceText)
			if err != nil {
				slog.WarnContext(
					ctx, "could not parse product price",
					"product", name,
					"price_text", priceText,
					"err", err,
				)
				price = 0
			}

			products = append(products, Product{
				Name:  htmlutil.CleanText(name),
				Price: price,
			})
			return true
		},
	)

	return products
}

package scrapers

// the scrapers here are read-only and stateless, each fetch is
// independent of the others and the output depends solely on what the
// remote page serves.

// every scraping method follows the same structure:
// 1. transform the configured options into an HTTP request (url, headers, timeout)
// 2. make the request.
// 3. make assertions on response validity (transport errors, expected status)
// 4. transform the response body into the output structure
//    it is usually -> goquery selectors into a struct or slices of structs
//                  -> text cleanup (whitespace, non-printables, price symbols)

// storefront applies that shape to catalogue pages (repeated container
// elements into a product list), newswire to news index pages (first
// heading on the page). anything that cannot be found gets a
// documented default instead of an error, so a partially broken page
// still yields usable rows.

// Package scraper implements the Resident Advisor source by scraping its public
// event listing pages.
//
// RA does not offer a public API, so the scraper maps the search location to an
// RA area code and tries an ordered list of fetch strategies until one returns
// parseable listings. Event cards are extracted with goquery using a cascade of
// selectors, since the markup changes often. When every strategy is blocked or
// finds nothing, a small set of labelled mock events is returned instead.
package scraper

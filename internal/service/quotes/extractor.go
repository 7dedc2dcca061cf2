package quotes

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"

	"colorize/internal/logger"
	"colorize/internal/metrics"
	"colorize/internal/model"
)

// XPath selectors for the quotes.toscrape.com markup.
const (
	QuoteSelector  = "//div[contains(@class, 'quote')]"
	TextSelector   = "span[contains(@class, 'text')]"
	AuthorSelector = "span/small[contains(@class, 'author')]"
	TagsSelector   = "div[contains(@class, 'tags')]/a[contains(@class, 'tag')]"
)

// Extractor visits a fixed list of pages and emits one Quote per quote block.
type Extractor struct {
	urls   []string
	logger *logger.Logger
	opts   []colly.CollectorOption
}

func NewExtractor(urls []string, logger *logger.Logger, opts ...colly.CollectorOption) *Extractor {
	return &Extractor{
		urls:   urls,
		logger: logger,
		opts:   opts,
	}
}

// Run fetches every page in order and calls emit for each quote found. Pages
// are not discovered and fetches are not retried: the first failed page stops
// the run and its error is returned.
func (e *Extractor) Run(emit func(model.Quote)) error {
	// every listed page is fetched, even when it repeats
	opts := append([]colly.CollectorOption{colly.AllowURLRevisit()}, e.opts...)
	c := colly.NewCollector(opts...)

	c.OnXML(QuoteSelector, func(el *colly.XMLElement) {
		node, ok := el.DOM.(*html.Node)
		if !ok {
			return
		}
		text := htmlquery.FindOne(node, TextSelector)
		author := htmlquery.FindOne(node, AuthorSelector)
		if text == nil || author == nil {
			e.logger.Warning("Skipping quote block without text or author on %s", el.Request.URL)
			return
		}

		quote := model.Quote{
			Text:   strings.TrimSpace(htmlquery.InnerText(text)),
			Author: strings.TrimSpace(htmlquery.InnerText(author)),
			Tags:   childTexts(node, TagsSelector),
		}
		metrics.QuotesEmittedTotal.Inc()
		emit(quote)
	})

	c.OnResponse(func(r *colly.Response) {
		e.logger.Info("Fetched %s (%d bytes)", r.Request.URL, len(r.Body))
	})

	for _, url := range e.urls {
		if err := c.Visit(url); err != nil {
			e.logger.Error("Failed to fetch %s: %v", url, err)
			return fmt.Errorf("failed to fetch %s: %w", url, err)
		}
	}
	return nil
}

// childTexts returns the trimmed text of every node matching query under
// node, in document order. The result is never nil.
func childTexts(node *html.Node, query string) []string {
	texts := []string{}
	for _, n := range htmlquery.Find(node, query) {
		texts = append(texts, strings.TrimSpace(htmlquery.InnerText(n)))
	}
	return texts
}

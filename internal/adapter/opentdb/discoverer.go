package opentdb

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"trivia-harvester/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// countSelector matches the homepage banner holding
// "<n> Verified Questions and <m> Pending Questions".
const countSelector = ".col-lg-8.col-lg-offset-2.text-center.text-shadow"

// HomepageCountDiscoverer scrapes the number of verified questions from the trivia homepage.
type HomepageCountDiscoverer struct {
	client *resty.Client
	url    string
	logger *zap.Logger
}

func NewHomepageCountDiscoverer(client *resty.Client, homeURL string, logger *zap.Logger) *HomepageCountDiscoverer {
	return &HomepageCountDiscoverer{
		client: client,
		url:    homeURL,
		logger: logger,
	}
}

// Discover implements domain.CountDiscoverer.
func (d *HomepageCountDiscoverer) Discover(ctx context.Context) (int, error) {
	d.logger.Info("Getting the total number of trivia questions", zap.String("url", d.url))

	res, err := d.client.R().
		SetContext(ctx).
		Get(d.url)
	if err != nil {
		return 0, domain.NewTransportError("failed to fetch trivia homepage", err)
	}
	if res.IsError() {
		return 0, domain.NewTransportError(
			fmt.Sprintf("trivia homepage returned HTTP %d", res.StatusCode()), nil)
	}

	d.logger.Debug("Parsing homepage HTML", zap.Int("bytes", len(res.Body())))
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return 0, domain.NewPageStructureError(fmt.Sprintf("unparseable HTML: %v", err))
	}

	text, err := countHeaderText(doc)
	if err != nil {
		return 0, err
	}

	d.logger.Debug("Parsing count header", zap.String("text", text))
	total, err := ParseQuestionCount(text)
	if err != nil {
		return 0, err
	}

	d.logger.Info("Discovered total question count", zap.Int("total", total))
	return total, nil
}

func countHeaderText(doc *goquery.Document) (string, error) {
	banner := doc.Find(countSelector)
	if banner.Length() != 1 {
		return "", domain.NewPageStructureError(
			fmt.Sprintf("expected exactly one element matching %q, found %d", countSelector, banner.Length()))
	}
	if banner.Children().Length() == 0 {
		return "", domain.NewPageStructureError("the count banner has no children")
	}
	header := banner.ChildrenFiltered("h4").First()
	if header.Length() == 0 {
		return "", domain.NewPageStructureError("the count banner has no h4 header")
	}
	return strings.TrimSpace(header.Text()), nil
}

// ParseQuestionCount reads the leading number of a header such as
// "4,050 Verified Questions and 5,899 Pending Questions". Only verified
// questions are served by the API, so the first number is the total.
// A total of zero is rejected: the source always holds questions.
func ParseQuestionCount(text string) (int, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, domain.NewPageFormatError(text, nil)
	}
	total, err := strconv.Atoi(strings.ReplaceAll(fields[0], ",", ""))
	if err != nil {
		return 0, domain.NewPageFormatError(text, err)
	}
	if total <= 0 {
		return 0, domain.NewPageFormatError(text, nil)
	}
	return total, nil
}

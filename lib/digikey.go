package lib

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

var (
	ErrMissingTable = errors.New("part page is missing a table")
	ErrDisallowed   = errors.New("disallowed by robots.txt")
)

/*
	The two tables of a part page: product details (part numbers,
	manufacturer, description) and product attributes (category and
	electrical parameters).
*/
type Page struct {
	Details    []Row
	Attributes []Row
}

type PageSource interface {
	Fetch(ctx context.Context, part string) (*Page, error)
}

type DigiKey struct {
	client        *resty.Client
	baseURL       string
	userAgent     string
	limiter       *rate.Limiter
	respectRobots bool
	robots        *robotstxt.RobotsData
}

func NewDigiKey(cfg SupplierConfig) *DigiKey {
	client := resty.New()
	if cfg.Cloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	// at most one page request per interval
	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}

	return &DigiKey{
		client:        client,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:     cfg.UserAgent,
		limiter:       rate.NewLimiter(limit, 1),
		respectRobots: cfg.RespectRobots,
	}
}

// PartURL returns the search page that resolves to the part's detail page.
func (dk *DigiKey) PartURL(part string) string {
	return dk.baseURL + "/products/en?keywords=" + url.QueryEscape(part)
}

func (dk *DigiKey) Fetch(ctx context.Context, part string) (*Page, error) {
	link := dk.PartURL(part)

	if dk.respectRobots && !dk.allowed(ctx, link) {
		return nil, fmt.Errorf("%s: %w", link, ErrDisallowed)
	}

	if err := dk.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := dk.client.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", part, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", part, res.Status())
	}

	page, err := ParsePage(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", part, err)
	}

	return page, nil
}

/*
	robots.txt is read once per client. When it cannot be fetched every
	path is allowed.
*/
func (dk *DigiKey) allowed(ctx context.Context, link string) bool {
	if dk.robots == nil {
		res, err := dk.client.R().
			SetContext(ctx).
			Get(dk.baseURL + "/robots.txt")
		if err != nil {
			return true
		}

		robots, err := robotstxt.FromStatusAndBytes(res.StatusCode(), res.Body())
		if err != nil {
			return true
		}
		dk.robots = robots
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}

	return dk.robots.TestAgent(parsed.RequestURI(), robotsAgent(dk.userAgent))
}

// robotsAgent reduces a User-Agent header to the product token robots.txt groups match.
func robotsAgent(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return "*"
	}

	return strings.Split(fields[0], "/")[0]
}

/*
	Extract the product-details and prod-att-table tables of a part page.
*/
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	details := doc.Find("table#product-details")
	if details.Length() == 0 {
		return nil, fmt.Errorf("%w: product-details", ErrMissingTable)
	}

	attributes := doc.Find("table#prod-att-table")
	if attributes.Length() == 0 {
		return nil, fmt.Errorf("%w: prod-att-table", ErrMissingTable)
	}

	page := &Page{}
	details.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		th := tr.Find("th").First()
		if th.Length() == 0 {
			return
		}

		page.Details = append(page.Details, Row{
			Field:   cellText(th),
			Value:   cellText(tr.Find("td").First()),
			Labeled: true,
		})
	})

	attributes.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.AttrOr("id", "") == "prod-att-title-row" {
			page.Attributes = append(page.Attributes, Row{Title: true})
			return
		}

		th := tr.Find("th").First()
		page.Attributes = append(page.Attributes, Row{
			Field:   cellText(th),
			Value:   cellText(tr.Find("td").First()),
			Labeled: th.Length() > 0,
		})
	})

	return page, nil
}

func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/nDmitry/storefront/internal/entity"
)

const (
	maxSummaryLength = 160
	ellipsis         = "…"
	openParenthesis  = '('
	punctuation      = ",.;:!? "
	defaultCurrency  = "RUB"
)

var (
	breaksRegex         = regexp.MustCompile(`(?:<br\s*/?>\s*){2,}|</p>`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
	priceRegex          = regexp.MustCompile(`\d[\d\s\x{00A0}]*(?:[.,]\d{1,2})?`)
)

var errNoSKU = errors.New("product card has no SKU")

// extractProduct reads a product card. resolve turns relative links into absolute ones.
func extractProduct(card *goquery.Selection, resolve func(string) string) (entity.Product, error) {
	product := entity.Product{
		SKU:      strings.TrimSpace(card.AttrOr("data-sku", "")),
		Title:    cleanText(card.Find(".product-card__title").First().Text()),
		Category: cleanText(card.Find(".product-card__category").First().Text()),
	}

	if product.SKU == "" {
		return entity.Product{}, errNoSKU
	}

	if href, ok := card.Find(".product-card__link").First().Attr("href"); ok && href != "" {
		product.URL = resolve(href)
	}

	if src, ok := card.Find(".product-card__image").First().Attr("src"); ok && src != "" {
		product.ImageURL = resolve(src)
	}

	priceEl := card.Find(".product-card__price").First()

	if priceEl.Length() > 0 {
		price, err := parsePrice(priceEl.Text())

		if err != nil {
			return entity.Product{}, fmt.Errorf("could not parse price of %s: %w", product.SKU, err)
		}

		product.Price = price
		product.Currency = priceEl.AttrOr("data-currency", defaultCurrency)
	}

	description := card.Find(".product-card__description").First()

	if description.Length() > 0 {
		html, err := description.Html()

		if err != nil {
			return entity.Product{}, fmt.Errorf("could not get description of %s: %w", product.SKU, err)
		}

		product.DescriptionHTML = strings.TrimSpace(html)
		product.Summary = extractSummary(description)
	}

	product.Specs = extractSpecs(card.Find(".product-card__specs tr"))

	if dtText, ok := card.Find("time").First().Attr("datetime"); ok {
		dt, err := time.Parse(time.RFC3339, dtText)

		if err != nil {
			return entity.Product{}, fmt.Errorf("could not parse added date %#v of %s: %w", dtText, product.SKU, err)
		}

		product.AddedAt = dt.UTC()
	}

	return product, nil
}

// parsePrice understands "125 000,50", "125000.50" and "1 200 ₽"
func parsePrice(text string) (float64, error) {
	match := priceRegex.FindString(text)

	if match == "" {
		return 0, fmt.Errorf("no number in %q", strings.TrimSpace(text))
	}

	match = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, match)

	return strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
}

func extractSpecs(rows *goquery.Selection) map[string]string {
	if rows.Length() == 0 {
		return nil
	}

	specs := make(map[string]string, rows.Length())

	rows.Each(func(_ int, row *goquery.Selection) {
		name := cleanText(row.Find("th").First().Text())
		value := cleanText(row.Find("td").First().Text())

		if name != "" {
			specs[name] = value
		}
	})

	return specs
}

// extractSummary takes the first paragraph of a description and shortens it
func extractSummary(description *goquery.Selection) string {
	if first := extractFirstParagraph(description); first != "" {
		return formatSummary(first)
	}

	return formatSummary(description.Text())
}

// extractFirstParagraph finds the text before the first paragraph break
func extractFirstParagraph(selection *goquery.Selection) string {
	html, err := selection.Html()

	if err != nil {
		return ""
	}

	parts := breaksRegex.Split(html, 2)

	if len(parts) > 1 {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(parts[0]))

		if err != nil {
			return ""
		}

		return strings.TrimSpace(doc.Text())
	}

	return ""
}

func cleanText(text string) string {
	return strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(text, " "))
}

// formatSummary fits text into maxSummaryLength without cutting words or parentheses
func formatSummary(text string) string {
	text = cleanText(text)
	text = removeIncompleteParens(text, maxSummaryLength)

	return truncateAtWordBoundary(text, maxSummaryLength)
}

// removeIncompleteParens removes parenthetical text that crosses the character limit
func removeIncompleteParens(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runeCount := 0
	parenStart := -1

	for i, r := range text {
		runeCount++

		switch r {
		case openParenthesis:
			parenStart = i
		case ')':
			parenStart = -1
		}

		if runeCount > limit {
			if parenStart >= 0 {
				return strings.TrimRight(text[:parenStart], punctuation) + ellipsis
			}

			break
		}
	}

	return text
}

// truncateAtWordBoundary truncates text at a word boundary
func truncateAtWordBoundary(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	lastWordEnd := 0
	currentCount := 0

	for i, r := range text {
		currentCount++

		if unicode.IsSpace(r) {
			lastWordEnd = i
		}

		if currentCount >= limit {
			var truncated string

			if lastWordEnd > 0 {
				truncated = text[:lastWordEnd]
			} else {
				truncated = text[:i]
			}

			return strings.TrimRight(truncated, punctuation) + ellipsis
		}
	}

	return text
}

func imageTypeFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)

	if err != nil {
		return ""
	}

	switch strings.ToLower(path.Ext(u.Path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

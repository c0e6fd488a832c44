package testutil

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const redacted = "[REDACTED]"

// SensitivePatterns match field names and query keys whose values must not
// end up in committed fixtures.
var SensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)passw(or)?d`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)session|sess_`),
	regexp.MustCompile(`(?i)auth|jwt|bearer`),
	regexp.MustCompile(`(?i)api_?key`),
	regexp.MustCompile(`(?i)credential|access_key|private_key`),
	regexp.MustCompile(`(?i)csrf|xsrf`),
}

func isSensitiveKey(key string) bool {
	for _, re := range SensitivePatterns {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// SanitizeHTML redacts the values of password inputs and of fields whose
// name or id looks sensitive, plus sensitive query parameters in links and
// form actions. It returns the rewritten HTML and the number of redactions.
func SanitizeHTML(html string) (string, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", 0, fmt.Errorf("parse html: %w", err)
	}

	count := 0

	doc.Find("input, textarea").Each(func(_ int, s *goquery.Selection) {
		if !sensitiveField(s) {
			return
		}
		if goquery.NodeName(s) == "textarea" {
			s.SetText(redacted)
		} else {
			if _, ok := s.Attr("value"); !ok {
				return
			}
			s.SetAttr("value", redacted)
		}
		count++
	})

	for _, target := range []struct{ selector, attr string }{
		{"a[href]", "href"},
		{"form[action]", "action"},
		{"iframe[src]", "src"},
	} {
		doc.Find(target.selector).Each(func(_ int, s *goquery.Selection) {
			raw := s.AttrOr(target.attr, "")
			clean, changed := sanitizeURL(raw)
			if changed {
				s.SetAttr(target.attr, clean)
				count++
			}
		})
	}

	out, err := doc.Html()
	if err != nil {
		return "", 0, fmt.Errorf("render html: %w", err)
	}
	return out, count, nil
}

func sensitiveField(s *goquery.Selection) bool {
	if strings.EqualFold(s.AttrOr("type", ""), "password") {
		return true
	}
	return isSensitiveKey(s.AttrOr("name", "")) || isSensitiveKey(s.AttrOr("id", ""))
}

func sanitizeURL(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL, false
	}

	changed := false
	query := parsed.Query()
	for key := range query {
		if isSensitiveKey(key) {
			query.Set(key, redacted)
			changed = true
		}
	}
	if !changed {
		return rawURL, false
	}

	parsed.RawQuery = query.Encode()
	return parsed.String(), true
}

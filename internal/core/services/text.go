package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// defaultCompany is the generic audience used when no target entity is
// known: 「御社」 ("your company").
const defaultCompany = "御社"

var (
	// cornerBrackets are authoring quotes stripped from fixed text.
	cornerBrackets = regexp.MustCompile(`[「」]`)

	// boilerplateTail matches "...と記載 / を記述" authoring boilerplate
	// ("to be written as ...") and everything after it.
	boilerplateTail = regexp.MustCompile(`(と記載|と記述|を記載|を記述).*`)

	// yearMonthToken matches placeholder dates like 20XX.04 or 20XX/.
	yearMonthToken = regexp.MustCompile(`20XX[./]?\d{0,2}`)

	// yyyymToken matches the literal YYYY.M authoring token.
	yyyymToken = regexp.MustCompile(`YYYY\.M`)
)

// normalizeFixedText turns a fixed-policy placeholder description into its
// rendered text: bracketed annotation syntax is stripped and the text is
// truncated at known boilerplate markers.
func normalizeFixedText(description string) string {
	text := cornerBrackets.ReplaceAllString(description, "")
	text = boilerplateTail.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// populateWithContext substitutes a populate-policy description's tokens:
// the target-entity token becomes the company, year-month tokens become the
// current year-month, then fixed-text normalization applies.
func populateWithContext(description, targetCompany string, now time.Time) string {
	company := targetCompany
	if company == "" {
		company = defaultCompany
	}
	yearMonth := now.Format("2006.01")

	text := strings.ReplaceAll(description, "相手企業名+", company)
	text = strings.ReplaceAll(text, "相手企業名", company)
	text = yearMonthToken.ReplaceAllString(text, yearMonth)
	text = yyyymToken.ReplaceAllString(text, yearMonth)
	text = strings.ReplaceAll(text, "20XX", fmt.Sprintf("%d", now.Year()))
	return normalizeFixedText(text)
}

// truncateText limits text to at most limit runes, appending an ellipsis
// when it had to cut.
func truncateText(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

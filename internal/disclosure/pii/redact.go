package pii

import (
	"fmt"
	"sort"
	"strings"
)

// placeholderNames maps categories to the token stem used in placeholders.
var placeholderNames = map[Category]string{
	CategoryEmail:          "EMAIL",
	CategoryPhone:          "PHONE",
	CategoryEmployeeID:     "EMPLOYEE_ID",
	CategorySSN:            "SSN",
	CategoryCreditCard:     "CARD",
	CategoryIPAddress:      "IP",
	CategoryURL:            "URL",
	CategoryPossibleName:   "NAME",
	CategoryStandaloneName: "NAME",
	CategorySpecificDate:   "DATE",
	CategoryAddress:        "ADDRESS",
}

// RedactionMap builds the short-lived original-text-to-placeholder map used
// by downstream assistant features. It is keyed by matched text, numbered per
// category, and must never be persisted with the report.
func RedactionMap(res Result) map[string]string {
	m := make(map[string]string, len(res.Detections))
	counters := make(map[string]int)

	for _, det := range res.Detections {
		if _, exists := m[det.Text]; exists {
			continue
		}

		stem, ok := placeholderNames[det.Category]
		if !ok {
			stem = "PII"
		}
		counters[stem]++
		m[det.Text] = fmt.Sprintf("[%s_%d]", stem, counters[stem])
	}

	return m
}

// Apply replaces every mapped original with its placeholder. Longer originals
// are replaced first so substrings of other matches do not corrupt them.
func Apply(text string, redactions map[string]string) string {
	originals := make([]string, 0, len(redactions))
	for original := range redactions {
		originals = append(originals, original)
	}

	sort.Slice(originals, func(i, j int) bool {
		if len(originals[i]) != len(originals[j]) {
			return len(originals[i]) > len(originals[j])
		}
		return originals[i] < originals[j]
	})

	out := text
	for _, original := range originals {
		out = strings.ReplaceAll(out, original, redactions[original])
	}

	return out
}

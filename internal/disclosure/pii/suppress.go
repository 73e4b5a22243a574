package pii

import "strings"

// Default word lists for name false-positive suppression. These are
// hand-tuned heuristics, not a precision guarantee; all three lists and the
// context window size are configurable on DetectorConfig.

// defaultNonNamePhrases are capitalized multi-word sequences that are known
// not to be personal names: place names and standard business/compliance
// terminology that keeps showing up in reports.
var defaultNonNamePhrases = []string{
	"new york",
	"los angeles",
	"san francisco",
	"las vegas",
	"new jersey",
	"north america",
	"south america",
	"united states",
	"united kingdom",
	"hong kong",
	"human resources",
	"general counsel",
	"vice president",
	"chief executive",
	"chief financial",
	"managing director",
	"board of directors",
	"code of conduct",
	"annual report",
	"best practices",
	"due diligence",
	"internal audit",
	"whistleblower policy",
	"data protection",
	"supply chain",
}

// defaultBusinessTerms signal business-process context around a candidate
// standalone name. A candidate surrounded by these and lacking any personal
// reference cue is treated as terminology, not a name.
var defaultBusinessTerms = []string{
	"report", "expense", "policy", "department", "compliance", "invoice",
	"audit", "budget", "meeting", "project", "review", "procedure",
	"process", "committee", "training", "contract", "vendor", "quarter",
}

// defaultPersonalCues indicate the surrounding text talks about a person.
var defaultPersonalCues = []string{
	"my ", "mr.", "mrs.", "ms.", "dr.", "manager", "colleague",
	"supervisor", "coworker", "i am", "i'm", "name is",
}

// defaultCommonFirstNames override business-context suppression: a candidate
// whose first word is a common given name is kept even in business context.
var defaultCommonFirstNames = []string{
	"james", "john", "robert", "michael", "william", "david", "richard",
	"thomas", "mary", "patricia", "jennifer", "linda", "elizabeth",
	"barbara", "susan", "jessica", "sarah", "karen", "jane", "daniel",
	"matthew", "anthony", "mark", "emily", "anna", "laura", "kevin",
}

// isNonNamePhrase reports whether the matched text is on the static
// known-not-a-name list.
func (d *PatternDetector) isNonNamePhrase(match string) bool {
	lower := strings.ToLower(strings.TrimSpace(match))
	for _, phrase := range d.cfg.NonNamePhrases {
		if lower == phrase {
			return true
		}
	}
	return false
}

// suppressStandaloneName applies contextual analysis to a standalone-name
// candidate: if the window around the match reads like business-process
// vocabulary and carries no personal-reference cue, the match is suppressed
// unless its first word is a common given name.
func (d *PatternDetector) suppressStandaloneName(text string, start, end int) bool {
	window := d.cfg.ContextWindow

	lo := start - window
	if lo < 0 {
		lo = 0
	}
	hi := end + window
	if hi > len(text) {
		hi = len(text)
	}
	context := strings.ToLower(text[lo:start] + text[end:hi])

	businessFound := false
	for _, term := range d.cfg.BusinessTerms {
		if strings.Contains(context, term) {
			businessFound = true
			break
		}
	}
	if !businessFound {
		return false
	}

	for _, cue := range d.cfg.PersonalCues {
		if strings.Contains(context, cue) {
			return false
		}
	}

	firstWord := strings.ToLower(text[start:end])
	if idx := strings.IndexAny(firstWord, " \t"); idx >= 0 {
		firstWord = firstWord[:idx]
	}
	for _, name := range d.cfg.CommonFirstNames {
		if firstWord == name {
			return false
		}
	}

	return true
}

package pii

import (
	"context"
	"sort"

	"github.com/sam247/disclosurely-sub001/internal/util"
)

// DetectorConfig tunes the name false-positive suppression heuristics.
// The defaults mirror the hand-tuned production values; none of them are
// load-bearing invariants.
type DetectorConfig struct {
	// ContextWindow is the number of bytes inspected before and after a
	// standalone-name candidate.
	ContextWindow int

	NonNamePhrases   []string
	BusinessTerms    []string
	PersonalCues     []string
	CommonFirstNames []string
}

// DefaultDetectorConfig returns the production defaults.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ContextWindow:    30,
		NonNamePhrases:   defaultNonNamePhrases,
		BusinessTerms:    defaultBusinessTerms,
		PersonalCues:     defaultPersonalCues,
		CommonFirstNames: defaultCommonFirstNames,
	}
}

// PatternDetector is the legacy pattern-based detector: a pure function of
// its input and a fixed pattern table. No side effects, no network calls.
type PatternDetector struct {
	cfg DetectorConfig
}

// NewPatternDetector creates a detector with the given suppression config.
// Zero-valued config fields fall back to the defaults.
func NewPatternDetector(cfg DetectorConfig) *PatternDetector {
	def := DefaultDetectorConfig()
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = def.ContextWindow
	}
	if cfg.NonNamePhrases == nil {
		cfg.NonNamePhrases = def.NonNamePhrases
	}
	if cfg.BusinessTerms == nil {
		cfg.BusinessTerms = def.BusinessTerms
	}
	if cfg.PersonalCues == nil {
		cfg.PersonalCues = def.PersonalCues
	}
	if cfg.CommonFirstNames == nil {
		cfg.CommonFirstNames = def.CommonFirstNames
	}

	return &PatternDetector{cfg: cfg}
}

var _ Backend = (*PatternDetector)(nil)

// Scan runs the pattern table against text. It never panics and never fails:
// scanning is advisory, so internal errors degrade to an empty result.
func (d *PatternDetector) Scan(ctx context.Context, text string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			util.LogFromContext(ctx).Error().Interface("panic", r).Msg("PII scan panicked, returning empty result")
			res = Result{}
			err = nil
		}
	}()

	if text == "" {
		return Result{}, nil
	}

	res = d.scan(text)
	return res, nil
}

// dedupeKey identifies a detection for deduplication. The same span is never
// reported twice for the same category; overlapping spans across different
// categories are each reported.
type dedupeKey struct {
	start, end int
	category   Category
}

func (d *PatternDetector) scan(text string) Result {
	var detections []Detection
	seen := make(map[dedupeKey]bool)

	add := func(det Detection) {
		key := dedupeKey{det.Start, det.End, det.Category}
		if seen[key] {
			return
		}
		seen[key] = true
		detections = append(detections, det)
	}

	for _, p := range simplePatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]

			if p.category == CategoryCreditCard && !luhnValid(match) {
				continue
			}

			add(Detection{
				Category:    p.category,
				Text:        match,
				Start:       loc[0],
				End:         loc[1],
				Severity:    p.severity,
				Description: p.description,
			})
		}
	}

	// Cue-based names first; their spans mask the standalone-name pass so a
	// cued name is reported once, as PossibleName.
	var nameSpans [][2]int
	for _, loc := range possibleNameRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2], loc[3]
		if start < 0 {
			continue
		}
		match := text[start:end]
		if d.isNonNamePhrase(match) {
			continue
		}

		nameSpans = append(nameSpans, [2]int{start, end})
		add(Detection{
			Category:    CategoryPossibleName,
			Text:        match,
			Start:       start,
			End:         end,
			Severity:    SeverityHigh,
			Description: "Name preceded by a self-reference or title cue",
		})
	}

	for _, loc := range standaloneNameRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]

		overlapsCued := false
		for _, span := range nameSpans {
			if start < span[1] && end > span[0] {
				overlapsCued = true
				break
			}
		}
		if overlapsCued {
			continue
		}

		match := text[start:end]
		if d.isNonNamePhrase(match) {
			continue
		}
		if d.suppressStandaloneName(text, start, end) {
			continue
		}

		add(Detection{
			Category:    CategoryStandaloneName,
			Text:        match,
			Start:       start,
			End:         end,
			Severity:    SeverityMedium,
			Description: "Capitalized word sequence with no cue phrase",
		})
	}

	for _, loc := range specificDateRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2], loc[3]
		if start < 0 {
			continue
		}
		add(Detection{
			Category:    CategorySpecificDate,
			Text:        text[start:end],
			Start:       start,
			End:         end,
			Severity:    SeverityLow,
			Description: "Date near an employment-related verb",
		})
	}

	sort.SliceStable(detections, func(i, j int) bool {
		if detections[i].Start != detections[j].Start {
			return detections[i].Start < detections[j].Start
		}
		if detections[i].End != detections[j].End {
			return detections[i].End < detections[j].End
		}
		return detections[i].Category < detections[j].Category
	})

	res := Result{Detections: detections, HasPII: len(detections) > 0}
	for _, det := range detections {
		switch det.Severity {
		case SeverityHigh:
			res.HighCount++
		case SeverityMedium:
			res.MediumCount++
		case SeverityLow:
			res.LowCount++
		}
	}

	return res
}

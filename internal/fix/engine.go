package fix

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"lektor/internal/check"
	"lektor/internal/diag"
	"lektor/internal/document"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// DefaultMaxRounds bounds ApplyModeAll. Every round is one edit followed
// by a fresh check, so a pair of rules undoing each other cannot spin
// forever.
const DefaultMaxRounds = 1000

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix in document order, preferring
	// always-safe ones.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix, re-checking after each.
	ApplyModeAll
	// ApplyModeID applies the fix of one issue.
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// Choice picks the suggestion (0 is the best one).
	Choice    int
	MaxRounds int
}

// Checker is the part of check.Engine that fixing needs.
type Checker interface {
	Run(ctx context.Context, text string) (*check.Result, error)
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Code          diag.Code
	Matched       string
	Replacement   string
	Applicability diag.Applicability
}

// Title is a one-line description for reports.
func (f AppliedFix) Title() string {
	return fmt.Sprintf("%s: %q → %q", f.Code.Title(), f.Matched, f.Replacement)
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID      string
	Matched string
	Reason  string
}

// ApplyResult aggregates applied fixes, skipped ones and the check run
// after the last edit.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Rounds  int
	Final   *check.Result
}

type candidate struct {
	issue diag.Issue
	order int
}

// Apply checks doc, selects fixes according to opts and applies them
// through the editor. The document is re-checked after every edit; spans
// from an earlier check are never reused.
func Apply(ctx context.Context, doc document.Document, eng Checker, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}
	if doc == nil || eng == nil {
		return result, fmt.Errorf("fix: document and checker are required")
	}
	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	seenTexts := make(map[string]bool)
	reported := make(map[string]bool)
	failed := make(map[string]bool)
	edited := false
	for {
		text, err := doc.ReadAllText(ctx)
		if err != nil {
			return result, fmt.Errorf("read document: %w", err)
		}
		res, err := eng.Run(ctx, text)
		if err != nil {
			return result, err
		}
		result.Final = res
		if opts.Mode != ApplyModeAll && result.Rounds > 0 {
			break
		}
		if edited && seenTexts[text] {
			result.Skipped = append(result.Skipped, SkippedFix{Reason: "fixes undo each other"})
			break
		}
		seenTexts[text] = true
		if result.Rounds >= maxRounds {
			result.Skipped = append(result.Skipped, SkippedFix{Reason: fmt.Sprintf("stopped after %d rounds", maxRounds)})
			break
		}

		candidates := gatherCandidates(res.Issues)
		sortCandidates(candidates)
		selected, skips := selectCandidates(candidates, opts, reported, failed)
		result.Skipped = append(result.Skipped, skips...)
		if selected == nil {
			break
		}

		result.Rounds++
		applied, skip, err := applyCandidate(ctx, doc, *selected, opts.Choice)
		if err != nil {
			return result, err
		}
		edited = applied != nil
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			failed[fixKey(selected.issue, opts.Choice)] = true
			continue
		}
		result.Applied = append(result.Applied, *applied)
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates keeps every issue in check order.
func gatherCandidates(issues []diag.Issue) []candidate {
	cands := make([]candidate, 0, len(issues))
	for i, is := range issues {
		cands = append(cands, candidate{issue: is, order: i})
	}
	return cands
}

// sortCandidates orders by document position, then by check order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].issue.Span, candidates[j].issue.Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return candidates[i].order < candidates[j].order
	})
}

// fixKey identifies a fix by its effect rather than by position, since
// positions move after every edit.
func fixKey(is diag.Issue, choice int) string {
	return fmt.Sprintf("%s\x00%s\x00%d", is.Code.ID(), is.Matched, choice)
}

// selectCandidates picks the next fix. In ApplyModeAll, fixes that are not
// always safe are reported once per code and text, and fixes that failed
// to apply are not retried.
func selectCandidates(candidates []candidate, opts ApplyOptions, reported, failed map[string]bool) (*candidate, []SkippedFix) {
	var skipped []SkippedFix
	switch opts.Mode {
	case ApplyModeID:
		for i := range candidates {
			if candidates[i].issue.ID() == opts.TargetID {
				return &candidates[i], nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		for i := range candidates {
			cand := &candidates[i]
			key := fixKey(cand.issue, opts.Choice)
			if failed[key] {
				continue
			}
			if a := cand.issue.Applicability(); a != diag.ApplicabilityAlwaysSafe {
				if !reported[key] {
					reported[key] = true
					skipped = append(skipped, SkippedFix{
						ID:      cand.issue.ID(),
						Matched: cand.issue.Matched,
						Reason:  fmt.Sprintf("applicability is %s", a),
					})
				}
				continue
			}
			return cand, skipped
		}
		return nil, skipped
	case ApplyModeOnce:
		var fallback *candidate
		for i := range candidates {
			cand := &candidates[i]
			if cand.issue.Applicability() == diag.ApplicabilityAlwaysSafe {
				return cand, nil
			}
			if fallback == nil {
				fallback = cand
			}
		}
		return fallback, nil
	default:
		return nil, nil
	}
}

// applyCandidate replaces the first occurrence of the matched text. Word
// level (spelling) fixes only replace whole words.
func applyCandidate(ctx context.Context, doc document.Editor, cand candidate, choice int) (*AppliedFix, *SkippedFix, error) {
	is := cand.issue
	if len(is.Suggestions) == 0 {
		return nil, &SkippedFix{ID: is.ID(), Matched: is.Matched, Reason: "ni predlogov"}, nil
	}
	if choice < 0 || choice >= len(is.Suggestions) {
		return nil, &SkippedFix{ID: is.ID(), Matched: is.Matched, Reason: fmt.Sprintf("no suggestion #%d", choice+1)}, nil
	}
	replacement := is.Suggestions[choice]
	err := doc.ReplaceFirstOccurrence(ctx, is.Matched, replacement, !is.IsPhraseLevel())
	if errors.Is(err, document.ErrTargetNotFound) {
		return nil, &SkippedFix{ID: is.ID(), Matched: is.Matched, Reason: "text no longer in the document"}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &AppliedFix{
		ID:            is.ID(),
		Code:          is.Code,
		Matched:       is.Matched,
		Replacement:   replacement,
		Applicability: is.Applicability(),
	}, nil, nil
}

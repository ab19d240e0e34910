package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"lektor/internal/diag"
	"lektor/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	ColumnKind  string            `json:"columnKind"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string            `json:"id"`
	ShortDescription     sarifText         `json:"shortDescription"`
	DefaultConfiguration sarifRuleConfig   `json:"defaultConfiguration"`
	Properties           map[string]string `json:"properties,omitempty"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine,omitempty"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

type sarifFix struct {
	Description     sarifText             `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion `json:"deletedRegion"`
	InsertedContent sarifText   `json:"insertedContent"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// Sarif форматирует находки в SARIF формат (v2.1.0).
// Колонки считаются в кодовых точках, байтовые смещения идут рядом.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	items := bag.Items()

	codes := make([]diag.Code, 0, 8)
	seen := make(map[diag.Code]bool)
	for _, is := range items {
		if !seen[is.Code] {
			seen[is.Code] = true
			codes = append(codes, is.Code)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	rules := make([]sarifRule, len(codes))
	ruleIndex := make(map[diag.Code]int, len(codes))
	for i, c := range codes {
		ruleIndex[c] = i
		rules[i] = sarifRule{
			ID:                   c.ID(),
			ShortDescription:     sarifText{Text: c.Title()},
			DefaultConfiguration: sarifRuleConfig{Level: sarifLevel(c.Severity())},
			Properties: map[string]string{
				"category":      c.Category().String(),
				"applicability": c.Applicability().String(),
			},
		}
	}

	results := make([]sarifResult, 0, len(items))
	for _, is := range items {
		if int(is.Span.File) >= fs.Len() {
			continue
		}
		file := fs.Get(is.Span.File)
		artifact := sarifArtifact{URI: normalizeURI(PathModeRelative.format(fs, file))}
		region := sarifRegionFor(fs, file, is.Span)

		res := sarifResult{
			RuleID:    is.Code.ID(),
			RuleIndex: ruleIndex[is.Code],
			Level:     sarifLevel(is.Severity()),
			Message:   sarifText{Text: is.Message()},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{ArtifactLocation: artifact, Region: region}}},
		}
		for _, s := range is.Shown() {
			res.Fixes = append(res.Fixes, sarifFix{
				Description: sarifText{Text: s},
				ArtifactChanges: []sarifArtifactChange{{
					ArtifactLocation: artifact,
					Replacements: []sarifReplacement{{
						DeletedRegion:   region,
						InsertedContent: sarifText{Text: s},
					}},
				}},
			})
		}
		results = append(results, res)
	}

	name := meta.ToolName
	if name == "" {
		name = "lektor"
	}
	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    name,
				Version: meta.ToolVersion,
				Rules:   rules,
			}},
			Invocations: []sarifInvocation{{
				Arguments:           meta.InvocationArgs,
				ExecutionSuccessful: true,
			}},
			ColumnKind: "unicodeCodePoints",
			Results:    results,
		}},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(log)
}

func sarifRegionFor(fs *source.FileSet, file *source.File, span source.Span) sarifRegion {
	start, end := fs.Resolve(span)
	return sarifRegion{
		StartLine:   start.Line,
		StartColumn: runeColumn(file, start),
		EndLine:     end.Line,
		EndColumn:   runeColumn(file, end),
		ByteOffset:  span.Start,
		ByteLength:  span.Len(),
	}
}

// runeColumn converts a 1-based byte column into a 1-based code point column.
func runeColumn(file *source.File, pos source.LineCol) uint32 {
	line := file.GetLine(pos.Line)
	n := int(pos.Col) - 1
	if n > len(line) {
		n = len(line)
	}
	if n < 0 {
		n = 0
	}
	return uint32(utf8.RuneCountInString(line[:n])) + 1 // #nosec G115 -- bounded by line length
}

func normalizeURI(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

// Package mission classifies mission text into a domain and builds the
// domain-specific quality checklist.
//
// The checklist is not only human-facing guidance: validation requires the
// checklist text to contain a fixed set of lowercase tokens per domain. A
// checklist with the right meaning but different wording fails validation.
// That brittle contract is deliberate and must be preserved exactly for
// compatibility, so the literals below are load-bearing.
package mission

import (
	"strings"

	"github.com/crewlab/baton/internal/constants"
)

// Keyword sets for domain classification, tested in fixed priority order:
// games, then films, then apps. The first matching set wins.
//
//nolint:gochecknoglobals // Read-only classification tables
var (
	gamesKeywords = []string{"game", "gameplay", "level design", "player", "multiplayer", "roguelike", "unity", "godot"}
	filmsKeywords = []string{"film", "movie", "trailer", "scene", "screenplay", "footage", "documentary", "short"}
	appsKeywords  = []string{"app", "application", "api", "backend", "frontend", "website", "service", "dashboard"}
)

// Checklist token sets. HasChecklistCoverage requires every token of the
// resolved domain to appear somewhere in the lowercased checklist text.
//
//nolint:gochecknoglobals // Read-only coverage tables
var coverageTokens = map[constants.MissionDomain][]string{
	constants.DomainGames:   {"performance", "input", "save"},
	constants.DomainFilms:   {"continuity", "audio", "color"},
	constants.DomainApps:    {"dependency", "security", "error"},
	constants.DomainGeneral: {"scope", "quality", "risk"},
}

// Fixed 3-item checklists per domain. Each list covers its domain's tokens.
//
//nolint:gochecknoglobals // Read-only checklist tables
var checklists = map[constants.MissionDomain][]string{
	constants.DomainGames: {
		"Profile the gameplay loop for performance and frame pacing",
		"Verify input handling and control latency on every target device",
		"Exercise save and load round trips across scene transitions",
	},
	constants.DomainFilms: {
		"Check shot continuity across every cut",
		"Confirm audio sync and levels in each scene",
		"Review color grading consistency between sequences",
	},
	constants.DomainApps: {
		"Audit dependency versions for known vulnerabilities",
		"Run security checks against every exposed surface",
		"Exercise error paths and recovery flows end to end",
	},
	constants.DomainGeneral: {
		"Confirm the delivered scope matches the mission statement",
		"Review output quality against the acceptance notes",
		"Document remaining risk and follow-up work",
	},
}

// InferDomain lowercases the mission text and tests keyword membership in
// fixed priority order (games, films, apps). Returns general when nothing
// matches.
func InferDomain(text string) constants.MissionDomain {
	lower := strings.ToLower(text)
	if containsAny(lower, gamesKeywords) {
		return constants.DomainGames
	}
	if containsAny(lower, filmsKeywords) {
		return constants.DomainFilms
	}
	if containsAny(lower, appsKeywords) {
		return constants.DomainApps
	}
	return constants.DomainGeneral
}

// ResolveDomain returns the explicit domain when it is a known value,
// otherwise infers one from the mission text.
func ResolveDomain(explicit constants.MissionDomain, missionText string) constants.MissionDomain {
	switch explicit {
	case constants.DomainGames, constants.DomainFilms, constants.DomainApps, constants.DomainGeneral:
		return explicit
	default:
		return InferDomain(missionText)
	}
}

// BuildChecklist returns the fixed 3-item quality checklist for a domain.
// Unknown domains get the general checklist. The returned slice is a copy.
func BuildChecklist(d constants.MissionDomain) []string {
	items, ok := checklists[d]
	if !ok {
		items = checklists[constants.DomainGeneral]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// CoverageTokens returns the lowercase tokens the checklist must contain for
// the given domain. The returned slice is a copy.
func CoverageTokens(d constants.MissionDomain) []string {
	tokens, ok := coverageTokens[d]
	if !ok {
		tokens = coverageTokens[constants.DomainGeneral]
	}
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}

// HasChecklistCoverage reports whether the lowercased checklist text contains
// every coverage token for the domain. An empty checklist never covers.
func HasChecklistCoverage(checklist []string, d constants.MissionDomain) bool {
	if len(checklist) == 0 {
		return false
	}
	joined := strings.ToLower(strings.Join(checklist, "\n"))
	for _, token := range CoverageTokens(d) {
		if !strings.Contains(joined, token) {
			return false
		}
	}
	return true
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

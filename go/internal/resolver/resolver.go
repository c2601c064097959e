// Package resolver turns error-prone free-text player input into exactly one
// pool entry, or an explicit ambiguity/not-found outcome the caller can
// re-prompt on. Ambiguity is an ordinary value here, never an error.
package resolver

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tbrandt/draftkit/go/internal/fuzzy"
	"github.com/tbrandt/draftkit/go/internal/league"
	"github.com/tbrandt/draftkit/go/internal/models"
	"github.com/tbrandt/draftkit/go/internal/pool"
)

// Match cutoffs. Defense searches run a much looser cutoff because the input
// is usually a short team nickname ("ravens") against a long entry name
// ("Baltimore Ravens D/ST").
const (
	generalCutoff = 0.6
	defenseCutoff = 0.3

	maxGeneralCandidates = 5
	maxDefenseCandidates = 3
	maxSuggestions       = 3

	// minCommonChars is the sanity guard on lone fuzzy matches: the input
	// and the matched name must share at least this many distinct
	// characters, or the match is refused instead of auto-picked.
	minCommonChars = 3
)

// defenseKeywords are the literal tokens that mark a defense search.
var defenseKeywords = []string{"defense", "dst", "d/st", "def"}

// Kind labels a resolution outcome.
type Kind string

const (
	KindResolved  Kind = "RESOLVED"
	KindAmbiguous Kind = "AMBIGUOUS"
	KindNotFound  Kind = "NOT_FOUND"
)

// Outcome is the result of resolving one input. Exactly one of Entry,
// Candidates or Suggestions is meaningful, per Kind.
type Outcome struct {
	Kind        Kind
	Entry       *models.PlayerPoolEntry
	Candidates  []*models.PlayerPoolEntry
	Suggestions []*models.PlayerPoolEntry
}

// Resolver resolves free text against the session's player pool.
type Resolver struct {
	pool   *pool.Pool
	format *league.Format
}

// New builds a resolver over the given pool and league format.
func New(p *pool.Pool, format *league.Format) *Resolver {
	return &Resolver{pool: p, format: format}
}

// Resolve maps input to a pool entry. Drafted players are not matchable; the
// drafted set is keyed by lower-cased name.
//
// Exact case-insensitive full-name matches win outright and skip all fuzzy
// logic. Otherwise defense-looking input is matched only against defense
// entries; everything else fuzzy-matches the whole matchable pool, with a
// sanity guard before any lone match is auto-picked.
func (r *Resolver) Resolve(input string, drafted map[string]bool) Outcome {
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" {
		return Outcome{Kind: KindNotFound}
	}

	matchable := r.pool.Available(drafted)

	for _, e := range matchable {
		if strings.ToLower(e.Name) == query {
			return Outcome{Kind: KindResolved, Entry: e}
		}
	}

	if r.format.HasDefense() && r.isDefenseSearch(query, defensesOf(matchable)) {
		return r.resolveDefense(query, matchable)
	}

	return r.resolveGeneral(query, matchable)
}

// resolveDefense restricts the candidate set to D/ST entries and matches at
// the loose defense cutoff. A lone match auto-resolves; several matches are
// returned for disambiguation, never auto-picked.
func (r *Resolver) resolveDefense(query string, matchable []*models.PlayerPoolEntry) Outcome {
	defenses := defensesOf(matchable)
	if len(defenses) == 0 {
		return Outcome{Kind: KindNotFound}
	}

	matches := fuzzy.CloseMatches(query, lowerNames(defenses), maxDefenseCandidates, defenseCutoff)
	switch len(matches) {
	case 0:
		return Outcome{Kind: KindNotFound}
	case 1:
		entry := defenses[matches[0].Index]
		log.Debug().Str("input", query).Str("matched", entry.Name).Msg("auto-matched defense")
		return Outcome{Kind: KindResolved, Entry: entry}
	default:
		return Outcome{Kind: KindAmbiguous, Candidates: entriesAt(defenses, matches)}
	}
}

// resolveGeneral fuzzy-matches the full matchable pool at the general
// cutoff.
func (r *Resolver) resolveGeneral(query string, matchable []*models.PlayerPoolEntry) Outcome {
	matches := fuzzy.CloseMatches(query, lowerNames(matchable), maxGeneralCandidates, generalCutoff)
	switch len(matches) {
	case 0:
		return Outcome{Kind: KindNotFound, Suggestions: r.startsWithSuggestions(query, matchable)}
	case 1:
		entry := matchable[matches[0].Index]
		if !r.isReasonableMatch(query, entry) {
			log.Debug().Str("input", query).Str("rejected", entry.Name).Msg("fuzzy match failed sanity check")
			return Outcome{Kind: KindNotFound}
		}
		log.Debug().Str("input", query).Str("matched", entry.Name).Msg("auto-matched player")
		return Outcome{Kind: KindResolved, Entry: entry}
	default:
		return Outcome{Kind: KindAmbiguous, Candidates: entriesAt(matchable, matches)}
	}
}

// isReasonableMatch guards a lone fuzzy match against resolving unrelated
// short strings by pure fuzziness. A match that re-classifies as a defense
// search may only resolve to a defense; anything else must share a few
// characters with the input.
func (r *Resolver) isReasonableMatch(query string, entry *models.PlayerPoolEntry) bool {
	if r.format.HasDefense() && r.isDefenseSearch(query, []*models.PlayerPoolEntry{entry}) {
		return entry.Position.IsDefense()
	}
	return fuzzy.CommonChars(query, strings.ToLower(entry.Name)) >= minCommonChars
}

// isDefenseSearch classifies input as looking for a defense: an explicit
// keyword, a whole-token hit on a team fragment derived from the known
// defense names, or a longer substring overlap with such a fragment.
func (r *Resolver) isDefenseSearch(query string, defenses []*models.PlayerPoolEntry) bool {
	for _, kw := range defenseKeywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	if len(defenses) == 0 {
		return false
	}

	fragments := make(map[string]bool)
	for _, d := range defenses {
		name := strings.ToLower(d.Name)
		for _, kw := range defenseKeywords {
			name = strings.ReplaceAll(name, kw, "")
		}
		for _, word := range strings.Fields(name) {
			if len(word) > 2 {
				fragments[word] = true
			}
		}
	}

	for _, word := range strings.Fields(query) {
		if fragments[word] {
			return true
		}
	}
	if len(query) >= 4 {
		for fragment := range fragments {
			if strings.Contains(fragment, query) || strings.Contains(query, fragment) {
				return true
			}
		}
	}
	return false
}

// startsWithSuggestions offers did-you-mean entries whose names share the
// input's first few letters.
func (r *Resolver) startsWithSuggestions(query string, matchable []*models.PlayerPoolEntry) []*models.PlayerPoolEntry {
	prefix := query
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	var out []*models.PlayerPoolEntry
	for _, e := range matchable {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			out = append(out, e)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func defensesOf(entries []*models.PlayerPoolEntry) []*models.PlayerPoolEntry {
	var out []*models.PlayerPoolEntry
	for _, e := range entries {
		if e.Position.IsDefense() {
			out = append(out, e)
		}
	}
	return out
}

func lowerNames(entries []*models.PlayerPoolEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = strings.ToLower(e.Name)
	}
	return names
}

func entriesAt(entries []*models.PlayerPoolEntry, matches []fuzzy.Match) []*models.PlayerPoolEntry {
	out := make([]*models.PlayerPoolEntry, len(matches))
	for i, m := range matches {
		out[i] = entries[m.Index]
	}
	return out
}

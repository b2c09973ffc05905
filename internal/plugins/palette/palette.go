// Package palette implements command-palette fuzzy search over the C7
// registry's contributed commands, grounded on this codebase's
// input/palette.Filter (title/ID/description/category fuzzy match with
// per-field score weighting) and input/fuzzy.DefaultScorer's consecutive-
// match/word-boundary/prefix scoring, adapted from this codebase's
// keymap-bound *palette.Command table to query plugin.Registry.Commands
// directly.
package palette

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/quillcore/editor/internal/plugin"
)

type registryOwner interface {
	Plugins() *plugin.Registry
}

// Module is the plugin.Module constructor. The palette has no overlay
// dependency and supports both variants.
type Module struct{}

func (Module) Name() string         { return "palette" }
func (Module) Supports(string) bool { return true }

func (Module) DefaultEnabled() bool { return true }

func (Module) ConfigTiddler() (primary, alt string) {
	return "plugins.palette.enabled", "editor.paletteEnabled"
}

func (Module) Description() string { return "Fuzzy command palette over contributed commands." }

func (Module) Category() string { return "navigation" }

func (Module) Create(e plugin.Engine) (plugin.Plugin, error) {
	ro, ok := e.(registryOwner)
	if !ok {
		return nil, fmt.Errorf("palette: engine does not expose a plugin registry")
	}
	return &Plugin{registry: ro.Plugins()}, nil
}

// Plugin is the constructed palette instance.
type Plugin struct {
	registry *plugin.Registry
}

func (p *Plugin) Name() string { return "palette" }

// Commands contributes the command palette's own open action.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "open-command-palette", Title: "Open Command Palette", Category: "Navigation"},
	}
}

// Match pairs a registry command with its fuzzy-search score.
type Match struct {
	Command plugin.Command
	Score   int
	Matches []int
}

// Search fuzzy-matches query against every command the registry's
// plugins contribute (including the palette's own), sorted by score
// descending. An empty query returns every command in registry order,
// unscored, mirroring Filter.Search empty-query branch.
func (p *Plugin) Search(query string, limit int) []Match {
	commands := p.registry.Commands()

	if query == "" {
		results := make([]Match, 0, len(commands))
		for _, c := range commands {
			results = append(results, Match{Command: c})
		}
		return applyLimit(results, limit)
	}

	query = strings.ToLower(query)
	results := make([]Match, 0, len(commands))
	for _, c := range commands {
		score, matches := matchCommand(query, c)
		if score > 0 {
			results = append(results, Match{Command: c, Score: score, Matches: matches})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return applyLimit(results, limit)
}

func applyLimit(results []Match, limit int) []Match {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}

// matchCommand scores a command against query, trying title, ID,
// description, then category in that priority order, each with a
// weight bonus so a title hit always outranks a category hit.
func matchCommand(query string, c plugin.Command) (int, []int) {
	if score, matches := fuzzyMatch(query, c.Title); score > 0 {
		return score + 50, matches
	}
	if score, matches := fuzzyMatch(query, c.ID); score > 0 {
		return score + 25, matches
	}
	if score, matches := fuzzyMatch(query, c.Description); score > 0 {
		return score, matches
	}
	if score, matches := fuzzyMatch(query, c.Category); score > 0 {
		return score, matches
	}
	return 0, nil
}

// fuzzyMatch performs a greedy left-to-right subsequence match and
// returns the matched byte indices in text, or (0, nil) if query is not
// a subsequence.
func fuzzyMatch(query, text string) (int, []int) {
	if text == "" || query == "" {
		return 0, nil
	}
	textLower := strings.ToLower(text)
	matches := make([]int, 0, len(query))
	queryIdx := 0
	for i := 0; i < len(textLower) && queryIdx < len(query); i++ {
		if textLower[i] == query[queryIdx] {
			matches = append(matches, i)
			queryIdx++
		}
	}
	if queryIdx != len(query) {
		return 0, nil
	}
	return score(query, text, textLower, matches), matches
}

// score computes a match quality score: a base for matching at all, plus
// bonuses for consecutive runs, word-boundary hits, a leading match, and
// an exact prefix, minus a penalty for gaps and distance from the start.
func score(query, text, textLower string, matches []int) int {
	s := 100

	consecutive := 0
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			consecutive += 20
		}
	}
	s += consecutive

	boundary := 0
	for _, idx := range matches {
		if isWordBoundary(text, idx) {
			boundary += 15
		}
	}
	s += boundary

	if matches[0] == 0 {
		s += 25
	}

	if len(matches) > 1 {
		gap := matches[len(matches)-1] - matches[0] - len(matches) + 1
		if gap > 0 {
			s -= gap * 2
		}
	}

	if matches[0] > 0 {
		s -= matches[0]
	}

	if len(text) < 20 {
		s += 20 - len(text)
	}

	if strings.HasPrefix(textLower, query) {
		s += 50
	}

	if s < 1 {
		s = 1
	}
	return s
}

// isWordBoundary reports whether the byte at idx starts a new word:
// right after a separator, or a camelCase lower-to-upper transition.
func isWordBoundary(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(text) {
		return false
	}
	prev := rune(text[idx-1])
	curr := rune(text[idx])
	switch prev {
	case '/', '_', '-', '.', ' ', ':':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}

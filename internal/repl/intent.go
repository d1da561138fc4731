package repl

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

type aliasEntry struct {
	Alias string `yaml:"alias"`
	Tool  string `yaml:"tool"`
}

type aliasTable struct {
	Verbs   []string     `yaml:"verbs"`
	Aliases []aliasEntry `yaml:"aliases"`
}

var launchTable = loadAliasTable()

func loadAliasTable() aliasTable {
	var t aliasTable
	if err := yaml.Unmarshal(aliasesYAML, &t); err != nil {
		// The table is embedded at build time, so this only fires on a
		// broken edit to aliases.yaml.
		log.Error().Err(err).Msg("embedded alias table is invalid")
	}
	return t
}

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// ParseLaunchIntent detects "launch <tool>" style requests so the obvious
// case never costs a model round-trip. Matching is whole-word on normalized
// text; a verb with no known tool is not an intent.
func ParseLaunchIntent(input string) (tool string, ok bool) {
	norm := normalizeIntent(input)
	if norm == "" || !hasLaunchVerb(norm) {
		return "", false
	}
	return findToolAlias(norm)
}

// SuggestTool returns a close alias when the input has a launch verb but no
// exact tool match, e.g. "run claud" suggests claude. Tokens shorter than
// three characters are ignored to avoid junk suggestions.
func SuggestTool(input string) (string, bool) {
	norm := normalizeIntent(input)
	if norm == "" || !hasLaunchVerb(norm) {
		return "", false
	}
	if _, ok := findToolAlias(norm); ok {
		return "", false
	}
	for _, token := range strings.Fields(norm) {
		if len(token) < 3 || isLaunchVerb(token) {
			continue
		}
		for _, a := range launchTable.Aliases {
			flat := strings.ReplaceAll(a.Alias, " ", "")
			// Short aliases like "pi" hide inside ordinary words; only
			// aliases long enough to be distinctive may fuzzy-match.
			if len(flat) < 3 {
				continue
			}
			if strings.Contains(flat, token) || strings.Contains(token, flat) {
				return a.Tool, true
			}
		}
	}
	return "", false
}

func normalizeIntent(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphaNum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

func hasLaunchVerb(norm string) bool {
	padded := " " + norm + " "
	for _, v := range launchTable.Verbs {
		if strings.Contains(padded, " "+v+" ") {
			return true
		}
	}
	return false
}

func isLaunchVerb(token string) bool {
	for _, v := range launchTable.Verbs {
		if token == v {
			return true
		}
	}
	return false
}

func findToolAlias(norm string) (string, bool) {
	padded := " " + norm + " "
	for _, a := range launchTable.Aliases {
		if strings.Contains(padded, " "+a.Alias+" ") {
			return a.Tool, true
		}
	}
	return "", false
}

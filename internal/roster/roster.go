package roster

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/go-andiamo/splitter"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var lineSplitter, _ = splitter.NewSplitter('|', splitter.DoubleQuotes)

// Parses one player per line in the form "Name | Club" or
// "Name - Club". Names with a pipe can be put in double quotes.
// Blank lines are skipped and a missing club is the default club.
//
// The player codes continue after offset existing players.
func Parse(text string, offset int) []core.Player {
	players := make([]core.Player, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		index := offset + len(players)
		name, club := splitLine(line)
		if name == "" {
			name = fmt.Sprintf("Player %v", index+1)
		}
		if club == "" {
			club = core.DefaultClub
		}

		players = append(players, core.Player{
			ID:   uuid.NewString(),
			Name: name,
			Club: club,
			Code: core.PlayerCode(index),
		})
	}
	return players
}

func splitLine(line string) (string, string) {
	parts, err := lineSplitter.Split(line)
	if err != nil {
		parts = strings.SplitN(line, "|", 2)
	}

	if len(parts) < 2 {
		name, club, _ := strings.Cut(line, " - ")
		return clean(name), clean(club)
	}
	return clean(parts[0]), clean(parts[1])
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

// Returns the players whose name fuzzily matches the query, best
// match first. A player code matches exactly.
//
// Names that start with the query come first, then names with a
// word that starts with it. Fuzzy distance orders the rest.
func Find(players []core.Player, query string) []core.Player {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	for _, p := range players {
		if strings.EqualFold(p.Code, query) || p.ID == query {
			return []core.Player{p}
		}
	}

	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if c := cmp.Compare(prefixRank(a.Target, query), prefixRank(b.Target, query)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.OriginalIndex, b.OriginalIndex)
	})

	found := make([]core.Player, 0, len(ranks))
	for _, r := range ranks {
		found = append(found, players[r.OriginalIndex])
	}
	return found
}

// 0 when the name starts with the query, 1 when one of its
// words does and 2 otherwise
func prefixRank(name, query string) int {
	name = strings.ToLower(name)
	query = strings.ToLower(query)
	if strings.HasPrefix(name, query) {
		return 0
	}
	for _, word := range strings.Fields(name) {
		if strings.HasPrefix(word, query) {
			return 1
		}
	}
	return 2
}

package roster

import (
	"testing"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	text := `
Anna Berg | BC North
Jean-Luc Martin - Club Paris

"Lee | Park" | Seoul BC
Ben Cole
 | BC South
`
	players := Parse(text, 4)
	require.Len(t, players, 5)

	expected := []struct{ name, club, code string }{
		{"Anna Berg", "BC North", "P-005"},
		{"Jean-Luc Martin", "Club Paris", "P-006"},
		{"Lee | Park", "Seoul BC", "P-007"},
		{"Ben Cole", core.DefaultClub, "P-008"},
		{"Player 9", "BC South", "P-009"},
	}
	for i, e := range expected {
		assert.Equal(t, e.name, players[i].Name)
		assert.Equal(t, e.club, players[i].Club)
		assert.Equal(t, e.code, players[i].Code)
		assert.NotEmpty(t, players[i].ID)
	}
	assert.NotEqual(t, players[0].ID, players[1].ID)

	assert.Empty(t, Parse("\n  \n", 0))
}

func TestFind(t *testing.T) {
	players := Parse("Anna Berg | A\nHanna Lind | B\nBen Cole | C\nJoanna Ek | D\nNicoles | E", 0)

	// A name that starts with the query wins over a closer match
	found := Find(players, "anna")
	require.Len(t, found, 3)
	assert.Equal(t, "Anna Berg", found[0].Name)
	assert.Equal(t, "Joanna Ek", found[1].Name)
	assert.Equal(t, "Hanna Lind", found[2].Name)

	// So does a word that starts with it
	found = Find(players, "cole")
	require.Len(t, found, 2)
	assert.Equal(t, "Ben Cole", found[0].Name)
	assert.Equal(t, "Nicoles", found[1].Name)

	found = Find(players, "bncl")
	require.Len(t, found, 1)
	assert.Equal(t, "Ben Cole", found[0].Name)

	found = Find(players, "p-004")
	require.Len(t, found, 1)
	assert.Equal(t, "Joanna Ek", found[0].Name)

	found = Find(players, players[1].ID)
	require.Len(t, found, 1)
	assert.Equal(t, "Hanna Lind", found[0].Name)

	assert.Empty(t, Find(players, "zzz"))
	assert.Empty(t, Find(players, " "))
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchEmptyQueryIsIdentity(t *testing.T) {
	t.Parallel()
	c, err := FromResponse(sampleResponse())
	require.NoError(t, err)
	for _, cat := range Categories {
		require.Equal(t, c.Commands(cat), c.Search(cat, ""), cat.String())
	}
}

func TestSearchCaseInsensitiveOrderPreserving(t *testing.T) {
	t.Parallel()
	c, err := FromResponse(Response{
		ItemSpawnCodes: []string{"cheat giveitem Sword", "cheat giveitem Pick", "cheat giveitem SWORDFISH"},
	})
	require.NoError(t, err)
	got := c.Search(Item, "sword")
	require.Equal(t, []string{"cheat giveitem Sword", "cheat giveitem SWORDFISH"}, got)
	require.Empty(t, c.Search(Item, "axe"))
	require.Empty(t, c.Search(Buff, "sword"))
}

func TestSearchIdempotent(t *testing.T) {
	t.Parallel()
	resp := sampleResponse()
	for _, q := range []string{"", "buff", "PRIMAL", "rex", "zzz"} {
		first := filterCommands(resp.ItemSpawnCodes, q)
		second := filterCommands(first, q)
		require.Equal(t, first, second, q)
	}
}

func TestSearcherPerCategoryState(t *testing.T) {
	t.Parallel()
	c, err := FromResponse(sampleResponse())
	require.NoError(t, err)
	s := NewSearcher(c)
	s.SetQuery(Item, "pick")
	s.SetQuery(Buff, "speed")

	require.Len(t, s.Results(Item), 1)
	require.Len(t, s.Results(Buff), 1)
	require.Equal(t, c.Commands(Engram), s.Results(Engram))
	require.Equal(t, "pick", s.Query(Item))
	require.Equal(t, "", s.Query(Creature))

	// results follow a new catalog without resetting queries
	next, err := FromResponse(Response{ItemSpawnCodes: []string{"pickaxe", "PICK", "sword"}})
	require.NoError(t, err)
	s.SetCatalog(next)
	require.Equal(t, []string{"pickaxe", "PICK"}, s.Results(Item))
	require.Empty(t, s.Results(Buff))

	s.SetQuery(Item, "")
	require.Equal(t, []string{"pickaxe", "PICK", "sword"}, s.Results(Item))
}

func TestSearcherNilCatalog(t *testing.T) {
	t.Parallel()
	s := NewSearcher(nil)
	s.SetQuery(Item, "x")
	require.Empty(t, s.Results(Item))
}

func TestExtractBlueprint(t *testing.T) {
	t.Parallel()
	cmd := "cheat GiveItem Blueprint'/Game/Mod/Buff.Buff' 1 1 0"
	tok, ok := ExtractBlueprint(cmd)
	require.True(t, ok)
	require.Equal(t, "Blueprint'/Game/Mod/Buff.Buff'", tok)
	require.True(t, HasBlueprint(cmd))

	tok, ok = ExtractBlueprint("cheat GiveEngrams")
	require.False(t, ok)
	require.Empty(t, tok)
	require.False(t, HasBlueprint("cheat GiveEngrams"))
}

func TestExtractBlueprintFirstMatchWins(t *testing.T) {
	t.Parallel()
	cmd := "Blueprint'/A/One.One' and Blueprint'/B/Two.Two'"
	tok, ok := ExtractBlueprint(cmd)
	require.True(t, ok)
	require.Equal(t, "Blueprint'/A/One.One'", tok)
}

func TestHasBlueprintAgreesWithExtract(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"Blueprint'/",
		"Blueprint'/unterminated",
		"Blueprint'/'",
		"blueprint'/lower.case'",
		"Blueprint/'No.Quote'",
		`cheat giveitem "Blueprint'/Mod/Items/PrimalItem_Sword.PrimalItem_Sword'" 1 0 0`,
		"x Blueprint'/Game/Mod/Buff.Buff' y",
	}
	for _, in := range inputs {
		_, ok := ExtractBlueprint(in)
		require.Equal(t, ok, HasBlueprint(in), in)
	}
	require.False(t, HasBlueprint("Blueprint'/unterminated"))
	require.True(t, HasBlueprint("Blueprint'/'"))
}

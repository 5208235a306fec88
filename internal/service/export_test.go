package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jask/spawncodes/internal/catalog"
)

func exportCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.FromResponse(catalog.Response{
		EngramNames:             []string{"EngramEntry_A_C", "EngramEntry_B_C"},
		ItemSpawnCodes:          []string{`cheat giveitem "Blueprint'/M/PrimalItem_A.PrimalItem_A'" 1 0 0`},
		CreatureSpawnCodes:      []string{`cheat SpawnDino "Blueprint'/M/Rex_Character_BP.Rex_Character_BP'" 500 0 0 120`},
		TamedCreatureSpawnCodes: []string{`admincheat GMSummon "Rex_Character_BP_C" 120`},
		BuffBlueprints:          []string{"Blueprint'/M/Buffs/Buff_X.Buff_X'"},
	})
	require.NoError(t, err)
	return c
}

func TestFileExporterText(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out", "commands.txt")
	e := &FileExporter{}
	require.NoError(t, e.Write(context.Background(), path, exportCatalog(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.True(t, strings.HasPrefix(text, DefaultExportHeader+"\n"))
	require.Contains(t, text, "--- Engram Names ---\nEngramEntry_A_C\nEngramEntry_B_C\n")
	require.Contains(t, text, "--- Tamed Creature Spawn Commands ---\nadmincheat GMSummon")
	require.Contains(t, text, "--- Buff Blueprint Paths ---\nBlueprint'/M/Buffs/Buff_X.Buff_X'\n")
	require.Less(t, strings.Index(text, "Item Spawn"), strings.Index(text, "Creature Spawn"))

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileExporterStructuredFormats(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := exportCatalog(t)
	want := c.Response()
	ctx := context.Background()

	jsonPath := filepath.Join(dir, "c.json")
	require.NoError(t, (&FileExporter{Format: FormatAuto}).Write(ctx, jsonPath, c))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON catalog.Response
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	require.Equal(t, want, fromJSON)

	yamlPath := filepath.Join(dir, "c.yml")
	require.NoError(t, (&FileExporter{}).Write(ctx, yamlPath, c))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML catalog.Response
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Equal(t, want, fromYAML)

	tomlPath := filepath.Join(dir, "c.cfg")
	require.NoError(t, (&FileExporter{Format: "TOML"}).Write(ctx, tomlPath, c))
	var fromTOML catalog.Response
	_, err = toml.DecodeFile(tomlPath, &fromTOML)
	require.NoError(t, err)
	require.Equal(t, want, fromTOML)
}

func TestFileExporterErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	require.Error(t, (&FileExporter{}).Write(ctx, filepath.Join(dir, "x.txt"), nil))
	require.Error(t, (&FileExporter{Format: "xml"}).Write(ctx, filepath.Join(dir, "x.xml"), exportCatalog(t)))

	// destination is a directory
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o644))
	require.Error(t, (&FileExporter{}).Write(ctx, target, exportCatalog(t)))
}

func TestSessionExportWithFileExporter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gen := &fakeGenerator{resp: map[string]catalog.Response{"m.txt": scenarioResponse()}}
	s := &Session{Generator: gen, Writer: &FileExporter{Header: "custom header"}}
	require.NoError(t, s.Generate(ctx, "m.txt"))

	dest := filepath.Join(t.TempDir(), "commands.txt")
	require.NoError(t, s.Export(ctx, dest))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "custom header\n"))
	require.Contains(t, string(data), "cheat GiveItem Blueprint'/Game/Mod/Buff.Buff' 1 1 0")
}

func TestFileExporterRenameFailureLeavesNoTemp(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "commands.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o755))

	err := (&FileExporter{}).Write(context.Background(), path, exportCatalog(t))
	require.Error(t, err)
	_, statErr := os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(statErr))
}

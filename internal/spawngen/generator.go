// Package spawngen turns a mod manifest into console spawn commands.
package spawngen

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jask/spawncodes/internal/catalog"
)

const assetSuffix = ".uasset"

// Generator reads manifest files from disk.
type Generator struct{}

func New() *Generator { return &Generator{} }

// Generate opens manifestPath and builds the five command lists.
func (g *Generator) Generate(ctx context.Context, manifestPath string) (catalog.Response, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return catalog.Response{}, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return g.FromReader(ctx, f)
}

// FromReader builds commands from manifest content.
func (g *Generator) FromReader(ctx context.Context, r io.Reader) (catalog.Response, error) {
	entries, err := parseManifest(ctx, r)
	if err != nil {
		return catalog.Response{}, err
	}
	groups := classify(entries)

	resp := catalog.Response{
		EngramNames:             make([]string, 0, len(groups.engrams)),
		ItemSpawnCodes:          make([]string, 0, len(groups.items)),
		CreatureSpawnCodes:      make([]string, 0, len(groups.creatures)),
		TamedCreatureSpawnCodes: make([]string, 0, len(groups.creatures)),
		BuffBlueprints:          make([]string, 0, len(groups.buffs)),
	}
	for _, e := range groups.engrams {
		resp.EngramNames = append(resp.EngramNames, className(e))
	}
	for _, e := range groups.items {
		bp := blueprintPath(e)
		resp.ItemSpawnCodes = append(resp.ItemSpawnCodes,
			fmt.Sprintf(`cheat giveitem "Blueprint'/%s.%s'" 1 0 0`, bp, baseName(bp)))
	}
	for _, e := range groups.creatures {
		bp := blueprintPath(e)
		resp.CreatureSpawnCodes = append(resp.CreatureSpawnCodes,
			fmt.Sprintf(`cheat SpawnDino "Blueprint'/%s.%s'" 500 0 0 120`, bp, baseName(bp)))
	}
	for _, e := range groups.creatures {
		resp.TamedCreatureSpawnCodes = append(resp.TamedCreatureSpawnCodes,
			fmt.Sprintf(`admincheat GMSummon "%s" 120`, className(e)))
	}
	for _, e := range groups.buffs {
		bp := blueprintPath(e)
		resp.BuffBlueprints = append(resp.BuffBlueprints, fmt.Sprintf("Blueprint'/%s.%s'", bp, baseName(bp)))
	}
	return resp, nil
}

// parseManifest keeps the first field of each line that names an asset.
func parseManifest(ctx context.Context, r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var out []string
	line := 0
	for sc.Scan() {
		line++
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if strings.HasSuffix(fields[0], assetSuffix) {
			out = append(out, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read manifest line %d: %w", line+1, err)
	}
	return out, nil
}

type entryGroups struct {
	engrams   []string
	items     []string
	creatures []string
	buffs     []string
}

// classify buckets entries; the first matching rule wins.
func classify(entries []string) entryGroups {
	var g entryGroups
	for _, e := range entries {
		switch {
		case strings.Contains(e, "EngramEntry"):
			g.engrams = append(g.engrams, e)
		case strings.Contains(e, "PrimalItem"):
			g.items = append(g.items, e)
		case strings.Contains(e, "Character_BP"):
			g.creatures = append(g.creatures, e)
		case strings.Contains(e, "/Buffs/") && strings.Contains(e, "Buff_"):
			g.buffs = append(g.buffs, e)
		}
	}
	return g
}

var blueprintReplacer = strings.NewReplacer("ShooterGame/Mods/", "", "Content/", "", assetSuffix, "")

func blueprintPath(entry string) string {
	return blueprintReplacer.Replace(entry)
}

func className(entry string) string {
	return strings.ReplaceAll(baseName(entry), assetSuffix, "_C")
}

func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies one list of generated commands.
type Category int

const (
	Engram Category = iota
	Item
	Creature
	TamedCreature
	Buff
)

// Categories lists every category in display order.
var Categories = []Category{Engram, Item, Creature, TamedCreature, Buff}

var categoryNames = map[Category]string{
	Engram:        "engram",
	Item:          "item",
	Creature:      "creature",
	TamedCreature: "tamed-creature",
	Buff:          "buff",
}

var categoryTitles = map[Category]string{
	Engram:        "Engram Names",
	Item:          "Item Spawn Commands",
	Creature:      "Creature Spawn Commands",
	TamedCreature: "Tamed Creature Spawn Commands",
	Buff:          "Buff Blueprint Paths",
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Title is the human label used for section headings and tabs.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return c.String()
}

// ParseCategory accepts the canonical name, case-insensitively. Underscores
// are treated as dashes so "tamed_creature" works on the command line.
func ParseCategory(s string) (Category, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, c := range Categories {
		if categoryNames[c] == norm {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// ErrMalformed marks a generation response that cannot become a catalog.
var ErrMalformed = errors.New("malformed generation response")

// Response is the payload returned by a generator.
type Response struct {
	EngramNames             []string `json:"engram_names" yaml:"engram_names" toml:"engram_names"`
	ItemSpawnCodes          []string `json:"item_spawncodes" yaml:"item_spawncodes" toml:"item_spawncodes"`
	CreatureSpawnCodes      []string `json:"creature_spawncodes" yaml:"creature_spawncodes" toml:"creature_spawncodes"`
	TamedCreatureSpawnCodes []string `json:"tamed_creature_spawncodes" yaml:"tamed_creature_spawncodes" toml:"tamed_creature_spawncodes"`
	BuffBlueprints          []string `json:"buff_blueprints" yaml:"buff_blueprints" toml:"buff_blueprints"`
}

func (r Response) list(c Category) []string {
	switch c {
	case Engram:
		return r.EngramNames
	case Item:
		return r.ItemSpawnCodes
	case Creature:
		return r.CreatureSpawnCodes
	case TamedCreature:
		return r.TamedCreatureSpawnCodes
	case Buff:
		return r.BuffBlueprints
	}
	return nil
}

// Catalog is the immutable result of one generation call.
type Catalog struct {
	commands map[Category][]string
}

// FromResponse copies every list of resp, in order, into a new catalog.
func FromResponse(resp Response) (*Catalog, error) {
	c := &Catalog{commands: make(map[Category][]string, len(Categories))}
	for _, cat := range Categories {
		src := resp.list(cat)
		out := make([]string, 0, len(src))
		for i, cmd := range src {
			if strings.TrimSpace(cmd) == "" {
				return nil, fmt.Errorf("%w: empty %s command at index %d", ErrMalformed, cat, i)
			}
			out = append(out, cmd)
		}
		c.commands[cat] = out
	}
	return c, nil
}

// Commands returns a copy of the category's commands in generation order.
func (c *Catalog) Commands(cat Category) []string {
	if c == nil {
		return nil
	}
	src := c.commands[cat]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func (c *Catalog) Len(cat Category) int {
	if c == nil {
		return 0
	}
	return len(c.commands[cat])
}

// Total counts commands across all categories.
func (c *Catalog) Total() int {
	n := 0
	for _, cat := range Categories {
		n += c.Len(cat)
	}
	return n
}

// Response converts the catalog back to the wire shape, e.g. for export.
func (c *Catalog) Response() Response {
	return Response{
		EngramNames:             c.Commands(Engram),
		ItemSpawnCodes:          c.Commands(Item),
		CreatureSpawnCodes:      c.Commands(Creature),
		TamedCreatureSpawnCodes: c.Commands(TamedCreature),
		BuffBlueprints:          c.Commands(Buff),
	}
}

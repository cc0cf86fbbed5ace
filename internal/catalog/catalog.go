// Package catalog holds the immutable reference data the trail engines
// query: jobs, supplies, trail stops, enemies and the outcome tables.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"wagontrail/internal/errs"
	"wagontrail/internal/table"
)

//go:embed data/catalog.yaml
var embedded []byte

// Catalog is loaded once at process start and never mutated.
type Catalog struct {
	Jobs          []Job
	Nationalities []Nationality
	Religions     []Religion
	Supplies      []Supply
	Stops         []Stop
	Enemies       []Enemy
	Statuses      []Status
	Skills        []Skill
	Rewards       Rewards

	Hunting *table.Table[HuntOutcome]
	Fishing *table.Table[FishOutcome]
	Events  *table.Table[Event]
	Tesla   *table.Table[TeslaOutcome]
}

type rawRange struct {
	Roll int `yaml:"roll"`
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

func (r rawRange) bounds() (int, int) {
	if r.Roll != 0 {
		return r.Roll, r.Roll
	}
	return r.Low, r.High
}

func (r rawRange) String() string {
	lo, hi := r.bounds()
	return fmt.Sprintf("[%d,%d]", lo, hi)
}

type rawHunt struct {
	rawRange    `yaml:",inline"`
	Name        string `yaml:"name"`
	Text        string `yaml:"text"`
	Effect      Effect `yaml:"effect"`
	Enemy       string `yaml:"enemy"`
	RandomEvent bool   `yaml:"randomEvent"`
}

type rawFish struct {
	rawRange `yaml:",inline"`
	Name     string `yaml:"name"`
	Text     string `yaml:"text"`
	Effect   Effect `yaml:"effect"`
}

type rawTesla struct {
	rawRange `yaml:",inline"`
	Name     string `yaml:"name"`
	Text     string `yaml:"text"`
	Modifier int    `yaml:"modifier"`
	Backfire int    `yaml:"backfire"`
}

type rawCatalog struct {
	Jobs          []Job         `yaml:"jobs"`
	Nationalities []Nationality `yaml:"nationalities"`
	Religions     []Religion    `yaml:"religions"`
	Supplies      []Supply      `yaml:"supplies"`
	Stops         []Stop        `yaml:"stops"`
	Enemies       []Enemy       `yaml:"enemies"`
	Statuses      []Status      `yaml:"statuses"`
	Skills        []Skill       `yaml:"skills"`
	Rewards       Rewards       `yaml:"rewards"`
	Hunting       []rawHunt     `yaml:"hunting"`
	Fishing       []rawFish     `yaml:"fishing"`
	Events        []rawEvent    `yaml:"events"`
	Tesla         []rawTesla    `yaml:"tesla"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(filepath.Clean(path)) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes and validates a YAML catalog. Malformed tables or dangling
// references fail here rather than at roll time.
func Parse(b []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{
		Jobs:          raw.Jobs,
		Nationalities: raw.Nationalities,
		Religions:     raw.Religions,
		Supplies:      raw.Supplies,
		Stops:         raw.Stops,
		Enemies:       raw.Enemies,
		Statuses:      raw.Statuses,
		Skills:        raw.Skills,
		Rewards:       raw.Rewards,
	}
	if err := c.validateStops(); err != nil {
		return nil, err
	}

	var err error
	if c.Hunting, err = buildHunting(raw.Hunting); err != nil {
		return nil, err
	}
	if c.Fishing, err = buildFishing(raw.Fishing); err != nil {
		return nil, err
	}
	if c.Events, err = buildEvents(raw.Events); err != nil {
		return nil, err
	}
	if c.Tesla, err = buildTesla(raw.Tesla); err != nil {
		return nil, err
	}
	if err := c.validateReferences(); err != nil {
		return nil, err
	}
	return c, nil
}

func buildHunting(raw []rawHunt) (*table.Table[HuntOutcome], error) {
	entries := make([]table.Entry[HuntOutcome], 0, len(raw))
	for _, r := range raw {
		lo, hi := r.bounds()
		entries = append(entries, table.Entry[HuntOutcome]{Low: lo, High: hi, Outcome: HuntOutcome{
			Name: r.Name, Text: r.Text, Effect: r.Effect, Enemy: r.Enemy, RandomEvent: r.RandomEvent,
		}})
	}
	return table.New("hunting", HuntingMax, entries)
}

func buildFishing(raw []rawFish) (*table.Table[FishOutcome], error) {
	entries := make([]table.Entry[FishOutcome], 0, len(raw))
	for _, r := range raw {
		lo, hi := r.bounds()
		entries = append(entries, table.Entry[FishOutcome]{Low: lo, High: hi, Outcome: FishOutcome{
			Name: r.Name, Text: r.Text, Effect: r.Effect,
		}})
	}
	return table.New("fishing", FishingMax, entries)
}

func buildEvents(raw []rawEvent) (*table.Table[Event], error) {
	entries := make([]table.Entry[Event], 0, len(raw))
	for _, r := range raw {
		ev, err := r.toEvent()
		if err != nil {
			return nil, errs.Wrap(errs.CodeTableLookup, "random events", err)
		}
		lo, hi := r.bounds()
		entries = append(entries, table.Entry[Event]{Low: lo, High: hi, Outcome: ev})
	}
	return table.New("randomEvent", RandomEventMax, entries)
}

func buildTesla(raw []rawTesla) (*table.Table[TeslaOutcome], error) {
	entries := make([]table.Entry[TeslaOutcome], 0, len(raw))
	for _, r := range raw {
		lo, hi := r.bounds()
		entries = append(entries, table.Entry[TeslaOutcome]{Low: lo, High: hi, Outcome: TeslaOutcome{
			Name: r.Name, Text: r.Text, Modifier: r.Modifier, Backfire: r.Backfire,
		}})
	}
	return table.New("tesla", TeslaMax, entries)
}

// validateStops checks the inflation curve: 1.0 at both ends, non-decreasing
// in between.
func (c *Catalog) validateStops() error {
	if len(c.Stops) < 2 {
		return fmt.Errorf("catalog: at least two trail stops are required")
	}
	first, last := c.Stops[0], c.Stops[len(c.Stops)-1]
	if first.Inflation != 1.0 || last.Inflation != 1.0 {
		return fmt.Errorf("catalog: first and last stop must have inflation 1.0")
	}
	seen := map[string]bool{}
	prev := 1.0
	for i, s := range c.Stops {
		if s.ID == "" || seen[s.ID] {
			return fmt.Errorf("catalog: stop %d has empty or duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
		if i == len(c.Stops)-1 {
			break
		}
		if s.Inflation < prev {
			return fmt.Errorf("catalog: stop %q inflation %.2f below previous %.2f", s.ID, s.Inflation, prev)
		}
		prev = s.Inflation
	}
	return nil
}

func (c *Catalog) validateReferences() error {
	checkEffect := func(where string, e Effect) error {
		for _, it := range e.Items {
			if _, ok := c.Supply(it.Item); !ok {
				return fmt.Errorf("catalog: %s references unknown item %q", where, it.Item)
			}
		}
		if e.Status != "" {
			if _, ok := c.Status(e.Status); !ok {
				return fmt.Errorf("catalog: %s references unknown status %q", where, e.Status)
			}
		}
		if e.Treasure != "" {
			if _, ok := c.Rewards.Achievements[e.Treasure]; !ok {
				return fmt.Errorf("catalog: %s references unknown treasure %q", where, e.Treasure)
			}
		}
		switch e.Target {
		case "", TargetLeader, TargetParty:
		default:
			return fmt.Errorf("catalog: %s has unknown target %q", where, e.Target)
		}
		return nil
	}
	checkEnemy := func(where, id string) error {
		if _, ok := c.Enemy(id); !ok {
			return fmt.Errorf("catalog: %s references unknown enemy %q", where, id)
		}
		return nil
	}

	for _, e := range c.Enemies {
		if e.HP <= 0 {
			return fmt.Errorf("catalog: enemy %q needs positive hp", e.ID)
		}
		if err := checkEffect("enemy "+e.ID, e.Reward); err != nil {
			return err
		}
	}
	for _, en := range c.Hunting.Entries() {
		if err := checkEffect("hunt "+en.Outcome.Name, en.Outcome.Effect); err != nil {
			return err
		}
		if en.Outcome.Enemy != "" {
			if err := checkEnemy("hunt "+en.Outcome.Name, en.Outcome.Enemy); err != nil {
				return err
			}
		}
	}
	for _, en := range c.Fishing.Entries() {
		if err := checkEffect("fish "+en.Outcome.Name, en.Outcome.Effect); err != nil {
			return err
		}
	}
	for _, en := range c.Events.Entries() {
		where := "event " + en.Outcome.Header().Title
		switch ev := en.Outcome.(type) {
		case DecisionEvent:
			for _, o := range ev.Options {
				if err := checkEffect(where, o.Effect); err != nil {
					return err
				}
			}
		case LootEvent:
			if err := checkEffect(where, ev.Effect); err != nil {
				return err
			}
		case DamageEvent:
			if err := checkEffect(where, ev.Effect); err != nil {
				return err
			}
		case CombatEvent:
			if err := checkEnemy(where, ev.Enemy); err != nil {
				return err
			}
		case RequirementEvent:
			if ev.Requires.Item != "" {
				if _, ok := c.Supply(ev.Requires.Item); !ok {
					return fmt.Errorf("catalog: %s requires unknown item %q", where, ev.Requires.Item)
				}
			}
			if ev.Requires.Skill != "" {
				if _, ok := c.Skill(ev.Requires.Skill); !ok {
					return fmt.Errorf("catalog: %s requires unknown skill %q", where, ev.Requires.Skill)
				}
			}
			if err := checkEffect(where, ev.Pass); err != nil {
				return err
			}
			if err := checkEffect(where, ev.Fail); err != nil {
				return err
			}
		}
	}
	return nil
}

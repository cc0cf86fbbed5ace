package catalog

import "fmt"

// EventKind discriminates the random event variants.
type EventKind string

const (
	KindDecision    EventKind = "decision"
	KindLoot        EventKind = "loot"
	KindDamage      EventKind = "damage"
	KindCombat      EventKind = "combat"
	KindRequirement EventKind = "requirement"
)

// Event is a random-event table outcome. The concrete type is one of
// DecisionEvent, LootEvent, DamageEvent, CombatEvent or RequirementEvent.
type Event interface {
	Kind() EventKind
	Header() EventHeader
	isEvent()
}

// EventHeader is the display text shared by every event.
type EventHeader struct {
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

func (h EventHeader) Header() EventHeader { return h }
func (EventHeader) isEvent()              {}

// Option is one choice of a decision event.
type Option struct {
	Key    string `json:"key,omitempty" yaml:"key"`
	Label  string `json:"label,omitempty" yaml:"label"`
	Effect Effect `json:"effect,omitempty" yaml:"effect"`
}

// DecisionEvent waits for the party to pick one of Options.
type DecisionEvent struct {
	EventHeader
	Options []Option `json:"options"`
}

func (DecisionEvent) Kind() EventKind { return KindDecision }

// Option returns the option with the given key.
func (d DecisionEvent) Option(key string) (Option, bool) {
	for _, o := range d.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

type LootEvent struct {
	EventHeader
	Effect Effect `json:"effect"`
}

func (LootEvent) Kind() EventKind { return KindLoot }

type DamageEvent struct {
	EventHeader
	Effect Effect `json:"effect"`
}

func (DamageEvent) Kind() EventKind { return KindDamage }

// CombatEvent starts a fight against Count enemies of type Enemy.
type CombatEvent struct {
	EventHeader
	Enemy string `json:"enemy"`
	Count int    `json:"count"`
}

func (CombatEvent) Kind() EventKind { return KindCombat }

// Requirement is met when a party member has Skill or the inventory holds
// Qty of Item.
type Requirement struct {
	Item  string `json:"item,omitempty" yaml:"item"`
	Qty   int    `json:"qty,omitempty" yaml:"qty"`
	Skill string `json:"skill,omitempty" yaml:"skill"`
}

// RequirementEvent applies Pass when the requirement is met, Fail otherwise.
type RequirementEvent struct {
	EventHeader
	Requires Requirement `json:"requires"`
	Pass     Effect      `json:"pass"`
	Fail     Effect      `json:"fail"`
}

func (RequirementEvent) Kind() EventKind { return KindRequirement }

type rawEvent struct {
	rawRange `yaml:",inline"`
	Kind     EventKind    `yaml:"kind"`
	Title    string       `yaml:"title"`
	Text     string       `yaml:"text"`
	Options  []Option     `yaml:"options"`
	Effect   Effect       `yaml:"effect"`
	Enemy    string       `yaml:"enemy"`
	Count    int          `yaml:"count"`
	Requires *Requirement `yaml:"requires"`
	Pass     Effect       `yaml:"pass"`
	Fail     Effect       `yaml:"fail"`
}

// toEvent converts a raw record into its variant, enforcing the fields each
// variant requires.
func (r rawEvent) toEvent() (Event, error) {
	if r.Title == "" {
		return nil, fmt.Errorf("event %v: title is required", r.rawRange)
	}
	h := EventHeader{Title: r.Title, Text: r.Text}
	switch r.Kind {
	case KindDecision:
		if len(r.Options) == 0 {
			return nil, fmt.Errorf("decision %q: options are required", r.Title)
		}
		seen := map[string]bool{}
		for _, o := range r.Options {
			if o.Key == "" || seen[o.Key] {
				return nil, fmt.Errorf("decision %q: option keys must be unique and non-empty", r.Title)
			}
			seen[o.Key] = true
		}
		return DecisionEvent{EventHeader: h, Options: r.Options}, nil
	case KindLoot:
		if !grants(r.Effect) {
			return nil, fmt.Errorf("loot %q: effect grants nothing", r.Title)
		}
		return LootEvent{EventHeader: h, Effect: r.Effect}, nil
	case KindDamage:
		if r.Effect.Health >= 0 && r.Effect.Status == "" && r.Effect.Days <= 0 {
			return nil, fmt.Errorf("damage %q: needs health loss, status or lost days", r.Title)
		}
		return DamageEvent{EventHeader: h, Effect: r.Effect}, nil
	case KindCombat:
		if r.Enemy == "" {
			return nil, fmt.Errorf("combat %q: enemy is required", r.Title)
		}
		count := r.Count
		if count == 0 {
			count = 1
		}
		if count < 0 {
			return nil, fmt.Errorf("combat %q: negative enemy count", r.Title)
		}
		return CombatEvent{EventHeader: h, Enemy: r.Enemy, Count: count}, nil
	case KindRequirement:
		if r.Requires == nil || (r.Requires.Item == "" && r.Requires.Skill == "") {
			return nil, fmt.Errorf("requirement %q: requires item or skill", r.Title)
		}
		req := *r.Requires
		if req.Item != "" && req.Qty == 0 {
			req.Qty = 1
		}
		return RequirementEvent{EventHeader: h, Requires: req, Pass: r.Pass, Fail: r.Fail}, nil
	default:
		return nil, fmt.Errorf("event %q: unknown kind %q", r.Title, r.Kind)
	}
}

func grants(e Effect) bool {
	if e.Cash > 0 || e.Health > 0 || e.Treasure != "" || e.VictoryPoints > 0 || e.Status != "" || e.ExtraLife {
		return true
	}
	for _, it := range e.Items {
		if it.Qty > 0 {
			return true
		}
	}
	return false
}

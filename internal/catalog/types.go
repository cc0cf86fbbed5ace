package catalog

// Roll domains for the outcome tables.
const (
	HuntingMax     = 30
	FishingMax     = 12
	RandomEventMax = 100
	TeslaMax       = 6
)

// Job is a character class chosen at creation.
type Job struct {
	ID           string   `json:"id,omitempty" yaml:"id"`
	Name         string   `json:"name,omitempty" yaml:"name"`
	HealthBonus  int      `json:"healthBonus,omitempty" yaml:"healthBonus"`
	StartingCash int      `json:"startingCash,omitempty" yaml:"startingCash"`
	Skills       []string `json:"skills,omitempty" yaml:"skills"`
}

type Nationality struct {
	ID          string `json:"id,omitempty" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name"`
	HealthBonus int    `json:"healthBonus,omitempty" yaml:"healthBonus"`
}

type Religion struct {
	ID     string   `json:"id,omitempty" yaml:"id"`
	Name   string   `json:"name,omitempty" yaml:"name"`
	Skills []string `json:"skills,omitempty" yaml:"skills"`
}

// Supply is an item from the general store.
type Supply struct {
	ID       string `json:"id,omitempty" yaml:"id"`
	Name     string `json:"name,omitempty" yaml:"name"`
	Category string `json:"category,omitempty" yaml:"category"`
	Price    int    `json:"price,omitempty" yaml:"price"`
}

// Stop is a trail waypoint. Days and Miles are the cost of reaching it from
// the previous stop.
type Stop struct {
	ID        string  `json:"id,omitempty" yaml:"id"`
	Name      string  `json:"name,omitempty" yaml:"name"`
	Miles     int     `json:"miles,omitempty" yaml:"miles"`
	Days      int     `json:"days,omitempty" yaml:"days"`
	Inflation float64 `json:"inflation,omitempty" yaml:"inflation"`
	Scenery   string  `json:"scenery,omitempty" yaml:"scenery"`
}

type Enemy struct {
	ID        string   `json:"id,omitempty" yaml:"id"`
	Name      string   `json:"name,omitempty" yaml:"name"`
	HP        int      `json:"hp,omitempty" yaml:"hp"`
	Damage    int      `json:"damage,omitempty" yaml:"damage"`
	Abilities []string `json:"abilities,omitempty" yaml:"abilities"`
	Reward    Effect   `json:"reward,omitempty" yaml:"reward"`
}

type Status struct {
	ID          string `json:"id,omitempty" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Skill describes a character skill. Discount is a store discount in percent.
type Skill struct {
	ID          string `json:"id,omitempty" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Discount    int    `json:"discount,omitempty" yaml:"discount"`
}

// Rewards holds the victory point constants.
type Rewards struct {
	ReachOregon              int            `json:"reachOregon,omitempty" yaml:"reachOregon"`
	WealthPer10              int            `json:"wealthPer10,omitempty" yaml:"wealthPer10"`
	SurvivingSpouse          int            `json:"survivingSpouse,omitempty" yaml:"survivingSpouse"`
	SurvivingChild           int            `json:"survivingChild,omitempty" yaml:"survivingChild"`
	PaintingPer              int            `json:"paintingPer,omitempty" yaml:"paintingPer"`
	Achievements             map[string]int `json:"achievements,omitempty" yaml:"achievements"`
	ElderStatesmanMultiplier float64        `json:"elderStatesmanMultiplier,omitempty" yaml:"elderStatesmanMultiplier"`
}

// Target selects who an effect's health change applies to.
type Target string

const (
	TargetLeader Target = "leader"
	TargetParty  Target = "party"
)

// ItemDelta adds (Qty > 0) or removes (Qty < 0) inventory.
type ItemDelta struct {
	Item string `json:"item,omitempty" yaml:"item"`
	Qty  int    `json:"qty,omitempty" yaml:"qty"`
}

// Effect is the game-state change an outcome declares. The engines never
// apply it themselves; see game.Apply.
type Effect struct {
	Cash          int         `json:"cash,omitempty" yaml:"cash"` // negative spends, clamped at 0
	Debt          int         `json:"debt,omitempty" yaml:"debt"` // may drive cash negative
	Days          int         `json:"days,omitempty" yaml:"days"`
	Health        int         `json:"health,omitempty" yaml:"health"`
	Target        Target      `json:"target,omitempty" yaml:"target"`
	Items         []ItemDelta `json:"items,omitempty" yaml:"items"`
	Status        string      `json:"status,omitempty" yaml:"status"`
	Treasure      string      `json:"treasure,omitempty" yaml:"treasure"`
	VictoryPoints int         `json:"vp,omitempty" yaml:"vp"`
	ExtraLife     bool        `json:"extraLife,omitempty" yaml:"extraLife"` // one save from a lethal hit
}

// IsZero reports whether the effect changes nothing.
func (e Effect) IsZero() bool {
	return e.Cash == 0 && e.Debt == 0 && e.Days == 0 && e.Health == 0 &&
		len(e.Items) == 0 && e.Status == "" && e.Treasure == "" && e.VictoryPoints == 0 && !e.ExtraLife
}

// HuntOutcome is one hunting table entry. Enemy triggers combat; RandomEvent
// marks the redirect band.
type HuntOutcome struct {
	Name        string `json:"name"`
	Text        string `json:"text,omitempty"`
	Effect      Effect `json:"effect"`
	Enemy       string `json:"enemy,omitempty"`
	RandomEvent bool   `json:"randomEvent,omitempty"`
}

type FishOutcome struct {
	Name   string `json:"name"`
	Text   string `json:"text,omitempty"`
	Effect Effect `json:"effect"`
}

// TeslaOutcome modifies an attack made with the Tesla gun. Backfire damages
// the wielder.
type TeslaOutcome struct {
	Name     string `json:"name"`
	Text     string `json:"text,omitempty"`
	Modifier int    `json:"modifier"`
	Backfire int    `json:"backfire,omitempty"`
}

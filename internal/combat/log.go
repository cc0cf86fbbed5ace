package combat

// EventType names an entry in the combat log.
type EventType string

const (
	EventStarted EventType = "started"
	EventAttack  EventType = "attack"
	EventDamage  EventType = "damage"
	EventHeal    EventType = "heal"
	EventEnded   EventType = "ended"
)

// Event is one append-only combat log entry. Enemy is -1 for entries that
// concern the whole encounter.
type Event struct {
	Seq      int       `json:"seq"`
	Type     EventType `json:"type"`
	Enemy    int       `json:"enemy"`
	Roll     int       `json:"roll,omitempty"`
	Modifier int       `json:"modifier,omitempty"`
	Total    int       `json:"total,omitempty"`
	Hit      bool      `json:"hit,omitempty"`
	Amount   int       `json:"amount,omitempty"`
	HP       int       `json:"hp"`
	State    State     `json:"state,omitempty"`
}

// Log returns a copy of the combat log in order.
func (c *Encounter) Log() []Event {
	return append([]Event(nil), c.log...)
}

func (c *Encounter) record(e Event) {
	e.Seq = len(c.log) + 1
	c.log = append(c.log, e)
}

// Snapshot is the serializable view of an encounter.
type Snapshot struct {
	State   State           `json:"state"`
	Enemies []EnemyInstance `json:"enemies"`
	Log     []Event         `json:"log"`
}

// Snapshot returns a copy of the encounter for display.
func (c *Encounter) Snapshot() Snapshot {
	return Snapshot{State: c.state, Enemies: c.Enemies(), Log: c.Log()}
}

// Clone returns an independent copy of the encounter.
func (c *Encounter) Clone() *Encounter {
	return &Encounter{state: c.state, enemies: c.Enemies(), log: c.Log()}
}

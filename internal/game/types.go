package game

// TrainStatus is the lifecycle state of a wagon train.
type TrainStatus string

const (
	StatusActive  TrainStatus = "active"
	StatusArrived TrainStatus = "arrived"
	StatusFailed  TrainStatus = "failed"
)

// Role is a character's place in the party.
type Role string

const (
	RoleLeader Role = "leader"
	RoleSpouse Role = "spouse"
	RoleChild  Role = "child"
	RoleMember Role = "member"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleLeader, RoleSpouse, RoleChild, RoleMember:
		return true
	}
	return false
}

// Character is one member of a wagon train's party.
type Character struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Job         string   `json:"job"`
	Nationality string   `json:"nationality"`
	Religion    string   `json:"religion"`
	Role        Role     `json:"role"`
	Health      int      `json:"health"`
	MaxHealth   int      `json:"maxHealth"`
	Skills      []string `json:"skills"`
	Statuses    []string `json:"statuses"`
	ExtraLife   bool     `json:"extraLife"`
	HolyCharges int      `json:"holyCharges"`
	Dead        bool     `json:"dead"`
}

// InventoryItem is a stack of one supply.
type InventoryItem struct {
	Item     string `json:"item"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// Pending records a decision event awaiting the party's choice. The event is
// re-resolved from its roll when the choice arrives.
type Pending struct {
	Title string `json:"title"`
	Roll  int    `json:"roll"`
}

// WagonTrain is one traveling party and everything it owns.
type WagonTrain struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	StopIndex     int             `json:"stopIndex"`
	Days          int             `json:"days"`
	Cash          int             `json:"cash"`
	VictoryPoints int             `json:"victoryPoints"`
	Party         []Character     `json:"party"`
	Inventory     []InventoryItem `json:"inventory"`
	Treasures     []string        `json:"treasures"`
	Status        TrainStatus     `json:"status"`
	Pending       *Pending        `json:"pending,omitempty"`
}

// Summary is the list view of a wagon train.
type Summary struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    TrainStatus `json:"status"`
	StopIndex int         `json:"stopIndex"`
	Days      int         `json:"days"`
	Alive     int         `json:"alive"`
	Cash      int         `json:"cash"`
}

// Summarize returns the list view of t.
func (t WagonTrain) Summarize() Summary {
	return Summary{
		ID:        t.ID,
		Name:      t.Name,
		Status:    t.Status,
		StopIndex: t.StopIndex,
		Days:      t.Days,
		Alive:     t.ActiveCount(),
		Cash:      t.Cash,
	}
}

package game

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"wagontrail/internal/catalog"
	"wagontrail/internal/errs"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func testTrain(t *testing.T) WagonTrain {
	t.Helper()
	tr, err := NewTrain(testCatalog(t), "The Donners", []CharacterSpec{
		{Name: "George", Job: "banker", Nationality: "american", Religion: "methodist", Role: RoleLeader},
		{Name: "Tamsen", Job: "doctor", Nationality: "irish", Religion: "catholic", Role: RoleSpouse},
		{Name: "Eliza", Job: "farmer", Nationality: "american", Religion: "none", Role: RoleChild},
	})
	if err != nil {
		t.Fatalf("NewTrain: %v", err)
	}
	return tr
}

func TestNewCharacterDerivesHealthAndSkills(t *testing.T) {
	c, err := NewCharacter(testCatalog(t), CharacterSpec{
		Name: "Tamsen", Job: "doctor", Nationality: "irish", Religion: "catholic",
	})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	if c.MaxHealth != BaseHealth+1+1 || c.Health != c.MaxHealth {
		t.Errorf("Expected health 12/12, got %d/%d", c.Health, c.MaxHealth)
	}
	if !c.HasSkill("medicine") || !c.HasSkill(SkillHoly) {
		t.Errorf("Expected medicine and holy skills, got %v", c.Skills)
	}
	if c.HolyCharges != 1 {
		t.Errorf("Expected 1 holy charge, got %d", c.HolyCharges)
	}
	if c.Role != RoleMember {
		t.Errorf("Expected default role member, got %s", c.Role)
	}
}

func TestNewCharacterCollapsesDuplicateSkills(t *testing.T) {
	c, err := NewCharacter(testCatalog(t), CharacterSpec{
		Name: "Brother Amos", Job: "preacher", Nationality: "german", Religion: "catholic",
	})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	if !reflect.DeepEqual(c.Skills, []string{SkillHoly}) {
		t.Errorf("Expected single holy skill, got %v", c.Skills)
	}
}

func TestNewCharacterRejectsUnknownRefs(t *testing.T) {
	cat := testCatalog(t)
	tcs := []CharacterSpec{
		{Name: "", Job: "banker", Nationality: "american", Religion: "none"},
		{Name: "A", Job: "astronaut", Nationality: "american", Religion: "none"},
		{Name: "A", Job: "banker", Nationality: "martian", Religion: "none"},
		{Name: "A", Job: "banker", Nationality: "american", Religion: "jedi"},
		{Name: "A", Job: "banker", Nationality: "american", Religion: "none", Role: "captain"},
	}
	for _, spec := range tcs {
		if _, err := NewCharacter(cat, spec); !errors.Is(err, errs.ErrInvalidInput) {
			t.Errorf("NewCharacter(%+v) error = %v, want invalid input", spec, err)
		}
	}
}

func TestDamageKillsWithoutRevive(t *testing.T) {
	c := Character{Name: "Eliza", Health: 3, MaxHealth: 10}
	if _, err := c.Damage(5); err != nil {
		t.Fatalf("Damage: %v", err)
	}
	if c.Health != 0 || !c.Dead || c.IsAlive() {
		t.Fatalf("Expected dead at 0 health, got %+v", c)
	}
	if _, err := c.Damage(1); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("Expected invalid state damaging the dead, got %v", err)
	}
	if _, err := c.Heal(1); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("Expected invalid state healing the dead, got %v", err)
	}
}

func TestDamageConsumesHolyCharge(t *testing.T) {
	c := Character{Name: "Amos", Health: 2, MaxHealth: 10, HolyCharges: 1}
	if _, err := c.Damage(4); err != nil {
		t.Fatalf("Damage: %v", err)
	}
	if c.Health != 1 || c.Dead || c.HolyCharges != 0 {
		t.Fatalf("Expected revive to 1 health, got %+v", c)
	}
	if _, err := c.Damage(1); err != nil {
		t.Fatalf("Damage: %v", err)
	}
	if !c.Dead {
		t.Fatal("Expected death once the charge is spent")
	}
}

func TestExtraLifeKeepsCharacterStanding(t *testing.T) {
	c := Character{Name: "Jim", Health: 1, MaxHealth: 10, ExtraLife: true}
	if _, err := c.Damage(1); err != nil {
		t.Fatalf("Damage: %v", err)
	}
	if !c.IsAlive() || c.Health != 0 {
		t.Fatalf("Expected alive at 0 with extra life, got %+v", c)
	}
	if _, err := c.Damage(1); err != nil {
		t.Fatalf("Damage: %v", err)
	}
	if c.IsAlive() || c.ExtraLife {
		t.Fatalf("Expected extra life consumed and dead, got %+v", c)
	}
}

func TestExtraLifeSavesOnce(t *testing.T) {
	c := Character{Name: "Jim", Health: 2, MaxHealth: 10, ExtraLife: true}
	if _, err := c.Damage(5); err != nil {
		t.Fatalf("Damage: %v", err)
	}
	if !c.IsAlive() || c.Health != 0 {
		t.Fatalf("Expected the extra life to hold at 0, got %+v", c)
	}
	if _, err := c.Heal(5); err != nil {
		t.Fatalf("Heal: %v", err)
	}
	if c.Health != 5 || c.ExtraLife {
		t.Fatalf("Expected the extra life spent after getting back up, got %+v", c)
	}
	if _, err := c.Damage(5); err != nil {
		t.Fatalf("Damage: %v", err)
	}
	if c.IsAlive() || !c.Dead {
		t.Fatalf("Expected death on the second lethal hit, got %+v", c)
	}
	if _, err := c.Heal(5); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("Expected the dead to stay dead, got %v", err)
	}
}

func TestApplyGrantsExtraLife(t *testing.T) {
	cat := testCatalog(t)
	tr := testTrain(t)
	next, desc, err := Apply(cat, tr, catalog.Effect{ExtraLife: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	leader := next.Party[next.LeaderIndex()]
	if !leader.ExtraLife {
		t.Fatalf("Expected the leader to gain an extra life, got %+v", leader)
	}
	if !strings.Contains(desc, "extra life") {
		t.Errorf("Expected description to mention the extra life, got %q", desc)
	}
	if tr.Party[tr.LeaderIndex()].ExtraLife {
		t.Error("Expected original train untouched")
	}
}

func TestHealCapsAtMaxAndBlessed(t *testing.T) {
	c := Character{Name: "Ann", Health: 8, MaxHealth: 10}
	_, _ = c.Heal(5)
	if c.Health != 10 {
		t.Errorf("Expected heal capped at 10, got %d", c.Health)
	}
	c.AddStatus(StatusBlessed)
	_, _ = c.Heal(5)
	if c.Health != 11 {
		t.Errorf("Expected blessed cap 11, got %d", c.Health)
	}
}

func TestStatusSetSemantics(t *testing.T) {
	var c Character
	c.AddStatus("cholera")
	c.AddStatus("cholera")
	if len(c.Statuses) != 1 {
		t.Fatalf("Expected duplicate status to collapse, got %v", c.Statuses)
	}
	c.RemoveStatus("cholera")
	if c.HasStatus("cholera") {
		t.Fatal("Expected status removed")
	}
}

func TestNewTrain(t *testing.T) {
	tr := testTrain(t)
	if tr.Status != StatusActive || tr.StopIndex != 0 || tr.Days != 0 {
		t.Errorf("unexpected initial train %+v", tr.Summarize())
	}
	if tr.Cash != 1600 {
		t.Errorf("Expected banker starting cash 1600, got %d", tr.Cash)
	}
	if tr.ActiveCount() != 3 {
		t.Errorf("Expected 3 living members, got %d", tr.ActiveCount())
	}
	if tr.Party[tr.LeaderIndex()].Name != "George" {
		t.Errorf("Expected George to lead")
	}
}

func TestNewTrainPromotesFirstMember(t *testing.T) {
	tr, err := NewTrain(testCatalog(t), "Solo", []CharacterSpec{
		{Name: "Ada", Job: "hunter", Nationality: "norwegian", Religion: "none"},
	})
	if err != nil {
		t.Fatalf("NewTrain: %v", err)
	}
	if tr.Party[0].Role != RoleLeader {
		t.Errorf("Expected promoted leader, got %s", tr.Party[0].Role)
	}
}

func TestNewTrainRejectsTwoLeaders(t *testing.T) {
	_, err := NewTrain(testCatalog(t), "Crowded", []CharacterSpec{
		{Name: "A", Job: "hunter", Nationality: "american", Religion: "none", Role: RoleLeader},
		{Name: "B", Job: "hunter", Nationality: "american", Religion: "none", Role: RoleLeader},
	})
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRemoveItemInsufficientStock(t *testing.T) {
	tr := testTrain(t)
	_ = tr.AddItem("food", "food", 3)

	err := tr.RemoveItem("food", 4)
	if !errors.Is(err, errs.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if tr.Quantity("food") != 3 {
		t.Fatalf("Expected quantity unchanged at 3, got %d", tr.Quantity("food"))
	}
	if err := tr.RemoveItem("food", 3); err != nil {
		t.Fatalf("RemoveItem exact amount: %v", err)
	}
	if tr.Quantity("food") != 0 {
		t.Fatalf("Expected 0 food, got %d", tr.Quantity("food"))
	}
}

func TestSpendClampsAndDebtGoesNegative(t *testing.T) {
	tr := WagonTrain{Cash: 30}
	if spent := tr.Spend(50); spent != 30 || tr.Cash != 0 {
		t.Errorf("Expected clamp at 0 after spending 30, cash %d spent %d", tr.Cash, spent)
	}
	tr.Debt(20)
	if tr.Cash != -20 {
		t.Errorf("Expected debt to -20, got %d", tr.Cash)
	}
	if spent := tr.Spend(5); spent != 0 || tr.Cash != -20 {
		t.Errorf("Expected no spend while in debt, got cash %d", tr.Cash)
	}
}

func TestAdvanceToArrival(t *testing.T) {
	cat := testCatalog(t)
	tr := testTrain(t)
	total := 0
	for tr.Status == StatusActive {
		before := tr.StopIndex
		stop, err := tr.Advance(cat)
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if tr.StopIndex != before+1 {
			t.Fatalf("Expected monotone stop index")
		}
		total += stop.Days
	}
	if tr.Status != StatusArrived || tr.StopIndex != cat.TerminalStop() {
		t.Fatalf("Expected arrival at terminal stop, got %+v", tr.Summarize())
	}
	if tr.Days != total {
		t.Errorf("Expected %d days, got %d", total, tr.Days)
	}
	if _, err := tr.Advance(cat); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("Expected invalid state advancing an arrived train, got %v", err)
	}
}

func TestFailIsTerminal(t *testing.T) {
	cat := testCatalog(t)
	tr := testTrain(t)
	if err := tr.Fail(); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if _, _, err := Apply(cat, tr, catalog.Effect{Cash: 10}); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("Expected invalid state on failed train, got %v", err)
	}
	if err := tr.Fail(); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("Expected second Fail rejected, got %v", err)
	}
}

func TestApplyLootAndTreasure(t *testing.T) {
	cat := testCatalog(t)
	tr := testTrain(t)
	next, desc, err := Apply(cat, tr, catalog.Effect{
		Cash:     50,
		Items:    []catalog.ItemDelta{{Item: "food", Qty: 20}},
		Treasure: "gold_nugget",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.Cash != tr.Cash+50 || next.Quantity("food") != 20 || !next.HasTreasure("gold_nugget") {
		t.Fatalf("unexpected result %+v", next)
	}
	if desc == "" {
		t.Error("Expected description")
	}
	if tr.Quantity("food") != 0 {
		t.Error("Expected original train untouched")
	}

	again, _, err := Apply(cat, next, catalog.Effect{Treasure: "gold_nugget"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(again.Treasures) != 1 {
		t.Errorf("Expected treasure counted once, got %v", again.Treasures)
	}
}

func TestApplyIsAllOrNothing(t *testing.T) {
	cat := testCatalog(t)
	tr := testTrain(t)
	_ = tr.AddItem("food", "food", 1)
	eff := catalog.Effect{
		Cash:   -100,
		Health: -2,
		Target: catalog.TargetParty,
		Items:  []catalog.ItemDelta{{Item: "ammunition", Qty: 5}, {Item: "food", Qty: -2}},
	}
	next, _, err := Apply(cat, tr, eff)
	if !errors.Is(err, errs.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if !reflect.DeepEqual(next, tr) {
		t.Fatal("Expected unchanged train on error")
	}
	if tr.Quantity("ammunition") != 0 || tr.Cash != 1600 || tr.Party[0].Health != tr.Party[0].MaxHealth {
		t.Fatal("Expected no partial mutation")
	}
}

func TestApplyPartyDamageAndStatus(t *testing.T) {
	cat := testCatalog(t)
	tr := testTrain(t)
	next, _, err := Apply(cat, tr, catalog.Effect{Health: -2, Target: catalog.TargetParty, Status: "cholera"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i, c := range next.Party {
		if c.Health != tr.Party[i].Health-2 {
			t.Errorf("%s: expected health %d, got %d", c.Name, tr.Party[i].Health-2, c.Health)
		}
		if !c.HasStatus("cholera") {
			t.Errorf("%s: expected cholera", c.Name)
		}
	}
}

func TestApplyLeaderDefault(t *testing.T) {
	cat := testCatalog(t)
	tr := testTrain(t)
	next, _, err := Apply(cat, tr, catalog.Effect{Health: -1})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.Party[0].Health != tr.Party[0].Health-1 || next.Party[1].Health != tr.Party[1].Health {
		t.Fatal("Expected only the leader to be hurt")
	}
}

func TestApplyPartyWipeFailsTrain(t *testing.T) {
	cat := testCatalog(t)
	tr := testTrain(t)
	tr.Party[1].HolyCharges = 0
	next, _, err := Apply(cat, tr, catalog.Effect{Health: -50, Target: catalog.TargetParty})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.Status != StatusFailed || next.ActiveCount() != 0 {
		t.Fatalf("Expected failed train, got %+v", next.Summarize())
	}
}

func TestClonedTrainIsIndependent(t *testing.T) {
	tr := testTrain(t)
	tr.Pending = &Pending{Title: "Toll Bridge", Roll: 57}
	c := tr.Clone()
	c.Party[0].AddSkill("repair")
	c.Pending.Roll = 58
	_ = c.AddItem("food", "food", 1)
	if tr.Party[0].HasSkill("repair") || tr.Pending.Roll != 57 || tr.Quantity("food") != 0 {
		t.Fatal("Expected clone to share no mutable state")
	}
}

func TestFormatCash(t *testing.T) {
	if got := FormatCash(1250); got != "$1,250" {
		t.Errorf("FormatCash(1250) = %q", got)
	}
	if got := FormatCash(-40); got != "-$40" {
		t.Errorf("FormatCash(-40) = %q", got)
	}
}

package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

func (c *Catalog) Job(id string) (Job, bool) {
	for _, j := range c.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

func (c *Catalog) Nationality(id string) (Nationality, bool) {
	for _, n := range c.Nationalities {
		if n.ID == id {
			return n, true
		}
	}
	return Nationality{}, false
}

func (c *Catalog) Religion(id string) (Religion, bool) {
	for _, r := range c.Religions {
		if r.ID == id {
			return r, true
		}
	}
	return Religion{}, false
}

func (c *Catalog) Supply(id string) (Supply, bool) {
	for _, s := range c.Supplies {
		if s.ID == id {
			return s, true
		}
	}
	return Supply{}, false
}

func (c *Catalog) Enemy(id string) (Enemy, bool) {
	for _, e := range c.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return Enemy{}, false
}

func (c *Catalog) Status(id string) (Status, bool) {
	for _, s := range c.Statuses {
		if s.ID == id {
			return s, true
		}
	}
	return Status{}, false
}

func (c *Catalog) Skill(id string) (Skill, bool) {
	for _, s := range c.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// Stop returns the stop with the given id.
func (c *Catalog) Stop(id string) (Stop, bool) {
	if i := c.StopIndex(id); i >= 0 {
		return c.Stops[i], true
	}
	return Stop{}, false
}

// StopIndex returns the position of id on the trail, or -1.
func (c *Catalog) StopIndex(id string) int {
	for i, s := range c.Stops {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// TerminalStop is the index of the last stop on the trail.
func (c *Catalog) TerminalStop() int {
	return len(c.Stops) - 1
}

func (c *Catalog) StopIDs() []string {
	out := make([]string, len(c.Stops))
	for i, s := range c.Stops {
		out[i] = s.ID
	}
	return out
}

func (c *Catalog) SupplyIDs() []string {
	out := make([]string, len(c.Supplies))
	for i, s := range c.Supplies {
		out[i] = s.ID
	}
	return out
}

// Suggest returns the candidate closest to input by edit distance, or "" when
// nothing is close enough to be a plausible typo.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(input, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len(input) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

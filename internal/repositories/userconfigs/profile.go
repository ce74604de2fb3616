package userconfigs

import (
	"sort"
	"time"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
)

// Profile is a saved set of user stats (gear, buffs, target) that can stand
// in for config.json
type Profile struct {
	ID        string
	Name      string
	Stats     stats.Mapping
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) clone() *Profile {
	c := *p
	c.Stats = p.Stats.Clone()
	return &c
}

func sortProfiles(profiles []*Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name != profiles[j].Name {
			return profiles[i].Name < profiles[j].Name
		}
		return profiles[i].ID < profiles[j].ID
	})
}

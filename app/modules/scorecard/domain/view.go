package scorecarddomain

import "strconv"

// View is the rendered scorecard. A nil week is "no score recorded" and only
// occurs with the sentinel variant.
type View struct {
	Team         string    `json:"team"`
	Season       int       `json:"season"`
	Variant      string    `json:"variant"`
	KeyMode      string    `json:"key_mode"`
	Weeks        []int     `json:"weeks"`
	Rows         []ViewRow `json:"rows"`
	TotalTargets []int     `json:"total_targets"`
}

// ViewRow is one shooter's line.
type ViewRow struct {
	ShooterID string  `json:"shooter_id,omitempty"`
	Name      string  `json:"name"`
	Weeks     []*int  `json:"weeks"`
	WeeksShot int     `json:"weeks_shot"`
	Average   float64 `json:"average"`
}

// Cell is the printable value of week w: a number, or "-" when unrecorded.
func (r ViewRow) Cell(w int) string {
	if w < 0 || w >= len(r.Weeks) || r.Weeks[w] == nil {
		return "-"
	}
	return strconv.Itoa(*r.Weeks[w])
}

// NewView renders a built scorecard. Shooter ids are only exposed when
// entries are keyed by id; a name-keyed entry may merge several shooters.
func NewView(sc *Scorecard, team string, season int, opts Options) View {
	v := View{
		Team:         team,
		Season:       season,
		Variant:      opts.Variant.String(),
		KeyMode:      opts.KeyMode.String(),
		Weeks:        make([]int, 0, WeekCount),
		Rows:         make([]ViewRow, 0, sc.Len()),
		TotalTargets: append([]int(nil), sc.TotalTargets[:]...),
	}
	for w := FirstWeek; w <= LastWeek; w++ {
		v.Weeks = append(v.Weeks, w)
	}

	for _, e := range sc.Entries() {
		row := ViewRow{
			Name:      e.DisplayName,
			Weeks:     make([]*int, WeekCount),
			WeeksShot: e.WeeksShot,
			Average:   e.Average,
		}
		if opts.KeyMode == KeyByShooterID {
			row.ShooterID = e.ShooterID.String()
		}
		for w := FirstWeek; w <= LastWeek; w++ {
			if opts.Variant == VariantSentinel && !e.Weeks[w].Recorded {
				continue
			}
			val := e.Weeks.Value(w)
			row.Weeks[w] = &val
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

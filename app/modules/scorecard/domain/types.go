package scorecarddomain

import (
	"fmt"

	"github.com/google/uuid"
)

// Week range covered by every scorecard. Week 0 is the onboarding week.
const (
	FirstWeek = 0
	LastWeek  = 15
	WeekCount = LastWeek - FirstWeek + 1
)

// ScoreRecord is one stored weekly score, already scoped to a team and season.
// A nil bunker means the value was never entered.
type ScoreRecord struct {
	ShooterID uuid.UUID
	FirstName string
	LastName  string
	Week      int
	BunkerOne *int
	BunkerTwo *int
}

// DisplayName is the shooter's name as printed on the scorecard.
func (r ScoreRecord) DisplayName() string {
	return r.FirstName + " " + r.LastName
}

// Tally is a single week's cell. Recorded is false when no score was entered.
type Tally struct {
	Targets  int
	Recorded bool
}

// WeeklyTally holds one Tally per week, indexed by week number.
type WeeklyTally [WeekCount]Tally

// Value returns the targets for week w, treating unrecorded weeks as zero.
func (t WeeklyTally) Value(w int) int {
	if w < FirstWeek || w > LastWeek || !t[w].Recorded {
		return 0
	}
	return t[w].Targets
}

// TotalTargetsRow is the per-week sum across every shooter on a scorecard.
type TotalTargetsRow [WeekCount]int

// Entry is one shooter's line on a scorecard.
type Entry struct {
	Key         string
	ShooterID   uuid.UUID
	DisplayName string
	Weeks       WeeklyTally
	WeeksShot   int
	Average     float64
}

// Scorecard maps shooter keys to entries and remembers first-appearance order.
type Scorecard struct {
	entries      map[string]*Entry
	order        []string
	TotalTargets TotalTargetsRow
}

func newScorecard() *Scorecard {
	return &Scorecard{entries: make(map[string]*Entry)}
}

// Entry returns the entry stored under key.
func (s *Scorecard) Entry(key string) (*Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Entries returns entries in the order their shooters first appeared in the input.
func (s *Scorecard) Entries() []*Entry {
	out := make([]*Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}

// Len reports the number of shooters on the scorecard.
func (s *Scorecard) Len() int {
	return len(s.order)
}

// Variant selects how un-scored weeks and zero totals are treated.
type Variant int

const (
	// VariantZeroFill starts every week at 0 and the shot count at -1 so the
	// mandatory week-0 score does not count as a week shot. Zero totals are skipped.
	VariantZeroFill Variant = iota
	// VariantSentinel starts every week unrecorded and lets every record
	// overwrite its week, so "shot a zero" and "did not shoot" stay distinct.
	VariantSentinel
)

func (v Variant) String() string {
	switch v {
	case VariantZeroFill:
		return "zero-fill"
	case VariantSentinel:
		return "sentinel"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant accepts the names produced by Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", "zero-fill", "zerofill", "zero":
		return VariantZeroFill, nil
	case "sentinel", "dash":
		return VariantSentinel, nil
	}
	return VariantZeroFill, fmt.Errorf("%w: unknown variant %q", ErrInvalidOptions, s)
}

// KeyMode selects how shooters are told apart on a scorecard.
type KeyMode int

const (
	// KeyByShooterID keys entries by the stable shooter id.
	KeyByShooterID KeyMode = iota
	// KeyByName keys entries by "first last". Two shooters with the same
	// name share one entry, last write winning per week.
	KeyByName
)

func (k KeyMode) String() string {
	switch k {
	case KeyByShooterID:
		return "id"
	case KeyByName:
		return "name"
	default:
		return fmt.Sprintf("keymode(%d)", int(k))
	}
}

// ParseKeyMode accepts the names produced by KeyMode.String.
func ParseKeyMode(s string) (KeyMode, error) {
	switch s {
	case "", "id", "shooter_id":
		return KeyByShooterID, nil
	case "name":
		return KeyByName, nil
	}
	return KeyByShooterID, fmt.Errorf("%w: unknown key mode %q", ErrInvalidOptions, s)
}

// Options is the per-call scorecard configuration.
type Options struct {
	Variant Variant
	KeyMode KeyMode
}

func (o Options) key(r ScoreRecord) string {
	if o.KeyMode == KeyByName {
		return r.DisplayName()
	}
	return r.ShooterID.String()
}

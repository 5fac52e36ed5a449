package scorecarddomain

import (
	"fmt"
	"math"
)

// Aggregate groups records by shooter and buckets each week's bunker total.
// Records are expected sorted by shooter then week; unordered input still
// groups correctly but duplicate (shooter, week) pairs resolve last-write-wins.
// Averages and the total targets row are left zero; see Build.
func Aggregate(records []ScoreRecord, opts Options) (*Scorecard, error) {
	sc := newScorecard()

	for _, r := range records {
		total, err := recordTotal(r)
		if err != nil {
			return nil, err
		}

		key := opts.key(r)
		entry, ok := sc.entries[key]
		if !ok {
			entry = newEntry(key, r, opts.Variant)
			sc.entries[key] = entry
			sc.order = append(sc.order, key)
		}

		switch opts.Variant {
		case VariantSentinel:
			entry.Weeks[r.Week] = Tally{Targets: total, Recorded: true}
		default:
			if total > 0 {
				entry.Weeks[r.Week] = Tally{Targets: total, Recorded: true}
				entry.WeeksShot++
			}
		}
	}

	if opts.Variant == VariantSentinel {
		for _, e := range sc.entries {
			e.WeeksShot = countShotWeeks(e.Weeks)
		}
	}

	return sc, nil
}

func newEntry(key string, r ScoreRecord, v Variant) *Entry {
	e := &Entry{
		Key:         key,
		ShooterID:   r.ShooterID,
		DisplayName: r.DisplayName(),
	}
	if v == VariantZeroFill {
		e.WeeksShot = -1
	}
	return e
}

func recordTotal(r ScoreRecord) (int, error) {
	if r.Week < FirstWeek || r.Week > LastWeek {
		return 0, fmt.Errorf("%w: %s week %d outside %d..%d", ErrInvalidScoreRecord, r.DisplayName(), r.Week, FirstWeek, LastWeek)
	}
	if r.BunkerOne == nil || r.BunkerTwo == nil {
		return 0, fmt.Errorf("%w: %s week %d missing bunker value", ErrInvalidScoreRecord, r.DisplayName(), r.Week)
	}
	if *r.BunkerOne < 0 || *r.BunkerTwo < 0 {
		return 0, fmt.Errorf("%w: %s week %d negative bunker value", ErrInvalidScoreRecord, r.DisplayName(), r.Week)
	}
	return *r.BunkerOne + *r.BunkerTwo, nil
}

// countShotWeeks counts weeks 1..15 with a recorded nonzero total.
func countShotWeeks(t WeeklyTally) int {
	n := 0
	for w := FirstWeek + 1; w <= LastWeek; w++ {
		if t[w].Recorded && t[w].Targets != 0 {
			n++
		}
	}
	return n
}

// AverageInputs returns the week -> total map the league average is taken over.
// Zero-fill scorecards drop zero weeks; sentinel scorecards keep every recorded week.
func AverageInputs(e *Entry, v Variant) map[int]int {
	scores := make(map[int]int)
	for w, t := range e.Weeks {
		if !t.Recorded {
			continue
		}
		if v == VariantZeroFill && t.Targets == 0 {
			continue
		}
		scores[w] = t.Targets
	}
	return scores
}

// ShooterAverage applies the league formula: once two or more weeks in 1..15
// exist, week 0 is dropped; otherwise every score, week 0 included, is
// averaged. The result is rounded to two places.
func ShooterAverage(scores map[int]int) float64 {
	sumAll, sumNoW0, nNoW0 := 0, 0, 0
	for w, v := range scores {
		sumAll += v
		if w != 0 {
			sumNoW0 += v
			nNoW0++
		}
	}

	if nNoW0 < 2 {
		return RoundHalfAwayFromZero(float64(sumAll)/float64(max(len(scores), 1)), 2)
	}
	return RoundHalfAwayFromZero(float64(sumNoW0)/float64(nNoW0), 2)
}

// RoundHalfAwayFromZero rounds v to the given number of decimal places.
func RoundHalfAwayFromZero(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// TotalTargets sums each week's targets across every entry. Every week is
// present in the result; unrecorded cells contribute nothing.
func TotalTargets(sc *Scorecard) TotalTargetsRow {
	var row TotalTargetsRow
	for _, e := range sc.entries {
		for w := range e.Weeks {
			row[w] += e.Weeks.Value(w)
		}
	}
	return row
}

// Build aggregates records, computes each shooter's average and fills in the
// total targets row.
func Build(records []ScoreRecord, opts Options) (*Scorecard, error) {
	sc, err := Aggregate(records, opts)
	if err != nil {
		return nil, err
	}
	for _, e := range sc.entries {
		e.Average = ShooterAverage(AverageInputs(e, opts.Variant))
	}
	sc.TotalTargets = TotalTargets(sc)
	return sc, nil
}

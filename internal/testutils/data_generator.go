package testutils

import (
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
)

// TestDataGenerator provides methods to create league test data.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with, for failure messages.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// Shooter is a generated league member.
type Shooter struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Rookie    bool
	Guest     bool
}

// GenerateShooters creates count shooters with unique ids.
func (g *TestDataGenerator) GenerateShooters(count int) []Shooter {
	shooters := make([]Shooter, count)
	for i := range shooters {
		shooters[i] = Shooter{
			ID:        uuid.New(),
			FirstName: g.faker.FirstName(),
			LastName:  g.faker.LastName(),
			Email:     g.faker.Email(),
			Rookie:    g.faker.Bool(),
			Guest:     g.faker.Bool(),
		}
	}
	return shooters
}

// TeamName returns a plausible team name.
func (g *TestDataGenerator) TeamName() string {
	return g.faker.Company()
}

// GenerateSeasonRecords creates a week-0 record plus a random subset of weeks
// 1..15 for every shooter, sorted by last name, first name, week. Some
// weeks are deliberately zero.
func (g *TestDataGenerator) GenerateSeasonRecords(shooters []Shooter) []scorecarddomain.ScoreRecord {
	var records []scorecarddomain.ScoreRecord
	for _, s := range shooters {
		records = append(records, record(s, 0, 1, 34))
		for w := scorecarddomain.FirstWeek + 1; w <= scorecarddomain.LastWeek; w++ {
			if !g.faker.Bool() {
				continue
			}
			b1 := g.faker.Number(0, 25)
			b2 := g.faker.Number(0, 25)
			if g.faker.Number(0, 9) == 0 {
				b1, b2 = 0, 0
			}
			records = append(records, record(s, w, b1, b2))
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.Week < b.Week
	})
	return records
}

func record(s Shooter, week, b1, b2 int) scorecarddomain.ScoreRecord {
	return scorecarddomain.ScoreRecord{
		ShooterID: s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Week:      week,
		BunkerOne: IntPtr(b1),
		BunkerTwo: IntPtr(b2),
	}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

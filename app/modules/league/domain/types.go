package leaguedomain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Every new shooter gets a week-0 score of 1 + 34 so their first average has
// something to stand on.
const (
	OnboardingBunkerOne = 1
	OnboardingBunkerTwo = 34
)

type Team struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Shooter struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Rookie    bool      `json:"rookie"`
	Guest     bool      `json:"guest"`
	Captain   bool      `json:"captain"`
	Average   float64   `json:"average"`
}

// Name is "first last".
func (s Shooter) Name() string {
	return s.FirstName + " " + s.LastName
}

// ShooterRegistration is the input for adding a shooter to a team.
type ShooterRegistration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	TeamName  string `json:"team"`
	Rookie    bool   `json:"rookie"`
	Guest     bool   `json:"guest"`
	Captain   bool   `json:"captain"`
	// MatchDate dates the onboarding score. Zero means today.
	MatchDate time.Time `json:"match_date,omitzero"`
}

// Normalize trims every name field.
func (r ShooterRegistration) Normalize() ShooterRegistration {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.TeamName = strings.TrimSpace(r.TeamName)
	return r
}

// IdentityKey is the case-insensitive (first, last, email) duplicate key.
func (r ShooterRegistration) IdentityKey() string {
	return strings.ToLower(r.FirstName + "\x00" + r.LastName + "\x00" + r.Email)
}

// Season lists the teams that shot in a year.
type Season struct {
	Year  int      `json:"year"`
	Teams []string `json:"teams"`
}

// Skipped is one input a bulk operation did not apply.
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BulkResult reports what a bulk create did with each input.
type BulkResult struct {
	Created []string  `json:"created"`
	Skipped []Skipped `json:"skipped"`
}

// Overview is the administration summary.
type Overview struct {
	Teams    []Team    `json:"teams"`
	Shooters []Shooter `json:"shooters"`
	Seasons  []Season  `json:"seasons"`
}

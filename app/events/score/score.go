// Package scoreevents defines the score stream shared by the league, score
// and scorecard modules.
package scoreevents

import "github.com/google/uuid"

// ScoreRecordedV1 is published after a weekly score is committed.
const ScoreRecordedV1 = "league.score.recorded.v1"

// ScoreRecordedPayloadV1 identifies the score that changed.
type ScoreRecordedPayloadV1 struct {
	ShooterID uuid.UUID `json:"shooter_id"`
	TeamID    uuid.UUID `json:"team_id"`
	TeamName  string    `json:"team_name"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
}

package scoredomain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Week bounds accepted on entry.
const (
	MinWeek = 0
	MaxWeek = 15
)

// NoticeLevel grades a Notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a per-entry message returned to whoever submitted scores.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func Info(format string, args ...any) Notice {
	return Notice{Level: NoticeInfo, Message: fmt.Sprintf(format, args...)}
}

func Warning(format string, args ...any) Notice {
	return Notice{Level: NoticeWarning, Message: fmt.Sprintf(format, args...)}
}

func Error(format string, args ...any) Notice {
	return Notice{Level: NoticeError, Message: fmt.Sprintf(format, args...)}
}

// WeeklyScoreEntry is one shooter's line on the weekly entry sheet.
type WeeklyScoreEntry struct {
	ShooterID uuid.UUID `json:"shooter_id"`
	BunkerOne int       `json:"bunker_one"`
	BunkerTwo int       `json:"bunker_two"`
}

// Total is the week's targets.
func (e WeeklyScoreEntry) Total() int {
	return e.BunkerOne + e.BunkerTwo
}

// WeeklyScoresRequest records one team's week. MatchDate decides the season.
type WeeklyScoresRequest struct {
	TeamName  string             `json:"team"`
	MatchDate time.Time          `json:"match_date"`
	Week      int                `json:"week"`
	Entries   []WeeklyScoreEntry `json:"entries"`
}

// RecordResult is what RecordWeeklyScores did.
type RecordResult struct {
	Recorded int      `json:"recorded"`
	Skipped  int      `json:"skipped"`
	Notices  []Notice `json:"notices"`
}

// EntrySheetRow is one shooter pre-filled with zero bunkers.
type EntrySheetRow struct {
	ShooterID uuid.UUID `json:"shooter_id"`
	Name      string    `json:"name"`
	BunkerOne int       `json:"bunker_one"`
	BunkerTwo int       `json:"bunker_two"`
}

// EntrySheet is the blank weekly form for a team.
type EntrySheet struct {
	Team      string          `json:"team"`
	Season    int             `json:"season"`
	MatchDate time.Time       `json:"match_date"`
	Week      int             `json:"week"`
	Rows      []EntrySheetRow `json:"rows"`
}

// ImportRow is one line of an uploaded score sheet. A zero MatchDate falls
// back to the date given with the upload.
type ImportRow struct {
	Line      int
	FirstName string
	LastName  string
	Week      int
	BunkerOne int
	BunkerTwo int
	MatchDate time.Time
}

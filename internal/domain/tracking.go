package domain

import "time"

// Boundary categories as stored in the category column.
const (
	BoundaryCategoryMine   = "my-boundary"
	BoundaryCategoryOthers = "others-boundary"
)

// Problem categories follow the four DBT options for responding to a problem.
const (
	ProblemCategorySolve         = "solve"
	ProblemCategoryChangeFeeling = "change-feelings"
	ProblemCategoryTolerate      = "tolerate"
	ProblemCategoryStayMiserable = "stay-miserable"
)

// Boundary is a personal limit the user records and optionally tracks.
type Boundary struct {
	ID         int64
	UserID     int64
	Boundary   string
	Category   string
	IsTracking bool
	DateAdded  *time.Time
	CreatedAt  time.Time
}

// DiaryCard is one daily DBT diary entry.
type DiaryCard struct {
	ID         int64
	UserID     int64
	EntryDate  string
	Mood       int
	Emotions   string
	Urges      string
	SkillsUsed string
	Notes      string
	CreatedAt  time.Time
}

// PhysicalGoal tracks a physical-health goal with a completion flag.
type PhysicalGoal struct {
	ID        int64
	UserID    int64
	Goal      string
	IsDone    bool
	CreatedAt time.Time
}

// TherapyGoal tracks a goal set in therapy with a completion flag.
type TherapyGoal struct {
	ID        int64
	UserID    int64
	Goal      string
	IsDone    bool
	CreatedAt time.Time
}

// Value is a named personal value with an optional description.
type Value struct {
	ID          int64
	UserID      int64
	Value       string
	Description string
	CreatedAt   time.Time
}

// Problem is a current problem classified by how the user chooses to respond.
type Problem struct {
	ID        int64
	UserID    int64
	Problem   string
	Category  string
	IsDone    bool
	CreatedAt time.Time
}

package model

// Difficulty is the closed three-level scale questions are tagged with.
// The ordering EASY < MEDIUM < HARD drives the adaptive selection logic.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// DifficultyOrder lists the valid difficulties from easiest to hardest.
var DifficultyOrder = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// OrNormalized returns d if valid, otherwise MEDIUM.
// Persisted values can predate enum tightening, so readers normalize
// rather than erroring on an unexpected string.
func (d Difficulty) OrNormalized() Difficulty {
	if d.IsValid() {
		return d
	}
	return DifficultyMedium
}

// Index returns the position of d on the ordered scale, with invalid
// values normalized to MEDIUM first.
func (d Difficulty) Index() int {
	for i, v := range DifficultyOrder {
		if v == d.OrNormalized() {
			return i
		}
	}
	return 1
}

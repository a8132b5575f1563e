// Package check compares rolled totals against a difficulty class.
package check

import "fmt"

// MeetsDifficulty returns true if total >= difficulty.
// This is the most common difficulty check in tabletop RPGs.
func MeetsDifficulty(total, difficulty int32) bool {
	return total >= difficulty
}

// Margin calculates the margin of success or failure.
// Positive values indicate success, negative indicate failure. The result is
// widened so that extreme totals cannot overflow.
func Margin(total, difficulty int32) int64 {
	return int64(total) - int64(difficulty)
}

// Result represents the outcome of a difficulty check.
type Result struct {
	Difficulty int32
	Success    bool
	Margin     int64
}

// String renders the outcome as "success by 2" or "failure by 3".
func (r Result) String() string {
	if r.Success {
		return fmt.Sprintf("success by %d against DC %d", r.Margin, r.Difficulty)
	}
	return fmt.Sprintf("failure by %d against DC %d", -r.Margin, r.Difficulty)
}

// Check performs a difficulty check and returns the result.
func Check(total, difficulty int32) Result {
	return Result{
		Difficulty: difficulty,
		Success:    MeetsDifficulty(total, difficulty),
		Margin:     Margin(total, difficulty),
	}
}

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Circuit is one labeled exercise line within a training day.
type Circuit struct {
	CircuitLetter string `json:"circuitLetter"`
	Exercise      string `json:"exercise"`
	Sets          int    `json:"sets"`
	Reps          string `json:"reps"`
	Notes         string `json:"notes"`
}

// Day is a single training or rest day within a week. Rest days carry an
// empty circuit list.
type Day struct {
	DayNumber int       `json:"dayNumber"`
	DayName   string    `json:"dayName"`
	IsRestDay bool      `json:"isRestDay"`
	Circuits  []Circuit `json:"circuits,omitempty"`
}

// Week is an ordered sequence of days.
type Week struct {
	WeekNumber int   `json:"weekNumber"`
	Days       []Day `json:"days"`
}

// WorkoutPlan is the full generated program.
type WorkoutPlan struct {
	ProgramName        string `json:"programName"`
	ProgramDescription string `json:"programDescription"`
	Weeks              []Week `json:"weeks"`
}

// Clone returns a deep copy of the plan. Store mutations rebuild the plan by
// value so callers never observe partial edits.
func (p *WorkoutPlan) Clone() *WorkoutPlan {
	if p == nil {
		return nil
	}
	out := &WorkoutPlan{
		ProgramName:        p.ProgramName,
		ProgramDescription: p.ProgramDescription,
		Weeks:              make([]Week, len(p.Weeks)),
	}
	for i, w := range p.Weeks {
		cw := Week{WeekNumber: w.WeekNumber, Days: make([]Day, len(w.Days))}
		for j, d := range w.Days {
			cd := Day{DayNumber: d.DayNumber, DayName: d.DayName, IsRestDay: d.IsRestDay}
			if len(d.Circuits) > 0 {
				cd.Circuits = append([]Circuit(nil), d.Circuits...)
			}
			cw.Days[j] = cd
		}
		out.Weeks[i] = cw
	}
	return out
}

// Wire structs use pointer fields so a missing required key is
// distinguishable from a zero value. The model is an untrusted producer;
// nothing is accepted on faith.
type wireCircuit struct {
	CircuitLetter *string `json:"circuitLetter"`
	Exercise      *string `json:"exercise"`
	Sets          *int    `json:"sets"`
	Reps          *string `json:"reps"`
	Notes         *string `json:"notes"`
}

type wireDay struct {
	DayNumber *int          `json:"dayNumber"`
	DayName   *string       `json:"dayName"`
	IsRestDay *bool         `json:"isRestDay"`
	Circuits  []wireCircuit `json:"circuits"`
}

type wireWeek struct {
	WeekNumber *int      `json:"weekNumber"`
	Days       []wireDay `json:"days"`
}

type wirePlan struct {
	ProgramName        *string    `json:"programName"`
	ProgramDescription *string    `json:"programDescription"`
	Weeks              []wireWeek `json:"weeks"`
}

// ParsePlan parses raw model output into a validated WorkoutPlan. Models
// routinely wrap JSON in markdown fences or surround it with prose, so the
// outermost object is isolated first. Every required field of every nested
// entity must be present with the correct type or the whole parse fails.
func ParsePlan(raw string) (*WorkoutPlan, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var wp wirePlan
	if err := json.Unmarshal([]byte(jsonStr), &wp); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}

	if wp.ProgramName == nil {
		return nil, fmt.Errorf("plan: missing programName")
	}
	if wp.ProgramDescription == nil {
		return nil, fmt.Errorf("plan: missing programDescription")
	}
	if wp.Weeks == nil {
		return nil, fmt.Errorf("plan: missing weeks")
	}

	plan := &WorkoutPlan{
		ProgramName:        *wp.ProgramName,
		ProgramDescription: *wp.ProgramDescription,
		Weeks:              make([]Week, 0, len(wp.Weeks)),
	}

	for wi, ww := range wp.Weeks {
		if ww.WeekNumber == nil {
			return nil, fmt.Errorf("week %d: missing weekNumber", wi+1)
		}
		if ww.Days == nil {
			return nil, fmt.Errorf("week %d: missing days", wi+1)
		}
		week := Week{WeekNumber: *ww.WeekNumber, Days: make([]Day, 0, len(ww.Days))}

		for di, wd := range ww.Days {
			if wd.DayNumber == nil {
				return nil, fmt.Errorf("week %d day %d: missing dayNumber", wi+1, di+1)
			}
			if wd.DayName == nil {
				return nil, fmt.Errorf("week %d day %d: missing dayName", wi+1, di+1)
			}
			if wd.IsRestDay == nil {
				return nil, fmt.Errorf("week %d day %d: missing isRestDay", wi+1, di+1)
			}
			day := Day{DayNumber: *wd.DayNumber, DayName: *wd.DayName, IsRestDay: *wd.IsRestDay}

			for ci, wc := range wd.Circuits {
				if wc.CircuitLetter == nil {
					return nil, fmt.Errorf("week %d day %d circuit %d: missing circuitLetter", wi+1, di+1, ci+1)
				}
				if wc.Exercise == nil {
					return nil, fmt.Errorf("week %d day %d circuit %d: missing exercise", wi+1, di+1, ci+1)
				}
				if wc.Sets == nil {
					return nil, fmt.Errorf("week %d day %d circuit %d: missing sets", wi+1, di+1, ci+1)
				}
				if wc.Reps == nil {
					return nil, fmt.Errorf("week %d day %d circuit %d: missing reps", wi+1, di+1, ci+1)
				}
				if wc.Notes == nil {
					return nil, fmt.Errorf("week %d day %d circuit %d: missing notes", wi+1, di+1, ci+1)
				}
				day.Circuits = append(day.Circuits, Circuit{
					CircuitLetter: *wc.CircuitLetter,
					Exercise:      *wc.Exercise,
					Sets:          *wc.Sets,
					Reps:          *wc.Reps,
					Notes:         *wc.Notes,
				})
			}
			week.Days = append(week.Days, day)
		}
		plan.Weeks = append(plan.Weeks, week)
	}

	return plan, nil
}

// extractJSON isolates the outermost JSON object from model output, stripping
// markdown code fences and surrounding prose.
func extractJSON(s string) string {
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+7:]
	} else if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

package planner

import "fmt"

const (
	minDaysPerWeek = 3
	maxDaysPerWeek = 7
	circuitLetters = "A, B, C, D, E"
)

// formatInstructions describes the exact JSON shape the model must emit,
// field by field. Kept machine-derivable from the schema in internal/models;
// any field change there must be mirrored here.
const formatInstructions = `Respond with ONLY a JSON object, no other text. The JSON must have exactly this structure:

{
  "programName": string,            // short name for the program
  "programDescription": string,     // one or two sentences describing it
  "weeks": [                        // array, one element per week
    {
      "weekNumber": number,         // 1-based
      "days": [                     // array, one element per day
        {
          "dayNumber": number,      // 1-based within the week
          "dayName": string,        // e.g. "Upper Body Push" or "Rest"
          "isRestDay": boolean,
          "circuits": [             // omit or leave empty on rest days
            {
              "circuitLetter": string,  // one of A, B, C, D, E
              "exercise": string,       // exercise name
              "sets": number,           // integer
              "reps": string,           // e.g. "12" or "12,10,8"
              "notes": string           // brief form cue, may be empty
            }
          ]
        }
      ]
    }
  ]
}

Every field shown is required (circuits may be omitted only on rest days). Do not add fields. Do not wrap the JSON in markdown fences.`

// workedExample is a complete literal plan embedded in the instruction.
// Without it, smaller models tend to echo the schema description back instead
// of producing real content.
const workedExample = `Here is a complete example of a valid 1-week response:

{
  "programName": "Kickstart Conditioning",
  "programDescription": "A one-week full-body introduction mixing strength circuits with recovery days.",
  "weeks": [
    {
      "weekNumber": 1,
      "days": [
        {
          "dayNumber": 1,
          "dayName": "Full Body Strength",
          "isRestDay": false,
          "circuits": [
            {"circuitLetter": "A", "exercise": "Goblet Squat", "sets": 3, "reps": "12,10,8", "notes": "Keep chest up, heels down"},
            {"circuitLetter": "A", "exercise": "Push-Up", "sets": 3, "reps": "15", "notes": "Full range of motion"},
            {"circuitLetter": "B", "exercise": "Dumbbell Row", "sets": 3, "reps": "10", "notes": "Squeeze at the top"}
          ]
        },
        {
          "dayNumber": 2,
          "dayName": "Rest",
          "isRestDay": true,
          "circuits": []
        },
        {
          "dayNumber": 3,
          "dayName": "Conditioning",
          "isRestDay": false,
          "circuits": [
            {"circuitLetter": "A", "exercise": "Kettlebell Swing", "sets": 5, "reps": "15", "notes": "Hinge at the hips"},
            {"circuitLetter": "B", "exercise": "Plank", "sets": 3, "reps": "45s", "notes": ""}
          ]
        }
      ]
    }
  ]
}`

// buildPrompt composes the generation instruction for a request and target
// week count.
func buildPrompt(requestText string, weekCount int) string {
	return fmt.Sprintf(`Create a %d-week workout program based on this request: %s

Generate a complete program with:
- Exactly %d weeks
- %d-%d days per week with rest days where appropriate
- Exercises organized into circuits labeled %s
- For each exercise: name, number of sets, reps (like "12" or "12,10,8"), and brief helpful notes

%s

%s`, weekCount, requestText, weekCount, minDaysPerWeek, maxDaysPerWeek, circuitLetters, formatInstructions, workedExample)
}

package model

// Mood is the mascot's state, derived from queue contents. It is never stored
// independently; callers recompute it after every queue mutation.
type Mood string

const (
	MoodAnxious Mood = "anxious"
	MoodHungry  Mood = "hungry"
	MoodExcited Mood = "excited"
	MoodIdle    Mood = "idle"
)

// Label returns the display name for the mood.
func (m Mood) Label() string {
	switch m {
	case MoodAnxious:
		return "Anxious"
	case MoodHungry:
		return "Hungry"
	case MoodExcited:
		return "Excited"
	case MoodIdle:
		return "Idle"
	default:
		return string(m)
	}
}

// Face returns the compact mascot face used in headers and status lines.
func (m Mood) Face() string {
	switch m {
	case MoodAnxious:
		return "(=ｘェｘ=)"
	case MoodHungry:
		return "(=ↀωↀ=)"
	case MoodExcited:
		return "(=^･ω･^=)"
	case MoodIdle:
		return "(=-ω-=)zzZ"
	default:
		return "(=･ェ･=)"
	}
}

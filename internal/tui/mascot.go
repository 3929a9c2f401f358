package tui

import "github.com/SusanLiu63/PRNeko/internal/model"

// mascotArt returns the multi-line cat for a mood. Kept small so the
// dashboard fits in short terminals.
func mascotArt(mood model.Mood) string {
	switch mood {
	case model.MoodAnxious:
		return "" +
			"  /\\_/\\  \n" +
			" ( o.o ) !\n" +
			"  > ^ <   "
	case model.MoodHungry:
		return "" +
			"  /\\_/\\  \n" +
			" ( >ω< )~\n" +
			"  > u <   "
	case model.MoodExcited:
		return "" +
			"  /\\_/\\  \n" +
			" ( ^ω^ )*\n" +
			"  > v <   "
	default:
		return "" +
			"  /\\_/\\  \n" +
			" ( -.- )zz\n" +
			"  > ^ <   "
	}
}

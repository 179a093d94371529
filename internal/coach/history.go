package coach

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

// noHistory is what the prompt gets when the athlete has no working sets yet.
const noHistory = "No workout history available."

// HistoryCSV renders recent working sets as CSV for the prompt. Nil weight or
// reps become empty cells; exercise titles are quoted since they may contain
// commas.
func HistoryCSV(rows []models.WorkingSetRow) string {
	if len(rows) == 0 {
		return noHistory
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, "session_id,workout_time,exercise,set_number,weight_kg,reps")
	for _, r := range rows {
		weight := ""
		if r.Weight != nil {
			weight = strconv.FormatFloat(*r.Weight, 'f', -1, 64)
		}
		reps := ""
		if r.Reps != nil {
			reps = strconv.Itoa(*r.Reps)
		}
		lines = append(lines, fmt.Sprintf("%d,%s,%q,%d,%s,%s",
			r.SessionID,
			r.StartTime.Format(time.RFC3339),
			r.Exercise,
			r.SetNumber,
			weight,
			reps,
		))
	}
	return strings.Join(lines, "\n")
}

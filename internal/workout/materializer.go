package workout

import (
	"github.com/meltforce/liftlog/internal/models"
)

// BuildSlots expands a day template into the ordered set slots a new session
// must contain. Day exercises are taken in the order given (the caller loads
// them by sequence ascending); for each exercise the warmup slots come first,
// numbered 1..warmup_sets, then the working slots numbered 1..working_sets.
// Exercises missing from the lookup (template rows pointing at deleted
// movements) and exercises with zero sets of both types contribute nothing.
func BuildSlots(dayExercises []models.DayExercise, exercises map[int64]models.Exercise) []models.SetSlot {
	var slots []models.SetSlot
	for _, de := range dayExercises {
		ex, ok := exercises[de.ExerciseID]
		if !ok {
			continue
		}
		for n := 1; n <= ex.WarmupSets; n++ {
			slots = append(slots, models.SetSlot{
				ExerciseID:       de.ExerciseID,
				ExerciseSequence: de.Sequence,
				SetType:          models.SetTypeWarmup,
				SetNumber:        n,
			})
		}
		for n := 1; n <= ex.WorkingSets; n++ {
			slots = append(slots, models.SetSlot{
				ExerciseID:       de.ExerciseID,
				ExerciseSequence: de.Sequence,
				SetType:          models.SetTypeWorking,
				SetNumber:        n,
			})
		}
	}
	return slots
}

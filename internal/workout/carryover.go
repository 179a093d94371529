package workout

import (
	"github.com/meltforce/liftlog/internal/models"
)

// setKey identifies a set within one exercise of a session. Matching between
// the new session and the prior one is strictly by this key; a working set
// never inherits from a warmup set and set numbers never shift across types.
type setKey struct {
	setType models.SetType
	number  int
}

// SetUpdate is one carryover write: the values to place on a freshly created
// set. Nil fields stay NULL.
type SetUpdate struct {
	SetID  int64
	Weight *float64
	Reps   *int
}

// CarryoverUpdates computes the progression writes for one exercise. For each
// current set whose (set_type, set_number) key existed in the prior session,
// weight and reps are copied where the prior value is non-nil. Current sets
// with no prior counterpart (the template grew) get no update, and completed
// state is never part of an update. Updates come back in current-set order.
func CarryoverUpdates(current, prior []models.ExerciseSet) []SetUpdate {
	if len(current) == 0 || len(prior) == 0 {
		return nil
	}

	priorByKey := make(map[setKey]models.ExerciseSet, len(prior))
	for _, p := range prior {
		priorByKey[setKey{p.SetType, p.SetNumber}] = p
	}

	var updates []SetUpdate
	for _, c := range current {
		p, ok := priorByKey[setKey{c.SetType, c.SetNumber}]
		if !ok {
			continue
		}
		if p.Weight == nil && p.Reps == nil {
			continue
		}
		updates = append(updates, SetUpdate{
			SetID:  c.ID,
			Weight: p.Weight,
			Reps:   p.Reps,
		})
	}
	return updates
}

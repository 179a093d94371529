package legacy

// RenumberSets assigns SetNumber to each row: within one session,
// exercise, and set type, rows are numbered 1..N in insertion order
// (ascending id). The input slice is modified in place and returned.
func RenumberSets(sets []SetRow) []SetRow {
	type group struct {
		sessionID  int64
		exerciseID int64
		setType    string
	}

	counters := make(map[group]int)
	for i := range sets {
		g := group{sets[i].SessionID, sets[i].ExerciseID, sets[i].SetType}
		counters[g]++
		sets[i].SetNumber = counters[g]
	}
	return sets
}

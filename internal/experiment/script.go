package experiment

import "sort"

func sortedScript(s []Scripted) []Scripted {
	out := make([]Scripted, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Step < out[j].Step })
	return out
}

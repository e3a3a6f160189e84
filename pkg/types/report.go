package types

// Report is what a links command hands to a renderer once the reconciler
// has finished.
type Report struct {
	Command string  `json:"command"`
	DryRun  bool    `json:"dryRun,omitempty"`
	Results Results `json:"results"`
}

// Summary counts results by status, in first-seen order
func (r Report) Summary() []StatusCount {
	var counts []StatusCount
	index := make(map[LinkStatus]int)
	for _, res := range r.Results {
		i, ok := index[res.Status]
		if !ok {
			i = len(counts)
			index[res.Status] = i
			counts = append(counts, StatusCount{Status: res.Status})
		}
		counts[i].Count++
	}
	return counts
}

// StatusCount is one line of a Report summary
type StatusCount struct {
	Status LinkStatus `json:"status"`
	Count  int        `json:"count"`
}

package types

// LinkStatus is the outcome of processing a single mapping
type LinkStatus string

const (
	// Install outcomes
	StatusLinked               LinkStatus = "linked"
	StatusWouldLink            LinkStatus = "would-link"
	StatusSkippedMissingSource LinkStatus = "skipped-missing-source"
	StatusSkippedDeclined      LinkStatus = "skipped-declined"

	// Remove outcomes
	StatusUnlinked         LinkStatus = "unlinked"
	StatusSkippedNotLinked LinkStatus = "skipped-not-linked"

	// List outcomes
	StatusInstalled    LinkStatus = "installed"
	StatusNotInstalled LinkStatus = "not-installed"
)

// IsSkip reports whether the status is a soft skip
func (s LinkStatus) IsSkip() bool {
	switch s {
	case StatusSkippedMissingSource, StatusSkippedDeclined, StatusSkippedNotLinked:
		return true
	}
	return false
}

// Result records what happened to one mapping during an operation.
type Result struct {
	Mapping     Mapping    `json:"mapping"`
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Status      LinkStatus `json:"status"`
}

// Results is the ordered outcome of one reconciler operation.
type Results []Result

// Count returns how many results carry the given status
func (r Results) Count(status LinkStatus) int {
	n := 0
	for _, res := range r {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Destinations returns the resolved destinations of results with the given status
func (r Results) Destinations(status LinkStatus) []string {
	var dests []string
	for _, res := range r {
		if res.Status == status {
			dests = append(dests, res.Destination)
		}
	}
	return dests
}

package diag

// Severity orders diagnostics; Bag.Sort puts the most severe first.
type Severity uint8

const (
	// SevInfo carries reports that never affect the exit code (OBS timings).
	SevInfo Severity = iota
	// SevWarning marks suspicious input that still expands, such as tokens
	// after the body group.
	SevWarning
	// SevError stops expansion of the file and makes dry exit with status 1.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

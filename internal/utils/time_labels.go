package utils

// TimeLabels is the ordered set of time labels the calendar displays per day.
// Slots may carry other labels; those are listed for the owner but never
// rendered on the calendar.
var TimeLabels = []string{"9am", "10am", "11am", "12pm", "1pm", "2pm", "3pm", "4pm"}

// IsDisplayedLabel reports whether label is one of TimeLabels.
func IsDisplayedLabel(label string) bool {
	for _, l := range TimeLabels {
		if l == label {
			return true
		}
	}
	return false
}

package state

// Alert is a transient, user-visible notice.
type Alert struct {
	ID      string
	Message string
	Kind    string
}

// ReduceAlerts folds one event over the alert slice. Total: unknown events
// return the state unchanged. Never mutates its input.
func ReduceAlerts(state []Alert, event Event) []Alert {
	switch e := event.(type) {
	case SetAlertEvent:
		out := make([]Alert, 0, len(state)+1)
		out = append(out, state...)
		return append(out, e.Alert)
	case RemoveAlertEvent:
		out := make([]Alert, 0, len(state))
		for _, a := range state {
			if a.ID != e.ID {
				out = append(out, a)
			}
		}
		return out
	default:
		return state
	}
}

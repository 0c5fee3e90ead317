package wizkid

// UpdatedEvent fires after a successful field edit.
type UpdatedEvent struct {
	Result Wizkid
}

// StatusChangedEvent fires after a fire or rehire. Fired reflects the new
// status.
type StatusChangedEvent struct {
	Result Wizkid
	Fired  bool
}

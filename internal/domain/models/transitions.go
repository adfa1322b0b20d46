package models

type TransitionKind int

const (
	TransitionDenied TransitionKind = iota
	TransitionAdvance
	// TransitionReschedule is a same-state move on an in-progress interview.
	TransitionReschedule
)

type transition struct {
	from Status
	to   Status
}

var transitionTable = map[transition]TransitionKind{
	{StatusPending, StatusShortlisted}: TransitionAdvance,
	{StatusPending, StatusRejected}:    TransitionAdvance,

	{StatusShortlisted, StatusInterviewScheduled}: TransitionAdvance,
	{StatusShortlisted, StatusRejected}:           TransitionAdvance,

	{StatusInterviewScheduled, StatusInterviewScheduled}:   TransitionReschedule,
	{StatusInterviewScheduled, StatusInterviewRescheduled}: TransitionAdvance,
	{StatusInterviewScheduled, StatusInterviewCompleted}:   TransitionAdvance,
	{StatusInterviewScheduled, StatusShortlisted}:          TransitionAdvance,
	{StatusInterviewScheduled, StatusRejected}:             TransitionAdvance,

	{StatusInterviewRescheduled, StatusInterviewRescheduled}: TransitionReschedule,
	{StatusInterviewRescheduled, StatusInterviewCompleted}:   TransitionAdvance,
	{StatusInterviewRescheduled, StatusRejected}:             TransitionAdvance,

	{StatusInterviewCompleted, StatusHired}:    TransitionAdvance,
	{StatusInterviewCompleted, StatusRejected}: TransitionAdvance,
}

// ClassifyTransition returns TransitionDenied for any pair absent from the table,
// including unknown statuses and every move out of a terminal status.
func ClassifyTransition(from, to Status) TransitionKind {
	return transitionTable[transition{from: from, to: to}]
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusHired:
		return true
	case StatusPending, StatusShortlisted, StatusInterviewScheduled,
		StatusInterviewRescheduled, StatusInterviewCompleted:
		return false
	default:
		return false
	}
}

// AllowedTargets lists the statuses reachable from s, in declaration order.
func AllowedTargets(from Status) []Status {
	var targets []Status
	for _, to := range AllStatuses {
		if ClassifyTransition(from, to) != TransitionDenied {
			targets = append(targets, to)
		}
	}
	return targets
}

// ClearsInterview reports whether moving from -> to discards the stored interview detail.
func ClearsInterview(from, to Status) bool {
	return from == StatusInterviewScheduled && to == StatusShortlisted
}

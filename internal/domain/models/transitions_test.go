package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ClassifyTransition_ForwardMoves_ShouldAdvance(t *testing.T) {
	cases := []struct{ from, to Status }{
		{StatusPending, StatusShortlisted},
		{StatusPending, StatusRejected},
		{StatusShortlisted, StatusInterviewScheduled},
		{StatusShortlisted, StatusRejected},
		{StatusInterviewScheduled, StatusInterviewRescheduled},
		{StatusInterviewScheduled, StatusInterviewCompleted},
		{StatusInterviewScheduled, StatusShortlisted},
		{StatusInterviewScheduled, StatusRejected},
		{StatusInterviewRescheduled, StatusInterviewCompleted},
		{StatusInterviewRescheduled, StatusRejected},
		{StatusInterviewCompleted, StatusHired},
		{StatusInterviewCompleted, StatusRejected},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, TransitionAdvance, ClassifyTransition(tc.from, tc.to))
		})
	}
}

func Test_ClassifyTransition_SameStateInterview_ShouldReschedule(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(TransitionReschedule, ClassifyTransition(StatusInterviewScheduled, StatusInterviewScheduled))
	assert.Equal(TransitionReschedule, ClassifyTransition(StatusInterviewRescheduled, StatusInterviewRescheduled))
}

func Test_ClassifyTransition_OtherSelfMoves_ShouldBeDenied(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusShortlisted, StatusInterviewCompleted, StatusRejected, StatusHired} {
		assert.Equal(t, TransitionDenied, ClassifyTransition(status, status), string(status))
	}
}

func Test_ClassifyTransition_FromTerminal_ShouldBeDenied(t *testing.T) {
	for _, from := range []Status{StatusRejected, StatusHired} {
		assert.True(t, from.IsTerminal())
		assert.Empty(t, AllowedTargets(from))
	}
}

func Test_ClassifyTransition_SkipsAndBackwards_ShouldBeDenied(t *testing.T) {
	cases := []struct{ from, to Status }{
		{StatusPending, StatusInterviewScheduled},
		{StatusPending, StatusHired},
		{StatusShortlisted, StatusHired},
		{StatusShortlisted, StatusPending},
		{StatusInterviewRescheduled, StatusInterviewScheduled},
		{StatusInterviewRescheduled, StatusShortlisted},
		{StatusInterviewCompleted, StatusInterviewScheduled},
		{StatusHired, StatusRejected},
		{StatusPending, Status("archived")},
	}

	for _, tc := range cases {
		assert.Equal(t, TransitionDenied, ClassifyTransition(tc.from, tc.to), string(tc.from)+"->"+string(tc.to))
	}
}

func Test_ClassifyTransition_NoStatus_ShouldReachPending(t *testing.T) {
	for _, from := range AllStatuses {
		assert.Equal(t, TransitionDenied, ClassifyTransition(from, StatusPending), string(from))
	}
}

func Test_ParseStatus_WhenMixedCase_ShouldNormalize(t *testing.T) {
	assert := assert.New(t)

	status, ok := ParseStatus("  Interview_Scheduled ")
	assert.True(ok)
	assert.Equal(StatusInterviewScheduled, status)

	_, ok = ParseStatus("archived")
	assert.False(ok)
}

func Test_AllowedTargets_FromInterviewScheduled_ShouldIncludeReschedule(t *testing.T) {
	assert.Equal(t, []Status{
		StatusShortlisted,
		StatusInterviewScheduled,
		StatusInterviewRescheduled,
		StatusInterviewCompleted,
		StatusRejected,
	}, AllowedTargets(StatusInterviewScheduled))
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextMergeAppliesOnlySetFields(t *testing.T) {
	base := ConversationContext{
		State:           StateGreeting,
		CurrentCategory: "lanches",
		GreetingShown:   true,
	}

	state := StateOrdering
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	merged := base.Merge(ContextPatch{State: &state}, now)

	assert.Equal(t, StateOrdering, merged.State)
	assert.Equal(t, "lanches", merged.CurrentCategory)
	assert.True(t, merged.GreetingShown)
	assert.Equal(t, now, merged.LastInteractionTime)

	// The receiver is untouched.
	assert.Equal(t, StateGreeting, base.State)
}

func TestContextMergeEmptyPatchStampsTime(t *testing.T) {
	base := DefaultContext(time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC))

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	merged := base.Merge(ContextPatch{}, now)

	assert.Equal(t, base.State, merged.State)
	assert.Equal(t, now, merged.LastInteractionTime)
}

func TestStateForIntent(t *testing.T) {
	cases := []struct {
		intent IntentType
		state  ConversationState
		ok     bool
	}{
		{IntentGreeting, StateGreeting, true},
		{IntentMenuRequest, StateBrowsingMenu, true},
		{IntentProductInquiry, StateViewingCategory, true},
		{IntentOrderItem, StateOrdering, true},
		{IntentContactInfo, "", false},
		{IntentOther, "", false},
	}

	for _, tc := range cases {
		state, ok := StateForIntent(tc.intent)
		assert.Equal(t, tc.ok, ok, "intent %s", tc.intent)
		assert.Equal(t, tc.state, state, "intent %s", tc.intent)
	}
}

func TestConversationStateValid(t *testing.T) {
	assert.True(t, StateOrdering.Valid())
	assert.True(t, StateIdle.Valid())
	assert.False(t, ConversationState("shouting").Valid())
}

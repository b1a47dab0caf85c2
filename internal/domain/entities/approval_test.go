package entities

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func completeItem() ActionItem {
	return ActionItem{
		ID:          "action_1",
		Description: "submit permit",
		OwnerName:   strPtr("Maria"),
		DueDate:     strPtr("2026-09-15"),
		Status:      ActionItemStatusOpen,
	}
}

func TestEvaluateApproval_AllRulesSatisfiedByData(t *testing.T) {
	meeting := &Meeting{ID: "m1", AdjournmentTime: strPtr("19:15")}
	motions := []Motion{{ID: "motion_1", Text: "approve budget"}}

	status := EvaluateApproval(meeting, motions, []ActionItem{completeItem()})
	require.True(t, status.OK)
	require.True(t, status.HasMotions)
	require.Empty(t, status.MissingActionItems)
	require.True(t, status.HasAdjournmentTime)
}

func TestEvaluateApproval_EachRuleBlocksIndependently(t *testing.T) {
	base := func() *Meeting {
		return &Meeting{ID: "m1", AdjournmentTime: strPtr("19:15")}
	}

	// No motions and no override.
	status := EvaluateApproval(base(), nil, []ActionItem{completeItem()})
	require.False(t, status.OK)
	require.False(t, status.HasMotions)

	// An action item missing its due date.
	incomplete := completeItem()
	incomplete.DueDate = nil
	status = EvaluateApproval(base(), []Motion{{ID: "motion_1"}}, []ActionItem{incomplete})
	require.False(t, status.OK)
	require.Len(t, status.MissingActionItems, 1)

	// No adjournment marker.
	meeting := base()
	meeting.AdjournmentTime = nil
	status = EvaluateApproval(meeting, []Motion{{ID: "motion_1"}}, []ActionItem{completeItem()})
	require.False(t, status.OK)
	require.False(t, status.HasAdjournmentTime)
}

func TestEvaluateApproval_OverrideFlagsSatisfyRules(t *testing.T) {
	meeting := &Meeting{
		ID:                "m1",
		NoMotions:         true,
		NoActionItems:     true,
		NoAdjournmentTime: true,
	}
	incomplete := ActionItem{ID: "action_1", Description: "orphan task"}

	status := EvaluateApproval(meeting, nil, []ActionItem{incomplete})
	require.True(t, status.OK)
	require.Len(t, status.MissingActionItems, 1)
	require.True(t, status.NoActionItemsFlag)
}

func TestEvaluateApproval_FlagMatrix(t *testing.T) {
	// Every combination of the three override flags, against a meeting
	// that satisfies all three rules by data and one that satisfies
	// none. A flag must cover exactly its own rule and nothing else.
	for _, dataPresent := range []bool{false, true} {
		for mask := 0; mask < 8; mask++ {
			noMotions := mask&1 != 0
			noActionItems := mask&2 != 0
			noAdjournment := mask&4 != 0
			name := fmt.Sprintf("data=%t/no_motions=%t/no_action_items=%t/no_adjournment_time=%t",
				dataPresent, noMotions, noActionItems, noAdjournment)

			t.Run(name, func(t *testing.T) {
				meeting := &Meeting{
					ID:                "m1",
					NoMotions:         noMotions,
					NoActionItems:     noActionItems,
					NoAdjournmentTime: noAdjournment,
				}
				var motions []Motion
				incomplete := completeItem()
				incomplete.OwnerName = nil
				items := []ActionItem{incomplete}
				if dataPresent {
					meeting.AdjournmentTime = strPtr("19:15")
					motions = []Motion{{ID: "motion_1", Text: "approve budget"}}
					items = []ActionItem{completeItem()}
				}

				status := EvaluateApproval(meeting, motions, items)

				require.Equal(t, noMotions, status.NoMotionsFlag)
				require.Equal(t, noActionItems, status.NoActionItemsFlag)
				require.Equal(t, noAdjournment, status.NoAdjournmentTimeFlag)
				require.Equal(t, dataPresent, status.HasMotions)
				require.Equal(t, dataPresent, status.HasAdjournmentTime)
				if dataPresent {
					require.Empty(t, status.MissingActionItems)
				} else {
					require.Len(t, status.MissingActionItems, 1)
				}

				// With the data present the flags are irrelevant; without
				// it, only the full set of flags opens the gate.
				wantOK := dataPresent || (noMotions && noActionItems && noAdjournment)
				require.Equal(t, wantOK, status.OK)
			})
		}
	}
}

func TestEvaluateApproval_EndTimeCountsAsAdjournment(t *testing.T) {
	meeting := &Meeting{ID: "m1", EndTime: strPtr("19:30"), NoMotions: true, NoActionItems: true}

	status := EvaluateApproval(meeting, nil, nil)
	require.True(t, status.OK)
	require.True(t, status.HasAdjournmentTime)
}

func TestParseRole_UnknownDegradesToGuest(t *testing.T) {
	require.Equal(t, RoleSecretary, ParseRole("secretary"))
	require.Equal(t, RoleGuest, ParseRole("superuser"))
	require.Equal(t, RoleGuest, ParseRole(""))
}

func TestRoleCapabilities(t *testing.T) {
	require.True(t, RoleSecretary.Can(CapabilityWriteMinutes))
	require.True(t, RoleAdmin.Can(CapabilityManageSettings))
	require.True(t, RoleViewer.Can(CapabilityReadMinutes))
	require.False(t, RoleViewer.Can(CapabilityWriteMinutes))
	require.False(t, RoleGuest.Can(CapabilityReadMinutes))
}

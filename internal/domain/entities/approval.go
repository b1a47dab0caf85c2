package entities

// ApprovalStatus is the derived structural-completeness report for a
// meeting's minutes. It is recomputed on every call and never persisted.
type ApprovalStatus struct {
	OK                    bool         `json:"ok"`
	HasMotions            bool         `json:"has_motions"`
	NoMotionsFlag         bool         `json:"no_motions_flag"`
	MissingActionItems    []ActionItem `json:"missing_action_items"`
	NoActionItemsFlag     bool         `json:"no_action_items_flag"`
	HasAdjournmentTime    bool         `json:"has_adjournment_time"`
	NoAdjournmentTimeFlag bool         `json:"no_adjournment_time_flag"`
}

// EvaluateApproval computes the approval gate for a meeting. Each of the
// three structural rules can be satisfied either by the data being
// present or by the meeting's corresponding override flag.
func EvaluateApproval(meeting *Meeting, motions []Motion, actionItems []ActionItem) ApprovalStatus {
	missing := make([]ActionItem, 0)
	for _, item := range actionItems {
		if !item.IsComplete() {
			missing = append(missing, item)
		}
	}

	status := ApprovalStatus{
		HasMotions:            len(motions) > 0,
		NoMotionsFlag:         meeting.NoMotions,
		MissingActionItems:    missing,
		NoActionItemsFlag:     meeting.NoActionItems,
		HasAdjournmentTime:    meeting.HasAdjournment(),
		NoAdjournmentTimeFlag: meeting.NoAdjournmentTime,
	}

	status.OK = (status.HasMotions || status.NoMotionsFlag) &&
		(len(status.MissingActionItems) == 0 || status.NoActionItemsFlag) &&
		(status.HasAdjournmentTime || status.NoAdjournmentTimeFlag)

	return status
}

package summary

// ChecklistPayload mirrors the review checklist on the wire.
type ChecklistPayload struct {
	NoConfidential  bool `json:"no_confidential"`
	NamesApproved   bool `json:"names_approved"`
	MotionsReviewed bool `json:"motions_reviewed"`
	ActionsReviewed bool `json:"actions_reviewed"`
	ChairApproved   bool `json:"chair_approved"`
}

// UpdateSummaryRequest replaces the editable summary document.
type UpdateSummaryRequest struct {
	Content   string                 `json:"content"`
	Fields    map[string]interface{} `json:"fields"`
	Checklist ChecklistPayload       `json:"checklist"`
}

package meeting

// CreateMeetingRequest is the payload for creating a meeting.
type CreateMeetingRequest struct {
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	EndTime       *string  `json:"end_time"`
	Location      string   `json:"location"`
	ChairName     *string  `json:"chair_name"`
	SecretaryName *string  `json:"secretary_name"`
	Tags          []string `json:"tags"`
}

// UpdateMeetingRequest is a partial meeting patch. Absent fields stay
// untouched.
type UpdateMeetingRequest struct {
	Date              *string  `json:"date"`
	StartTime         *string  `json:"start_time"`
	EndTime           *string  `json:"end_time"`
	AdjournmentTime   *string  `json:"adjournment_time"`
	Location          *string  `json:"location"`
	ChairName         *string  `json:"chair_name"`
	SecretaryName     *string  `json:"secretary_name"`
	Tags              []string `json:"tags"`
	NoMotions         *bool    `json:"no_motions"`
	NoActionItems     *bool    `json:"no_action_items"`
	NoAdjournmentTime *bool    `json:"no_adjournment_time"`
}

// RegisterAudioRequest is the payload for registering an audio source.
type RegisterAudioRequest struct {
	Type            string  `json:"type"`
	ParticipantID   *string `json:"participant_id"`
	FileURI         string  `json:"file_uri"`
	DurationSeconds int     `json:"duration_seconds"`
}

// MotionPayload is one motion in a full-set replacement.
type MotionPayload struct {
	ID           string  `json:"id"`
	Text         string  `json:"text"`
	MoverName    *string `json:"mover_name"`
	SeconderName *string `json:"seconder_name"`
	VoteMethod   *string `json:"vote_method"`
	Outcome      *string `json:"outcome"`
}

// UpdateMotionsRequest replaces the motion set of a meeting.
type UpdateMotionsRequest struct {
	Motions []MotionPayload `json:"motions"`
}

// ActionItemPayload is one action item in a full-set replacement.
type ActionItemPayload struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	OwnerName   *string `json:"owner_name"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
}

// UpdateActionItemsRequest replaces the action item set of a meeting.
type UpdateActionItemsRequest struct {
	Items []ActionItemPayload `json:"items"`
}

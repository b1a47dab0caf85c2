package entities

// TranscriptSegment is one utterance of a processed meeting recording.
type TranscriptSegment struct {
	ID        uint   `gorm:"primary_key;auto_increment" json:"-"`
	MeetingID string `gorm:"type:varchar(64);not null;index" json:"meeting_id"`
	Idx       int    `gorm:"not null" json:"idx"`
	Speaker   string `gorm:"type:varchar(128)" json:"speaker"`
	Text      string `gorm:"type:text;not null" json:"text"`
	StartMs   int    `json:"start_ms"`
	EndMs     int    `json:"end_ms"`
}

// TableName specifies the table name for TranscriptSegment.
func (TranscriptSegment) TableName() string {
	return "transcript_segments"
}

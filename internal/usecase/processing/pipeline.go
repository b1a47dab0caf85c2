package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
)

// Result is the full output of one pipeline run for a meeting.
type Result struct {
	Segments      []entities.TranscriptSegment
	Motions       []entities.Motion
	ActionItems   []entities.ActionItem
	DraftContent  string
	PipelineRunID string
}

// Pipeline turns a meeting's registered audio into transcript,
// extractions and a first draft of the minutes.
type Pipeline interface {
	Run(ctx context.Context, meetingID string, sources []entities.AudioSource) (*Result, error)
}

// FixturePipeline replays canned pipeline outputs from disk. Recordings
// whose file URI mentions crosstalk get the degraded fixture, which is
// how the demo environment exercises the low-quality path.
type FixturePipeline struct {
	dir string
}

// NewFixturePipeline creates a pipeline reading from the given
// fixtures directory.
func NewFixturePipeline(dir string) *FixturePipeline {
	return &FixturePipeline{dir: dir}
}

type fixtureTranscript struct {
	Segments []struct {
		Idx     int    `json:"idx"`
		Speaker string `json:"speaker"`
		Text    string `json:"text"`
		StartMs int    `json:"start_ms"`
		EndMs   int    `json:"end_ms"`
	} `json:"segments"`
	Speakers []string `json:"speakers"`
}

type fixtureExtractions struct {
	Motions []struct {
		Text         string  `json:"text"`
		MoverName    *string `json:"mover_name"`
		SeconderName *string `json:"seconder_name"`
		VoteMethod   *string `json:"vote_method"`
		Outcome      *string `json:"outcome"`
	} `json:"motions"`
	ActionItems []struct {
		Description string  `json:"description"`
		OwnerName   *string `json:"owner_name"`
		DueDate     *string `json:"due_date"`
		Status      string  `json:"status"`
	} `json:"action_items"`
	PipelineRunID string `json:"pipeline_run_id"`
}

// Run loads the fixture selected by the audio sources.
func (p *FixturePipeline) Run(ctx context.Context, meetingID string, sources []entities.AudioSource) (*Result, error) {
	fixturePath := filepath.Join(p.dir, selectFixture(sources))

	var transcript fixtureTranscript
	if err := readJSON(filepath.Join(fixturePath, "expected_transcript.json"), &transcript); err != nil {
		return nil, err
	}
	var extractions fixtureExtractions
	if err := readJSON(filepath.Join(fixturePath, "expected_extractions.json"), &extractions); err != nil {
		return nil, err
	}
	draft, err := os.ReadFile(filepath.Join(fixturePath, "expected_minutes.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture minutes: %w", err)
	}

	result := &Result{
		DraftContent:  string(draft),
		PipelineRunID: extractions.PipelineRunID,
	}
	if result.PipelineRunID == "" {
		result.PipelineRunID = fmt.Sprintf("run_%s", meetingID)
	}
	for _, segment := range transcript.Segments {
		result.Segments = append(result.Segments, entities.TranscriptSegment{
			MeetingID: meetingID,
			Idx:       segment.Idx,
			Speaker:   segment.Speaker,
			Text:      segment.Text,
			StartMs:   segment.StartMs,
			EndMs:     segment.EndMs,
		})
	}
	for _, motion := range extractions.Motions {
		result.Motions = append(result.Motions, entities.Motion{
			ID:           entities.NewMotionID(),
			MeetingID:    meetingID,
			Text:         motion.Text,
			MoverName:    motion.MoverName,
			SeconderName: motion.SeconderName,
			VoteMethod:   motion.VoteMethod,
			Outcome:      motion.Outcome,
		})
	}
	for _, item := range extractions.ActionItems {
		status := entities.ActionItemStatus(item.Status)
		if status != entities.ActionItemStatusDone {
			status = entities.ActionItemStatusOpen
		}
		result.ActionItems = append(result.ActionItems, entities.ActionItem{
			ID:          entities.NewActionItemID(),
			MeetingID:   meetingID,
			Description: item.Description,
			OwnerName:   item.OwnerName,
			DueDate:     item.DueDate,
			Status:      status,
		})
	}
	return result, nil
}

func selectFixture(sources []entities.AudioSource) string {
	for _, source := range sources {
		if strings.Contains(source.FileURI, "bad_crosstalk") {
			return "meeting_bad_crosstalk"
		}
	}
	return "meeting_good"
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", filepath.Base(path), err)
	}
	return nil
}

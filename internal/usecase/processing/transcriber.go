package processing

import (
	"context"
	"fmt"
	"strings"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/pkg/ai"
)

// Transcriber produces speaker-labelled utterances for a hosted audio
// file. ai.AssemblyAITranscriber is the production implementation.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) ([]ai.Utterance, error)
}

// TranscriptionPipeline runs a real transcription job and drafts the
// minutes skeleton from it. Motions and action items are left for the
// secretary to record; only the fixture pipeline fabricates those.
type TranscriptionPipeline struct {
	transcriber Transcriber
}

// NewTranscriptionPipeline creates a pipeline around the transcriber.
func NewTranscriptionPipeline(transcriber Transcriber) *TranscriptionPipeline {
	return &TranscriptionPipeline{transcriber: transcriber}
}

// Run transcribes the first registered audio source.
func (p *TranscriptionPipeline) Run(ctx context.Context, meetingID string, sources []entities.AudioSource) (*Result, error) {
	utterances, err := p.transcriber.Transcribe(ctx, sources[0].FileURI)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	result := &Result{
		PipelineRunID: fmt.Sprintf("run_%s", meetingID),
	}
	var draft strings.Builder
	draft.WriteString("# Meeting Minutes (Draft)\n\n## Discussion\n\n")
	for i, u := range utterances {
		result.Segments = append(result.Segments, entities.TranscriptSegment{
			MeetingID: meetingID,
			Idx:       i,
			Speaker:   u.Speaker,
			Text:      u.Text,
			StartMs:   u.StartMs,
			EndMs:     u.EndMs,
		})
		fmt.Fprintf(&draft, "- **%s**: %s\n", u.Speaker, u.Text)
	}
	result.DraftContent = draft.String()
	return result, nil
}

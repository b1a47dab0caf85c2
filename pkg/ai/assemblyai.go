package ai

import (
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
)

// Utterance is one speaker turn of a finished transcription job.
type Utterance struct {
	Speaker string
	Text    string
	StartMs int
	EndMs   int
}

// AssemblyAITranscriber transcribes hosted audio through the AssemblyAI
// API with speaker diarization enabled.
type AssemblyAITranscriber struct {
	client *aai.Client
}

// NewAssemblyAITranscriber creates a transcriber with the given API key.
func NewAssemblyAITranscriber(apiKey string) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{
		client: aai.NewClient(apiKey),
	}
}

// Transcribe submits the audio URL and waits for the finished
// transcript. Transient API failures are retried with exponential
// backoff before the job is reported as failed.
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audioURL string) ([]Utterance, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}

	var transcript aai.Transcript
	operation := func() error {
		result, err := t.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
		if err != nil {
			return err
		}
		if result.Status == aai.TranscriptStatusError {
			return backoff.Permanent(fmt.Errorf("transcription failed: %s", aai.ToString(result.Error)))
		}
		transcript = result
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	utterances := make([]Utterance, 0, len(transcript.Utterances))
	for _, u := range transcript.Utterances {
		utterances = append(utterances, Utterance{
			Speaker: aai.ToString(u.Speaker),
			Text:    aai.ToString(u.Text),
			StartMs: int(aai.ToInt64(u.Start)),
			EndMs:   int(aai.ToInt64(u.End)),
		})
	}
	return utterances, nil
}

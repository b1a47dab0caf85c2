package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultSyncInterval is how often the poller re-reads the active
// meeting's draft.
const DefaultSyncInterval = 2 * time.Second

// SyncPoller keeps a local editable buffer loosely in sync with the
// server's draft for whichever meeting is currently selected. On each
// tick it reads the remote draft and, when the remote version is newer,
// overwrites the local buffer and version even if the buffer holds
// edits that have not been saved yet. Responses that arrive after the
// selection changed are discarded.
type SyncPoller struct {
	client   *Client
	interval time.Duration

	mu        sync.Mutex
	meetingID string
	version   int
	content   string

	onSync func(meetingID string, version int, content string)

	cancel context.CancelFunc
	done   chan struct{}
}

// PollerOption configures a SyncPoller.
type PollerOption func(*SyncPoller)

// WithInterval overrides the polling interval.
func WithInterval(interval time.Duration) PollerOption {
	return func(p *SyncPoller) { p.interval = interval }
}

// WithOnSync registers a callback invoked whenever a newer remote
// version replaces the local buffer.
func WithOnSync(fn func(meetingID string, version int, content string)) PollerOption {
	return func(p *SyncPoller) { p.onSync = fn }
}

// NewSyncPoller creates a poller bound to the given client.
func NewSyncPoller(client *Client, opts ...PollerOption) *SyncPoller {
	p := &SyncPoller{
		client:   client,
		interval: DefaultSyncInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins polling until the context is cancelled or Stop is
// called. It is a no-op if already running.
func (p *SyncPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx)
}

// Stop halts polling and waits for the loop to exit.
func (p *SyncPoller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Select makes the given meeting the active selection and seeds the
// buffer from the supplied draft. Passing an empty ID deselects.
func (p *SyncPoller) Select(meetingID string, draft *Draft) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.meetingID = meetingID
	if draft != nil {
		p.version = draft.MinutesVersion
		p.content = draft.Content
	} else {
		p.version = 0
		p.content = ""
	}
}

// Edit replaces the local buffer text without touching the version,
// like typing in the editor before an autosave fires.
func (p *SyncPoller) Edit(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.content = content
}

// Buffer returns the local buffer and its version.
func (p *SyncPoller) Buffer() (string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.content, p.version
}

// Save writes the buffer to the server against the buffer's version.
// On conflict the winning server state replaces the buffer, matching
// what the console does, and the conflict is returned to the caller.
func (p *SyncPoller) Save(ctx context.Context) error {
	p.mu.Lock()
	meetingID, content, version := p.meetingID, p.content, p.version
	p.mu.Unlock()
	if meetingID == "" {
		return nil
	}

	draft, err := p.client.SaveDraft(ctx, meetingID, content, version)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			p.mu.Lock()
			if p.meetingID == meetingID {
				p.version = conflict.CurrentVersion
				p.content = conflict.CurrentContent
			}
			p.mu.Unlock()
		}
		return err
	}

	p.mu.Lock()
	if p.meetingID == meetingID {
		p.version = draft.MinutesVersion
	}
	p.mu.Unlock()
	return nil
}

func (p *SyncPoller) run(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *SyncPoller) poll(ctx context.Context) {
	p.mu.Lock()
	meetingID := p.meetingID
	p.mu.Unlock()
	if meetingID == "" {
		return
	}

	remote, err := p.client.GetDraft(ctx, meetingID)
	if err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// The selection may have changed while the request was in flight.
	if p.meetingID != meetingID {
		return
	}
	if remote.MinutesVersion > p.version {
		p.version = remote.MinutesVersion
		p.content = remote.Content
		if p.onSync != nil {
			p.onSync(meetingID, remote.MinutesVersion, remote.Content)
		}
	}
}

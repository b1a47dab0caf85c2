package minutes

// SaveDraftRequest is the payload for writing the draft minutes.
// BaseVersion is the version the caller edited on top of; omitting it
// makes the write unconditional.
type SaveDraftRequest struct {
	Content     string `json:"content"`
	BaseVersion *int   `json:"base_version"`
}

// RollbackRequest names the ledger version to restore.
type RollbackRequest struct {
	Version *int `json:"version"`
}

// ExportRequest selects the export format.
type ExportRequest struct {
	Format string `json:"format"`
}

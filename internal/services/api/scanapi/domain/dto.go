// Package domain holds DTOs for the scan API http contracts
package domain

// CheckInput is one source blob to validate statelessly
type CheckInput struct {
	Filename        string `json:"filename" validate:"required,min=1,max=512" example:"pkg/reader.go"`
	Source          string `json:"source" validate:"required" example:"package reader\n..."`
	MinParams       int    `json:"min_params,omitempty" validate:"omitempty,min=0,max=64" example:"1"`
	MaxSummaryLines int    `json:"max_summary_lines,omitempty" validate:"omitempty,min=0,max=64" example:"3"`
	Severity        string `json:"severity,omitempty" validate:"omitempty,oneof=info warning error" example:"warning"`
}

// Finding is the wire form of one violation
type Finding struct {
	ID          string `json:"id,omitempty"`
	RunID       string `json:"run_id,omitempty"`
	Path        string `json:"path"`
	Function    string `json:"function"`
	ByteOffset  int    `json:"byte_offset"`
	Line        int    `json:"line"`
	Col         int    `json:"col"`
	Rule        string `json:"rule"`
	Reason      string `json:"reason"`
	Severity    string `json:"severity"`
	SummaryNorm string `json:"summary_norm,omitempty"`
	Script      string `json:"script,omitempty"`
	Lang        string `json:"lang,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ByRunInput pages findings of one run
type ByRunInput struct {
	RunID       string `json:"run_id" validate:"required,uuid4" example:"7b0acb39-2b82-4b33-9c3e-0f6af37ad193"`
	AfterPath   string `json:"after_path,omitempty"`
	AfterOffset int    `json:"after_offset,omitempty" validate:"omitempty,min=0"`
	AfterID     string `json:"after_id,omitempty" validate:"omitempty,uuid4"`
	Limit       int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}

// FindingsPage is one page plus the cursor for the next
type FindingsPage struct {
	Findings   []Finding `json:"findings"`
	NextPath   string    `json:"next_path,omitempty"`
	NextOffset int       `json:"next_offset,omitempty"`
	NextID     string    `json:"next_id,omitempty"`
}

// ByPathInput fetches one file's findings within a run
type ByPathInput struct {
	RunID string `json:"run_id" validate:"required,uuid4"`
	Path  string `json:"path" validate:"required,min=1,max=512"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}

// Run is the wire form of one scan run
type Run struct {
	RunID        string `json:"run_id"`
	Root         string `json:"root"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at,omitempty"`
	FilesScanned int    `json:"files_scanned"`
	FilesFailed  int    `json:"files_failed"`
	FuncsChecked int    `json:"funcs_checked"`
	FuncsSkipped int    `json:"funcs_skipped"`
	Findings     int    `json:"findings"`
}

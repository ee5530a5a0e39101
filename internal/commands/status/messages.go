package statuscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const statusMessageType = "mdt.status"

// StatusCommand requests a tag status report for a notes directory, or for a
// single file when File is set.
type StatusCommand struct {
	// NotesDirectory is the root scanned for notes and shown in the report.
	NotesDirectory string `json:"notes_directory"`
	// File restricts the report to one note. Relative paths resolve against
	// NotesDirectory.
	File string `json:"file,omitempty"`
	// RunID correlates every log entry of one invocation. A nil RunID is
	// replaced by a fresh one.
	RunID uuid.UUID `json:"run_id,omitempty"`
}

// Type implements command.Message.
func (StatusCommand) Type() string { return statusMessageType }

// Validate ensures a notes directory is present before handlers execute.
func (cmd StatusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.NotesDirectory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("mdt.status.notes_directory_required", "notes directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.File, validation.By(func(value any) error {
			file := value.(string)
			if file != "" && strings.TrimSpace(file) == "" {
				return validation.NewError("mdt.status.file_blank", "file must not be blank")
			}
			return nil
		})),
	)
}

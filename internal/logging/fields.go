package logging

// Standardized attribute keys shared across components. Keeping these in one
// place lets the console handler promote them to stable positions and keeps
// JSON output greppable.
const (
	FieldComponent = "component"
	FieldFile      = "file"
	FieldOutput    = "output"
	FieldProfile   = "profile"
	FieldOutcome   = "outcome"
	FieldReason    = "reason"
	FieldRunID     = "run_id"
	FieldEventType = "event_type"
)

package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one catalog build.
	FieldRunID = "run_id"
	// FieldGameID is the standardized key for game identifiers.
	FieldGameID = "game_id"
	// FieldDatasetID is the standardized key for dataset identifiers.
	FieldDatasetID = "dataset_id"
	// FieldPath is the standardized key for filesystem paths.
	FieldPath = "path"
	// FieldKind is the standardized key for artifact kinds.
	FieldKind = "kind"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

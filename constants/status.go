package constants

// FileOutcome is the terminal state of one file in a batch run.
type FileOutcome string

// Stable values (these exact strings appear in logs and run summaries).
const (
	OutcomeStored            FileOutcome = "STORED"             // reply parsed, fields stored
	OutcomeStoredWithNulls   FileOutcome = "STORED_WITH_NULLS"  // no reply or unparsable reply, placeholder stored
	OutcomeSkippedExtraction FileOutcome = "SKIPPED_EXTRACTION" // no text extracted, nothing stored
)

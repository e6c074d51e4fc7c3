package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Frontends map these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric id parameter
	ValidationFailed       = "VALIDATION_FAILED"        // field rules violated

	// ==================== Dealer (DEALER_) ====================
	DealerNotFound      = "DEALER_NOT_FOUND"      // no dealer with that id
	DealerInvalidStatus = "DEALER_INVALID_STATUS" // status outside the three-way enum

	// ==================== Verification (VERIFICATION_) ====================
	VerificationInvalidDecision = "VERIFICATION_INVALID_DECISION" // decision not verified/unverified
	VerificationInProgress      = "VERIFICATION_IN_PROGRESS"      // duplicate in-flight decision

	// ==================== Import (IMPORT_) ====================
	ImportMissingHeaders    = "IMPORT_MISSING_HEADERS"    // required columns absent
	ImportParseFailed       = "IMPORT_PARSE_FAILED"       // malformed file
	ImportUnsupportedFormat = "IMPORT_UNSUPPORTED_FORMAT" // not .csv/.xlsx
	ImportFileTooLarge      = "IMPORT_FILE_TOO_LARGE"     // over the configured cap
	ImportFileMissing       = "IMPORT_FILE_MISSING"       // no file in the upload

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // store failure
)

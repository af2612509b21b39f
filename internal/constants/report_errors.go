package constants

// Report error codes
const (
	ErrCodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	ErrCodeUnsupportedUnit   = "UNSUPPORTED_UNIT"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeInvalidTonnage    = "INVALID_TONNAGE"
	ErrCodeInvalidRecord     = "INVALID_RECORD"
	ErrCodeExportFailed      = "EXPORT_FAILED"
)

var ReportErrorMessages = map[string]string{
	ErrCodeReferenceNotFound: "A shipment references a port or vessel that does not exist",
	ErrCodeUnsupportedUnit:   "The requested unit is not supported",
	ErrCodeUnsupportedFormat: "The requested duration format is not supported",
	ErrCodeInvalidTonnage:    "Fuel consumption needs a vessel with a nonzero net tonnage",
	ErrCodeInvalidRecord:     "The input record failed validation",
	ErrCodeExportFailed:      "The report could not be written to file",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ReportErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}

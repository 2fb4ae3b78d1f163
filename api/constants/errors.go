package constants

import "fmt"

// ============================================================================
// VALIDATION ERRORS - Import Request
// ============================================================================

const (
	ErrInvalidMaterialClass = "material_class must be BB (raw material) or BK (packaging)"
	ErrPeriodRequired       = "period is required in YYYYMM format"
	ErrFileRequired         = "file is required"
	ErrEmptyFile            = "uploaded file is empty"
	ErrUnsupportedFile      = "unsupported file format. Please upload .xlsx, .xls or .csv"
	ErrNoHeaderRow          = "could not locate a header row in the uploaded sheet"
	ErrNoDataRows           = "no data rows found below the header row"
)

// ============================================================================
// VALIDATION ERRORS - Reconciliation
// ============================================================================

const (
	ErrBatchNotAdmissible   = "batch contains rows with invalid units and cannot be imported"
	ErrFileAlreadyImported  = "this file was already imported for the same class and period"
	ErrNoRatesForPeriod     = "no currency rates found for period %s"
	ErrUnknownCurrency      = "no rate found for currency %s in the requested period"
	ErrUnresolvedMaterial   = "material code %s not found in the material master"
	ErrWrongMaterialClass   = "material %s does not belong to class %s"
	ErrInvalidDataRow       = "Invalid data in row %d: %s"
	ErrInvalidFieldValue    = "Invalid value for field '%s': %s"
	ErrMissingRequiredField = "Required field '%s' is missing or empty"
)

// ============================================================================
// VALIDATION ERRORS - Masters
// ============================================================================

const (
	ErrCurrencyRequired   = "Currency code is required"
	ErrInvalidCurrency    = "Invalid currency code specified"
	ErrInvalidRate        = "rate_to_base must be greater than zero"
	ErrMaterialNotFound   = "Material not found in the system"
	ErrMaterialCodeNeeded = "material_code is required"
)

// ============================================================================
// SUCCESS MESSAGES
// ============================================================================

const (
	SuccessImported = "Import committed successfully. %d rows inserted, %d rows deleted"
	SuccessUpserted = "Record saved successfully"
)

// ============================================================================
// HELPER FUNCTIONS TO FORMAT ERRORS WITH CONTEXT
// ============================================================================

// FormatError formats an error message with additional context
func FormatError(baseError string, context ...interface{}) string {
	if len(context) == 0 {
		return baseError
	}
	return fmt.Sprintf(baseError, context...)
}

// FormatRowError formats an error for a specific data row
func FormatRowError(rowNum int, reason string) string {
	return fmt.Sprintf(ErrInvalidDataRow, rowNum, reason)
}

// FormatFieldError formats an error for a specific field
func FormatFieldError(fieldName string, reason string) string {
	return fmt.Sprintf(ErrInvalidFieldValue, fieldName, reason)
}

// FormatMissingFieldError formats a missing field error
func FormatMissingFieldError(fieldName string) string {
	return fmt.Sprintf(ErrMissingRequiredField, fieldName)
}

// Package errs provides the standardized error types of the dispatch service.
// Every layer creates, wraps, and classifies errors through the same small set
// of types, so callers can branch on sentinels with errors.Is instead of
// string matching.
//
// The package covers the common failure scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value fails validation
//   - ValueIsOutOfRangeError: For when a value is outside its allowed bounds
//   - ObjectNotFoundError: For when a requested object does not exist
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type carrying the parameter name and details
//   - Constructor functions with and without a cause
//   - Error() formatting the message on one line
//   - Unwrap() returning the sentinel for errors.Is classification
package errs

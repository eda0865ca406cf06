// Package errs provides the shared error types of the fulfillment service.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ObjectNotFoundError: a persisted object cannot be found
//   - StateTransitionError: a lifecycle transition is not allowed from the current state
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) usable with errors.Is
//   - a struct type carrying the details
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Domain packages declare their own business sentinels (for example
// inventory.ErrInsufficientStock) and use the types here for argument validation.
package errs

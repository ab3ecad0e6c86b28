package extract

import "fmt"

// KindStructuredResponseInvalid is returned by StructuredResponseInvalidError.Kind.
const KindStructuredResponseInvalid = "structured_response_invalid"

// StructuredResponseInvalidError reports a model response that is not JSON.
// Raw is the response text exactly as received.
type StructuredResponseInvalidError struct {
	Raw string
	Err error
}

func (e *StructuredResponseInvalidError) Error() string {
	return fmt.Sprintf("response is not valid JSON: %v", e.Err)
}

func (e *StructuredResponseInvalidError) Unwrap() error { return e.Err }

func (e *StructuredResponseInvalidError) Kind() string { return KindStructuredResponseInvalid }

package pkg

// DomainError is the HTTP-facing error shape: a stable machine code, a
// human message and the status the handler should respond with.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
	HTTPStatus int    `json:"-"`
}

func (e *DomainError) Error() string {
	return e.Code + ": " + e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainErrorSimple builds a DomainError with no wrapped cause.
func NewDomainErrorSimple(code, message string, httpStatus int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// NewDomainError wraps an underlying cause for logging while keeping the
// client-facing code and message stable.
func NewDomainError(code, message string, err error, httpStatus int) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

// HTTPError is the JSON body returned to clients.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message}
}

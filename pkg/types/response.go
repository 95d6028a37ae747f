package types

// Envelope wraps every response body. Data carries the payload on success
// and field errors on validation failures; ErrorMessage is nil on success.
type Envelope struct {
	Success      bool    `json:"success"`
	Data         any     `json:"data"`
	Code         int     `json:"code"`
	ErrorMessage *string `json:"errorMessage"`
}

// Success builds a successful envelope.
func Success(status int, data any) Envelope {
	return Envelope{Success: true, Data: data, Code: status}
}

// Failure builds an error envelope.
func Failure(status int, message string, data any) Envelope {
	return Envelope{Success: false, Data: data, Code: status, ErrorMessage: &message}
}

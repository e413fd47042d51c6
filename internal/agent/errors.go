package agent

import "fmt"

// UnexpectedResponseError indicates the agent returned a payload that is
// not a well-formed base64 image string.
type UnexpectedResponseError struct {
	Path    string
	Payload interface{}
	Err     error
}

func (e *UnexpectedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response from agent %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("unexpected response from agent %s: %T is not a base64 image string", e.Path, e.Payload)
}

func (e *UnexpectedResponseError) Unwrap() error {
	return e.Err
}

package standings

import "fmt"

// FetchError is returned when a roster load fails: transport error, non-2xx
// status, or a payload that is not an array of player records. It is a
// blocking, user-visible error; callers surface it rather than retrying.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("standings fetch failed: %s (status %d): %s", e.URL, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("standings fetch failed: %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

package winners

import "fmt"

// CacheReadError is returned when the winners cache could not be read. It is
// indistinguishable from "not yet cached" and callers treat it as a miss.
type CacheReadError struct {
	URL string
	Err error
}

func (e *CacheReadError) Error() string {
	return fmt.Sprintf("weekly winners cache read failed: %s: %v", e.URL, e.Err)
}

func (e *CacheReadError) Unwrap() error {
	return e.Err
}

// CacheWriteError is returned when the winners upsert failed. The write is
// best-effort; callers log and proceed with the locally computed winners.
type CacheWriteError struct {
	Season int
	Week   int
	Err    error
}

func (e *CacheWriteError) Error() string {
	return fmt.Sprintf("weekly winners upsert failed for season %d week %d: %v", e.Season, e.Week, e.Err)
}

func (e *CacheWriteError) Unwrap() error {
	return e.Err
}

package webhook

import "context"

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 */

// Reader provides read operations over the event log
type Reader interface {
	/* List returns the whole log, newest first */
	List(ctx context.Context) ([]Event, error)
	Count(ctx context.Context) (int, error)
}

// Writer provides write operations over the event log
type Writer interface {
	/* Append inserts the event at the head of the log and trims the tail
	 * to the configured capacity, oldest entries first. Insert and trim are atomic
	 */
	Append(ctx context.Context, event Event) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}

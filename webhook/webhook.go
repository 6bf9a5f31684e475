package webhook

import (
	"encoding/json"
	"time"
)

/* Event represents an accepted Troquecommerce notification kept in the event log
 * Uses value semantics as it represents data, not behavior. Never mutated after Record
 */
type Event struct {
	ID         string
	Code       string
	Label      string
	Timestamp  time.Time
	ReceivedAt time.Time
	Payload    json.RawMessage
}

package ports

import "time"

// Clock provides time to the application.
type Clock interface {
	Now() time.Time
}

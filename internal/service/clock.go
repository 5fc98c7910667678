package service

import "time"

// now is the ledger clock; timestamps are stored in UTC
var now = func() time.Time {
	return time.Now().UTC()
}

package clock

import "time"

// NowFunc supplies the current time. Tests override it to drive TTL expiry
// without wall-clock sleeps.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

package utils

import "time"

// BrisbaneTZ is the fixed reference timezone used to group work records into
// operational shifts. Open dates are always rendered in this zone, so a
// record lands on the same shift no matter where the scan request came from.
var BrisbaneTZ = time.FixedZone("UTC+10", 10*60*60)

const DateLayout = "2006-01-02"

// MinutesBetween returns the number of whole minutes between two
// epoch-millisecond instants. Never negative: a reversed range counts as 0.
func MinutesBetween(startMs, endMs int64) int64 {
	if endMs < startMs {
		return 0
	}
	return (endMs - startMs) / 60000
}

// LocalOpenDate renders an epoch-millisecond instant as a yyyy-MM-dd date in
// the reference timezone.
func LocalOpenDate(ms int64) string {
	return time.UnixMilli(ms).In(BrisbaneTZ).Format(DateLayout)
}

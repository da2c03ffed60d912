package worktime

// Night window: 22:00-24:00 on the session's first day plus 00:00-06:00
// before and after midnight, expressed on an absolute minute timeline where
// minute 1440 is the following midnight. The windows are disjoint, so the
// contributions add without double counting.
var nightWindows = [][2]int{
	{0, 6 * 60},                // 00:00-06:00, same-day early morning
	{22 * 60, endOfDayMinute},  // 22:00-24:00
	{endOfDayMinute, 30 * 60},  // 00:00-06:00 after midnight
}

// nightMinutes computes the overlap between [startMin, endMin) and the night
// windows. For midnight-spanning sessions the caller passes the checkout
// minute shifted by a full day so the interval stays monotonic.
func nightMinutes(startMin, endMin int) int {
	if endMin <= startMin {
		return 0
	}

	total := 0
	for _, w := range nightWindows {
		lo := startMin
		if w[0] > lo {
			lo = w[0]
		}
		hi := endMin
		if w[1] < hi {
			hi = w[1]
		}
		if hi > lo {
			total += hi - lo
		}
	}
	return total
}

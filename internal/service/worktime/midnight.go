package worktime

// noonMinute is the cut for overnight justification: a checkout whose
// time-of-day precedes the check-in counts as a midnight-spanning session
// only when it lands in the morning. An inverted pair with an afternoon
// checkout is an ordering anomaly, not a 20-hour shift.
const noonMinute = 12 * 60

// endOfDayMinute is the exclusive upper bound of a work date (24:00).
const endOfDayMinute = 24 * 60

// partialSession is one same-date slice of a work session, in minutes of its
// day. For a session that crosses midnight there are two: the first ends at
// 24:00 on the work date, the second starts at 00:00 on the following date.
type partialSession struct {
	StartMin int
	EndMin   int
	// HasCheckout marks the partial containing the check-out punch; the
	// dinner break applies only there.
	HasCheckout bool
}

// splitSession resolves a punch pair into partial sessions. A checkOut
// time-of-day numerically below checkIn means the session crossed midnight
// and yields (in, 24:00) on the work date and (00:00, out) on the next.
// A checkout equal to the check-in is a valid zero-length session.
func splitSession(inMin, outMin int) (parts []partialSession, spansMidnight bool, anomaly bool) {
	switch {
	case outMin >= inMin:
		return []partialSession{
			{StartMin: inMin, EndMin: outMin, HasCheckout: true},
		}, false, false

	case outMin >= noonMinute:
		return nil, false, true

	default:
		return []partialSession{
			{StartMin: inMin, EndMin: endOfDayMinute},
			{StartMin: 0, EndMin: outMin, HasCheckout: true},
		}, true, false
	}
}

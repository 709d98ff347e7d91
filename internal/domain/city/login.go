package city

import "time"

// LoginReward is the stepped payout table for a consecutive-login streak.
// The breakpoints are product-tuned values, not a formula.
func LoginReward(consecutiveDays int) int64 {
	switch {
	case consecutiveDays <= 0:
		return 0
	case consecutiveDays == 1:
		return 1000
	case consecutiveDays == 2:
		return 1500
	case consecutiveDays == 3:
		return 5000
	case consecutiveDays <= 6:
		return 3000
	case consecutiveDays == 7:
		return 10000
	case consecutiveDays >= 30:
		return 20000
	case consecutiveDays >= 14:
		return 10000
	default:
		return 3000 + int64(consecutiveDays-7)*500
	}
}

// NextConsecutiveDays computes the streak after a visit at now, given the
// previous visit. Calendar days, not 24h windows: a gap of exactly one day
// extends the streak, more than one resets it, the same day changes nothing.
func NextConsecutiveDays(current int, lastLogin, now time.Time) int {
	gap := daysBetween(lastLogin, now)
	switch {
	case gap == 1:
		return current + 1
	case gap > 1 || current <= 0:
		return 1
	default:
		return current
	}
}

// SameCalendarDay reports whether two instants fall on the same date in the
// reference time's location.
func SameCalendarDay(a, b time.Time) bool {
	return daysBetween(a, b) == 0
}

func daysBetween(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from.In(to.Location()))).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

package utils

import "time"

// IST is the Indian Standard Time location (UTC+5:30).
var IST = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// tz database missing
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// Session is the NSE trading session at a point in time.
type Session string

const (
	SessionPreMarket Session = "PRE-MARKET"
	SessionPreOpen   Session = "PRE-OPEN SESSION"
	SessionOpen      Session = "OPEN"
	SessionClosed    Session = "CLOSED"
	SessionWeekend   Session = "CLOSED (Weekend)"
	SessionHoliday   Session = "CLOSED (Holiday)"
)

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(IST)
}

// FormatDateTimeIST formats t as "2006-01-02 15:04:05 IST".
func FormatDateTimeIST(t time.Time) string {
	return t.In(IST).Format("2006-01-02 15:04:05") + " IST"
}

// HolidayName returns the NSE holiday falling on t's IST date, if any.
func HolidayName(t time.Time) (string, bool) {
	name, ok := nseHolidays2026[t.In(IST).Format("2006-01-02")]
	return name, ok
}

// IsTradingDay reports whether t's IST date is neither a weekend nor a holiday.
func IsTradingDay(t time.Time) bool {
	t = t.In(IST)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	_, holiday := HolidayName(t)
	return !holiday
}

// SessionAt returns the session in effect at t. Pre-open runs 09:00-09:15
// and the normal session 09:15-15:30 IST.
func SessionAt(t time.Time) Session {
	t = t.In(IST)

	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return SessionWeekend
	}
	if _, ok := HolidayName(t); ok {
		return SessionHoliday
	}

	at := func(h, m int) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), h, m, 0, 0, IST)
	}
	switch {
	case t.Before(at(9, 0)):
		return SessionPreMarket
	case t.Before(at(9, 15)):
		return SessionPreOpen
	case !t.After(at(15, 30)):
		return SessionOpen
	default:
		return SessionClosed
	}
}

// Refresh annually from the NSE circular.
var nseHolidays2026 = map[string]string{
	"2026-01-26": "Republic Day",
	"2026-02-17": "Mahashivratri",
	"2026-03-10": "Holi",
	"2026-03-30": "Id-ul-Fitr (Ramadan)",
	"2026-04-02": "Ram Navami",
	"2026-04-03": "Good Friday",
	"2026-04-14": "Dr. Ambedkar Jayanti",
	"2026-05-01": "Maharashtra Day",
	"2026-05-25": "Buddha Purnima",
	"2026-06-05": "Id-ul-Zuha (Bakri Id)",
	"2026-07-06": "Muharram",
	"2026-08-15": "Independence Day",
	"2026-08-18": "Parsi New Year",
	"2026-09-04": "Milad-un-Nabi",
	"2026-10-02": "Mahatma Gandhi Jayanti",
	"2026-10-20": "Dussehra",
	"2026-11-09": "Diwali (Laxmi Pujan)",
	"2026-11-10": "Diwali (Balipratipada)",
	"2026-11-30": "Guru Nanak Jayanti",
	"2026-12-25": "Christmas",
}

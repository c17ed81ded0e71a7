package watch

import "time"

// Clock is the watch's notion of time: the system clock plus a settable
// offset. Setting the time keeps the current date and vice versa.
type Clock struct {
	now    func() time.Time
	offset time.Duration
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Now returns the watch-local time.
func (c *Clock) Now() time.Time {
	return c.now().Add(c.offset)
}

// SetTime moves the time of day to hour:min:sec, keeping the current date.
func (c *Clock) SetTime(hour, min, sec int) {
	local := c.Now()
	y, mo, d := local.Date()
	target := time.Date(y, mo, d, hour, min, sec, 0, local.Location())
	c.offset += target.Sub(local)
}

// SetDate moves the date to year/month/day, keeping the time of day.
func (c *Clock) SetDate(year int, month time.Month, day int) {
	local := c.Now()
	h, m, s := local.Clock()
	target := time.Date(year, month, day, h, m, s, local.Nanosecond(), local.Location())
	c.offset += target.Sub(local)
}

func (c *Clock) Millisecond() int { return c.Now().Nanosecond() / int(time.Millisecond) }
func (c *Clock) Second() int      { return c.Now().Second() }
func (c *Clock) Minute() int      { return c.Now().Minute() }
func (c *Clock) Hour() int        { return c.Now().Hour() }
func (c *Clock) Day() int         { return c.Now().Day() }
func (c *Clock) Month() time.Month { return c.Now().Month() }
func (c *Clock) Year() int        { return c.Now().Year() }

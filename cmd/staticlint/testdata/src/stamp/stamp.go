package stamp

import "time"

type Item struct {
	CreatedAt time.Time
}

func New() Item {
	return Item{CreatedAt: time.Now()} // want `time.Now call outside package clock`
}

func Age(it Item, now time.Time) time.Duration {
	return now.Sub(it.CreatedAt)
}

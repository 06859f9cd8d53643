package selector

import "time"

const (
	SubmitMessage  = "Thank you for submitting the data!"
	NoticeDuration = 2 * time.Second
)

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(message string, d time.Duration)
}

type NotifierFunc func(message string, d time.Duration)

func (f NotifierFunc) Notify(message string, d time.Duration) { f(message, d) }

package providers

import "time"

// ICronProvider defines cron provider logic.
type ICronProvider interface {
	AddFunc(spec string, cmd func()) (int, error)
	RemoveFunc(id int)
}

// ITimerProvider defines one-shot delayed execution.
type ITimerProvider interface {
	AfterFunc(d time.Duration, cmd func()) ITimer
}

// ITimer defines armed delayed execution handle.
type ITimer interface {
	Stop() bool
}

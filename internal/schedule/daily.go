// Package schedule runs a task once per local calendar day.
package schedule

import (
	"log"
	"sync"
	"time"
)

// DailyJob fires a task at the next local midnight and re-arms itself for
// the following midnight, so day-boundary work keeps happening for as long
// as the process runs. The clock is injectable so tests can simulate a day
// boundary without waiting for one.
type DailyJob struct {
	task func()
	now  func() time.Time

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// NewDailyJob creates a job that will invoke task at each local midnight.
// A nil now defaults to time.Now.
func NewDailyJob(task func(), now func() time.Time) *DailyJob {
	if now == nil {
		now = time.Now
	}
	return &DailyJob{
		task: task,
		now:  now,
		stop: make(chan struct{}),
	}
}

// Start launches the scheduling loop. It returns immediately.
func (j *DailyJob) Start() {
	go j.loop()
}

// Stop cancels the job. It is safe to call more than once.
func (j *DailyJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.stopped {
		j.stopped = true
		close(j.stop)
	}
}

func (j *DailyJob) loop() {
	for {
		wait := NextMidnight(j.now()).Sub(j.now())
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
			j.task()
		case <-j.stop:
			timer.Stop()
			log.Println("schedule: daily job stopped")
			return
		}
	}
}

// NextMidnight returns the first local midnight strictly after t
func NextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

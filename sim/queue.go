// Implements the PendingQueue, which holds a month's applications for one
// (county, program) office while they wait for capacity-gated processing.

package sim

import (
	"fmt"
	"strings"
)

// PendingQueue is the per-office pool of applications awaiting evaluation
// this month. Enqueue order is submission order; the triage policy produces
// the processing order separately, without mutating the queue's contents.
type PendingQueue struct {
	queue []*Application
}

// Enqueue adds an application to the back of the queue.
func (pq *PendingQueue) Enqueue(app *Application) {
	if app == nil {
		panic("Enqueue: app must not be nil")
	}
	pq.queue = append(pq.queue, app)
}

// Len returns the number of queued applications.
func (pq *PendingQueue) Len() int {
	return len(pq.queue)
}

// Items returns the queue contents for iteration. The returned slice is the
// queue's internal storage -- callers may iterate over it but MUST NOT
// append to or reslice it.
func (pq *PendingQueue) Items() []*Application {
	return pq.queue
}

// Drain empties the queue and returns its contents in enqueue order.
func (pq *PendingQueue) Drain() []*Application {
	out := pq.queue
	pq.queue = nil
	return out
}

func (pq *PendingQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, app := range pq.queue {
		sb.WriteString(fmt.Sprint(app))
		if i < len(pq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

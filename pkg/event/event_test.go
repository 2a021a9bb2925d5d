package event_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/event"
)

func TestFire_CallsAllListenersInOrder(t *testing.T) {
	defer event.Flush()

	var got []int
	event.Listen("catalog.updated", func(interface{}) { got = append(got, 1) })
	event.Listen("catalog.updated", func(interface{}) { got = append(got, 2) })

	event.Fire("catalog.updated", nil)

	assert.Equal(t, []int{1, 2}, got)
}

func TestFire_PassesPayload(t *testing.T) {
	defer event.Flush()

	var got interface{}
	event.Listen("catalog.updated", func(p interface{}) { got = p })

	event.Fire("catalog.updated", "insert")

	assert.Equal(t, "insert", got)
}

func TestFire_UnknownEventIsNoop(t *testing.T) {
	defer event.Flush()
	assert.NotPanics(t, func() { event.Fire("nobody.listens", nil) })
}

func TestFireAsync_EventuallyRuns(t *testing.T) {
	defer event.Flush()

	var wg sync.WaitGroup
	wg.Add(1)
	event.Listen("catalog.updated", func(interface{}) { wg.Done() })

	event.FireAsync("catalog.updated", nil)
	wg.Wait() // would hang (and time out the test) if the handler never ran
}

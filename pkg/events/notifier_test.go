package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesSubscribersOfSameType(t *testing.T) {
	notifier := NewNotifier()

	var lotChanges, containerChanges []Change
	notifier.Subscribe(RecordLot, func(change Change) {
		lotChanges = append(lotChanges, change)
	})
	notifier.Subscribe(RecordContainer, func(change Change) {
		containerChanges = append(containerChanges, change)
	})

	notifier.Publish(Change{Type: RecordLot, Op: OpCreated, RecordID: "a"})
	notifier.Publish(Change{Type: RecordLot, Op: OpDeleted, RecordID: "b"})
	notifier.Publish(Change{Type: RecordProduct, Op: OpCreated, RecordID: "c"})

	assert.Len(t, lotChanges, 2)
	assert.Empty(t, containerChanges)
	assert.Equal(t, OpCreated, lotChanges[0].Op)
	assert.Equal(t, "b", lotChanges[1].RecordID)
	assert.False(t, lotChanges[0].At.IsZero())
}

func TestPublishWithoutSubscribers(t *testing.T) {
	notifier := NewNotifier()
	notifier.Publish(Change{Type: RecordLot, Op: OpCreated, RecordID: "a"})
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	notifier := NewNotifier()

	var mutex sync.Mutex
	received := 0
	notifier.Subscribe(RecordLot, func(change Change) {
		mutex.Lock()
		received++
		mutex.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			notifier.Publish(Change{Type: RecordLot, Op: OpUpdated, RecordID: "x"})
		}()
		go func() {
			defer wg.Done()
			notifier.Subscribe(RecordProduct, func(Change) {})
		}()
	}
	wg.Wait()

	mutex.Lock()
	defer mutex.Unlock()
	assert.Equal(t, 10, received)
}

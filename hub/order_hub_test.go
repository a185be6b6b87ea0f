package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu        sync.Mutex
	messages  [][]byte
	deadlines []time.Time
	failing   bool
	closed    bool
}

func (f *fakeConn) SetWriteDeadline(t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadlines = append(f.deadlines, t)
	return nil
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestPublishOnlyReachesTargetUsers(t *testing.T) {
	h := New()
	customer, owner, other := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Register(customer, 1)
	h.Register(owner, 2)
	h.Register(other, 3)

	h.Publish([]uint{1, 2}, "order_placed", map[string]interface{}{"order_id": 7})

	require.Len(t, customer.messages, 1)
	assert.Len(t, owner.messages, 1)
	assert.Empty(t, other.messages)

	var msg Message
	require.NoError(t, json.Unmarshal(customer.messages[0], &msg))
	assert.Equal(t, "order_placed", msg.Event)
	assert.Equal(t, float64(7), msg.Data.(map[string]interface{})["order_id"])
}

func TestPublishDropsFailingConnections(t *testing.T) {
	h := New()
	broken := &fakeConn{failing: true}
	h.Register(broken, 1)

	h.Publish([]uint{1}, "order_cancelled", nil)

	assert.True(t, broken.closed)
	assert.Equal(t, 0, h.Connections())
}

func TestUnregisterClosesOnce(t *testing.T) {
	h := New()
	c := &fakeConn{}
	h.Register(c, 1)
	h.Unregister(c)
	h.Unregister(c)

	assert.True(t, c.closed)
	assert.Equal(t, 0, h.Connections())
}

func TestPublishBoundsEachWrite(t *testing.T) {
	h := New()
	c := &fakeConn{}
	h.Register(c, 1)

	before := time.Now()
	h.Publish([]uint{1}, "order_status_updated", nil)
	h.Publish([]uint{1}, "order_status_updated", nil)

	require.Len(t, c.deadlines, 2)
	for _, d := range c.deadlines {
		assert.True(t, d.After(before))
		assert.False(t, d.After(time.Now().Add(writeWait)))
	}
}

func TestTimedOutPeerDoesNotBlockOthers(t *testing.T) {
	h := New()
	stalled := &fakeConn{failing: true}
	healthy := &fakeConn{}
	h.Register(stalled, 1)
	h.Register(healthy, 2)

	h.Publish([]uint{1, 2}, "order_placed", nil)

	assert.True(t, stalled.closed)
	assert.Len(t, healthy.messages, 1)
	assert.Equal(t, 1, h.Connections())
}

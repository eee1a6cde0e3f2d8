package match

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchLocksSerializeSameMatch(t *testing.T) {
	locks := newMatchLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(42)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestMatchLocksDropIdleEntries(t *testing.T) {
	locks := newMatchLocks()

	unlock := locks.Lock(1)
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks)
}

func TestBasicValidatorVerdicts(t *testing.T) {
	v := BasicValidator{}

	verdict, err := v.Evaluate(nil, Turn{Data: []byte(`{"a":1}`)})
	assert.NoError(t, err)
	assert.True(t, verdict.Legal)
	assert.False(t, verdict.Terminal)

	verdict, err = v.Evaluate(nil, Turn{Data: []byte(`{"a":1}`), Win: true})
	assert.NoError(t, err)
	assert.True(t, verdict.Terminal)

	verdict, err = v.Evaluate(nil, Turn{Data: []byte(`not json`)})
	assert.NoError(t, err)
	assert.False(t, verdict.Legal)

	verdict, err = v.Evaluate(nil, Turn{})
	assert.NoError(t, err)
	assert.False(t, verdict.Legal)
}

package bot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreKeepsSessionPerUser(t *testing.T) {
	st := NewStore(20)

	st.Do(1, func(s *Session) { s.Push(10) })
	st.Do(2, func(s *Session) { s.Push(20) })

	st.Do(1, func(s *Session) {
		assert.Equal(t, []int{10}, s.Stack)
	})
	st.Do(2, func(s *Session) {
		assert.Equal(t, []int{20}, s.Stack)
	})
}

func TestStoreDrop(t *testing.T) {
	st := NewStore(20)

	st.Do(1, func(s *Session) { s.Push(10) })
	st.Drop(1)
	st.Do(1, func(s *Session) {
		assert.Empty(t, s.Stack)
	})
}

func TestStoreSerializesPerUser(t *testing.T) {
	st := NewStore(200)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st.Do(1, func(s *Session) { s.Push(n) })
		}(i)
	}
	wg.Wait()

	st.Do(1, func(s *Session) {
		// Каждая горутина добавила свой узел, потерь нет.
		seen := map[int]bool{}
		for _, id := range s.Stack {
			seen[id] = true
		}
		assert.Len(t, seen, 100)
	})
}

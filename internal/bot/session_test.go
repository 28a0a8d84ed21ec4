package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionPush(t *testing.T) {
	s := NewSession(20)

	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, []int{1, 2, 3}, s.Stack)

	// Повторный заход в текущий узел стек не меняет.
	s.Push(3)
	assert.Equal(t, []int{1, 2, 3}, s.Stack)

	// Но возврат к ранее посещённому — меняет.
	s.Push(1)
	assert.Equal(t, []int{1, 2, 3, 1}, s.Stack)
}

func TestSessionCapacity(t *testing.T) {
	s := NewSession(3)

	for id := 1; id <= 5; id++ {
		s.Push(id)
	}

	// Старые элементы вытеснены, размер не превышает ёмкость.
	assert.Equal(t, []int{3, 4, 5}, s.Stack)
	assert.Len(t, s.Stack, 3)
}

func TestSessionBack(t *testing.T) {
	s := NewSession(20)
	s.Push(1)
	s.Push(2)
	s.Push(3)

	id, ok := s.Back()
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	id, ok = s.Back()
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	// Из единственного узла назад не уйти.
	id, ok = s.Back()
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, []int{1}, s.Stack)
}

func TestSessionBackEmpty(t *testing.T) {
	s := NewSession(20)

	_, ok := s.Back()
	assert.False(t, ok)
}

func TestSessionClear(t *testing.T) {
	s := NewSession(20)
	s.Push(1)
	s.Push(2)

	s.Clear()
	assert.Empty(t, s.Stack)

	s.Push(7)
	assert.Equal(t, []int{7}, s.Stack)
}

func TestSessionPaging(t *testing.T) {
	s := NewSession(20)
	assert.Equal(t, 0, s.HRPage)

	// Назад с нулевой страницы — на месте.
	s.PrevPage()
	assert.Equal(t, 0, s.HRPage)

	// Вперёд только при наличии следующей страницы.
	s.NextPage(false)
	assert.Equal(t, 0, s.HRPage)
	s.NextPage(true)
	assert.Equal(t, 1, s.HRPage)
	s.NextPage(true)
	assert.Equal(t, 2, s.HRPage)

	s.PrevPage()
	assert.Equal(t, 1, s.HRPage)
}

func TestSessionMinCapacity(t *testing.T) {
	s := NewSession(0)
	s.Push(1)
	s.Push(2)
	assert.Equal(t, []int{2}, s.Stack)
}

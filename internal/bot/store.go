package bot

import "sync"

// Store хранит сессии пользователей в памяти и сериализует обработку
// событий по каждому пользователю: два события одного пользователя не
// выполняются одновременно, разные пользователи независимы.
type Store struct {
	mu       sync.Mutex
	limit    int
	sessions map[int64]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session Session
}

func NewStore(stackLimit int) *Store {
	return &Store{
		limit:    stackLimit,
		sessions: make(map[int64]*sessionEntry),
	}
}

func (st *Store) entry(userID int64) *sessionEntry {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[userID]
	if !ok {
		e = &sessionEntry{session: NewSession(st.limit)}
		st.sessions[userID] = e
	}
	return e
}

// Do выполняет fn над сессией пользователя под её личным замком.
func (st *Store) Do(userID int64, fn func(s *Session)) {
	e := st.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.session)
}

// Drop удаляет сессию пользователя.
func (st *Store) Drop(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}

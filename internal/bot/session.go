package bot

// Session — состояние диалога одного пользователя: стек посещённых
// узлов, признак ожидания текста для HR и курсор страницы истории
// обращений. Состояние живёт только в памяти процесса.
type Session struct {
	Stack           []int
	AwaitingSupport bool
	HRPage          int
	IsAdmin         bool

	limit int
}

func NewSession(limit int) Session {
	if limit < 1 {
		limit = 1
	}
	return Session{limit: limit}
}

// Push добавляет узел на вершину стека. Повторный заход в текущий узел
// стек не меняет. При переполнении вытесняется самый старый элемент.
func (s *Session) Push(nodeID int) {
	if top, ok := s.Current(); ok && top == nodeID {
		return
	}
	s.Stack = append(s.Stack, nodeID)
	if len(s.Stack) > s.limit {
		s.Stack = s.Stack[len(s.Stack)-s.limit:]
	}
}

// Back снимает вершину стека и возвращает новый текущий узел.
// Из единственного узла назад не уйти.
func (s *Session) Back() (int, bool) {
	if len(s.Stack) > 1 {
		s.Stack = s.Stack[:len(s.Stack)-1]
	}
	return s.Current()
}

// Current — узел на вершине стека.
func (s *Session) Current() (int, bool) {
	if len(s.Stack) == 0 {
		return 0, false
	}
	return s.Stack[len(s.Stack)-1], true
}

func (s *Session) Clear() {
	s.Stack = s.Stack[:0]
}

// NextPage листает историю обращений вперёд, только если следующая
// страница точно есть.
func (s *Session) NextPage(hasNext bool) {
	if hasNext {
		s.HRPage++
	}
}

// PrevPage листает назад, не опускаясь ниже нулевой страницы.
func (s *Session) PrevPage() {
	if s.HRPage > 0 {
		s.HRPage--
	}
}

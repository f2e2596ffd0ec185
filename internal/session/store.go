// Package session хранит краткоживущее состояние диалога для каждого
// пользователя: фазу многошагового сценария и накопленные по пути данные.
// Состояние живет только в памяти процесса; после рестарта пользователь
// заново входит в сценарий через /start. TTL у записей нет.
package session

import "sync"

type Phase string

const (
	PhaseIdle                Phase = ""
	PhaseAwaitingPhone       Phase = "awaiting_phone"
	PhaseAwaitingName        Phase = "awaiting_name"
	PhaseAwaitingDescription Phase = "awaiting_description"
	PhaseAwaitingDeadline    Phase = "awaiting_deadline"
	PhaseCollecting          Phase = "collecting"
)

type Data struct {
	Phase                Phase
	PhoneNumber          string
	Description          string
	SubmissionInProgress bool
	FileIDs              []string
	FileNames            []string
	SelectedSubmissionID int64
}

type Store interface {
	Get(userID int64) Data
	Update(userID int64, fn func(*Data))
	SetPhase(userID int64, phase Phase)
	Clear(userID int64)
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Data
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Data),
	}
}

func (s *MemoryStore) Get(userID int64) Data {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.sessions[userID]
	if !ok {
		return Data{}
	}

	copied := *data
	copied.FileIDs = append([]string(nil), data.FileIDs...)
	copied.FileNames = append([]string(nil), data.FileNames...)
	return copied
}

// Update выполняет fn под блокировкой: чтение-изменение-запись атомарно
// даже при повторных событиях от одного пользователя.
func (s *MemoryStore) Update(userID int64, fn func(*Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.sessions[userID]
	if !ok {
		data = &Data{}
		s.sessions[userID] = data
	}

	fn(data)
}

func (s *MemoryStore) SetPhase(userID int64, phase Phase) {
	s.Update(userID, func(data *Data) {
		data.Phase = phase
	})
}

func (s *MemoryStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}

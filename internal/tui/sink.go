package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// programSink forwards messages from controller callbacks into the running
// program. Each send runs on its own goroutine: the controller may call back
// from inside Update, and tea.Program.Send blocks until the event loop reads.
type programSink struct {
	send func(tea.Msg)
	mu   sync.Mutex
}

func (s *programSink) attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *programSink) Send(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()

	if send != nil {
		go send(msg)
	}
}

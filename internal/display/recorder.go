package display

import (
	"fmt"
	"sync"

	"github.com/mcoot/solaropoly/internal/model"
)

// Recorder keeps messages in memory until drained. Used where output is
// returned to a remote client instead of printed.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Ensure Recorder implements Display
var _ model.Display = (*Recorder)(nil)

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Attention records a prompt for the player
func (r *Recorder) Attention(name string) {
	r.add(fmt.Sprintf("Player %s, take action!", name))
}

// Balance records the player's balance
func (r *Recorder) Balance(name string, balance int) {
	r.add(fmt.Sprintf("%s, your current balance is %s.", name, Money(balance)))
}

// Notice records a message
func (r *Recorder) Notice(msg string) {
	r.add(msg)
}

// Drain returns and clears the recorded messages
func (r *Recorder) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages
	r.messages = nil
	return msgs
}

func (r *Recorder) add(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

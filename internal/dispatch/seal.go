package dispatch

import (
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
)

const sealName = "courtbot-task"

// Sealer authenticates and encrypts tasks on the queue, so a worker only runs
// tasks the front end produced, and only while they are fresh.
type Sealer struct {
	sc *securecookie.SecureCookie
}

func NewSealer(hashKey, blockKey []byte, maxAge time.Duration) (*Sealer, error) {
	if len(hashKey) == 0 {
		return nil, fmt.Errorf("sealer: hash key is required")
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(maxAge.Seconds()))
	// response URLs and command text can outgrow the 4k cookie default
	sc.MaxLength(64 * 1024)
	return &Sealer{sc: sc}, nil
}

func (s *Sealer) Seal(t Task) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	v, err := s.sc.Encode(sealName, t)
	if err != nil {
		return nil, fmt.Errorf("seal task %s: %w", t.ID, err)
	}
	return []byte(v), nil
}

func (s *Sealer) Open(b []byte) (Task, error) {
	var t Task
	if err := s.sc.Decode(sealName, string(b), &t); err != nil {
		return Task{}, fmt.Errorf("open task: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

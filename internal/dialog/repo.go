package dialog

import (
	"context"
	"sync"
)

// Repo хранит состояния диалогов в памяти. Отчётные диалоги короткие,
// а всё долговременное состояние живёт в таблице, поэтому переживать
// рестарт им не нужно.
type Repo struct {
	mu    sync.Mutex
	items map[Key]Item
}

func NewRepo() *Repo {
	return &Repo{items: make(map[Key]Item)}
}

func (r *Repo) Get(_ context.Context, key Key) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[key]; ok {
		return &it, nil
	}
	return &Item{Key: key, State: StateIdle, Payload: Payload{}}, nil
}

func (r *Repo) Set(_ context.Context, key Key, state State, payload Payload) error {
	if payload == nil {
		payload = Payload{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = Item{Key: key, State: state, Payload: payload}
	return nil
}

func (r *Repo) Reset(_ context.Context, key Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key)
	return nil
}

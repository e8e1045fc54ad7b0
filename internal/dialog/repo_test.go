package dialog

import (
	"context"
	"testing"
)

func TestRepoLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	key := Key{ChatID: -100123, TopicID: 42, UserID: 7}

	// до начала диалога состояние idle
	item, err := repo.Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if item.State != StateIdle {
		t.Errorf("начальное состояние: %q", item.State)
	}

	if err := repo.Set(ctx, key, StateMorningCallsPlanned, Payload{"manager": "Анна"}); err != nil {
		t.Fatal(err)
	}
	item, _ = repo.Get(ctx, key)
	if item.State != StateMorningCallsPlanned {
		t.Errorf("состояние после Set: %q", item.State)
	}
	if name, ok := GetString(item.Payload, "manager"); !ok || name != "Анна" {
		t.Errorf("payload: %v", item.Payload)
	}

	if err := repo.Reset(ctx, key); err != nil {
		t.Fatal(err)
	}
	item, _ = repo.Get(ctx, key)
	if item.State != StateIdle {
		t.Errorf("состояние после Reset: %q", item.State)
	}
}

func TestRepoKeysIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	anna := Key{ChatID: -100123, TopicID: 42, UserID: 7}
	boris := Key{ChatID: -100123, TopicID: 43, UserID: 8}

	_ = repo.Set(ctx, anna, StateMorningCallsPlanned, nil)

	item, _ := repo.Get(ctx, boris)
	if item.State != StateIdle {
		t.Errorf("чужой диалог не должен быть виден: %q", item.State)
	}
}

func TestPayloadHelpers(t *testing.T) {
	p := Payload{"s": "текст", "i": 5, "f": 2.5}

	if v, ok := GetString(p, "s"); !ok || v != "текст" {
		t.Errorf("GetString: %v %v", v, ok)
	}
	if _, ok := GetString(p, "i"); ok {
		t.Error("GetString на числе должен вернуть false")
	}
	if v, ok := GetInt(p, "i"); !ok || v != 5 {
		t.Errorf("GetInt: %v %v", v, ok)
	}
	if v, ok := GetFloat(p, "f"); !ok || v != 2.5 {
		t.Errorf("GetFloat: %v %v", v, ok)
	}
	if v, ok := GetFloat(p, "i"); !ok || v != 5 {
		t.Errorf("GetFloat на int: %v %v", v, ok)
	}
	if _, ok := GetInt(p, "нет"); ok {
		t.Error("GetInt на отсутствующем ключе должен вернуть false")
	}
}

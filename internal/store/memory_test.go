package store

import (
	"testing"
	"time"

	"qpcr/internal/model"
)

func TestMemoryStore_PutAndCurrent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	if _, err := s.Current(); err == nil {
		t.Fatalf("empty store should have no current")
	}

	a := s.Put("run1.xlsx", "vendor_a", model.NewPlateRun())
	if a.ID == "" {
		t.Fatalf("expected assigned id")
	}

	current, err := s.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != a.ID || current.Filename != "run1.xlsx" {
		t.Fatalf("unexpected current: %+v", current)
	}

	// 新导入自动成为当前记录
	b := s.Put("run2.xlsx", "generic", model.NewPlateRun())
	current, _ = s.Current()
	if current.ID != b.ID {
		t.Fatalf("latest import should be current")
	}
}

func TestMemoryStore_GetAndSetCurrent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	a := s.Put("run1.xlsx", "vendor_a", model.NewPlateRun())
	s.Put("run2.xlsx", "generic", model.NewPlateRun())

	got, err := s.Get(a.ID)
	if err != nil || got.ID != a.ID {
		t.Fatalf("get: %v", err)
	}
	if _, err := s.Get("missing"); err != ErrNotFound {
		t.Fatalf("want ErrNotFound got=%v", err)
	}

	if err := s.SetCurrent(a.ID); err != nil {
		t.Fatalf("set current: %v", err)
	}
	current, _ := s.Current()
	if current.ID != a.ID {
		t.Fatalf("current should be %s", a.ID)
	}
	if err := s.SetCurrent("missing"); err != ErrNotFound {
		t.Fatalf("want ErrNotFound got=%v", err)
	}
}

func TestMemoryStore_ListOrder(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	a := s.Put("old.xlsx", "generic", model.NewPlateRun())
	b := s.Put("new.xlsx", "generic", model.NewPlateRun())
	// 保证时间可区分
	a.ImportedAt = a.ImportedAt.Add(-time.Minute)

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("want=2 got=%d", len(list))
	}
	if list[0].ID != b.ID {
		t.Fatalf("newest should come first")
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	s.Put("run1.xlsx", "generic", model.NewPlateRun())
	s.Clear()

	if s.Count() != 0 {
		t.Fatalf("count want=0 got=%d", s.Count())
	}
	if _, err := s.Current(); err == nil {
		t.Fatalf("cleared store should have no current")
	}
}

// Package store 内存数据存储
// 全部数据保存在进程内存中，进程退出即丢弃，不落盘
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"qpcr/internal/model"
)

// ErrNotFound 分析记录不存在
var ErrNotFound = errors.New("analysis not found")

// Analysis 一次导入产生的分析记录
type Analysis struct {
	ID         string          `json:"id"`
	Filename   string          `json:"filename"`
	Vendor     string          `json:"vendor"`
	Plate      *model.PlateRun `json:"-"`
	ImportedAt time.Time       `json:"imported_at"`
}

// MemoryStore 内存数据存储
type MemoryStore struct {
	analyses  map[string]*Analysis
	currentID string
	mu        sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses: make(map[string]*Analysis),
	}
}

// Put 保存分析记录并置为当前记录，返回分配的 ID
func (s *MemoryStore) Put(filename, vendor string, plate *model.PlateRun) *Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &Analysis{
		ID:         uuid.New().String(),
		Filename:   filename,
		Vendor:     vendor,
		Plate:      plate,
		ImportedAt: time.Now(),
	}
	s.analyses[a.ID] = a
	s.currentID = a.ID
	return a
}

// Get 获取单条分析记录
func (s *MemoryStore) Get(id string) (*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.analyses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// Current 获取当前分析记录
func (s *MemoryStore) Current() (*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == "" {
		return nil, ErrNotFound
	}
	a, ok := s.analyses[s.currentID]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// SetCurrent 切换当前分析记录
func (s *MemoryStore) SetCurrent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.analyses[id]; !ok {
		return ErrNotFound
	}
	s.currentID = id
	return nil
}

// List 按导入时间倒序列出所有分析记录
func (s *MemoryStore) List() []*Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ImportedAt.After(result[j].ImportedAt)
	})
	return result
}

// Count 获取分析记录数量
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.analyses)
}

// Clear 清空所有分析记录
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = make(map[string]*Analysis)
	s.currentID = ""
}

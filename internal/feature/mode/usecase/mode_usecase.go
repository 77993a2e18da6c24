// Package usecase はモード選択のロジックを実装します。
package usecase

import (
	"log/slog"
	"sync"

	"cloudtrade/internal/feature/mode/domain/entity"
)

// ResolveMode は要求されたモードを返します。
// ただしREALが要求され準備が整っていない場合はMOCKに落とします。副作用はありません。
func ResolveMode(requested entity.Mode, ready bool) entity.Mode {
	if requested == entity.Real && ready {
		return entity.Real
	}
	return entity.Mock
}

// Selector はユーザーが選んだモードと起動時に確定した準備状態を保持します。
// 現在のモードは呼び出しのたびに ResolveMode で計算され、キャッシュしません。
type Selector struct {
	mu        sync.RWMutex
	ready     bool
	requested entity.Mode
}

// NewSelector はSelectorを生成します。
// initial が空の場合、準備が整っていればREAL、そうでなければMOCKで開始します。
func NewSelector(ready bool, initial entity.Mode) *Selector {
	if initial == "" {
		initial = entity.Mock
		if ready {
			initial = entity.Real
		}
	}
	if initial == entity.Real && !ready {
		slog.Warn("real mode requested at startup but not configured, serving mock data")
	}
	return &Selector{ready: ready, requested: initial}
}

// IsReady はREALモードに必要な設定が揃っているかを返します。
func (s *Selector) IsReady() bool {
	return s.ready
}

// Requested はユーザーが最後に選んだモードを返します。
func (s *Selector) Requested() entity.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requested
}

// Current は実際に適用されるモードを返します。
func (s *Selector) Current() entity.Mode {
	return ResolveMode(s.Requested(), s.ready)
}

// Set はモードを切り替えます。準備が整っていない状態でのREALは ErrRealModeUnavailable を返します。
func (s *Selector) Set(m entity.Mode) (entity.Mode, error) {
	if m == entity.Real && !s.ready {
		return s.Current(), ErrRealModeUnavailable
	}
	s.mu.Lock()
	prev := s.requested
	s.requested = m
	s.mu.Unlock()

	if prev != m {
		slog.Info("mode switched", "from", prev, "to", m)
	}
	return s.Current(), nil
}

// Toggle は現在のモードの反対側に切り替えます。
func (s *Selector) Toggle() (entity.Mode, error) {
	return s.Set(s.Current().Other())
}

// Resolve はリクエスト単位のモードを決定します。
// override が空ならユーザー選択のモード、それ以外はパースした値を準備状態で補正します。
func (s *Selector) Resolve(override string) (entity.Mode, error) {
	if override == "" {
		return s.Current(), nil
	}
	m, err := entity.ParseMode(override)
	if err != nil {
		return "", err
	}
	return ResolveMode(m, s.ready), nil
}

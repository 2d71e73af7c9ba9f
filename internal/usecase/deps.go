package usecase

import "time"

// ID採番の約束（本番はuuid）
type IDGenerator interface {
	NewID() string
}

// 現在時刻の約束（テストで差し替える）
type Clock interface {
	Now() time.Time
}

package usecase

import "time"

// Clock は注文日時・割引判定の基準時刻。テストで固定する
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

// Postgresの精度（マイクロ秒）に合わせる
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// FixedClock は常に同じ時刻を返す。
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

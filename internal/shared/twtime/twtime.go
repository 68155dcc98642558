// Package twtime は台湾市場（Asia/Taipei）の時刻計算を提供します。
package twtime

import (
	"sync"
	"time"
)

// DateLayout はAPIで使う日付書式です。
const DateLayout = "2006-01-02"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location はAsia/Taipeiを返します。tzdataがない環境ではUTC+8の固定ゾーンです。
func Location() *time.Location {
	locOnce.Do(func() {
		l, err := time.LoadLocation("Asia/Taipei")
		if err != nil {
			l = time.FixedZone("CST", 8*60*60)
		}
		loc = l
	})
	return loc
}

// FormatDate は時刻を台湾時間の日付文字列にします。
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// UntilNext は now から次の台湾時間 hour:00 までの期間を返します。
// ちょうどその時刻の場合は翌日までの24時間です。
func UntilNext(now time.Time, hour int) time.Duration {
	l := Location()
	local := now.In(l)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, l)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}

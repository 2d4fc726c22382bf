package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	refModel "kntista_backend/internals/features/activity/references/model"
	"kntista_backend/internals/helpers/dbtime"
)

// Counted pairs a reference row with the number of events using it that
// are active in the current month.
type Counted[T any] struct {
	Item                   T   `json:"item"`
	CurrentMonthEventCount int `json:"current_month_event_count"`
}

type usageRow struct {
	RefID      uuid.UUID                      `gorm:"column:ref_id"`
	StartDates datatypes.JSONSlice[time.Time] `gorm:"column:event_start_dates"`
	EndDate    *time.Time                     `gorm:"column:event_end_date"`
}

// CurrentMonthCounts counts, per value of fk, the events active in now's month.
// Events that ended before the month are dropped in SQL; the month rule
// itself is dbtime.IsActiveInCurrentMonth.
func CurrentMonthCounts(ctx context.Context, db *gorm.DB, fk refModel.ForeignKey, now time.Time) (map[uuid.UUID]int, error) {
	var rows []usageRow
	err := db.WithContext(ctx).
		Table(refModel.EventsTable).
		Select(string(fk)+" AS ref_id, event_start_dates, event_end_date").
		Where("event_end_date IS NULL OR event_end_date >= ?", dbtime.MonthStart(now)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		if dbtime.IsActiveInCurrentMonth(r.StartDates, r.EndDate, now) {
			counts[r.RefID]++
		}
	}
	return counts, nil
}

// SortByUsage orders by count descending, then by name under the root
// collation, then by id so equal names stay stable across calls.
func SortByUsage[T any, P Record[T]](items []Counted[T]) {
	col := collate.New(language.Und)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if a.CurrentMonthEventCount != b.CurrentMonthEventCount {
			return a.CurrentMonthEventCount > b.CurrentMonthEventCount
		}
		an, bn := P(&a.Item).RecordName(), P(&b.Item).RecordName()
		if c := col.CompareString(an, bn); c != 0 {
			return c < 0
		}
		if an != bn {
			return an < bn
		}
		return P(&a.Item).RecordID().String() < P(&b.Item).RecordID().String()
	})
}

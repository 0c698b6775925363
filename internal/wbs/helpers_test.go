package wbs

import (
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func item(id, code, start string, duration int) domain.WbsItem {
	w := domain.WbsItem{
		ID:        id,
		Code:      code,
		Type:      domain.WbsActivity,
		StartDate: day(start),
		Duration:  duration,
	}
	w.DeriveEndDate()
	return w
}

func fs(pred, succ string, lag int) domain.Dependency {
	return domain.Dependency{PredecessorID: pred, SuccessorID: succ, Type: domain.FinishToStart, Lag: lag}
}

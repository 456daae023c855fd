package router

import (
	"time"

	"certtrack/internal/domain"
)

// certView 出参视图：状态和剩余天数在序列化时现算，
// 不存在"读到过期状态字段"的问题
type certView struct {
	domain.Certificate
	Status   domain.Status `json:"status"`
	DaysLeft *int          `json:"daysLeft"` // 无到期日为 null
}

func viewOf(c domain.Certificate, now time.Time) certView {
	v := certView{Certificate: c, Status: domain.Classify(c.ExpiryDate, now)}
	if d, ok := domain.DaysRemaining(c.ExpiryDate, now); ok {
		v.DaysLeft = &d
	}
	return v
}

func viewsOf(certs []domain.Certificate, now time.Time) []certView {
	out := make([]certView, 0, len(certs))
	for _, c := range certs {
		out = append(out, viewOf(c, now))
	}
	return out
}

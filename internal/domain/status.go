package domain

import "time"

// Status 证书生命周期状态（由到期日推导，不落库）
type Status string

const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusExpiringSoon, StatusExpired:
		return true
	}
	return false
}

// 两套独立阈值：状态判定用 90 天，展示紧急度用 30/90 分档，勿混用
const (
	StatusThresholdDays = 90
	UrgencyCriticalDays = 30
	UrgencyWarningDays  = 90
)

// DaysRemaining 距到期日的带符号天数（日历日粒度，忽略时分秒）。
// ok=false 表示没有到期日。
func DaysRemaining(expiry Date, now time.Time) (int, bool) {
	if expiry.IsZero() {
		return 0, false
	}
	return DateOf(now).DaysUntil(expiry), true
}

// Classify 按 90 天阈值推导状态。无到期日视为 active（沿用产品口径：
// 缺日期不等于已过期）。
func Classify(expiry Date, now time.Time) Status {
	return ClassifyWithThreshold(expiry, now, StatusThresholdDays)
}

func ClassifyWithThreshold(expiry Date, now time.Time, thresholdDays int) Status {
	d, ok := DaysRemaining(expiry, now)
	if !ok {
		return StatusActive
	}
	switch {
	case d < 0:
		return StatusExpired
	case d <= thresholdDays:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}

// Urgency 展示用紧急度（报表/图表配色），和状态阈值是两码事
type Urgency string

const (
	UrgencyCritical Urgency = "critical" // <30 天
	UrgencyWarning  Urgency = "warning"  // <90 天
	UrgencyOK       Urgency = "ok"
)

func UrgencyForDays(d int) Urgency {
	switch {
	case d < UrgencyCriticalDays:
		return UrgencyCritical
	case d < UrgencyWarningDays:
		return UrgencyWarning
	default:
		return UrgencyOK
	}
}

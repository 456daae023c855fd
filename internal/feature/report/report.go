// Package report 对证书集合快照做只读汇总：状态统计、按人/部门分组、
// 到期月份分桶、到期报表。所有函数显式接收参照时刻，不碰系统时钟。
package report

import (
	"sort"
	"time"

	"certtrack/internal/domain"
)

// Stats 状态计数汇总
type Stats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	ExpiringSoon int `json:"expiringSoon"`
	Expired      int `json:"expired"`
}

// StatsFor 单次遍历计数。状态一律现场推导，不信任任何存过的值
func StatsFor(certs []domain.Certificate, now time.Time) Stats {
	st := Stats{}
	for i := range certs {
		st.Total++
		switch domain.Classify(certs[i].ExpiryDate, now) {
		case domain.StatusActive:
			st.Active++
		case domain.StatusExpiringSoon:
			st.ExpiringSoon++
		case domain.StatusExpired:
			st.Expired++
		}
	}
	return st
}

func StatsForOwner(certs []domain.Certificate, ownerID string, now time.Time) Stats {
	var own []domain.Certificate
	for i := range certs {
		if certs[i].OwnerID == ownerID {
			own = append(own, certs[i])
		}
	}
	return StatsFor(own, now)
}

// OwnerGroup 某用户的证书子集及其统计
type OwnerGroup struct {
	User  domain.User          `json:"user"`
	Certs []domain.Certificate `json:"certs"`
	Stats Stats                `json:"stats"`
}

// GroupByOwner 输出顺序跟随 users 入参，不按证书属性排序
func GroupByOwner(certs []domain.Certificate, users []domain.User, now time.Time) []OwnerGroup {
	out := make([]OwnerGroup, 0, len(users))
	for _, u := range users {
		var own []domain.Certificate
		for i := range certs {
			if certs[i].OwnerID == u.ID {
				own = append(own, certs[i])
			}
		}
		out = append(out, OwnerGroup{User: u, Certs: own, Stats: StatsFor(own, now)})
	}
	return out
}

type TitleCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// TopTitles 标题精确计数（区分大小写），按次数降序，
// 同次数保持首次出现的先后，截断到 n
func TopTitles(certs []domain.Certificate, n int) []TitleCount {
	if n <= 0 {
		n = 5
	}
	idx := map[string]int{}
	var counts []TitleCount
	for i := range certs {
		t := certs[i].Title
		if j, ok := idx[t]; ok {
			counts[j].Count++
			continue
		}
		idx[t] = len(counts)
		counts = append(counts, TitleCount{Title: t, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// ByDepartment 按给定部门清单汇总证书数；不在清单里的部门直接不出现
func ByDepartment(certs []domain.Certificate, users []domain.User, departments []string) []DepartmentCount {
	perOwner := map[string]int{}
	for i := range certs {
		perOwner[certs[i].OwnerID]++
	}
	out := make([]DepartmentCount, 0, len(departments))
	for _, dept := range departments {
		n := 0
		for _, u := range users {
			if u.Department == dept {
				n += perOwner[u.ID]
			}
		}
		out = append(out, DepartmentCount{Department: dept, Count: n})
	}
	return out
}

// MonthBucket 某个日历月内到期的证书桶。Urgency 由月初的剩余天数算，
// 是报表配色口径，不是单证状态
type MonthBucket struct {
	Month   string         `json:"month"` // "Mar 26"
	Count   int            `json:"count"`
	Urgency domain.Urgency `json:"urgency"`
	Titles  []string       `json:"titles"`
}

// MonthlyExpiryBuckets 从 now 所在月起连续 months 个月
func MonthlyExpiryBuckets(certs []domain.Certificate, now time.Time, months int) []MonthBucket {
	if months <= 0 {
		months = 6
	}
	today := domain.DateOf(now)
	out := make([]MonthBucket, 0, months)
	for i := 0; i < months; i++ {
		monthStart := today.AddMonths(i)
		b := MonthBucket{
			Month:   monthStart.Time().Format("Jan 06"),
			Urgency: domain.UrgencyForDays(today.DaysUntil(monthStart)),
		}
		for j := range certs {
			if !certs[j].ExpiryDate.IsZero() && certs[j].ExpiryDate.SameMonth(monthStart) {
				b.Count++
				b.Titles = append(b.Titles, certs[j].Title)
			}
		}
		out = append(out, b)
	}
	return out
}

// UpcomingSorted 排除已过期和无到期日的，按到期日升序；
// 同日保持输入相对顺序
func UpcomingSorted(certs []domain.Certificate, now time.Time) []domain.Certificate {
	var out []domain.Certificate
	for i := range certs {
		c := certs[i]
		if c.ExpiryDate.IsZero() {
			continue
		}
		if domain.Classify(c.ExpiryDate, now) == domain.StatusExpired {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out
}

// ExpiryRow 到期报表行（管理端 All / 30 / 60 / 90 天窗口）
type ExpiryRow struct {
	UserName     string        `json:"user"`
	Title        string        `json:"title"`
	Organization string        `json:"organization"`
	ExpiryDate   domain.Date   `json:"expiryDate"`
	DaysLeft     int           `json:"daysLeft"`
	Status       domain.Status `json:"status"`
}

// ExpiryReport windowDays>0 时只保留 0≤剩余≤window 的证书；
// windowDays=0 为全量（含已过期）。无到期日的证书不进报表。
// 结果按到期日升序
func ExpiryReport(certs []domain.Certificate, users []domain.User, now time.Time, windowDays int) []ExpiryRow {
	names := map[string]string{}
	for _, u := range users {
		names[u.ID] = u.Name
	}

	picked := make([]domain.Certificate, 0, len(certs))
	for i := range certs {
		c := certs[i]
		if c.ExpiryDate.IsZero() {
			continue
		}
		if windowDays > 0 {
			d, ok := domain.DaysRemaining(c.ExpiryDate, now)
			if !ok || d < 0 || d > windowDays {
				continue
			}
		}
		picked = append(picked, c)
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].ExpiryDate.Before(picked[j].ExpiryDate)
	})

	rows := make([]ExpiryRow, 0, len(picked))
	for _, c := range picked {
		d, _ := domain.DaysRemaining(c.ExpiryDate, now)
		rows = append(rows, ExpiryRow{
			UserName:     names[c.OwnerID],
			Title:        c.Title,
			Organization: c.Organization,
			ExpiryDate:   c.ExpiryDate,
			DaysLeft:     d,
			Status:       domain.Classify(c.ExpiryDate, now),
		})
	}
	return rows
}

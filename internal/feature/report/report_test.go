package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"certtrack/internal/domain"
	"certtrack/internal/repo"
)

var refNow = time.Date(2026, 2, 24, 12, 0, 0, 0, time.UTC)

func cert(id, owner, title string, expiry domain.Date) domain.Certificate {
	return domain.Certificate{
		ID: id, OwnerID: owner, Title: title,
		Organization: "Acme Certification Board",
		ExpiryDate:   expiry,
	}
}

func TestStatsForSeedData(t *testing.T) {
	certs := repo.SeedCertificates()

	got := StatsFor(certs, refNow)
	want := Stats{Total: 9, Active: 3, ExpiringSoon: 3, Expired: 3}
	if got != want {
		t.Fatalf("StatsFor = %+v, want %+v", got, want)
	}

	// 每个普通用户恰好三种状态各一张
	for _, owner := range []string{"u1", "u2", "u3"} {
		s := StatsForOwner(certs, owner, refNow)
		if s.Total != 3 || s.Active != 1 || s.ExpiringSoon != 1 || s.Expired != 1 {
			t.Fatalf("owner %s: %+v", owner, s)
		}
	}
	if s := StatsForOwner(certs, "u4", refNow); s.Total != 0 {
		t.Fatalf("admin should own nothing: %+v", s)
	}
}

func TestStatsConsistency(t *testing.T) {
	// 各分量之和恒等于 total
	certs := append(repo.SeedCertificates(),
		cert("x1", "u1", "No Expiry", domain.Date{}),
		cert("x2", "u2", "Today", domain.NewDate(2026, 2, 24)),
	)
	s := StatsFor(certs, refNow)
	if s.Active+s.ExpiringSoon+s.Expired != s.Total {
		t.Fatalf("components do not sum to total: %+v", s)
	}
}

func TestGroupByOwnerFollowsUserOrder(t *testing.T) {
	groups := GroupByOwner(repo.SeedCertificates(), repo.SeedUsers(), refNow)
	if len(groups) != 4 {
		t.Fatalf("len = %d", len(groups))
	}
	wantOrder := []string{"u1", "u2", "u3", "u4"}
	for i, id := range wantOrder {
		if groups[i].User.ID != id {
			t.Fatalf("order[%d] = %s, want %s", i, groups[i].User.ID, id)
		}
	}
	if len(groups[0].Certs) != 3 || groups[0].Stats.Total != 3 {
		t.Fatalf("u1 group: %+v", groups[0].Stats)
	}
	if len(groups[3].Certs) != 0 {
		t.Fatal("u4 should have an empty group, not be dropped")
	}
}

func TestTopTitles(t *testing.T) {
	certs := []domain.Certificate{
		cert("1", "u1", "CKA", domain.Date{}),
		cert("2", "u2", "AWS SAA", domain.Date{}),
		cert("3", "u3", "CKA", domain.Date{}),
		cert("4", "u1", "Terraform", domain.Date{}),
		cert("5", "u2", "AWS SAA", domain.Date{}),
		cert("6", "u3", "cka", domain.Date{}), // 大小写不同算不同标题
	}

	got := TopTitles(certs, 3)
	want := []TitleCount{{"CKA", 2}, {"AWS SAA", 2}, {"Terraform", 1}}
	if len(got) != len(want) {
		t.Fatalf("len = %d: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("[%d] = %+v, want %+v (ties keep first-seen order)", i, got[i], want[i])
		}
	}

	// n<=0 落回默认 5
	if got := TopTitles(certs, 0); len(got) != 4 {
		t.Fatalf("default n: len = %d, want 4", len(got))
	}
}

func TestByDepartment(t *testing.T) {
	got := ByDepartment(repo.SeedCertificates(), repo.SeedUsers(), []string{"Engineering", "Analytics", "Ghost Dept"})
	want := []DepartmentCount{
		{"Engineering", 3},
		{"Analytics", 3},
		{"Ghost Dept", 0}, // 清单里的部门即使没人也要出现
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	// 不在清单里的部门（Infrastructure）不出现
	for _, dc := range got {
		if dc.Department == "Infrastructure" {
			t.Fatal("unlisted department leaked into result")
		}
	}
}

func TestMonthlyExpiryBuckets(t *testing.T) {
	buckets := MonthlyExpiryBuckets(repo.SeedCertificates(), refNow, 3)
	if len(buckets) != 3 {
		t.Fatalf("len = %d", len(buckets))
	}

	// 2026-02 起：Feb 0 张，Mar 3 张（c2/c5/c8），Apr 0 张
	if buckets[0].Month != "Feb 26" || buckets[0].Count != 0 {
		t.Fatalf("bucket 0: %+v", buckets[0])
	}
	if buckets[1].Month != "Mar 26" || buckets[1].Count != 3 {
		t.Fatalf("bucket 1: %+v", buckets[1])
	}
	if buckets[1].Urgency != domain.UrgencyCritical { // 3/1 距参照日 5 天
		t.Fatalf("bucket 1 urgency = %s", buckets[1].Urgency)
	}
	if len(buckets[1].Titles) != 3 {
		t.Fatalf("bucket 1 titles: %v", buckets[1].Titles)
	}
	if buckets[2].Count != 0 {
		t.Fatalf("bucket 2: %+v", buckets[2])
	}
}

func TestMonthlyExpiryBucketsFromMonthEnd(t *testing.T) {
	// 参照日在月末（31 号）时桶仍是连续的日历月，不跳不重
	monthEnd := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	buckets := MonthlyExpiryBuckets(nil, monthEnd, 4)
	wantMonths := []string{"Jan 26", "Feb 26", "Mar 26", "Apr 26"}
	if len(buckets) != len(wantMonths) {
		t.Fatalf("len = %d", len(buckets))
	}
	for i, m := range wantMonths {
		if buckets[i].Month != m {
			t.Fatalf("bucket[%d] = %s, want %s", i, buckets[i].Month, m)
		}
	}
}

func TestUpcomingSorted(t *testing.T) {
	certs := []domain.Certificate{
		cert("a", "u1", "June", domain.NewDate(2026, 6, 1)),
		cert("b", "u1", "March", domain.NewDate(2026, 3, 1)),
		cert("c", "u1", "Long gone", domain.NewDate(2024, 1, 1)),
		cert("d", "u1", "No date", domain.Date{}),
		cert("e", "u1", "Also March", domain.NewDate(2026, 3, 1)),
	}

	got := UpcomingSorted(certs, refNow)
	wantIDs := []string{"b", "e", "a"} // 过期和无日期的剔除；同日保持输入顺序
	if len(got) != len(wantIDs) {
		t.Fatalf("len = %d: %v", len(got), got)
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestExpiryReport(t *testing.T) {
	certs := repo.SeedCertificates()
	users := repo.SeedUsers()

	t.Run("30 day window", func(t *testing.T) {
		rows := ExpiryReport(certs, users, refNow, 30)
		wantTitles := []string{
			"Microsoft Power BI Data Analyst Associate", // 3/8, 12 天
			"Meta React Developer Certification",        // 3/10, 14 天
			"Docker Certified Associate (DCA)",          // 3/15, 19 天
		}
		if len(rows) != len(wantTitles) {
			t.Fatalf("len = %d: %v", len(rows), rows)
		}
		for i, title := range wantTitles {
			if rows[i].Title != title {
				t.Fatalf("[%d] = %s, want %s", i, rows[i].Title, title)
			}
		}
		if rows[0].UserName != "Sohan Kumar Sahu" || rows[0].DaysLeft != 12 {
			t.Fatalf("row 0: %+v", rows[0])
		}
		if rows[0].Status != domain.StatusExpiringSoon {
			t.Fatalf("row 0 status: %s", rows[0].Status)
		}
	})

	t.Run("window zero includes expired", func(t *testing.T) {
		rows := ExpiryReport(certs, users, refNow, 0)
		if len(rows) != 9 {
			t.Fatalf("len = %d, want all 9", len(rows))
		}
		// 升序：最早到期（已过期的）在前
		if rows[0].Title != "HashiCorp Certified: Terraform Associate" || rows[0].Status != domain.StatusExpired {
			t.Fatalf("row 0: %+v", rows[0])
		}
		if rows[0].DaysLeft >= 0 {
			t.Fatalf("expired row should have negative days: %d", rows[0].DaysLeft)
		}
	})

	t.Run("90 day window", func(t *testing.T) {
		if rows := ExpiryReport(certs, users, refNow, 90); len(rows) != 3 {
			t.Fatalf("len = %d, want 3", len(rows))
		}
	})

	t.Run("dateless certs never appear", func(t *testing.T) {
		withDateless := append(append([]domain.Certificate(nil), certs...),
			cert("x1", "u1", "No Expiry", domain.Date{}))
		rows := ExpiryReport(withDateless, users, refNow, 0)
		if len(rows) != 9 {
			t.Fatalf("len = %d, want 9", len(rows))
		}
		// 不会以 DaysLeft=0 的假象排到最前面
		if rows[0].Title == "No Expiry" {
			t.Fatal("dateless cert leaked into the report")
		}
	})
}

func TestWriteCSV(t *testing.T) {
	rows := ExpiryReport(repo.SeedCertificates(), repo.SeedUsers(), refNow, 30)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 { // 表头 + 3 行
		t.Fatalf("lines = %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "User,Certificate,Organization") {
		t.Fatalf("header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "2026-03-08") || !strings.Contains(lines[1], "12") {
		t.Fatalf("first row: %s", lines[1])
	}
}

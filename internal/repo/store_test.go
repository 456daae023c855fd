package repo

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"certtrack/internal/domain"
)

var refNow = time.Date(2026, 2, 24, 12, 0, 0, 0, time.UTC)

// seqIDs 可预测的 id 生成器
func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func draft(owner, title string) domain.CertificateDraft {
	return domain.CertificateDraft{
		OwnerID:      owner,
		Title:        title,
		Organization: "Acme Certification Board",
		Category:     "Cloud",
		IssueDate:    domain.NewDate(2025, 1, 1),
		ExpiryDate:   domain.NewDate(2027, 1, 1),
	}
}

func TestCertLookup(t *testing.T) {
	s := NewSeeded()

	c, err := s.Cert("c1")
	if err != nil || c == nil || c.ID != "c1" {
		t.Fatalf("Cert(c1) = (%v, %v)", c, err)
	}

	// 查不到不算错误
	c, err = s.Cert("nope")
	if err != nil || c != nil {
		t.Fatalf("Cert(nope) = (%v, %v), want (nil, nil)", c, err)
	}
}

func TestCertsByOwnerKeepsInsertionOrder(t *testing.T) {
	s := NewSeeded()
	got := s.CertsByOwner("u1")
	want := []string{"c1", "c2", "c3"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestAddCert(t *testing.T) {
	s := New(SeedUsers(), nil, WithIDGen(seqIDs("id")))

	c, err := s.AddCert(draft("u1", "CKA"))
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != "id1" || c.OwnerID != "u1" {
		t.Fatalf("got %+v", c)
	}
	if len(s.Certs()) != 1 {
		t.Fatal("cert not appended")
	}
}

func TestAddCertFailureLeavesStoreUntouched(t *testing.T) {
	s := NewSeeded()
	before := len(s.Certs())

	bad := draft("u1", "") // 缺标题
	if _, err := s.AddCert(bad); err == nil {
		t.Fatal("want validation error")
	}
	if len(s.Certs()) != before {
		t.Fatal("failed add must not modify the collection")
	}
}

func TestAddCertRegeneratesCollidingIDs(t *testing.T) {
	// 生成器前两次都吐已占用的 id
	ids := []string{"c1", "c1", "fresh"}
	i := 0
	gen := func() string { id := ids[i]; i++; return id }

	s := New(SeedUsers(), SeedCertificates(), WithIDGen(gen))
	c, err := s.AddCert(draft("u2", "Tableau"))
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != "fresh" {
		t.Fatalf("id = %s, want fresh", c.ID)
	}
}

func TestUpdateCert(t *testing.T) {
	s := NewSeeded()

	title := "Renamed Credential"
	c, err := s.UpdateCert("c2", domain.CertificatePatch{Title: &title})
	if err != nil || c.Title != title {
		t.Fatalf("update: (%+v, %v)", c, err)
	}
	// 其余字段不动
	if c.Organization != "Meta" || c.OwnerID != "u1" {
		t.Fatalf("untouched fields changed: %+v", c)
	}

	if _, err := s.UpdateCert("nope", domain.CertificatePatch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing id: %v, want ErrNotFound", err)
	}
}

func TestUpdateCertValidationFailureLeavesRecordUntouched(t *testing.T) {
	s := NewSeeded()

	// c2: issue 2024-03-15。把到期日改到签发日之前必须整体失败
	bad := domain.NewDate(2023, 1, 1)
	if _, err := s.UpdateCert("c2", domain.CertificatePatch{ExpiryDate: &bad}); err == nil {
		t.Fatal("want validation error")
	}
	c, _ := s.Cert("c2")
	if !c.ExpiryDate.Equal(domain.NewDate(2026, 3, 10)) {
		t.Fatal("failed update must not modify the record")
	}
}

func TestRemoveCertNotIdempotent(t *testing.T) {
	s := NewSeeded()

	if err := s.RemoveCert("c9"); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveCert("c9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second remove: %v, want ErrNotFound", err)
	}
	if len(s.Certs()) != 8 {
		t.Fatal("exactly one record should be gone")
	}
}

func TestFilterCerts(t *testing.T) {
	s := NewSeeded()

	tests := []struct {
		name string
		f    CertFilter
		want []string
	}{
		{"owner only", CertFilter{OwnerID: "u2"}, []string{"c4", "c5", "c6"}},
		{"title substring, case-insensitive", CertFilter{Query: "KUBERNETES"}, []string{"c7"}},
		{"organization substring", CertFilter{Query: "hashicorp"}, []string{"c9"}},
		{"owner name substring", CertFilter{Query: "deepak"}, []string{"c7", "c8", "c9"}},
		{"status", CertFilter{Status: domain.StatusExpiringSoon, Now: refNow}, []string{"c2", "c5", "c8"}},
		{"category", CertFilter{Category: "Data"}, []string{"c4", "c5", "c6"}},
		{"AND of owner+status", CertFilter{OwnerID: "u1", Status: domain.StatusExpired, Now: refNow}, []string{"c3"}},
		{"AND of query+category", CertFilter{Query: "ibm", Category: "Data"}, []string{"c6"}},
		{"no match", CertFilter{Query: "zzz"}, nil},
		{"empty filter returns all", CertFilter{}, []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FilterCerts(tt.f)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestUserLookup(t *testing.T) {
	s := NewSeeded()

	u, err := s.UserByEmail("ASHISH@GMAIL.COM") // 邮箱不分大小写
	if err != nil || u == nil || u.ID != "u1" {
		t.Fatalf("UserByEmail = (%v, %v)", u, err)
	}
	u, err = s.UserByEmail("ghost@gmail.com")
	if err != nil || u != nil {
		t.Fatalf("missing email = (%v, %v), want (nil, nil)", u, err)
	}

	if got := s.SearchUsers("sohan"); len(got) != 1 || got[0].ID != "u2" {
		t.Fatalf("SearchUsers(sohan) = %v", got)
	}
	if got := s.SearchUsers(""); len(got) != 4 {
		t.Fatalf("SearchUsers(\"\") = %d users, want 4", len(got))
	}
}

func TestUpdateUser(t *testing.T) {
	s := NewSeeded()

	dept := "Platform"
	u, err := s.UpdateUser("u3", domain.UserPatch{Department: &dept})
	if err != nil || u.Department != "Platform" {
		t.Fatalf("update: (%+v, %v)", u, err)
	}

	bad := "root"
	if _, err := s.UpdateUser("u3", domain.UserPatch{Role: &bad}); err == nil {
		t.Fatal("invalid role should fail")
	}
	u, _ = s.UserByID("u3")
	if u.Role != domain.RoleUser {
		t.Fatal("failed update must not modify the record")
	}

	if _, err := s.UpdateUser("nope", domain.UserPatch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing id: %v, want ErrNotFound", err)
	}
}

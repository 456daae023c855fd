package repo

import (
	"strings"
	"sync"
	"time"

	"certtrack/internal/domain"
	"certtrack/pkg/utils"
)

// Store 进程内唯一的数据集合：证书 + 少量准静态用户。
// 没有持久化，进程退出即丢。挂在 HTTP 后面会有并发调用，
// 所以这里用读写锁做串行化点。
type Store struct {
	mu    sync.RWMutex
	certs []domain.Certificate // 按插入序
	users []domain.User
	newID func() string
}

type Option func(*Store)

// WithIDGen 替换 id 生成器（测试用）
func WithIDGen(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(users []domain.User, certs []domain.Certificate, opts ...Option) *Store {
	s := &Store{
		certs: append([]domain.Certificate(nil), certs...),
		users: append([]domain.User(nil), users...),
		newID: utils.NewID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

/* ---------- 证书 ---------- */

// Cert 按 id 查单条；查不到返回 (nil, nil)，不算错误
func (s *Store) Cert(id string) (*domain.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.certs {
		if s.certs[i].ID == id {
			c := s.certs[i]
			return &c, nil
		}
	}
	return nil, nil
}

// CertsByOwner 某用户的全部证书，保持插入序
func (s *Store) CertsByOwner(ownerID string) []domain.Certificate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Certificate
	for i := range s.certs {
		if s.certs[i].OwnerID == ownerID {
			out = append(out, s.certs[i])
		}
	}
	return out
}

// Certs 全量快照（聚合/报表用）
func (s *Store) Certs() []domain.Certificate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Certificate(nil), s.certs...)
}

// AddCert 校验 → 分配 id → 追加。失败不动集合
func (s *Store) AddCert(d domain.CertificateDraft) (*domain.Certificate, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	for s.hasCertLocked(id) {
		id = s.newID()
	}
	c := domain.Certificate{
		ID:             id,
		OwnerID:        d.OwnerID,
		Title:          d.Title,
		Organization:   d.Organization,
		Category:       d.Category,
		IssueDate:      d.IssueDate,
		ExpiryDate:     d.ExpiryDate,
		CredentialID:   d.CredentialID,
		Description:    d.Description,
		CertificateURL: d.CertificateURL,
		BadgeURL:       d.BadgeURL,
	}
	s.certs = append(s.certs, c)
	return &c, nil
}

// UpdateCert 合并补丁后整条重校验，校验过了才替换。
// id/ownerId 不在补丁字段里，改不到
func (s *Store) UpdateCert(id string, p domain.CertificatePatch) (*domain.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.certs {
		if s.certs[i].ID != id {
			continue
		}
		merged := s.certs[i].Apply(p)
		if err := merged.Validate(); err != nil {
			return nil, err
		}
		s.certs[i] = merged
		c := merged
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

// RemoveCert 删除不做幂等：同一 id 第二次删返回 ErrNotFound
func (s *Store) RemoveCert(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.certs {
		if s.certs[i].ID == id {
			s.certs = append(s.certs[:i], s.certs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) hasCertLocked(id string) bool {
	for i := range s.certs {
		if s.certs[i].ID == id {
			return true
		}
	}
	return false
}

/* ---------- 组合筛选 ---------- */

// CertFilter 各条件取 AND；留空的条件放行一切
type CertFilter struct {
	OwnerID  string        // 限定某个用户（管理端留空）
	Query    string        // 标题/颁发机构/持有人姓名 子串匹配，不分大小写
	Status   domain.Status // 按推导状态过滤
	Category string
	Now      time.Time // Status 过滤的参照时刻
}

func (s *Store) FilterCerts(f CertFilter) []domain.Certificate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	var out []domain.Certificate
	for i := range s.certs {
		c := s.certs[i]
		if f.OwnerID != "" && c.OwnerID != f.OwnerID {
			continue
		}
		if q != "" && !s.matchTextLocked(c, q) {
			continue
		}
		if f.Status != "" && domain.Classify(c.ExpiryDate, f.Now) != f.Status {
			continue
		}
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *Store) matchTextLocked(c domain.Certificate, q string) bool {
	if strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Organization), q) {
		return true
	}
	for i := range s.users {
		if s.users[i].ID == c.OwnerID {
			return strings.Contains(strings.ToLower(s.users[i].Name), q)
		}
	}
	return false
}

package repo

import (
	"strings"

	"certtrack/internal/domain"
)

// UserByID 查不到返回 (nil, nil)
func (s *Store) UserByID(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// UserByEmail 邮箱不分大小写（登录入口）
func (s *Store) UserByEmail(email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

// SearchUsers 管理端列表：按姓名/邮箱子串过滤，空串返回全部
func (s *Store) SearchUsers(q string) []domain.User {
	q = strings.ToLower(strings.TrimSpace(q))
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.User
	for i := range s.users {
		u := s.users[i]
		if q == "" ||
			strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}

// UpdateUser 管理端改资料；合并失败不落变更
func (s *Store) UpdateUser(id string, p domain.UserPatch) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		merged, err := s.users[i].Apply(p)
		if err != nil {
			return nil, err
		}
		s.users[i] = merged
		u := merged
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

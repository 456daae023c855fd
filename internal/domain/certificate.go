package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound 集合里没有对应 id（update/remove 用；查询路径返回 nil 即可）
var ErrNotFound = errors.New("not found")

// ValidationError 字段校验失败。失败的写操作不落任何变更
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const MaxDescriptionLen = 300

// Certificate 一条认证记录。ID/OwnerID 创建后不可变；
// 状态不存储，读取时由到期日现算（见 Classify）。
type Certificate struct {
	ID             string `json:"id"`
	OwnerID        string `json:"ownerId"`
	Title          string `json:"title"`
	Organization   string `json:"organization"`
	Category       string `json:"category"`
	IssueDate      Date   `json:"issueDate"`
	ExpiryDate     Date   `json:"expiryDate"`
	CredentialID   string `json:"credentialId"`
	Description    string `json:"description"`
	CertificateURL string `json:"certificateUrl"`
	BadgeURL       string `json:"badgeUrl"`
}

// CertificateDraft 创建入参（id 由仓储分配）
type CertificateDraft struct {
	OwnerID        string `json:"-"`
	Title          string `json:"title"`
	Organization   string `json:"organization"`
	Category       string `json:"category"`
	IssueDate      Date   `json:"issueDate"`
	ExpiryDate     Date   `json:"expiryDate"`
	CredentialID   string `json:"credentialId"`
	Description    string `json:"description"`
	CertificateURL string `json:"certificateUrl"`
	BadgeURL       string `json:"badgeUrl"`
}

// CertificatePatch 局部更新；nil 字段表示不改。id/ownerId 没有对应字段，
// 天然不可被补丁覆盖
type CertificatePatch struct {
	Title          *string `json:"title"`
	Organization   *string `json:"organization"`
	Category       *string `json:"category"`
	IssueDate      *Date   `json:"issueDate"`
	ExpiryDate     *Date   `json:"expiryDate"`
	CredentialID   *string `json:"credentialId"`
	Description    *string `json:"description"`
	CertificateURL *string `json:"certificateUrl"`
	BadgeURL       *string `json:"badgeUrl"`
}

func (d *CertificateDraft) Validate() error {
	if d.OwnerID == "" {
		return &ValidationError{Field: "ownerId", Reason: "required"}
	}
	if d.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if d.Organization == "" {
		return &ValidationError{Field: "organization", Reason: "required"}
	}
	return validateDates(d.IssueDate, d.ExpiryDate, d.Description)
}

// Validate 整条记录的不变式（update 合并补丁后重校验）
func (c *Certificate) Validate() error {
	if c.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if c.Organization == "" {
		return &ValidationError{Field: "organization", Reason: "required"}
	}
	return validateDates(c.IssueDate, c.ExpiryDate, c.Description)
}

func validateDates(issue, expiry Date, description string) error {
	if !issue.IsZero() && !expiry.IsZero() && !expiry.After(issue) {
		return &ValidationError{Field: "expiryDate", Reason: "must be after issueDate"}
	}
	if len([]rune(description)) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("longer than %d characters", MaxDescriptionLen)}
	}
	return nil
}

// Apply 把补丁合并到副本上，不动原记录
func (c Certificate) Apply(p CertificatePatch) Certificate {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Organization != nil {
		c.Organization = *p.Organization
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.IssueDate != nil {
		c.IssueDate = *p.IssueDate
	}
	if p.ExpiryDate != nil {
		c.ExpiryDate = *p.ExpiryDate
	}
	if p.CredentialID != nil {
		c.CredentialID = *p.CredentialID
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.CertificateURL != nil {
		c.CertificateURL = *p.CertificateURL
	}
	if p.BadgeURL != nil {
		c.BadgeURL = *p.BadgeURL
	}
	return c
}

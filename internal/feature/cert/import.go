// Package cert 证书批量导入：CSV → 草稿行。列校验在这里做，
// 日期先后等业务校验仍由仓储的 AddCert 统一把关。
package cert

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"certtrack/internal/domain"
)

// RequiredColumns 模板必须带齐的表头
var RequiredColumns = []string{"title", "organization", "issueDate", "expiryDate", "category", "credentialId"}

// RowError 单行解析失败（行号从 1 计，不含表头）
type RowError struct {
	Row int    `json:"row"`
	Msg string `json:"error"`
}

// Record 解析出的草稿，带源行号。后续入库失败时错误要能
// 指回文件里的那一行
type Record struct {
	Row int
	domain.CertificateDraft
}

// ParseCSV 逐行读出草稿。表头缺列直接整体失败；
// 单行的日期格式问题记进 errs，不拖垮其他行
func ParseCSV(r io.Reader) ([]Record, []RowError, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, want := range RequiredColumns {
		if _, ok := col[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	field := func(rec []string, name string) string {
		i := col[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var drafts []Record
	var errs []RowError
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			errs = append(errs, RowError{Row: row, Msg: err.Error()})
			continue
		}
		issue, err := domain.ParseDate(field(rec, "issueDate"))
		if err != nil {
			errs = append(errs, RowError{Row: row, Msg: err.Error()})
			continue
		}
		expiry, err := domain.ParseDate(field(rec, "expiryDate"))
		if err != nil {
			errs = append(errs, RowError{Row: row, Msg: err.Error()})
			continue
		}
		drafts = append(drafts, Record{
			Row: row,
			CertificateDraft: domain.CertificateDraft{
				Title:        field(rec, "title"),
				Organization: field(rec, "organization"),
				Category:     field(rec, "category"),
				IssueDate:    issue,
				ExpiryDate:   expiry,
				CredentialID: field(rec, "credentialId"),
			},
		})
	}
	if len(drafts) == 0 && len(errs) == 0 {
		return nil, nil, fmt.Errorf("csv file is empty")
	}
	return drafts, errs, nil
}

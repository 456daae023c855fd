package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV 把到期报表写成 CSV（列序对齐前端表格导出）
func WriteCSV(w io.Writer, rows []ExpiryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"User", "Certificate", "Organization", "Expiry Date", "Days Left", "Status"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.UserName,
			r.Title,
			r.Organization,
			r.ExpiryDate.String(),
			strconv.Itoa(r.DaysLeft),
			string(r.Status),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

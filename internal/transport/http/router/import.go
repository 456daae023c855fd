package router

import (
	"mime/multipart"
	"time"

	"github.com/gin-gonic/gin"

	"certtrack/internal/feature/cert"
	"certtrack/internal/repo"
	httpez "certtrack/internal/transport/http/ez"
)

// mountImport CSV 批量导入：POST /certs/import，multipart 字段名 file。
// 列缺失整体拒绝；单行失败只记错误，其余行照常入库
func mountImport(ez httpez.EZ, st *repo.Store, now func() time.Time) {
	httpez.POSTFILES(ez, "/certs/import", "file", func(c *gin.Context, files []*multipart.FileHeader) (any, error) {
		uid := c.GetString("userId")
		if uid == "" {
			return nil, httpez.Unauthorized("unauthorized")
		}

		f, err := files[0].Open()
		if err != nil {
			return nil, httpez.BadRequest("open upload: " + err.Error())
		}
		defer f.Close()

		drafts, rowErrs, err := cert.ParseCSV(f)
		if err != nil {
			return nil, httpez.BadRequest(err.Error())
		}

		imported := make([]certView, 0, len(drafts))
		t := now()
		for _, d := range drafts {
			d.OwnerID = uid
			created, err := st.AddCert(d.CertificateDraft)
			if err != nil {
				rowErrs = append(rowErrs, cert.RowError{Row: d.Row, Msg: err.Error()})
				continue
			}
			imported = append(imported, viewOf(*created, t))
		}
		return gin.H{
			"imported": len(imported),
			"failed":   len(rowErrs),
			"items":    imported,
			"errors":   rowErrs,
		}, nil
	})
}

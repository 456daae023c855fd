package router

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"certtrack/internal/core/auth"
	"certtrack/internal/core/cache"
	"certtrack/internal/core/config"
	"certtrack/internal/core/server"
	"certtrack/internal/domain"
	"certtrack/internal/feature/report"
	"certtrack/internal/repo"
	httpez "certtrack/internal/transport/http/ez"
	mdw "certtrack/internal/transport/http/middleware"
	resp "certtrack/internal/transport/http/response"
)

// NewAdminEngine 管理端引擎：用户管理 + 全局分析报表，统一要求 admin 角色。
// ch 可以为 nil（未配置 redis 时统计直接现算）
func NewAdminEngine(l *zap.Logger, st *repo.Store, jwter *auth.JWTer, ch *cache.Cache, rep config.Report, now func() time.Time) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		server.AccessLogger(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	mountAdminUsers(admin, st, now)
	mountAdminAnalytics(admin, st, ch, rep, now)

	return r
}

/* ---------- 用户管理 ---------- */

func mountAdminUsers(admin *gin.RouterGroup, st *repo.Store, now func() time.Time) {
	ez := httpez.New(admin)

	type listQ struct {
		Q string `form:"q"` // 按姓名/邮箱模糊搜
	}
	type row struct {
		domain.User
		Stats report.Stats `json:"stats"`
	}
	type listOut struct {
		Total int   `json:"total"`
		Items []row `json:"items"`
	}
	httpez.Register[listQ, listOut](ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			t := now()
			certs := st.Certs()
			users := st.SearchUsers(in.Q)
			out := listOut{Total: len(users), Items: make([]row, 0, len(users))}
			for _, u := range users {
				out.Items = append(out.Items, row{User: u, Stats: report.StatsForOwner(certs, u.ID, t)})
			}
			return out, nil
		},
	})

	httpez.Register[domain.UserPatch, domain.User](ez, httpez.Action[domain.UserPatch, domain.User]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *domain.UserPatch) (domain.User, error) {
			u, err := st.UpdateUser(c.Param("id"), *in)
			if err != nil {
				return domain.User{}, err
			}
			return *u, nil
		},
	})
}

/* ---------- 全局分析 ---------- */

// orgStats 管理端首页五卡
type orgStats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalCerts   int `json:"totalCerts"`
	Active       int `json:"active"`
	ExpiringSoon int `json:"expiringSoon"`
	Expired      int `json:"expired"`
}

func mountAdminAnalytics(admin *gin.RouterGroup, st *repo.Store, ch *cache.Cache, rep config.Report, now func() time.Time) {
	ez := httpez.New(admin)
	ttl := time.Duration(rep.CacheTTLSec) * time.Second

	type certsOut struct {
		Total int        `json:"total"`
		Items []certView `json:"items"`
	}
	httpez.Register[certFilterQ, certsOut](ez, httpez.Action[certFilterQ, certsOut]{
		Method: http.MethodGet,
		Path:   "/certs",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *certFilterQ) (certsOut, error) {
			t := now()
			f, err := in.toFilter("", t) // 不限 owner，全局视角
			if err != nil {
				return certsOut{}, err
			}
			certs := st.FilterCerts(f)
			return certsOut{Total: len(certs), Items: viewsOf(certs, t)}, nil
		},
	})

	httpez.Register[struct{}, orgStats](ez, httpez.Action[struct{}, orgStats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (orgStats, error) {
			out, err := cache.GetOrLoadJSON[orgStats](ch, c.Request.Context(), "certtrack:admin:stats", ttl,
				func(context.Context) (*orgStats, error) {
					certs := st.Certs()
					s := report.StatsFor(certs, now())
					return &orgStats{
						TotalUsers:   len(st.Users()),
						TotalCerts:   s.Total,
						Active:       s.Active,
						ExpiringSoon: s.ExpiringSoon,
						Expired:      s.Expired,
					}, nil
				})
			if err != nil {
				return orgStats{}, httpez.Internal("load stats failed", err)
			}
			return *out, nil
		},
	})

	httpez.Register[struct{}, []report.OwnerGroup](ez, httpez.Action[struct{}, []report.OwnerGroup]{
		Method: http.MethodGet,
		Path:   "/stats/by-user",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]report.OwnerGroup, error) {
			return report.GroupByOwner(st.Certs(), st.Users(), now()), nil
		},
	})

	httpez.Register[struct{}, []report.DepartmentCount](ez, httpez.Action[struct{}, []report.DepartmentCount]{
		Method: http.MethodGet,
		Path:   "/stats/by-department",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]report.DepartmentCount, error) {
			return report.ByDepartment(st.Certs(), st.Users(), rep.Departments), nil
		},
	})

	type topQ struct {
		N int `form:"n,default=5"`
	}
	httpez.Register[topQ, []report.TitleCount](ez, httpez.Action[topQ, []report.TitleCount]{
		Method: http.MethodGet,
		Path:   "/stats/top-titles",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *topQ) ([]report.TitleCount, error) {
			return report.TopTitles(st.Certs(), in.N), nil
		},
	})

	type bucketQ struct {
		Months int `form:"months"`
	}
	httpez.Register[bucketQ, []report.MonthBucket](ez, httpez.Action[bucketQ, []report.MonthBucket]{
		Method: http.MethodGet,
		Path:   "/stats/expiry-buckets",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *bucketQ) ([]report.MonthBucket, error) {
			months := in.Months
			if months <= 0 {
				months = rep.BucketMonths
			}
			return report.MonthlyExpiryBuckets(st.Certs(), now(), months), nil
		},
	})

	// 到期报表：window=0 全量，30/60/90 对应前端的 Tab；
	// format=csv 时直接下载文件，不走统一响应包
	admin.GET("/reports/expiry", func(c *gin.Context) {
		window, err := strconv.Atoi(c.DefaultQuery("window", "0"))
		if err != nil || window < 0 {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "invalid window"))
			return
		}
		rows := report.ExpiryReport(st.Certs(), st.Users(), now(), window)
		if c.Query("format") == "csv" {
			c.Header("Content-Type", "text/csv; charset=utf-8")
			c.Header("Content-Disposition", `attachment; filename="certtrack_expiry_report.csv"`)
			if err := report.WriteCSV(c.Writer, rows); err != nil {
				_ = c.Error(err)
			}
			return
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"total": len(rows), "rows": rows}))
	})
}

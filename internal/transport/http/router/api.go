package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"certtrack/internal/core/auth"
	"certtrack/internal/core/server"
	"certtrack/internal/domain"
	"certtrack/internal/feature/report"
	"certtrack/internal/repo"
	httpez "certtrack/internal/transport/http/ez"
	mdw "certtrack/internal/transport/http/middleware"
)

// NewAPIEngine 用户端引擎：登录 + 个人证书 CRUD/筛选/统计/导入
func NewAPIEngine(l *zap.Logger, st *repo.Store, jwter *auth.JWTer, now func() time.Time) *gin.Engine {
	r := server.NewEngine(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 鉴权分组（/me、证书相关必须挂这里才能拿 userId）
	authUser := api.Group("")
	authUser.Use(mdw.AuthJWT(jwter, ""))

	mountAuthActions(api, authUser, st, jwter)
	mountCertActions(authUser, st, now)

	return r
}

/* ---------- /auth/login + /me ---------- */

func mountAuthActions(api, authUser *gin.RouterGroup, st *repo.Store, jwter *auth.JWTer) {
	ezPublic := httpez.New(api)

	type loginIn struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	type loginOut struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	// 按产品口径对着内置名单做明文比对；提示文案保持一致
	httpez.Register[loginIn, loginOut](ezPublic, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			if in.Email == "" || in.Password == "" {
				return loginOut{}, httpez.BadRequest("Email and password are required.")
			}
			u, err := st.UserByEmail(in.Email)
			if err != nil {
				return loginOut{}, httpez.Internal("lookup failed", err)
			}
			if u == nil {
				return loginOut{}, httpez.Unauthorized("No account found with that email.")
			}
			if u.Password != in.Password {
				return loginOut{}, httpez.Unauthorized("Incorrect password. Please try again.")
			}
			tok, err := jwter.Issue(u.ID, u.Role)
			if err != nil || tok == "" {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{Token: tok, User: *u}, nil
		},
	})

	ezAuth := httpez.New(authUser)
	httpez.Register[struct{}, domain.User](ezAuth, httpez.Action[struct{}, domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.User, error) {
			u, err := st.UserByID(c.GetString("userId"))
			if err != nil {
				return domain.User{}, httpez.Internal("lookup failed", err)
			}
			if u == nil {
				return domain.User{}, httpez.NotFound("user not found")
			}
			return *u, nil
		},
	})
}

/* ---------- 个人证书 ---------- */

type certFilterQ struct {
	Q        string `form:"q"`
	Status   string `form:"status"`
	Category string `form:"category"`
}

func (q *certFilterQ) toFilter(ownerID string, now time.Time) (repo.CertFilter, error) {
	f := repo.CertFilter{OwnerID: ownerID, Query: q.Q, Category: q.Category, Now: now}
	if q.Status != "" {
		st := domain.Status(q.Status)
		if !st.Valid() {
			return f, httpez.BadRequest("unknown status: " + q.Status)
		}
		f.Status = st
	}
	return f, nil
}

func mountCertActions(g *gin.RouterGroup, st *repo.Store, now func() time.Time) {
	ez := httpez.New(g)

	type listOut struct {
		Total int        `json:"total"`
		Items []certView `json:"items"`
	}
	httpez.Register[certFilterQ, listOut](ez, httpez.Action[certFilterQ, listOut]{
		Method: http.MethodGet,
		Path:   "/certs",
		Binder: httpez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *certFilterQ) (listOut, error) {
			t := now()
			f, err := in.toFilter(c.GetString("userId"), t)
			if err != nil {
				return listOut{}, err
			}
			certs := st.FilterCerts(f)
			return listOut{Total: len(certs), Items: viewsOf(certs, t)}, nil
		},
	})

	httpez.Register[domain.CertificateDraft, certView](ez, httpez.Action[domain.CertificateDraft, certView]{
		Method: http.MethodPost,
		Path:   "/certs",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.CertificateDraft) (certView, error) {
			in.OwnerID = c.GetString("userId")
			created, err := st.AddCert(*in)
			if err != nil {
				return certView{}, err
			}
			return viewOf(*created, now()), nil
		},
	})

	// 静态段要先于 :id 参数段理解（gin 的路由优先级已保证）
	httpez.Register[struct{}, []certView](ez, httpez.Action[struct{}, []certView]{
		Method: http.MethodGet,
		Path:   "/certs/upcoming",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]certView, error) {
			t := now()
			up := report.UpcomingSorted(st.CertsByOwner(c.GetString("userId")), t)
			return viewsOf(up, t), nil
		},
	})

	httpez.Register[struct{}, certView](ez, httpez.Action[struct{}, certView]{
		Method: http.MethodGet,
		Path:   "/certs/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (certView, error) {
			found, err := ownedCert(st, c.Param("id"), c.GetString("userId"))
			if err != nil {
				return certView{}, err
			}
			return viewOf(*found, now()), nil
		},
	})

	httpez.Register[domain.CertificatePatch, certView](ez, httpez.Action[domain.CertificatePatch, certView]{
		Method: http.MethodPut,
		Path:   "/certs/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.CertificatePatch) (certView, error) {
			if _, err := ownedCert(st, c.Param("id"), c.GetString("userId")); err != nil {
				return certView{}, err
			}
			updated, err := st.UpdateCert(c.Param("id"), *in)
			if err != nil {
				return certView{}, err
			}
			return viewOf(*updated, now()), nil
		},
	})

	httpez.Register[struct{}, gin.H](ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/certs/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if _, err := ownedCert(st, id, c.GetString("userId")); err != nil {
				return nil, err
			}
			if err := st.RemoveCert(id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.Register[struct{}, report.Stats](ez, httpez.Action[struct{}, report.Stats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (report.Stats, error) {
			return report.StatsFor(st.CertsByOwner(c.GetString("userId")), now()), nil
		},
	})

	mountImport(ez, st, now)
}

// ownedCert 查单条并做归属校验；别人的证书一律当 not found，
// 不暴露存在性
func ownedCert(st *repo.Store, id, uid string) (*domain.Certificate, error) {
	found, err := st.Cert(id)
	if err != nil {
		return nil, httpez.Internal("lookup failed", err)
	}
	if found == nil || found.OwnerID != uid {
		return nil, httpez.NotFound("not found")
	}
	return found, nil
}

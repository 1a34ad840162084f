package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/medcouncil/registry/internal/apikey"
	apikeydomain "github.com/medcouncil/registry/internal/apikey/domain"
	"github.com/medcouncil/registry/internal/authorization"
	"github.com/medcouncil/registry/internal/config"
	"github.com/medcouncil/registry/internal/cpd"
	cpddomain "github.com/medcouncil/registry/internal/cpd/domain"
	"github.com/medcouncil/registry/internal/emailqueue"
	"github.com/medcouncil/registry/internal/examination"
	examinationdomain "github.com/medcouncil/registry/internal/examination/domain"
	"github.com/medcouncil/registry/internal/facility"
	facilitydomain "github.com/medcouncil/registry/internal/facility/domain"
	"github.com/medcouncil/registry/internal/housemanship"
	housemanshipdomain "github.com/medcouncil/registry/internal/housemanship/domain"
	"github.com/medcouncil/registry/internal/invoice"
	invoicedomain "github.com/medcouncil/registry/internal/invoice/domain"
	"github.com/medcouncil/registry/internal/license"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	"github.com/medcouncil/registry/internal/observability"
	obsmiddleware "github.com/medcouncil/registry/internal/observability/logger"
	obsmetrics "github.com/medcouncil/registry/internal/observability/metrics"
	obstracing "github.com/medcouncil/registry/internal/observability/tracing"
	"github.com/medcouncil/registry/internal/payment"
	paymentdomain "github.com/medcouncil/registry/internal/payment/domain"
	"github.com/medcouncil/registry/internal/practitioner"
	practitionerdomain "github.com/medcouncil/registry/internal/practitioner/domain"
	"github.com/medcouncil/registry/internal/providers"
	"github.com/medcouncil/registry/internal/providers/pdf"
	"github.com/medcouncil/registry/internal/ratelimit"
	"github.com/medcouncil/registry/internal/renewal"
	renewaldomain "github.com/medcouncil/registry/internal/renewal/domain"
	"github.com/medcouncil/registry/internal/scheduler"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	apikey.Module,
	license.Module,
	practitioner.Module,
	facility.Module,
	renewal.Module,
	examination.Module,
	housemanship.Module,
	cpd.Module,
	invoice.Module,
	payment.Module,
	providers.Module,
	emailqueue.Module,
	scheduler.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	councilName string

	licenseSvc      licensedomain.Service
	practitionerSvc practitionerdomain.Service
	facilitySvc     facilitydomain.Service
	renewalSvc      renewaldomain.Service
	examinationSvc  examinationdomain.Service
	housemanshipSvc housemanshipdomain.Service
	cpdSvc          cpddomain.Service
	invoiceSvc      invoicedomain.Service
	paymentSvc      paymentdomain.Service
	apiKeySvc       apikeydomain.Service
	apiKeyRepo      apikeydomain.Repository
	authzSvc        authorization.Service
	pdfProvider     pdf.Provider
	obsMetrics      *obsmetrics.Metrics
	limiter         *ratelimit.RequestLimiter
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config
	DB  *gorm.DB
	Log *zap.Logger

	LicenseSvc      licensedomain.Service
	PractitionerSvc practitionerdomain.Service
	FacilitySvc     facilitydomain.Service
	RenewalSvc      renewaldomain.Service
	ExaminationSvc  examinationdomain.Service
	HousemanshipSvc housemanshipdomain.Service
	CPDSvc          cpddomain.Service
	InvoiceSvc      invoicedomain.Service
	PaymentSvc      paymentdomain.Service
	APIKeySvc       apikeydomain.Service
	APIKeyRepo      apikeydomain.Repository
	AuthzSvc        authorization.Service
	PDFProvider     pdf.Provider
	ObsMetrics      *obsmetrics.Metrics       `optional:"true"`
	Limiter         *ratelimit.RequestLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("http.server"),
		councilName:     p.Cfg.CouncilName,
		licenseSvc:      p.LicenseSvc,
		practitionerSvc: p.PractitionerSvc,
		facilitySvc:     p.FacilitySvc,
		renewalSvc:      p.RenewalSvc,
		examinationSvc:  p.ExaminationSvc,
		housemanshipSvc: p.HousemanshipSvc,
		cpdSvc:          p.CPDSvc,
		invoiceSvc:      p.InvoiceSvc,
		paymentSvc:      p.PaymentSvc,
		apiKeySvc:       p.APIKeySvc,
		apiKeyRepo:      p.APIKeyRepo,
		authzSvc:        p.AuthzSvc,
		pdfProvider:     p.PDFProvider,
		obsMetrics:      p.ObsMetrics,
		limiter:         p.Limiter,
	}

	svc.registerAPIRoutes()
	svc.registerDevRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.APIKeyRequired(), s.RateLimit())

	read := s.RequireScope(apikeydomain.ScopeRead)
	write := s.RequireScope(apikeydomain.ScopeWrite)

	// -------- Licenses --------
	api.GET("/licenses", read, s.ListLicenses)
	api.POST("/licenses", write, s.CreateLicense)
	api.GET("/licenses/:id", read, s.GetLicenseByNumber)
	api.GET("/licenses/:id/certificate", read, s.DownloadLicenseCertificate)
	api.GET("/licenses/:id/renewals", read, s.ListRenewalsByLicense)
	api.POST("/licenses/:id/status", write, s.AuthorizeAction(authorization.ObjectLicense, authorization.ActionLicenseSetStatus), s.SetLicenseStatus)
	api.POST("/licenses/:id/renewals/resync", write, s.AuthorizeAction(authorization.ObjectRenewal, authorization.ActionRenewalResync), s.ResyncRenewalSnapshot)

	// -------- Practitioners --------
	api.GET("/practitioners", read, s.ListPractitioners)
	api.POST("/practitioners", write, s.CreatePractitioner)
	api.GET("/practitioners/:id", read, s.GetPractitionerByUUID)
	api.PUT("/practitioners/:id", write, s.UpdatePractitioner)

	// -------- Facilities --------
	api.GET("/facilities", read, s.ListFacilities)
	api.POST("/facilities", write, s.CreateFacility)
	api.GET("/facilities/:id", read, s.GetFacilityByUUID)
	api.PUT("/facilities/:id", write, s.UpdateFacility)
	api.GET("/facilities/:id/postings", read, s.ListPostingsByFacility)

	// -------- Renewals --------
	api.POST("/renewals", write, s.CreateRenewal)
	api.PUT("/renewals/:id", write, s.UpdateRenewal)
	api.DELETE("/renewals/:id", write, s.DeleteRenewal)

	// -------- Examinations --------
	api.POST("/exams", write, s.CreateExam)
	api.POST("/exam_candidates", write, s.CreateExamCandidate)
	api.GET("/exam_candidates/:id", read, s.GetExamCandidate)
	api.PUT("/exam_candidates/:id", write, s.UpdateExamCandidate)
	api.GET("/exam_candidates/:id/registrations", read, s.ListExamRegistrations)
	api.POST("/exam_registrations", write, s.RegisterForExam)
	api.PUT("/exam_registrations/:id", write, s.AuthorizeAction(authorization.ObjectExamination, authorization.ActionExaminationPublish), s.UpdateExamRegistration)
	api.DELETE("/exam_registrations/:id", write, s.DeleteExamRegistration)

	// -------- Housemanship --------
	api.POST("/postings", write, s.AuthorizeAction(authorization.ObjectHousemanship, authorization.ActionHousemanshipAssign), s.CreatePosting)
	api.GET("/postings/:id", read, s.GetPostingByUUID)
	api.PUT("/postings/:id", write, s.UpdatePosting)
	api.GET("/interns/:id/postings", read, s.ListPostingsByInternCode)

	// -------- CPD --------
	api.POST("/cpd/activities", write, s.CreateCPDActivity)
	api.POST("/cpd/attendances", write, s.AuthorizeAction(authorization.ObjectCPD, authorization.ActionCPDRecordAttendance), s.RecordCPDAttendance)
	api.GET("/cpd/summaries/:id", read, s.GetCPDSummary)

	// -------- Invoices --------
	api.POST("/invoices", write, s.CreateInvoice)
	api.GET("/invoices/:id", read, s.GetInvoiceByUUID)
	api.GET("/invoices/:id/pdf", read, s.DownloadInvoicePDF)
	api.GET("/invoices/:id/payments", read, s.GetPaymentSummary)
	api.POST("/invoices/:id/line_items", write, s.AddInvoiceLineItem)
	api.PUT("/line_items/:id", write, s.UpdateInvoiceLineItem)
	api.DELETE("/line_items/:id", write, s.DeleteInvoiceLineItem)
	api.POST("/invoices/:id/finalize", write, s.AuthorizeAction(authorization.ObjectInvoice, authorization.ActionInvoiceFinalize), s.FinalizeInvoice)
	api.POST("/invoices/:id/void", write, s.AuthorizeAction(authorization.ObjectInvoice, authorization.ActionInvoiceVoid), s.VoidInvoice)
	api.GET("/reports/outstanding_invoices", read, s.ListOutstandingInvoices)

	// -------- Payments --------
	api.POST("/payments", write, s.CreatePayment)
	api.GET("/payments/:id", read, s.GetPaymentByReference)
	api.POST("/payments/:id/complete", write, s.AuthorizeAction(authorization.ObjectPayment, authorization.ActionPaymentComplete), s.CompletePayment)
	api.POST("/payments/:id/fail", write, s.FailPayment)

	// -------- API keys --------
	api.GET("/api_keys", s.AuthorizeAction(authorization.ObjectAPIKey, authorization.ActionView), s.ListAPIKeys)
	api.POST("/api_keys", s.AuthorizeAction(authorization.ObjectAPIKey, authorization.ActionCreate), s.CreateAPIKey)
	api.POST("/api_keys/:id/rotate", s.AuthorizeAction(authorization.ObjectAPIKey, authorization.ActionAPIKeyRotate), s.RotateAPIKey)
	api.POST("/api_keys/:id/revoke", s.AuthorizeAction(authorization.ObjectAPIKey, authorization.ActionAPIKeyRevoke), s.RevokeAPIKey)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"smelab/backend/config"
	"smelab/backend/controllers"
	"smelab/backend/middlewares"
)

func Register(r *gin.Engine, cfg config.Config) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register(cfg))
		auth.POST("/login", controllers.Login(cfg))
	}

	api := r.Group("/api", middlewares.Auth(cfg.JWTSecret))
	{
		api.GET("/me", controllers.Me())
		api.GET("/profile", controllers.GetProfile())
		api.PUT("/profile", controllers.UpdateProfile())
		api.POST("/profile/business-type", controllers.SetBusinessType())

		api.GET("/home", controllers.Home())
		api.GET("/events", controllers.Events())

		api.GET("/checklist", controllers.GetChecklist())
		api.PUT("/checklist/:id/toggle", controllers.ToggleChecklistItem())

		api.GET("/onboarding", controllers.GetOnboarding())
		api.POST("/onboarding/answers", controllers.SaveAnswers())
		api.POST("/onboarding/next", controllers.NextStep())
		api.POST("/onboarding/back", controllers.PrevStep())
		api.POST("/onboarding/suggestions", controllers.SuggestNames(cfg))
		api.POST("/onboarding/business-name", controllers.SaveBusinessName())
		api.POST("/onboarding/logo", controllers.GenerateOnboardingLogo(cfg))
		api.POST("/onboarding/finish", controllers.FinishOnboarding(cfg))

		api.GET("/businesses", controllers.ListBusinesses())
		api.POST("/businesses/existing", controllers.CreateExistingBusiness())
		api.GET("/businesses/:id", controllers.GetBusiness())
		api.PUT("/businesses/:id/personal-info", controllers.UpdatePersonalInfo())
		api.PUT("/businesses/:id/business-info", controllers.UpdateBusinessInfo())
		api.PUT("/businesses/:id/partners", controllers.ReplacePartners())
		api.GET("/businesses/:id/partners", controllers.ListPartners())
		api.GET("/businesses/:id/registration", controllers.RegistrationStateHandler(cfg))
		api.POST("/businesses/:id/pay", controllers.PayRegistrationFee(cfg))
		api.POST("/businesses/:id/cac-certificate", controllers.UploadCACCertificate(cfg))

		api.POST("/ai/generate", controllers.GenerateDesigns(cfg))
		api.POST("/ai/save", controllers.SaveDesign(cfg))
		api.POST("/ai/analysis", controllers.AnalyzeIdea(cfg))

		api.GET("/assets", controllers.ListAssets())
		api.DELETE("/assets/:id", controllers.DeleteAsset())

		api.POST("/design-requests", controllers.CreateDesignRequest())
		api.GET("/design-requests", controllers.ListDesignRequests())

		api.POST("/compliance/complete", controllers.CompleteComplianceSetup())
		api.GET("/compliance", controllers.ListCompliance())

		api.POST("/consultations", controllers.BookConsultation())
		api.GET("/consultations", controllers.ListConsultations())

		api.GET("/notifications", controllers.ListNotifications())
		api.PUT("/notifications/:id/read", controllers.MarkNotificationRead())

		api.GET("/messages/:peerID", controllers.GetConversation())
		api.POST("/messages", controllers.SendMessage())
	}

	consultant := r.Group("/api/consultant", middlewares.Auth(cfg.JWTSecret), middlewares.RequireConsultant())
	{
		consultant.GET("/metrics", controllers.ConsultantMetrics())
		consultant.GET("/cac-requests", controllers.ListCACRequests())
		consultant.POST("/cac-requests/:id/review", controllers.ReviewCAC())
		consultant.GET("/design-requests", controllers.ListPendingDesignRequests())
		consultant.POST("/design-requests/:id/complete", controllers.CompleteDesignRequest(cfg))
		consultant.GET("/compliance", controllers.ListPendingCompliance())
		consultant.POST("/compliance/:id/review", controllers.ReviewCompliance())
		consultant.GET("/tasks", controllers.ListTasks())
		consultant.GET("/contacts", controllers.ListContacts())
		consultant.GET("/export/registrations", controllers.ExportRegistrations())
	}
}

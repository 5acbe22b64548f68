package api

import (
	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/guard"
	"github.com/amezghal/careergate/internal/handlers"
)

// Portal page routes. Every route here passes the navigation guard, which
// settles the allow-or-redirect question before a page payload is produced.
func registerPageRoutes(router *gin.Engine, deps Dependencies) {
	portal := handlers.NewPortalHandler(deps.Notifications)
	guarded := guard.Middleware(deps.Codec, deps.Manager)

	router.GET("/", guarded, portal.Home)
	router.GET("/auth/login", guarded, portal.LoginPage)
	router.GET("/auth/register", guarded, portal.RegisterPage)

	// Bare section roots are registered so the guard can rewrite them to the
	// section dashboard instead of falling through to the 404 handler.
	router.GET("/job-seeker", guarded, portal.Section("job_seeker.dashboard"))
	router.GET("/job-seeker/dashboard", guarded, portal.Section("job_seeker.dashboard"))
	router.GET("/job-seeker/profile", guarded, portal.Section("job_seeker.profile"))
	router.GET("/job-seeker/applications", guarded, portal.Section("job_seeker.applications"))
	router.GET("/job-seeker/saved-jobs", guarded, portal.Section("job_seeker.saved_jobs"))

	router.GET("/employer", guarded, portal.Section("employer.dashboard"))
	router.GET("/employer/dashboard", guarded, portal.Section("employer.dashboard"))
	router.GET("/employer/jobs", guarded, portal.Section("employer.jobs"))
	router.GET("/employer/applications", guarded, portal.Section("employer.applications"))
	router.GET("/employer/company", guarded, portal.Section("employer.company"))

	router.GET("/admin", guarded, portal.Section("admin.dashboard"))
	router.GET("/admin/dashboard", guarded, portal.Section("admin.dashboard"))
	router.GET("/admin/users", guarded, portal.Section("admin.users"))
	router.GET("/admin/companies", guarded, portal.Section("admin.companies"))
}

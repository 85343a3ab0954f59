package services

import (
	"log"

	"github.com/fieldserve/backoffice/internal/config"
	"github.com/fieldserve/backoffice/internal/db"
	"github.com/fieldserve/backoffice/internal/mailer"
	"github.com/fieldserve/backoffice/internal/ratelimit"
	"github.com/fieldserve/backoffice/internal/services/dashboard"
	"github.com/fieldserve/backoffice/internal/services/profile"
	"github.com/fieldserve/backoffice/internal/services/servicerequest"
	"github.com/fieldserve/backoffice/internal/services/user"
	"github.com/fieldserve/backoffice/internal/uploads"
)

type Services struct {
	User           *user.UserService
	Profile        *profile.ProfileService
	ServiceRequest *servicerequest.ServiceRequestService
	Dashboard      *dashboard.DashboardService

	Mailer  *mailer.Client
	Limiter ratelimit.Limiter
	Uploads *uploads.DiskStore
}

func NewServices(conf *config.Config) *Services {
	dbconn := db.NewConn(conf)

	mail := mailer.NewClient(conf)

	userRepo := user.NewUserRepo(dbconn)
	profileRepo := profile.NewProfileRepo(dbconn)
	requestRepo := servicerequest.NewServiceRequestRepo(dbconn)

	store, err := uploads.NewDiskStore(conf.UPLOAD_DIR, "/api/uploads")
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	return &Services{
		User:           user.NewUserService(userRepo, profileRepo, mail),
		Profile:        profile.NewProfileService(profileRepo, userRepo),
		ServiceRequest: servicerequest.NewServiceRequestService(requestRepo),
		Dashboard:      dashboard.NewDashboardService(requestRepo, profileRepo),
		Mailer:         mail,
		Limiter:        ratelimit.New(conf),
		Uploads:        store,
	}
}

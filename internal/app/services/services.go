package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/repositories"
	pkgAuth "github.com/yigit/edutube/internal/pkg/auth"
	"github.com/yigit/edutube/internal/pkg/events"
	"github.com/yigit/edutube/internal/pkg/filestorage"
)

// Services holds every application service
type Services struct {
	AuthService  AuthService
	VideoService VideoService
	NoteService  NoteService
	QuizService  QuizService
	AdminService AdminService
}

// Deps are the collaborators the services are built from
type Deps struct {
	Repos         *repositories.Repositories
	JWT           *pkgAuth.JWTService
	Sessions      *auth.SessionGuard
	Storage       filestorage.FileStorage
	Publisher     *events.Publisher
	MaxUploadSize int64
	Auth          AuthOptions
	Logger        zerolog.Logger
}

// NewServices wires the services from deps
func NewServices(d Deps) *Services {
	return &Services{
		AuthService:  NewAuthService(d.Repos.UserRepository, d.JWT, d.Publisher, d.Auth, d.Logger),
		VideoService: NewVideoService(d.Repos.VideoRepository, d.Storage, d.Publisher, d.MaxUploadSize, d.Logger),
		NoteService:  NewNoteService(d.Repos.NoteRepository, d.Storage, d.Publisher, d.MaxUploadSize, d.Logger),
		QuizService:  NewQuizService(d.Repos.QuizRepository, d.Publisher, d.Logger),
		AdminService: NewAdminService(d.Repos.UserRepository, d.Sessions, d.Publisher, d.Logger),
	}
}

package user_http

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	user_client "pubhub-publication-service/internal/clients/user"
	"pubhub-publication-service/internal/logger"
	post_service "pubhub-publication-service/internal/service/post"
)

var validate = validator.New()

// UserHTTPService exposes the identity-provider facing procedures: user
// lookup and account removal.
type UserHTTPService struct {
	log *logger.Logger

	getUserHandler       *GetUserHandler
	deleteAccountHandler *DeleteAccountHandler
}

func NewUserHTTPService(userClient user_client.Client, postService post_service.Service, log *logger.Logger) *UserHTTPService {
	return &UserHTTPService{
		log: log,

		getUserHandler:       NewGetUserHandler(userClient, validate),
		deleteAccountHandler: NewDeleteAccountHandler(postService),
	}
}

func (s *UserHTTPService) RegisterRoutes(public *echo.Group, protected *echo.Group) {
	public.GET("/users/:id", s.getUserHandler.GetUser)

	protected.DELETE("/account", s.deleteAccountHandler.DeleteAccount)
}

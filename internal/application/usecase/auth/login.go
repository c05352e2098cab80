package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
	"github.com/Yeralkhan06/MyProfile3/pkg/auth"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

// Owner holds the single set of credentials allowed to edit the profile.
type Owner struct {
	Email        string
	PasswordHash string
}

type LoginUseCase struct {
	owner  Owner
	jwtSvc *auth.JWTService
	logger logger.Logger
}

func NewLoginUseCase(owner Owner, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	owner.Email = strings.ToLower(strings.TrimSpace(owner.Email))
	return &LoginUseCase{
		owner:  owner,
		jwtSvc: jwtSvc,
		logger: log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	_, span := tracer.Start(ctx, "Execute")
	defer span.End()

	if uc.owner.Email == "" || uc.owner.PasswordHash == "" {
		err := apperror.NewUnauthorized("owner credentials are not configured", nil)
		span.RecordError(err)
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(uc.owner.Email)) == 1
	passwordOK := auth.CheckPasswordHash(input.Password, uc.owner.PasswordHash)
	if !emailOK || !passwordOK {
		err := apperror.NewUnauthorized("email or password is incorrect", nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(profile.OwnerProfileID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.Int64("profile_id", profile.OwnerProfileID))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	return &LoginOutput{AccessToken: token}, nil
}

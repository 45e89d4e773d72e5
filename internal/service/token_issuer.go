package service

import (
	"context"
	"errors"
	"fmt"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrUnknownRole = errors.New("unknown role")

// TokenIssuer signs access tokens and registers them as active, mirroring what
// the authentication service does on login.
type TokenIssuer struct {
	jwtService *jwt.JWTService
	tokens     TokenStore
	log        *logrus.Logger
}

func NewTokenIssuer(jwtService *jwt.JWTService, tokens TokenStore, log *logrus.Logger) *TokenIssuer {
	return &TokenIssuer{
		jwtService: jwtService,
		tokens:     tokens,
		log:        log,
	}
}

func (i *TokenIssuer) Issue(ctx context.Context, userID uuid.UUID, email, role string) (string, error) {
	switch role {
	case entity.RoleAdmin, entity.RoleDoctor, entity.RolePatient:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	token, tokenID, err := i.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	expiry := i.jwtService.GetAccessExpiry()
	if err := i.tokens.Register(ctx, userID, tokenID, expiry); err != nil {
		return "", fmt.Errorf("register access token: %w", err)
	}

	i.log.Infof("Issued %s access token for user %s, expires in %v", role, userID, expiry)
	return token, nil
}

package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"targets/internal/config"
	"targets/pkg/controller"
	"targets/pkg/logger"
	"targets/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SecHandlerOptions configures bearer token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with. Empty disables authentication.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

type subjectKey struct{}

// Subject returns the authenticated token subject stored in ctx, if any.
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey{}).(string)

	return s
}

// SecHandler verifies RS256 bearer tokens.
type SecHandler struct {
	key *rsa.PublicKey
}

// Ensure SecHandler implements controller.Authenticator.
var _ controller.Authenticator = (*SecHandler)(nil)

// NewSecHandler parses the configured public key. With no key configured the
// returned handler is disabled.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || opts.PublicKey == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{key: key}, nil
}

// Enabled reports whether tokens are verified.
func (s *SecHandler) Enabled() bool {
	return s != nil && s.key != nil
}

// Authenticate verifies token and attaches its subject to the context and its logger.
func (s *SecHandler) Authenticate(ctx context.Context, token string) (context.Context, error) {
	if !s.Enabled() {
		return ctx, nil
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid bearer token")
	}
	if claims.Subject == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "token has no subject")
	}

	ctx = context.WithValue(ctx, subjectKey{}, claims.Subject)
	ctx = logger.WithFields(ctx, zap.String("subject", claims.Subject))

	return ctx, nil
}

package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/pkg/jwt"
	"github.com/cineconnect/cineconnect-api/internal/pkg/password"
)

const resetTokenTTL = time.Hour

// RequestReset generates a reset token for the account if it exists.
// The returned response is identical for known and unknown emails; the
// raw token is only surfaced in development mode.
func (s *Service) RequestReset(ctx context.Context, email string, devMode bool) (*ResetRequestResponse, error) {
	email = normalizeEmail(email)

	resp := &ResetRequestResponse{Status: "ok"}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("password reset lookup failed")
		return resp, nil
	}
	if u == nil {
		return resp, nil
	}

	token, err := jwt.GenerateOpaqueToken()
	if err != nil {
		log.Error().Err(err).Msg("password reset token generation failed")
		return resp, nil
	}

	tokenHash := jwt.HashRefreshToken(token)
	if err := s.userRepo.SetResetToken(ctx, u.ID, tokenHash, time.Now().Add(resetTokenTTL)); err != nil {
		log.Error().Err(err).Msg("password reset token store failed")
		return resp, nil
	}

	if devMode {
		resp.DevToken = token
	}

	return resp, nil
}

// ConfirmReset consumes a reset token and sets the new password
func (s *Service) ConfirmReset(ctx context.Context, token, newPassword string) error {
	tokenHash := jwt.HashRefreshToken(token)

	u, err := s.userRepo.GetByResetTokenHash(ctx, tokenHash)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidResetToken
	}
	if !u.ResetTokenExp.Valid || u.ResetTokenExp.Time.Before(time.Now()) {
		return ErrInvalidResetToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}

	return s.userRepo.ClearResetToken(ctx, u.ID)
}

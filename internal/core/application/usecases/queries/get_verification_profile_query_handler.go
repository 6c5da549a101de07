package queries

import (
	"context"
	"database/sql"
	"errors"

	"parcelmatch/internal/core/domain/model/account"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetVerificationProfileQueryHandler reads a verification profile and runs
// the gate over every lifecycle action for it.
type GetVerificationProfileQueryHandler struct {
	db *gorm.DB
}

// NewGetVerificationProfileQueryHandler creates a handler for verification
// profile queries. Requires a GORM database connection for query execution.
func NewGetVerificationProfileQueryHandler(db *gorm.DB) GetVerificationProfileQueryHandler {
	return GetVerificationProfileQueryHandler{db: db}
}

// Handle executes the profile query. A user with no stored profile is
// reported as not found; the gate's nil-profile deferral applies to
// unauthenticated requests, not to authenticated users missing a row.
func (h GetVerificationProfileQueryHandler) Handle(
	ctx context.Context,
	query GetVerificationProfileQuery,
) (GetVerificationProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetVerificationProfileQueryResponse{}, err
	}

	var role string
	var emailVerified, phoneVerified, idVerified bool

	row := h.db.WithContext(ctx).Raw(`
		SELECT role, email_verified, phone_verified, id_verified
		FROM profiles
		WHERE user_id = ?
	`, query.UserID().Bytes()).Row()

	err := row.Scan(&role, &emailVerified, &phoneVerified, &idVerified)
	if errors.Is(err, sql.ErrNoRows) {
		return GetVerificationProfileQueryResponse{},
			errs.NewNotFoundError("userId", query.UserID().String())
	}
	if err != nil {
		return GetVerificationProfileQueryResponse{}, err
	}

	parsedRole, err := account.RoleFromString(role)
	if err != nil {
		return GetVerificationProfileQueryResponse{}, err
	}
	profile, err := account.NewProfile(query.UserID(), parsedRole, emailVerified, phoneVerified, idVerified)
	if err != nil {
		return GetVerificationProfileQueryResponse{}, err
	}

	resp := GetVerificationProfileQueryResponse{
		UserID:        query.UserID(),
		Role:          role,
		EmailVerified: emailVerified,
		PhoneVerified: phoneVerified,
		IDVerified:    idVerified,
	}

	gate := services.NewVerificationGate()
	for _, action := range []services.Action{
		services.ActionPostParcel,
		services.ActionPlaceBid,
		services.ActionSelectBid,
		services.ActionWithdrawBid,
		services.ActionCancelParcel,
		services.ActionUpdateProgress,
	} {
		result := gate.Decide(&profile, action)
		resp.Actions = append(resp.Actions, ActionDecision{
			Action:     string(action),
			Allowed:    result.Decision == services.Allowed,
			RedirectTo: result.RedirectTo,
		})
	}

	return resp, nil
}

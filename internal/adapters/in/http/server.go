// Package http exposes the marketplace over a JSON REST API. Handlers
// translate transport payloads into commands and queries, and translate the
// error taxonomy back into status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/application/usecases/queries"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/parcel"
	"parcelmatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	postParcelHandler           commands.PostParcelCommandHandler
	placeBidHandler             commands.PlaceBidCommandHandler
	withdrawBidHandler          commands.WithdrawBidCommandHandler
	selectBidHandler            commands.SelectBidCommandHandler
	cancelParcelHandler         commands.CancelParcelCommandHandler
	updateProgressHandler       commands.UpdateProgressCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler
	deleteNotificationHandler   commands.DeleteNotificationCommandHandler

	getUserParcelsHandler         queries.GetUserParcelsQueryHandler
	getParcelBidsHandler          queries.GetParcelBidsQueryHandler
	getNotificationsHandler       queries.GetNotificationsQueryHandler
	getUnreadCountHandler         queries.GetUnreadCountQueryHandler
	getVerificationProfileHandler queries.GetVerificationProfileQueryHandler
}

// NewServer creates an HTTP server with the required handlers.
func NewServer(
	postParcelHandler commands.PostParcelCommandHandler,
	placeBidHandler commands.PlaceBidCommandHandler,
	withdrawBidHandler commands.WithdrawBidCommandHandler,
	selectBidHandler commands.SelectBidCommandHandler,
	cancelParcelHandler commands.CancelParcelCommandHandler,
	updateProgressHandler commands.UpdateProgressCommandHandler,
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler,
	deleteNotificationHandler commands.DeleteNotificationCommandHandler,
	getUserParcelsHandler queries.GetUserParcelsQueryHandler,
	getParcelBidsHandler queries.GetParcelBidsQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	getUnreadCountHandler queries.GetUnreadCountQueryHandler,
	getVerificationProfileHandler queries.GetVerificationProfileQueryHandler,
) *Server {
	return &Server{
		postParcelHandler:             postParcelHandler,
		placeBidHandler:               placeBidHandler,
		withdrawBidHandler:            withdrawBidHandler,
		selectBidHandler:              selectBidHandler,
		cancelParcelHandler:           cancelParcelHandler,
		updateProgressHandler:         updateProgressHandler,
		markNotificationReadHandler:   markNotificationReadHandler,
		deleteNotificationHandler:     deleteNotificationHandler,
		getUserParcelsHandler:         getUserParcelsHandler,
		getParcelBidsHandler:          getParcelBidsHandler,
		getNotificationsHandler:       getNotificationsHandler,
		getUnreadCountHandler:         getUnreadCountHandler,
		getVerificationProfileHandler: getVerificationProfileHandler,
	}
}

// RegisterRoutes binds all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/parcels", s.PostParcel)
	api.POST("/parcels/:parcelId/cancel", s.CancelParcel)
	api.POST("/parcels/:parcelId/progress", s.UpdateProgress)
	api.GET("/parcels/:parcelId/bids", s.GetParcelBids)
	api.POST("/parcels/:parcelId/bids", s.PlaceBid)
	api.POST("/parcels/:parcelId/bids/:bidId/select", s.SelectBid)
	api.POST("/bids/:bidId/withdraw", s.WithdrawBid)

	api.GET("/users/:userId/parcels", s.GetUserParcels)
	api.GET("/users/:userId/notifications", s.GetNotifications)
	api.GET("/users/:userId/notifications/unread-count", s.GetUnreadCount)
	api.GET("/users/:userId/verification", s.GetVerificationProfile)

	api.POST("/notifications/:notificationId/read", s.MarkNotificationRead)
	api.DELETE("/notifications/:notificationId", s.DeleteNotification)
}

// ErrorResponse is the uniform error payload. RedirectTo is set only for
// verification denials that point the client at a verification step.
type ErrorResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// writeError maps the error taxonomy onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	var authErr *errs.AuthorizationError
	if errors.As(err, &authErr) {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:       http.StatusForbidden,
			Message:    err.Error(),
			RedirectTo: authErr.RedirectTo,
		})
	}

	switch {
	case errors.Is(err, errs.ErrValidation):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code: http.StatusNotFound, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code: http.StatusConflict, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrAuthorization):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code: http.StatusForbidden, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrTransport):
		return ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Code: http.StatusServiceUnavailable, Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code: http.StatusInternalServerError, Message: "internal error",
		})
	}
}

// actorID extracts the authenticated user from the X-User-ID header. The
// upstream gateway terminates authentication and forwards the identity.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get("X-User-ID")
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("X-User-ID")
	}
	return kernel.UUIDFromString(raw)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValidationErrorWithCause(name, err)
	}
	return id, nil
}

// WaypointRequest is one end of the route.
type WaypointRequest struct {
	Address      string `json:"address"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
}

// PostParcelRequest is the payload for posting a parcel.
type PostParcelRequest struct {
	Description     string          `json:"description"`
	Size            string          `json:"size"`
	WeightGrams     int             `json:"weightGrams"`
	Pickup          WaypointRequest `json:"pickup"`
	Dropoff         WaypointRequest `json:"dropoff"`
	SuggestedCents  *int64          `json:"suggestedCents,omitempty"`
	BiddingDeadline time.Time       `json:"biddingDeadline"`
}

// PostParcelResponse returns the identifier of the created parcel.
type PostParcelResponse struct {
	ID string `json:"id"`
}

// PostParcel handles POST /api/v1/parcels.
func (s *Server) PostParcel(ctx echo.Context) error {
	sender, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req PostParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	size, err := parcel.SizeClassFromString(req.Size)
	if err != nil {
		return writeError(ctx, err)
	}

	pickup, err := parcel.NewWaypoint(req.Pickup.Address, req.Pickup.ContactName, req.Pickup.ContactPhone)
	if err != nil {
		return writeError(ctx, err)
	}
	dropoff, err := parcel.NewWaypoint(req.Dropoff.Address, req.Dropoff.ContactName, req.Dropoff.ContactPhone)
	if err != nil {
		return writeError(ctx, err)
	}

	var suggested *kernel.Price
	if req.SuggestedCents != nil {
		price, priceErr := kernel.NewPrice(*req.SuggestedCents)
		if priceErr != nil {
			return writeError(ctx, priceErr)
		}
		suggested = &price
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewPostParcelCommand(
		parcelID, sender, req.Description, size, req.WeightGrams,
		pickup, dropoff, suggested, req.BiddingDeadline)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.postParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PostParcelResponse{ID: parcelID.String()})
}

// PlaceBidRequest is the payload for placing a bid.
type PlaceBidRequest struct {
	PriceCents     int64  `json:"priceCents"`
	EstimatedHours *int   `json:"estimatedHours,omitempty"`
	Message        string `json:"message,omitempty"`
}

// PlaceBidResponse returns the identifier of the created bid.
type PlaceBidResponse struct {
	ID string `json:"id"`
}

// PlaceBid handles POST /api/v1/parcels/:parcelId/bids.
func (s *Server) PlaceBid(ctx echo.Context) error {
	courier, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req PlaceBidRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	price, err := kernel.NewPrice(req.PriceCents)
	if err != nil {
		return writeError(ctx, err)
	}

	bidID := kernel.NewUUID()
	cmd, err := commands.NewPlaceBidCommand(bidID, parcelID, courier, price, req.EstimatedHours, req.Message)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.placeBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceBidResponse{ID: bidID.String()})
}

// WithdrawBid handles POST /api/v1/bids/:bidId/withdraw.
func (s *Server) WithdrawBid(ctx echo.Context) error {
	courier, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	bidID, err := pathUUID(ctx, "bidId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewWithdrawBidCommand(bidID, courier)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.withdrawBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SelectBid handles POST /api/v1/parcels/:parcelId/bids/:bidId/select.
func (s *Server) SelectBid(ctx echo.Context) error {
	sender, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return writeError(ctx, err)
	}
	bidID, err := pathUUID(ctx, "bidId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSelectBidCommand(parcelID, bidID, sender)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.selectBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelParcel handles POST /api/v1/parcels/:parcelId/cancel.
func (s *Server) CancelParcel(ctx echo.Context) error {
	sender, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelParcelCommand(parcelID, sender)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateProgressRequest reports a lifecycle stage reached by the courier.
type UpdateProgressRequest struct {
	Stage   string  `json:"stage"`
	ProofID *string `json:"proofId,omitempty"`
}

// UpdateProgress handles POST /api/v1/parcels/:parcelId/progress.
func (s *Server) UpdateProgress(ctx echo.Context) error {
	courier, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateProgressRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	stage, err := parcel.StatusFromString(req.Stage)
	if err != nil {
		return writeError(ctx, err)
	}

	var proofID *kernel.UUID
	if req.ProofID != nil {
		proof, proofErr := kernel.UUIDFromString(*req.ProofID)
		if proofErr != nil {
			return writeError(ctx, errs.NewValidationErrorWithCause("proofId", proofErr))
		}
		proofID = &proof
	}

	cmd, err := commands.NewUpdateProgressCommand(parcelID, courier, stage, proofID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateProgressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ParcelResponse is one parcel in a sender's list.
type ParcelResponse struct {
	ID                string     `json:"id"`
	Description       string     `json:"description"`
	Size              string     `json:"size"`
	WeightGrams       int        `json:"weightGrams"`
	Status            string     `json:"status"`
	SuggestedCents    *int64     `json:"suggestedCents,omitempty"`
	BiddingDeadline   *time.Time `json:"biddingDeadline,omitempty"`
	SelectedCourierID *string    `json:"selectedCourierId,omitempty"`
	Version           int        `json:"version"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// GetUserParcels handles GET /api/v1/users/:userId/parcels.
func (s *Server) GetUserParcels(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "userId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetUserParcelsQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	parcels, err := s.getUserParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ParcelResponse, len(parcels))
	for i, p := range parcels {
		response[i] = ParcelResponse{
			ID:                p.ID.String(),
			Description:       p.Description,
			Size:              p.Size,
			WeightGrams:       p.WeightGrams,
			Status:            p.Status,
			SuggestedCents:    p.SuggestedCents,
			BiddingDeadline:   p.BiddingDeadline,
			SelectedCourierID: uuidString(p.SelectedCourierID),
			Version:           p.Version,
			CreatedAt:         p.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// BidResponse is one bid in a parcel's bid list.
type BidResponse struct {
	ID             string     `json:"id"`
	CourierID      string     `json:"courierId"`
	PriceCents     int64      `json:"priceCents"`
	EstimatedHours *int       `json:"estimatedHours,omitempty"`
	Message        string     `json:"message,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	SelectedAt     *time.Time `json:"selectedAt,omitempty"`
}

// GetParcelBids handles GET /api/v1/parcels/:parcelId/bids.
func (s *Server) GetParcelBids(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "parcelId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParcelBidsQuery(parcelID)
	if err != nil {
		return writeError(ctx, err)
	}

	bids, err := s.getParcelBidsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]BidResponse, len(bids))
	for i, b := range bids {
		response[i] = BidResponse{
			ID:             b.ID.String(),
			CourierID:      b.CourierID.String(),
			PriceCents:     b.PriceCents,
			EstimatedHours: b.EstimatedHours,
			Message:        b.Message,
			Status:         b.Status,
			CreatedAt:      b.CreatedAt,
			SelectedAt:     b.SelectedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// NotificationResponse is one row of the notification feed.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	ParcelID  *string   `json:"parcelId,omitempty"`
	DeepLink  string    `json:"deepLink,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetNotifications handles GET /api/v1/users/:userId/notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "userId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetNotificationsQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	feed, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]NotificationResponse, len(feed))
	for i, n := range feed {
		response[i] = NotificationResponse{
			ID:        n.ID.String(),
			Kind:      n.Kind,
			Title:     n.Title,
			Body:      n.Payload,
			Read:      n.Read,
			ParcelID:  uuidString(n.ParcelID),
			DeepLink:  n.DeepLink,
			CreatedAt: n.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UnreadCountResponse carries the badge count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// GetUnreadCount handles GET /api/v1/users/:userId/notifications/unread-count.
func (s *Server) GetUnreadCount(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "userId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetUnreadCountQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	count, err := s.getUnreadCountHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkNotificationRead handles POST /api/v1/notifications/:notificationId/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	userID, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	notificationID, err := pathUUID(ctx, "notificationId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, userID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteNotification handles DELETE /api/v1/notifications/:notificationId.
func (s *Server) DeleteNotification(ctx echo.Context) error {
	userID, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	notificationID, err := pathUUID(ctx, "notificationId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteNotificationCommand(notificationID, userID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deleteNotificationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ActionDecisionResponse reports whether one action is currently allowed.
type ActionDecisionResponse struct {
	Action     string `json:"action"`
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// VerificationProfileResponse carries the verification flags and the
// per-action gate decisions.
type VerificationProfileResponse struct {
	UserID        string                   `json:"userId"`
	Role          string                   `json:"role"`
	EmailVerified bool                     `json:"emailVerified"`
	PhoneVerified bool                     `json:"phoneVerified"`
	IDVerified    bool                     `json:"idVerified"`
	Actions       []ActionDecisionResponse `json:"actions"`
}

// GetVerificationProfile handles GET /api/v1/users/:userId/verification.
func (s *Server) GetVerificationProfile(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "userId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetVerificationProfileQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	profile, err := s.getVerificationProfileHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	actions := make([]ActionDecisionResponse, len(profile.Actions))
	for i, a := range profile.Actions {
		actions[i] = ActionDecisionResponse{
			Action:     a.Action,
			Allowed:    a.Allowed,
			RedirectTo: a.RedirectTo,
		}
	}

	return ctx.JSON(http.StatusOK, VerificationProfileResponse{
		UserID:        profile.UserID.String(),
		Role:          profile.Role,
		EmailVerified: profile.EmailVerified,
		PhoneVerified: profile.PhoneVerified,
		IDVerified:    profile.IDVerified,
		Actions:       actions,
	})
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

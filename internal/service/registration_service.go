package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sportactiv/sportactiv/internal/cache"
	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/internal/dto"
	"github.com/sportactiv/sportactiv/internal/repository"
	"github.com/sportactiv/sportactiv/pkg/logger"
	"github.com/sportactiv/sportactiv/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("already registered for this activity")
	ErrCapacityExceeded     = errors.New("activity capacity exceeded")
	ErrActivityNotOpen      = errors.New("activity is not open for registration")
)

// CounterPolicy controls how registration state changes affect the activity's
// registered_count. Self-cancellation always releases the slot. Whether an
// organizer or admin setting a registration to cancelled also releases it is
// a deployment decision.
type CounterPolicy struct {
	DecrementOnAdminCancel bool
}

// RegistrationService defines the interface for registration operations
type RegistrationService interface {
	// Register registers the user for an activity, atomically claiming a slot
	Register(ctx context.Context, userID string, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error)
	// GetByID retrieves a registration the actor is allowed to see
	GetByID(ctx context.Context, actorID, actorRole, id string) (*dto.RegistrationResponse, error)
	// ListForUser retrieves the user's own registrations
	ListForUser(ctx context.Context, userID string, query *dto.ListRegistrationsQuery) (*dto.ListRegistrationsResponse, error)
	// ListForActivity retrieves registrations for an activity the actor manages
	ListForActivity(ctx context.Context, actorID, actorRole, activityID string, query *dto.ListRegistrationsQuery) (*dto.ListRegistrationsResponse, error)
	// ListAll retrieves registrations across all activities with an optional
	// search over registrant email and activity title
	ListAll(ctx context.Context, query *dto.ListRegistrationsQuery) (*dto.ListRegistrationsResponse, error)
	// Update applies a status/attendance/payment update following the
	// self-cancel and manager branches
	Update(ctx context.Context, actorID, actorRole, id string, req *dto.UpdateRegistrationRequest) (*dto.RegistrationResponse, error)
	// UpdatePayment updates only the payment status
	UpdatePayment(ctx context.Context, actorID, actorRole, id string, req *dto.UpdatePaymentRequest) (*dto.RegistrationResponse, error)
	// Delete removes a registration, releasing its slot when it was active
	Delete(ctx context.Context, actorID, actorRole, id string) error
}

// registrationService implements RegistrationService
type registrationService struct {
	registrationRepo repository.RegistrationRepository
	activityRepo     repository.ActivityRepository
	userRepo         repository.UserRepository
	activityCache    *cache.ActivityCache
	policy           CounterPolicy

	admittedCounter metric.Int64Counter
	rejectedCounter metric.Int64Counter
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
	activityCache *cache.ActivityCache,
	policy CounterPolicy,
) RegistrationService {
	meter := telemetry.GetMeter()
	admitted, _ := meter.Int64Counter("registrations_admitted_total",
		metric.WithDescription("Registrations that successfully claimed a slot"))
	rejected, _ := meter.Int64Counter("registrations_rejected_total",
		metric.WithDescription("Registration attempts rejected at admission"))

	return &registrationService{
		registrationRepo: registrationRepo,
		activityRepo:     activityRepo,
		userRepo:         userRepo,
		activityCache:    activityCache,
		policy:           policy,
		admittedCounter:  admitted,
		rejectedCounter:  rejected,
	}
}

// Register registers the user for an activity. The activity is read fresh to
// copy its current price; the capacity and status checks are enforced inside
// the admission transaction, not here, so concurrent requests cannot oversell.
func (s *registrationService) Register(ctx context.Context, userID string, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "registration.register")
	defer span.End()
	telemetry.SetSpanAttributes(ctx, attribute.String("activity.id", req.ActivityID))

	activity, err := s.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		s.countRejection(ctx, "not_found")
		return nil, ErrActivityNotFound
	}

	// Known repeats are rejected before the admission transaction so they
	// never contend for a slot. The unique index inside the transaction
	// remains the authority for racing duplicates.
	existing, err := s.registrationRepo.GetByUserAndActivity(ctx, userID, req.ActivityID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.countRejection(ctx, "duplicate")
		return nil, ErrAlreadyRegistered
	}

	now := time.Now()
	registration := &domain.Registration{
		ID:               uuid.New().String(),
		UserID:           userID,
		ActivityID:       req.ActivityID,
		Status:           domain.RegistrationStatusPending,
		PaymentStatus:    domain.PaymentStatusUnpaid,
		PaymentAmount:    activity.Price,
		RegistrationDate: now,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.registrationRepo.CreateWithAdmission(ctx, registration); err != nil {
		switch {
		case errors.Is(err, repository.ErrActivityNotFound):
			s.countRejection(ctx, "not_found")
			return nil, ErrActivityNotFound
		case errors.Is(err, repository.ErrActivityFull):
			s.countRejection(ctx, "capacity_exceeded")
			return nil, ErrCapacityExceeded
		case errors.Is(err, repository.ErrActivityNotOpen):
			s.countRejection(ctx, "invalid_state")
			return nil, ErrActivityNotOpen
		case errors.Is(err, repository.ErrDuplicateRegistration):
			s.countRejection(ctx, "duplicate")
			return nil, ErrAlreadyRegistered
		default:
			telemetry.SetSpanError(ctx, err)
			return nil, err
		}
	}

	s.activityCache.Invalidate(ctx, req.ActivityID)
	s.admittedCounter.Add(ctx, 1)
	logger.InfoCtx(ctx, "registration admitted",
		zap.String("registration_id", registration.ID),
		zap.String("activity_id", req.ActivityID),
		zap.String("user_id", userID))

	return s.toRegistrationResponse(ctx, registration, true), nil
}

func (s *registrationService) countRejection(ctx context.Context, reason string) {
	s.rejectedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// GetByID retrieves a registration the actor is allowed to see: the owner,
// the activity's organizer, or an admin
func (s *registrationService) GetByID(ctx context.Context, actorID, actorRole, id string) (*dto.RegistrationResponse, error) {
	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrRegistrationNotFound
	}

	if !registration.BelongsTo(actorID) && !s.canManageActivity(ctx, actorID, actorRole, registration.ActivityID) {
		return nil, ErrForbidden
	}

	return s.toRegistrationResponse(ctx, registration, true), nil
}

// ListForUser retrieves the user's own registrations
func (s *registrationService) ListForUser(ctx context.Context, userID string, query *dto.ListRegistrationsQuery) (*dto.ListRegistrationsResponse, error) {
	query.SetDefaults()
	filter := repository.RegistrationFilter{
		UserID:        userID,
		Status:        query.Status,
		PaymentStatus: query.PaymentStatus,
		Page:          query.Page,
		Limit:         query.Limit,
	}
	return s.list(ctx, filter, query)
}

// ListForActivity retrieves registrations for an activity the actor manages
func (s *registrationService) ListForActivity(ctx context.Context, actorID, actorRole, activityID string, query *dto.ListRegistrationsQuery) (*dto.ListRegistrationsResponse, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	if !activity.CanBeManagedBy(actorID, actorRole) {
		return nil, ErrForbidden
	}

	query.SetDefaults()
	filter := repository.RegistrationFilter{
		ActivityID:    activityID,
		Status:        query.Status,
		PaymentStatus: query.PaymentStatus,
		Page:          query.Page,
		Limit:         query.Limit,
	}
	return s.list(ctx, filter, query)
}

// ListAll retrieves registrations across all activities. Role enforcement
// happens at the routing layer; the search term matches the registrant's
// email or the activity title.
func (s *registrationService) ListAll(ctx context.Context, query *dto.ListRegistrationsQuery) (*dto.ListRegistrationsResponse, error) {
	query.SetDefaults()
	filter := repository.RegistrationFilter{
		Status:        query.Status,
		PaymentStatus: query.PaymentStatus,
		Search:        query.Search,
		Page:          query.Page,
		Limit:         query.Limit,
	}
	return s.list(ctx, filter, query)
}

func (s *registrationService) list(ctx context.Context, filter repository.RegistrationFilter, query *dto.ListRegistrationsQuery) (*dto.ListRegistrationsResponse, error) {
	registrations, totalCount, err := s.registrationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, registration := range registrations {
		responses = append(responses, *s.toRegistrationResponse(ctx, registration, false))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))
	return &dto.ListRegistrationsResponse{
		Registrations: responses,
		TotalCount:    totalCount,
		Page:          query.Page,
		Limit:         query.Limit,
		TotalPages:    totalPages,
	}, nil
}

// Update applies a status/attendance/payment update. Two branches exist, in
// order:
//
//  1. The registrant cancelling their own registration. The slot is always
//     released.
//  2. The activity's organizer or an admin editing any subset of fields.
//     Setting status to cancelled here releases the slot only when the
//     DecrementOnAdminCancel policy is enabled.
//
// Any other actor/field combination is forbidden.
func (s *registrationService) Update(ctx context.Context, actorID, actorRole, id string, req *dto.UpdateRegistrationRequest) (*dto.RegistrationResponse, error) {
	if valid, errMsg := req.Validate(); !valid {
		return nil, errors.New(errMsg)
	}

	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrRegistrationNotFound
	}

	selfCancel := req.Status != nil && *req.Status == domain.RegistrationStatusCancelled &&
		registration.BelongsTo(actorID)

	if selfCancel {
		if registration.IsCancelled() {
			return s.toRegistrationResponse(ctx, registration, true), nil
		}
		if err := s.registrationRepo.CancelWithRelease(ctx, registration.ID, registration.ActivityID); err != nil {
			return nil, err
		}
		s.activityCache.Invalidate(ctx, registration.ActivityID)
		registration.Status = domain.RegistrationStatusCancelled
		logger.InfoCtx(ctx, "registration self-cancelled",
			zap.String("registration_id", registration.ID),
			zap.String("activity_id", registration.ActivityID))
		return s.toRegistrationResponse(ctx, registration, true), nil
	}

	if !s.canManageActivity(ctx, actorID, actorRole, registration.ActivityID) {
		return nil, ErrForbidden
	}

	becomesCancelled := req.Status != nil && *req.Status == domain.RegistrationStatusCancelled &&
		!registration.IsCancelled()

	if becomesCancelled && s.policy.DecrementOnAdminCancel {
		if err := s.registrationRepo.CancelWithRelease(ctx, registration.ID, registration.ActivityID); err != nil {
			return nil, err
		}
		s.activityCache.Invalidate(ctx, registration.ActivityID)
	}
	if req.Status != nil {
		registration.Status = *req.Status
	}
	if req.AttendanceStatus != nil {
		registration.AttendanceStatus = *req.AttendanceStatus
	}
	if req.PaymentStatus != nil {
		s.applyPaymentStatus(registration, *req.PaymentStatus)
	}
	if req.Notes != nil {
		registration.Notes = *req.Notes
	}

	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		return nil, err
	}

	return s.toRegistrationResponse(ctx, registration, true), nil
}

// UpdatePayment updates only the payment status
func (s *registrationService) UpdatePayment(ctx context.Context, actorID, actorRole, id string, req *dto.UpdatePaymentRequest) (*dto.RegistrationResponse, error) {
	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrRegistrationNotFound
	}
	if !s.canManageActivity(ctx, actorID, actorRole, registration.ActivityID) {
		return nil, ErrForbidden
	}

	s.applyPaymentStatus(registration, req.PaymentStatus)

	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		return nil, err
	}
	return s.toRegistrationResponse(ctx, registration, true), nil
}

// applyPaymentStatus sets the payment status, stamping payment_date the first
// time it becomes paid. A later transition back to paid keeps the original date.
func (s *registrationService) applyPaymentStatus(registration *domain.Registration, paymentStatus string) {
	registration.PaymentStatus = paymentStatus
	if paymentStatus == domain.PaymentStatusPaid && registration.PaymentDate == nil {
		now := time.Now()
		registration.PaymentDate = &now
	}
}

// Delete removes a registration. The owner or an admin may delete. The slot
// is released only when the registration still counted toward capacity and
// the activity still exists.
func (s *registrationService) Delete(ctx context.Context, actorID, actorRole, id string) error {
	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if registration == nil {
		return ErrRegistrationNotFound
	}
	if !registration.BelongsTo(actorID) && actorRole != domain.RoleAdmin {
		return ErrForbidden
	}

	activity, err := s.activityRepo.GetByID(ctx, registration.ActivityID)
	if err != nil {
		return err
	}

	releaseSlot := activity != nil && registration.CountsTowardCapacity()
	if err := s.registrationRepo.Delete(ctx, registration.ID, registration.ActivityID, releaseSlot); err != nil {
		return err
	}
	s.activityCache.Invalidate(ctx, registration.ActivityID)
	return nil
}

// canManageActivity reports whether the actor is the activity's organizer or
// an admin. A missing activity leaves only admins in charge.
func (s *registrationService) canManageActivity(ctx context.Context, actorID, actorRole, activityID string) bool {
	if actorRole == domain.RoleAdmin {
		return true
	}
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil || activity == nil {
		return false
	}
	return activity.CanBeManagedBy(actorID, actorRole)
}

// toRegistrationResponse converts domain.Registration to dto.RegistrationResponse
func (s *registrationService) toRegistrationResponse(ctx context.Context, registration *domain.Registration, populate bool) *dto.RegistrationResponse {
	resp := &dto.RegistrationResponse{
		ID:               registration.ID,
		UserID:           registration.UserID,
		ActivityID:       registration.ActivityID,
		Status:           registration.Status,
		PaymentStatus:    registration.PaymentStatus,
		PaymentAmount:    registration.PaymentAmount,
		RegistrationDate: registration.RegistrationDate.Format(time.RFC3339),
		AttendanceStatus: registration.AttendanceStatus,
		Notes:            registration.Notes,
		CreatedAt:        registration.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        registration.UpdatedAt.Format(time.RFC3339),
	}
	if registration.PaymentDate != nil {
		resp.PaymentDate = registration.PaymentDate.Format(time.RFC3339)
	}

	if populate {
		if user, err := s.userRepo.GetByID(ctx, registration.UserID); err == nil && user != nil {
			resp.User = toUserResponse(user)
		}
		if activity, err := s.activityRepo.GetByID(ctx, registration.ActivityID); err == nil && activity != nil {
			resp.Activity = &dto.ActivityResponse{
				ID:              activity.ID,
				Title:           activity.Title,
				Location:        activity.Location,
				Date:            activity.Date.Format(time.RFC3339),
				Capacity:        activity.Capacity,
				RegisteredCount: activity.RegisteredCount,
				AvailableSlots:  activity.AvailableSlots(),
				Price:           activity.Price,
				Status:          activity.Status,
			}
		}
	}

	return resp
}

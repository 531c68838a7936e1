package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/features/moderation"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
	"github.com/xyz-asif/awaaz-admin/internal/realtime"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, report *Report) error
	List(ctx context.Context, q ListQuery) ([]Report, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Report, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to, note, by string, at time.Time) (*Report, error)
}

// Moderator applies the auto-block rule to a reported email
type Moderator interface {
	RecordReport(ctx context.Context, email string) (moderation.Outcome, error)
}

type Publisher interface {
	Publish(eventType string, data any)
}

// transitions lists the statuses reachable from each status
var transitions = map[string][]string{
	StatusOpen:      {StatusInReview, StatusResolved, StatusDismissed},
	StatusInReview:  {StatusOpen, StatusResolved, StatusDismissed},
	StatusResolved:  {StatusOpen},
	StatusDismissed: {StatusOpen},
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Service struct {
	store     Store
	moderator Moderator
	publisher Publisher
	now       func() time.Time
	log       *zap.Logger
}

func NewService(store Store, moderator Moderator, publisher Publisher) *Service {
	return &Service{
		store:     store,
		moderator: moderator,
		publisher: publisher,
		now:       time.Now,
		log:       logger.Named("reports"),
	}
}

// Create stores an OPEN report and, when it names a user email, counts it
// toward that user's auto-block threshold.
func (s *Service) Create(ctx context.Context, req CreateReportRequest, reporter string) (*CreateReportResponse, error) {
	if err := ValidateCreate(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	report := &Report{
		Type:            req.Type,
		Reason:          req.Reason,
		Description:     req.Description,
		TargetUserEmail: req.TargetUserEmail,
		ReportedBy:      reporter,
		Status:          StatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.TargetID != "" {
		id, err := primitive.ObjectIDFromHex(req.TargetID)
		if err != nil {
			return nil, fmt.Errorf("targetId: %w", apperrors.ErrInvalidID)
		}
		report.TargetID = &id
	}

	if err := s.store.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	resp := &CreateReportResponse{Report: report}

	if report.TargetUserEmail != "" && s.moderator != nil {
		outcome, err := s.moderator.RecordReport(ctx, report.TargetUserEmail)
		if err != nil {
			s.log.Error("auto-block check failed",
				zap.String("reportId", report.ID.Hex()),
				zap.String("email", report.TargetUserEmail),
				zap.Error(err),
			)
		} else {
			resp.Moderation = &outcome
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(realtime.EventReportCreated, report)
	}
	return resp, nil
}

func (s *Service) List(ctx context.Context, reportType string, q ListQuery) ([]Report, int64, error) {
	q.Normalize()
	q.Type = reportType
	return s.store.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, req UpdateStatusRequest, adminEmail string) (*Report, error) {
	if !IsValidStatus(req.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, apperrors.ErrValidation)
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == req.Status {
		return nil, fmt.Errorf("report is already %s: %w", req.Status, apperrors.ErrConflict)
	}
	if !CanTransition(current.Status, req.Status) {
		return nil, fmt.Errorf("%s -> %s: %w", current.Status, req.Status, apperrors.ErrInvalidTransition)
	}

	return s.store.UpdateStatus(ctx, id, current.Status, req.Status, req.Note, adminEmail, s.now().UTC())
}

// ValidateCreate normalizes the request and enforces per-type targets
func ValidateCreate(req *CreateReportRequest) error {
	req.TargetUserEmail = validator.NormalizeEmail(req.TargetUserEmail)

	if !IsValidType(req.Type) {
		return fmt.Errorf("unknown report type %q: %w", req.Type, apperrors.ErrValidation)
	}
	if req.TargetUserEmail != "" && !validator.IsValidEmail(req.TargetUserEmail) {
		return fmt.Errorf("invalid targetUserEmail: %w", apperrors.ErrValidation)
	}
	if req.Type == TypeUser && req.TargetUserEmail == "" {
		return fmt.Errorf("USER reports need targetUserEmail: %w", apperrors.ErrValidation)
	}
	if req.Type != TypeUser && req.TargetID == "" {
		return fmt.Errorf("%s reports need targetId: %w", req.Type, apperrors.ErrValidation)
	}
	return nil
}

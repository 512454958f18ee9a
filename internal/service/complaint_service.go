package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/store"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
)

const idSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type complaintStore interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
	Update(ctx context.Context, complaint *models.Complaint) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Complaint, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error)
}

// ComplaintCache caches the full complaint register between writes.
type ComplaintCache interface {
	Get(ctx context.Context) ([]models.Complaint, bool)
	Set(ctx context.Context, complaints []models.Complaint)
	Invalidate(ctx context.Context)
}

// SubmitComplaintRequest holds the complaint submission payload.
type SubmitComplaintRequest struct {
	StudentID     string             `json:"studentId" validate:"required"`
	StudentName   string             `json:"studentName" validate:"required"`
	StudentEmail  string             `json:"studentEmail" validate:"required"`
	Department    string             `json:"department" validate:"required"`
	Year          string             `json:"year"`
	ComplaintType string             `json:"complaintType" validate:"required"`
	Subject       string             `json:"subject" validate:"required"`
	Description   string             `json:"description" validate:"required"`
	Attachment    *models.Attachment `json:"attachment"`
}

// RespondRequest holds a partial faculty update. Omitted fields are left
// unchanged.
type RespondRequest struct {
	Status          *string `json:"status"`
	FacultyResponse *string `json:"facultyResponse"`
}

// ComplaintService implements the complaint ledger.
type ComplaintService struct {
	repo        complaintStore
	attachments *AttachmentValidator
	cache       ComplaintCache
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewComplaintService constructs the complaint service. cache and metrics
// may be nil.
func NewComplaintService(repo complaintStore, attachments *AttachmentValidator, cache ComplaintCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ComplaintService {
	if attachments == nil {
		attachments = NewAttachmentValidator()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{
		repo:        repo,
		attachments: attachments,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// Submit records a new complaint. The attachment, when present, is validated
// before any write; a rejected attachment never creates a complaint.
func (s *ComplaintService) Submit(ctx context.Context, req SubmitComplaintRequest) (*models.Complaint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid complaint payload")
	}

	now := time.Now().UTC()
	if req.Attachment != nil {
		if err := s.attachments.Validate(req.Attachment); err != nil {
			return nil, err
		}
		req.Attachment.UploadedAt = now
	}

	complaint := &models.Complaint{
		StudentID:     req.StudentID,
		StudentName:   req.StudentName,
		StudentEmail:  req.StudentEmail,
		Department:    req.Department,
		Year:          req.Year,
		ComplaintType: req.ComplaintType,
		Subject:       req.Subject,
		Description:   req.Description,
		Status:        models.StatusPending,
		Attachment:    req.Attachment,
		CreatedAt:     now,
	}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		complaint.ID, err = generateComplaintID(now)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate complaint id")
		}
		err = s.repo.Create(ctx, complaint)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return nil, wrapStoreErr(err, "failed to save complaint")
		}
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate complaint id")
	}

	s.invalidate(ctx)
	if s.metrics != nil {
		s.metrics.ComplaintSubmitted(complaint.ComplaintType)
	}
	s.logger.Info("complaint submitted",
		zap.String("complaint_id", complaint.ID),
		zap.String("student_id", complaint.StudentID),
		zap.Bool("has_attachment", complaint.Attachment != nil),
	)
	return complaint, nil
}

// Respond applies a partial faculty update. responded_at is stamped when the
// first faculty response lands and never changes afterwards.
func (s *ComplaintService) Respond(ctx context.Context, id string, req RespondRequest) (*models.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
		}
		return nil, wrapStoreErr(err, "failed to load complaint")
	}

	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		complaint.Status = *req.Status
	}
	if req.FacultyResponse != nil {
		complaint.FacultyResponse = req.FacultyResponse
		if complaint.RespondedAt == nil {
			respondedAt := time.Now().UTC()
			complaint.RespondedAt = &respondedAt
		}
	}

	if err := s.repo.Update(ctx, complaint); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
		}
		return nil, wrapStoreErr(err, "failed to update complaint")
	}

	s.invalidate(ctx)
	if s.metrics != nil && req.FacultyResponse != nil {
		s.metrics.ComplaintResponded()
	}
	return complaint, nil
}

// List returns the full register, newest first, through the cache when one
// is configured.
func (s *ComplaintService) List(ctx context.Context) ([]models.Complaint, error) {
	if s.cache != nil {
		if complaints, ok := s.cache.Get(ctx); ok {
			return complaints, nil
		}
	}
	complaints, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to list complaints")
	}
	if s.cache != nil {
		s.cache.Set(ctx, complaints)
	}
	return complaints, nil
}

// ListByStudent returns one student's complaints, newest first.
func (s *ComplaintService) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	complaints, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to list student complaints")
	}
	return complaints, nil
}

// Delete removes a complaint. Deleting an unknown id is a no-op and
// succeeds.
func (s *ComplaintService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapStoreErr(err, "failed to delete complaint")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ComplaintService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// generateComplaintID produces C{base36 unix-millis}{3 random base36 chars}.
func generateComplaintID(now time.Time) (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random suffix: %w", err)
	}
	suffix := make([]byte, 3)
	for i, b := range buf {
		suffix[i] = idSuffixAlphabet[int(b)%len(idSuffixAlphabet)]
	}
	return "C" + strconv.FormatInt(now.UnixMilli(), 36) + string(suffix), nil
}

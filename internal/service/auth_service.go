package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/store"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
)

// institutionalEmailPattern matches scXXXXsaXXXXX@dmiher.edu.in with a
// five-digit serial. The domain match is case-sensitive.
var institutionalEmailPattern = regexp.MustCompile(`^sc\d{4}sa\d{5}@dmiher\.edu\.in$`)

// ValidateInstitutionalEmail reports whether email is a valid
// institution-issued address.
func ValidateInstitutionalEmail(email string) bool {
	return institutionalEmailPattern.MatchString(email)
}

// HashPassword derives a bcrypt hash from a plaintext credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type authFacultyStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Faculty, error)
}

type authStudentStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService provides the unified login and token validation use cases.
type AuthService struct {
	faculty   authFacultyStore
	students  authStudentStore
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(faculty authFacultyStore, students authStudentStore, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{faculty: faculty, students: students, validator: validate, logger: logger, config: config}
}

// Login authenticates a faculty or student account. Faculty accounts are
// checked before students, so an address present in both resolves to the
// faculty login. The returned identity never carries the credential hash.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	if !ValidateInstitutionalEmail(req.Email) {
		return nil, appErrors.Clone(appErrors.ErrInvalidEmailFormat, "")
	}

	faculty, err := s.faculty.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, wrapStoreErr(err, "failed to look up faculty account")
	}
	if faculty != nil {
		if bcrypt.CompareHashAndPassword([]byte(faculty.PasswordHash), []byte(req.Password)) != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		s.logger.Info("faculty login", zap.String("email", faculty.Email))
		return s.loginResponse(models.RoleFaculty, faculty.ID, faculty.Email, faculty)
	}

	student, err := s.students.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, wrapStoreErr(err, "failed to look up student account")
	}
	if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)) != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	s.logger.Info("student login", zap.String("email", student.Email), zap.String("student_id", student.ID))
	return s.loginResponse(models.RoleStudent, student.ID, student.Email, student)
}

func (s *AuthService) loginResponse(role, userID, email string, user interface{}) (*models.LoginResponse, error) {
	token, issuedAt, err := s.generateAccessToken(role, userID, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	return &models.LoginResponse{
		UserType:    role,
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		IssuedAt:    issuedAt,
	}, nil
}

func (s *AuthService) generateAccessToken(role, userID, email string) (string, time.Time, error) {
	now := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, now, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

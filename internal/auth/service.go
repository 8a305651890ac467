package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardhq/workforce-management/internal"
)

// Service drives the login state machine: credential lookup, password
// check, employment context, permission aggregation and token issuance.
type Service struct {
	repo     Repository
	tokenGen TokenGenerator
	hasher   *PasswordHasher
	logger   *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGenerator, hasher *PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenGen: tokenGen,
		hasher:   hasher,
		logger:   logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Login validates credentials and assembles the session response. Every
// attempt is written to the audit log, including attempts against
// identifiers that resolve to no account.
func (s *Service) Login(dto LoginDTO, meta ClientMetadata) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	account, err := s.repo.FindAccount(dto.Username)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			if logErr := s.repo.LogAttempt(dto.Username, loginStatusFail, meta, now); logErr != nil {
				s.logger.Error("failed to log login attempt", "error", logErr, "username", dto.Username)
			}
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("credential lookup failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("login failed", err)
	}

	passwordValid := s.hasher.Verify(dto.Password, account.PasswordHash)

	status := loginStatusFail
	if passwordValid {
		status = loginStatusPass
	}
	if err := s.repo.LogAttempt(account.Username, status, meta, now); err != nil {
		// The audit trail is mandatory; a failed insert fails the login.
		s.logger.Error("failed to log login attempt", "error", err, "username", account.Username)
		return nil, internal.NewInternalError("login failed", err)
	}

	if !passwordValid {
		return nil, ErrInvalidCredentials
	}

	result := &LoginResult{
		EmployeeNo: account.EmployeeNo,
		Username:   account.Username,
		UserType:   account.UserType,
	}

	if account.Employment == "Yes" && account.EmployeeNo != nil {
		if err := s.gatherEmployeeContext(account, result, now); err != nil {
			return nil, err
		}
	}

	permissionIDs := []int64{}
	if account.UserRole != nil {
		permissionIDs, err = s.repo.PermissionIDs(*account.UserRole)
		if err != nil {
			s.logger.Error("permission aggregation failed", "error", err, "role_id", *account.UserRole)
			return nil, internal.NewInternalError("login failed", err)
		}
	}
	result.PermissionIDs = permissionIDs

	subject := account.Subject()

	accessToken, err := s.tokenGen.GenerateAccessToken(subject, permissionIDs)
	if err != nil {
		s.logger.Error("access token signing failed", "error", err, "subject", subject)
		return nil, internal.NewInternalError("login failed", err)
	}
	refreshToken, err := s.tokenGen.GenerateRefreshToken(subject)
	if err != nil {
		s.logger.Error("refresh token signing failed", "error", err, "subject", subject)
		return nil, internal.NewInternalError("login failed", err)
	}

	refreshExpiry := now.Add(s.tokenGen.RefreshTokenLifetime())
	if err := s.repo.UpsertRefreshToken(subject, refreshToken, refreshExpiry); err != nil {
		s.logger.Error("refresh token upsert failed", "error", err, "subject", subject)
		return nil, internal.NewInternalError("login failed", err)
	}

	result.UserToken = accessToken
	result.RefreshToken = refreshToken

	currency, symbol, ok, err := s.repo.DefaultCurrency()
	if err != nil {
		s.logger.Error("currency lookup failed", "error", err)
		return nil, internal.NewInternalError("login failed", err)
	}
	if !ok {
		currency, symbol = fallbackCurrency, fallbackSymbol
	}
	result.Currency = currency
	result.Symbol = symbol

	s.logger.Info("login succeeded", "subject", subject, "user_type", account.UserType)
	return result, nil
}

func (s *Service) gatherEmployeeContext(account *Account, result *LoginResult, now time.Time) error {
	employeeNo := *account.EmployeeNo

	ctx, err := s.repo.EmployeeContext(employeeNo)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return ErrUserInactive
		}
		s.logger.Error("employee context lookup failed", "error", err, "employee_no", employeeNo)
		return internal.NewInternalError("login failed", err)
	}
	if !ctx.ActiveStatus {
		return ErrUserInactive
	}

	result.EmployeeFullname = &ctx.Fullname
	result.EmployeeNameInitial = ctx.NameInitial
	result.EmployeeCallingName = ctx.CallingName
	result.Designation = ctx.Designation
	result.Department = ctx.Department

	attendance, err := s.repo.AttendanceForDay(employeeNo, now)
	if err != nil {
		s.logger.Error("attendance lookup failed", "error", err, "employee_no", employeeNo)
		return internal.NewInternalError("login failed", err)
	}
	if attendance != nil {
		result.CheckInTime = attendance.CheckInTime
		result.CheckInType = attendance.CheckInType
		result.CheckOutTime = attendance.CheckOutTime
		result.CheckOutType = attendance.CheckOutType
		result.AttendanceStatus = attendance.Status
	}

	supervisorID, err := s.repo.SupervisorID(employeeNo)
	if err != nil {
		s.logger.Error("supervisor lookup failed", "error", err, "employee_no", employeeNo)
		return internal.NewInternalError("login failed", err)
	}
	result.SupervisorID = supervisorID

	return nil
}

// RefreshTokens validates a refresh token and issues a new pair.
// Refresh tokens carry identity only, so the permission set is
// re-resolved from the account's current role before signing the new
// access token.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGen.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	account, err := s.repo.FindAccount(claims.Subject)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return AuthTokens{}, ErrInvalidToken
		}
		s.logger.Error("account lookup failed during refresh", "error", err, "subject", claims.Subject)
		return AuthTokens{}, internal.NewInternalError("token refresh failed", err)
	}

	permissionIDs := []int64{}
	if account.UserRole != nil {
		permissionIDs, err = s.repo.PermissionIDs(*account.UserRole)
		if err != nil {
			s.logger.Error("permission aggregation failed", "error", err, "role_id", *account.UserRole)
			return AuthTokens{}, internal.NewInternalError("token refresh failed", err)
		}
	}

	accessToken, err := s.tokenGen.GenerateAccessToken(claims.Subject, permissionIDs)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("token refresh failed", err)
	}

	newRefreshToken, err := s.tokenGen.GenerateRefreshToken(claims.Subject)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("token refresh failed", err)
	}

	refreshExpiry := time.Now().Add(s.tokenGen.RefreshTokenLifetime())
	if err := s.repo.UpsertRefreshToken(claims.Subject, newRefreshToken, refreshExpiry); err != nil {
		return AuthTokens{}, internal.NewInternalError("token refresh failed", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// RBACAuthorization builds the permission gate the router hangs routes on.
func (s *Service) RBACAuthorization() *RBACAuthorization {
	return NewRBACAuthorization(s.logger)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

func (j *JWTTokenGenerator) GenerateAccessToken(subject string, permissionIDs []int64) (string, error) {
	expiresAt := time.Now().Add(j.AccessTokenTTL)

	claims := &Claims{
		Subject:       subject,
		PermissionIDs: permissionIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(subject string) (string, error) {
	expiresAt := time.Now().Add(j.RefreshTokenTTL)

	claims := &Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.RefreshTokenSecret)
}

// ValidateToken validates a JWT and returns its claims. Refresh tokens
// are recognised by their remaining lifetime exceeding the access TTL.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		if claims, ok := token.Claims.(*Claims); ok {
			if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (j *JWTTokenGenerator) RefreshTokenLifetime() time.Duration {
	return j.RefreshTokenTTL
}

// PasswordHasher wraps bcrypt with a fixed cost.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsHashed reports whether a stored value already looks like a bcrypt
// hash, so callers forwarding unchanged values do not double-hash.
func IsHashed(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}

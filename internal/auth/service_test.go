package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/guardhq/workforce-management/internal"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type loggedAttempt struct {
	Username string
	Status   string
}

// Mock session repository for testing
type mockSessionRepository struct {
	accounts      map[string]*Account
	employeeCtx   map[string]*EmployeeContext
	attendance    map[string]*Attendance
	supervisors   map[string]*int64
	permissions   map[int64][]int64
	currency      *[2]string
	attempts      []loggedAttempt
	refreshTokens map[string]string

	failLogAttempt bool
	returnError    bool
	errorToReturn  error
}

func newMockSessionRepository(hasher *PasswordHasher) *mockSessionRepository {
	hash, _ := hasher.Hash("correct_password")

	guardNo := "EMP001"
	roleAdmin := int64(1)
	roleGuard := int64(2)

	return &mockSessionRepository{
		accounts: map[string]*Account{
			"admin": {
				ID: 1, Username: "admin", PasswordHash: hash,
				UserRole: &roleAdmin, UserType: "superadmin", Employment: "No",
			},
			"EMP001": {
				ID: 2, EmployeeNo: &guardNo, Username: "guard1", PasswordHash: hash,
				UserRole: &roleGuard, UserType: "user", Employment: "Yes",
			},
		},
		employeeCtx:   map[string]*EmployeeContext{},
		attendance:    map[string]*Attendance{},
		supervisors:   map[string]*int64{},
		permissions:   map[int64][]int64{1: {1, 2, 3, 4, 5, 6}, 2: {6}},
		refreshTokens: map[string]string{},
	}
}

func (m *mockSessionRepository) FindAccount(identifier string) (*Account, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if account, ok := m.accounts[identifier]; ok {
		return account, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockSessionRepository) LogAttempt(username, status string, meta ClientMetadata, at time.Time) error {
	if m.failLogAttempt {
		return errors.New("insert failed")
	}
	m.attempts = append(m.attempts, loggedAttempt{Username: username, Status: status})
	return nil
}

func (m *mockSessionRepository) EmployeeContext(employeeNo string) (*EmployeeContext, error) {
	if ctx, ok := m.employeeCtx[employeeNo]; ok {
		return ctx, nil
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockSessionRepository) AttendanceForDay(employeeNo string, day time.Time) (*Attendance, error) {
	return m.attendance[employeeNo], nil
}

func (m *mockSessionRepository) SupervisorID(employeeNo string) (*int64, error) {
	return m.supervisors[employeeNo], nil
}

func (m *mockSessionRepository) PermissionIDs(roleID int64) ([]int64, error) {
	if ids, ok := m.permissions[roleID]; ok {
		return ids, nil
	}
	return []int64{}, nil
}

func (m *mockSessionRepository) DefaultCurrency() (string, string, bool, error) {
	if m.currency == nil {
		return "", "", false, nil
	}
	return m.currency[0], m.currency[1], true, nil
}

func (m *mockSessionRepository) UpsertRefreshToken(subject, token string, expiresAt time.Time) error {
	m.refreshTokens[subject] = token
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockSessionRepository
		tokenGen *JWTTokenGenerator
		hasher   *PasswordHasher
	)

	ginkgo.BeforeEach(func() {
		hasher = NewPasswordHasher(4)
		mockRepo = newMockSessionRepository(hasher)
		tokenGen = NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(mockRepo, tokenGen, hasher, lg)
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("with valid admin credentials", func() {
			ginkgo.It("should return tokens and permissions without employee context", func() {
				result, err := service.Login(LoginDTO{Username: "admin", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.UserToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.PermissionIDs).To(gomega.Equal([]int64{1, 2, 3, 4, 5, 6}))
				gomega.Expect(result.EmployeeFullname).To(gomega.BeNil())
				gomega.Expect(result.Designation).To(gomega.BeNil())
			})

			ginkgo.It("should log a passing attempt", func() {
				_, err := service.Login(LoginDTO{Username: "admin", Password: "correct_password"}, ClientMetadata{OS: "linux"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.attempts).To(gomega.HaveLen(1))
				gomega.Expect(mockRepo.attempts[0].Username).To(gomega.Equal("admin"))
				gomega.Expect(mockRepo.attempts[0].Status).To(gomega.Equal("Pass"))
			})

			ginkgo.It("should store the refresh token for the subject", func() {
				result, err := service.Login(LoginDTO{Username: "admin", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.refreshTokens["admin"]).To(gomega.Equal(result.RefreshToken))
			})

			ginkgo.It("should fall back to USD when no currency is configured", func() {
				result, err := service.Login(LoginDTO{Username: "admin", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.Currency).To(gomega.Equal("USD"))
				gomega.Expect(result.Symbol).To(gomega.Equal("$"))
			})

			ginkgo.It("should use the configured currency when present", func() {
				mockRepo.currency = &[2]string{"LKR", "Rs"}

				result, err := service.Login(LoginDTO{Username: "admin", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.Currency).To(gomega.Equal("LKR"))
				gomega.Expect(result.Symbol).To(gomega.Equal("Rs"))
			})

			ginkgo.It("should embed the permission ids in the access token", func() {
				result, err := service.Login(LoginDTO{Username: "admin", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				claims, err := tokenGen.ValidateToken(result.UserToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.Subject).To(gomega.Equal("admin"))
				gomega.Expect(claims.PermissionIDs).To(gomega.Equal([]int64{1, 2, 3, 4, 5, 6}))
			})
		})

		ginkgo.Context("with a wrong password", func() {
			ginkgo.It("should reject and log a failing attempt", func() {
				_, err := service.Login(LoginDTO{Username: "admin", Password: "wrong_password"}, ClientMetadata{})

				gomega.Expect(err).To(gomega.MatchError(ErrInvalidCredentials))
				gomega.Expect(mockRepo.attempts).To(gomega.HaveLen(1))
				gomega.Expect(mockRepo.attempts[0].Status).To(gomega.Equal("Fail"))
			})
		})

		ginkgo.Context("with an unknown identifier", func() {
			ginkgo.It("should still log the attempt", func() {
				_, err := service.Login(LoginDTO{Username: "nobody", Password: "whatever"}, ClientMetadata{})

				gomega.Expect(err).To(gomega.MatchError(internal.ErrUserNotFound))
				gomega.Expect(mockRepo.attempts).To(gomega.HaveLen(1))
				gomega.Expect(mockRepo.attempts[0].Username).To(gomega.Equal("nobody"))
				gomega.Expect(mockRepo.attempts[0].Status).To(gomega.Equal("Fail"))
			})
		})

		ginkgo.Context("when the audit log write fails", func() {
			ginkgo.It("should fail the login", func() {
				mockRepo.failLogAttempt = true

				_, err := service.Login(LoginDTO{Username: "admin", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).To(gomega.HaveOccurred())
			})
		})

		ginkgo.Context("with an employee-backed account", func() {
			ginkgo.BeforeEach(func() {
				designation := "Security Guard"
				department := "Operations"
				mockRepo.employeeCtx["EMP001"] = &EmployeeContext{
					ActiveStatus: true,
					Fullname:     "John Perera",
					Designation:  &designation,
					Department:   &department,
				}
				supervisorID := int64(7)
				mockRepo.supervisors["EMP001"] = &supervisorID
			})

			ginkgo.It("should merge the employee context into the response", func() {
				result, err := service.Login(LoginDTO{Username: "EMP001", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.EmployeeFullname).ToNot(gomega.BeNil())
				gomega.Expect(*result.EmployeeFullname).To(gomega.Equal("John Perera"))
				gomega.Expect(*result.Designation).To(gomega.Equal("Security Guard"))
				gomega.Expect(*result.SupervisorID).To(gomega.Equal(int64(7)))
			})

			ginkgo.It("should include today's attendance when present", func() {
				checkIn := time.Now().Add(-2 * time.Hour)
				checkInType := "web"
				mockRepo.attendance["EMP001"] = &Attendance{
					CheckInTime: &checkIn,
					CheckInType: &checkInType,
				}

				result, err := service.Login(LoginDTO{Username: "EMP001", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.CheckInTime).ToNot(gomega.BeNil())
				gomega.Expect(*result.CheckInType).To(gomega.Equal("web"))
			})

			ginkgo.It("should reject when the employee is inactive", func() {
				mockRepo.employeeCtx["EMP001"].ActiveStatus = false

				_, err := service.Login(LoginDTO{Username: "EMP001", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).To(gomega.MatchError(ErrUserInactive))
			})

			ginkgo.It("should reject when the employee record is missing", func() {
				delete(mockRepo.employeeCtx, "EMP001")

				_, err := service.Login(LoginDTO{Username: "EMP001", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).To(gomega.MatchError(ErrUserInactive))
			})

			ginkgo.It("should use the employee number as token subject", func() {
				result, err := service.Login(LoginDTO{Username: "EMP001", Password: "correct_password"}, ClientMetadata{})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				claims, err := tokenGen.ValidateToken(result.UserToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.Subject).To(gomega.Equal("EMP001"))
			})
		})

		ginkgo.Context("with missing fields", func() {
			ginkgo.It("should reject without touching the repository", func() {
				_, err := service.Login(LoginDTO{Username: "", Password: ""}, ClientMetadata{})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(mockRepo.attempts).To(gomega.BeEmpty())
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a new pair for a valid refresh token", func() {
			refreshToken, err := tokenGen.GenerateRefreshToken("EMP001")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			tokens, err := service.RefreshTokens(refreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
			gomega.Expect(mockRepo.refreshTokens["EMP001"]).To(gomega.Equal(tokens.RefreshToken))
		})

		ginkgo.It("should carry the account's permissions on the new access token", func() {
			refreshToken, err := tokenGen.GenerateRefreshToken("admin")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			tokens, err := service.RefreshTokens(refreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokenGen.ValidateToken(tokens.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.PermissionIDs).To(gomega.Equal([]int64{1, 2, 3, 4, 5, 6}))
		})

		ginkgo.It("should pick up role changes made since login", func() {
			refreshToken, err := tokenGen.GenerateRefreshToken("EMP001")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			mockRepo.permissions[2] = []int64{5, 6}

			tokens, err := service.RefreshTokens(refreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokenGen.ValidateToken(tokens.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.PermissionIDs).To(gomega.Equal([]int64{5, 6}))
		})

		ginkgo.It("should reject a refresh token whose account no longer exists", func() {
			refreshToken, err := tokenGen.GenerateRefreshToken("ghost")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.RefreshTokens(refreshToken)

			gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
		})

		ginkgo.It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")

			gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should round-trip claims", func() {
			token, err := tokenGen.GenerateAccessToken("EMP001", []int64{6})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Subject).To(gomega.Equal("EMP001"))
			gomega.Expect(claims.PermissionIDs).To(gomega.Equal([]int64{6}))
		})

		ginkgo.It("should map expired tokens to ErrTokenExpired", func() {
			expiredGen := NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", -1*time.Minute, 24*time.Hour)
			token, err := expiredGen.GenerateAccessToken("EMP001", nil)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.MatchError(ErrTokenExpired))
		})
	})
})

var _ = ginkgo.Describe("IsHashed", func() {
	ginkgo.It("should recognise bcrypt output", func() {
		hasher := NewPasswordHasher(4)
		hash, err := hasher.Hash("secret")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(IsHashed(hash)).To(gomega.BeTrue())
	})

	ginkgo.It("should not flag plain passwords", func() {
		gomega.Expect(IsHashed("Client@123")).To(gomega.BeFalse())
	})
})

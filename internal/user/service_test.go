package user

import (
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/guardhq/workforce-management/internal"
	"github.com/guardhq/workforce-management/internal/auth"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Module Suite")
}

type mockUserRepository struct {
	nextID          int64
	users           map[int64]*User
	passwordUpdates map[string]string
	usersByEmployee map[string]*User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		nextID:          1,
		users:           map[int64]*User{},
		passwordUpdates: map[string]string{},
		usersByEmployee: map[string]*User{},
	}
}

func (m *mockUserRepository) Create(u *User) error {
	u.ID = m.nextID
	m.nextID++
	stored := *u
	m.users[u.ID] = &stored
	if u.EmployeeNo != nil {
		m.usersByEmployee[*u.EmployeeNo] = &stored
	}
	return nil
}

func (m *mockUserRepository) Update(userID int64, patch UpdatePatch) error {
	if _, ok := m.users[userID]; !ok {
		return internal.ErrUserNotFound
	}
	return nil
}

func (m *mockUserRepository) Delete(userID int64) error {
	if _, ok := m.users[userID]; !ok {
		return internal.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

func (m *mockUserRepository) GetByID(userID int64) (*User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmployeeNo(employeeNo string) (*User, error) {
	if u, ok := m.usersByEmployee[employeeNo]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePasswordByEmployeeNo(employeeNo, passwordHash string) error {
	m.passwordUpdates[employeeNo] = passwordHash
	return nil
}

func (m *mockUserRepository) List() ([]User, error) {
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		hasher  *auth.PasswordHasher
		service *Service
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		hasher = auth.NewPasswordHasher(4)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(repo, hasher, logger)

		guardNo := "EMP001"
		_, err := service.CreateUser(CreateUserDTO{
			EmployeeNo: &guardNo,
			Username:   "guard1",
			Password:   "old_password",
			UserType:   UserTypeUser,
			Employment: EmploymentYes,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("ResetPassword", func() {
		It("should store a fresh hash of the new password", func() {
			err := service.ResetPassword(ResetPasswordDTO{
				EmployeeNo:  "EMP001",
				OldPassword: "old_password",
				NewPassword: "new_password",
			})
			Expect(err).NotTo(HaveOccurred())

			stored := repo.passwordUpdates["EMP001"]
			Expect(auth.IsHashed(stored)).To(BeTrue())
			Expect(hasher.Verify("new_password", stored)).To(BeTrue())
		})

		It("should reject a wrong old password", func() {
			err := service.ResetPassword(ResetPasswordDTO{
				EmployeeNo:  "EMP001",
				OldPassword: "not_the_password",
				NewPassword: "new_password",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeWrongOldPassword))
			Expect(repo.passwordUpdates).To(BeEmpty())
		})

		It("should reject reusing the old password", func() {
			err := service.ResetPassword(ResetPasswordDTO{
				EmployeeNo:  "EMP001",
				OldPassword: "old_password",
				NewPassword: "old_password",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePasswordReused))
			Expect(repo.passwordUpdates).To(BeEmpty())
		})

		It("should reject a password shorter than eight characters", func() {
			err := service.ResetPassword(ResetPasswordDTO{
				EmployeeNo:  "EMP001",
				OldPassword: "old_password",
				NewPassword: "seven77",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeWeakPassword))
			Expect(repo.passwordUpdates).To(BeEmpty())
		})

		It("should reject an unknown employee number", func() {
			err := service.ResetPassword(ResetPasswordDTO{
				EmployeeNo:  "EMP999",
				OldPassword: "old_password",
				NewPassword: "new_password",
			})
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should reject incomplete input without touching the repository", func() {
			err := service.ResetPassword(ResetPasswordDTO{EmployeeNo: "EMP001"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingFields))
		})
	})
})

package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	employeeDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/employee"
	roleDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/role"
	userDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/user"
	"github.com/guardhq/workforce-management/internal/user"
)

func TestUserRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "UserRepository Suite")
}

var _ = Describe("UserRepository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	strPtr := func(s string) *string { return &s }
	int64Ptr := func(i int64) *int64 { return &i }

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{}, &roleDatamodel.Role{}, &employeeDatamodel.Employee{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&roleDatamodel.Role{RoleName: "supervisor"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&employeeDatamodel.Employee{
			EmployeeNo:       "EMP001",
			Name:             "John Perera",
			DateOfBirth:      time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			ContactNumber:    "0771234567",
			Address:          "12 Main St",
			EmployeeCategory: "permanent",
			EmployeeType:     "guard",
			Department:       "Operations",
			Designation:      "Security Guard",
			WorkLocation:     "Colombo",
			ActiveStatus:     true,
		}).Error).NotTo(HaveOccurred())

		repo = NewUserRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should create an account linked to an employee", func() {
			u := &user.User{
				EmployeeNo: strPtr("EMP001"),
				Username:   "guard1",
				Password:   "$2a$10$hash",
				UserRole:   int64Ptr(1),
				UserType:   user.UserTypeUser,
				Employment: user.EmploymentYes,
			}

			Expect(repo.Create(u)).To(Succeed())
			Expect(u.ID).To(BeNumerically(">", 0))
		})

		It("should reject a duplicate username", func() {
			u := &user.User{Username: "admin", Password: "x", UserType: user.UserTypeAdmin, Employment: user.EmploymentNo}
			Expect(repo.Create(u)).To(Succeed())

			dup := &user.User{Username: "admin", Password: "y", UserType: user.UserTypeAdmin, Employment: user.EmploymentNo}
			Expect(repo.Create(dup)).To(MatchError(internal.ErrUsernameTaken))
		})

		It("should reject an unknown role id", func() {
			u := &user.User{Username: "guard2", Password: "x", UserRole: int64Ptr(42), UserType: user.UserTypeUser, Employment: user.EmploymentNo}

			err := repo.Create(u)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("should reject an unknown employee number for employment Yes", func() {
			u := &user.User{
				EmployeeNo: strPtr("EMP999"),
				Username:   "ghost",
				Password:   "x",
				UserType:   user.UserTypeUser,
				Employment: user.EmploymentYes,
			}

			err := repo.Create(u)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEmployeeNo))
		})
	})

	Describe("Update", func() {
		var userID int64

		BeforeEach(func() {
			u := &user.User{
				EmployeeNo: strPtr("EMP001"),
				Username:   "guard1",
				Password:   "x",
				UserType:   user.UserTypeUser,
				Employment: user.EmploymentYes,
			}
			Expect(repo.Create(u)).To(Succeed())
			userID = u.ID
		})

		It("should apply a sparse patch without touching other fields", func() {
			Expect(repo.Update(userID, user.UpdatePatch{Username: strPtr("guard-renamed")})).To(Succeed())

			updated, err := repo.GetByID(userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Username).To(Equal("guard-renamed"))
			Expect(updated.EmployeeNo).NotTo(BeNil())
			Expect(*updated.EmployeeNo).To(Equal("EMP001"))
			Expect(updated.Employment).To(Equal(user.EmploymentYes))
		})

		It("should reject a username already held by another account", func() {
			other := &user.User{Username: "admin", Password: "x", UserType: user.UserTypeAdmin, Employment: user.EmploymentNo}
			Expect(repo.Create(other)).To(Succeed())

			err := repo.Update(userID, user.UpdatePatch{Username: strPtr("admin")})
			Expect(err).To(MatchError(internal.ErrUsernameTaken))
		})

		It("should allow keeping its own username", func() {
			Expect(repo.Update(userID, user.UpdatePatch{Username: strPtr("guard1")})).To(Succeed())
		})

		It("should clear the employee link with an explicit empty value", func() {
			Expect(repo.Update(userID, user.UpdatePatch{
				EmployeeNo: strPtr(""),
				Employment: strPtr(user.EmploymentNo),
			})).To(Succeed())

			updated, err := repo.GetByID(userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.EmployeeNo).To(BeNil())
			Expect(updated.Employment).To(Equal(user.EmploymentNo))
		})

		It("should return not found for a missing account", func() {
			err := repo.Update(42, user.UpdatePatch{Username: strPtr("nope")})
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("Delete", func() {
		It("should delete an existing account", func() {
			u := &user.User{Username: "temp", Password: "x", UserType: user.UserTypeUser, Employment: user.EmploymentNo}
			Expect(repo.Create(u)).To(Succeed())

			Expect(repo.Delete(u.ID)).To(Succeed())
			_, err := repo.GetByID(u.ID)
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should return not found for a missing account", func() {
			Expect(repo.Delete(42)).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("UpdatePasswordByEmployeeNo", func() {
		It("should swap the stored hash", func() {
			u := &user.User{
				EmployeeNo: strPtr("EMP001"),
				Username:   "guard1",
				Password:   "old-hash",
				UserType:   user.UserTypeUser,
				Employment: user.EmploymentYes,
			}
			Expect(repo.Create(u)).To(Succeed())

			Expect(repo.UpdatePasswordByEmployeeNo("EMP001", "new-hash")).To(Succeed())

			updated, err := repo.GetByEmployeeNo("EMP001")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Password).To(Equal("new-hash"))
		})
	})
})

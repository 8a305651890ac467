package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	datamodel "github.com/guardhq/workforce-management/internal/core/datamodel/employee"
	"github.com/guardhq/workforce-management/internal/employee"
)

func TestEmployeeRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EmployeeRepository Suite")
}

var _ = Describe("EmployeeRepository", func() {
	var (
		db   *gorm.DB
		repo employee.Repository
	)

	newEmployee := func(employeeNo string) *employee.Employee {
		return &employee.Employee{
			EmployeeNo:       employeeNo,
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
		}
	}

	strPtr := func(s string) *string { return &s }

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&datamodel.Employee{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewEmployeeRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should persist the full record", func() {
			Expect(repo.Create(newEmployee("EMP001"))).To(Succeed())

			stored, err := repo.GetByEmployeeNo("EMP001")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("John Perera"))
			Expect(stored.ActiveStatus).To(BeTrue())
		})

		It("should reject a duplicate employee number", func() {
			Expect(repo.Create(newEmployee("EMP001"))).To(Succeed())

			err := repo.Create(newEmployee("EMP001"))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEmployeeNo))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			Expect(repo.Create(newEmployee("EMP001"))).To(Succeed())
		})

		It("should apply only the patched fields", func() {
			err := repo.Update("EMP001", employee.UpdatePatch{
				ContactNumber: strPtr("0719998888"),
				NIC:           strPtr("901234567V"),
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.GetByEmployeeNo("EMP001")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ContactNumber).To(Equal("0719998888"))
			Expect(stored.NIC).To(HaveValue(Equal("901234567V")))
			Expect(stored.Name).To(Equal("John Perera"))
			Expect(stored.Address).To(Equal("12 Main St"))
		})

		It("should deactivate without touching other fields", func() {
			inactive := false
			err := repo.Update("EMP001", employee.UpdatePatch{ActiveStatus: &inactive})
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.GetByEmployeeNo("EMP001")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ActiveStatus).To(BeFalse())
			Expect(stored.Name).To(Equal("John Perera"))
		})

		It("should reject an unknown employee", func() {
			name := "Jane Silva"
			err := repo.Update("EMP999", employee.UpdatePatch{Name: &name})
			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("GetByEmployeeNo", func() {
		It("should reject an unknown employee", func() {
			_, err := repo.GetByEmployeeNo("EMP999")
			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			Expect(repo.Create(newEmployee("EMP001"))).To(Succeed())

			second := newEmployee("EMP002")
			second.Name = "Jane Silva"
			Expect(repo.Create(second)).To(Succeed())

			inactive := false
			Expect(repo.Update("EMP002", employee.UpdatePatch{ActiveStatus: &inactive})).To(Succeed())
		})

		It("should return everyone by default", func() {
			employees, err := repo.List(false)
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(2))
		})

		It("should filter to active employees on request", func() {
			employees, err := repo.List(true)
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(1))
			Expect(employees[0].EmployeeNo).To(Equal("EMP001"))
		})
	})
})

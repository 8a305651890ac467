package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	roleDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/role"
	"github.com/guardhq/workforce-management/internal/role"
)

func TestRoleRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RoleRepository Suite")
}

var _ = Describe("RoleRepository", func() {
	var (
		db   *gorm.DB
		repo role.Repository
	)

	seedPermissions := func(names ...string) []int64 {
		ids := make([]int64, len(names))
		for i, name := range names {
			p := roleDatamodel.Permission{Name: name, Description: name}
			Expect(db.Create(&p).Error).NotTo(HaveOccurred())
			ids[i] = p.ID
		}
		return ids
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&roleDatamodel.Role{}, &roleDatamodel.Permission{}, &roleDatamodel.RolePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewRoleRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should create a role with its permission links", func() {
			ids := seedPermissions("manage_users", "manage_roles")

			created, err := repo.Create("supervisor", "Shift supervisor", ids)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))

			perms, err := repo.Permissions(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(HaveLen(2))
		})

		It("should reject unknown permission ids and leave nothing behind", func() {
			ids := seedPermissions("manage_users", "manage_roles", "manage_clients", "view_reports")
			ids = append(ids, 9999)

			_, err := repo.Create("supervisor", "Shift supervisor", ids)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingPermissions))

			var roleCount, linkCount int64
			Expect(db.Model(&roleDatamodel.Role{}).Count(&roleCount).Error).NotTo(HaveOccurred())
			Expect(db.Model(&roleDatamodel.RolePermission{}).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(roleCount).To(BeZero())
			Expect(linkCount).To(BeZero())
		})

		It("should allow a role without permissions", func() {
			created, err := repo.Create("trainee", "No access yet", nil)
			Expect(err).NotTo(HaveOccurred())

			perms, err := repo.Permissions(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		var (
			roleID int64
			ids    []int64
		)

		BeforeEach(func() {
			ids = seedPermissions("manage_users", "manage_roles", "view_reports")
			created, err := repo.Create("supervisor", "Shift supervisor", ids[:2])
			Expect(err).NotTo(HaveOccurred())
			roleID = created.ID
		})

		It("should apply the permission set as a minimal delta", func() {
			err := repo.Update(roleID, "supervisor", "Shift supervisor", []int64{ids[1], ids[2]})
			Expect(err).NotTo(HaveOccurred())

			perms, err := repo.Permissions(roleID)
			Expect(err).NotTo(HaveOccurred())

			permIDs := make([]int64, len(perms))
			for i, p := range perms {
				permIDs[i] = p.ID
			}
			Expect(permIDs).To(ConsistOf(ids[1], ids[2]))
		})

		It("should rename the role", func() {
			err := repo.Update(roleID, "site-supervisor", "updated", ids[:2])
			Expect(err).NotTo(HaveOccurred())

			roles, err := repo.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(1))
			Expect(roles[0].RoleName).To(Equal("site-supervisor"))
		})

		It("should reject unknown permission ids without changing the stored set", func() {
			err := repo.Update(roleID, "supervisor", "Shift supervisor", []int64{ids[0], 9999})
			Expect(err).To(HaveOccurred())

			perms, err := repo.Permissions(roleID)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(HaveLen(2))
		})

		It("should return not found for a missing role", func() {
			err := repo.Update(42, "ghost", "", nil)
			Expect(err).To(MatchError(internal.ErrRoleNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove the role and its links", func() {
			ids := seedPermissions("manage_users")
			created, err := repo.Create("supervisor", "", ids)
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.Delete(created.ID)).To(Succeed())

			var linkCount int64
			Expect(db.Model(&roleDatamodel.RolePermission{}).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(linkCount).To(BeZero())
		})

		It("should return not found for a missing role", func() {
			Expect(repo.Delete(42)).To(MatchError(internal.ErrRoleNotFound))
		})
	})

	Describe("ListPermissions", func() {
		It("should list the whole catalog", func() {
			seedPermissions("manage_users", "manage_roles", "view_reports")

			perms, err := repo.ListPermissions()
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(HaveLen(3))
		})
	})
})

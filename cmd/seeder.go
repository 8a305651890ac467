package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline data",
	Long:  `Seed the permissions catalog, a superadmin role, an admin account, and the default currency.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		// Ids are fixed so token claims stay stable across environments.
		permissions := []struct {
			ID   int64
			Name string
			Desc string
		}{
			{1, "manage_users", "Can create, update, and delete accounts"},
			{2, "manage_roles", "Can manage roles and their permissions"},
			{3, "manage_employees", "Can manage the employee directory"},
			{4, "manage_clients", "Can manage clients and assignments"},
			{5, "manage_checkpoints", "Can create checkpoints"},
			{6, "view_reports", "Can view checkpoints and scan history"},
		}

		for _, p := range permissions {
			var exists int
			if err := db.Raw("SELECT 1 FROM permissions WHERE id = ?", p.ID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO permissions (id, name, description) VALUES (?, ?, ?)", p.ID, p.Name, p.Desc).Error; err != nil {
				log.Fatalf("failed to insert permission %s: %v", p.Name, err)
			}
			fmt.Println("Seeded permission:", p.Name)
		}

		var roleID int64
		if err := db.Raw("SELECT id FROM roles WHERE role_name = ?", "superadmin").Row().Scan(&roleID); err != nil {
			if err := db.Exec("INSERT INTO roles (role_name, role_description) VALUES (?, ?)", "superadmin", "Full access").Error; err != nil {
				log.Fatalf("failed to insert superadmin role: %v", err)
			}
			if err := db.Raw("SELECT id FROM roles WHERE role_name = ?", "superadmin").Row().Scan(&roleID); err != nil {
				log.Fatalf("failed to lookup superadmin role: %v", err)
			}
			fmt.Println("Seeded superadmin role")
		}

		for _, p := range permissions {
			var exists int
			if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?", roleID, p.ID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)", roleID, p.ID).Error; err != nil {
				log.Fatalf("failed to grant permission %s to superadmin: %v", p.Name, err)
			}
		}

		adminUsername := "admin"
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE username = ?", adminUsername).Row().Scan(&exists); err != nil {
			hash, _ := bcrypt.GenerateFromPassword([]byte("Admin@123"), cfg.Security.BCryptCost)
			if err := db.Exec(
				"INSERT INTO users (username, password, user_role, user_type, employment) VALUES (?, ?, ?, ?, ?)",
				adminUsername, string(hash), roleID, "superadmin", "No").Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminUsername)
		}

		if err := db.Raw("SELECT 1 FROM currencies LIMIT 1").Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO currencies (currency, symbol) VALUES (?, ?)", "USD", "$").Error; err != nil {
				log.Fatalf("failed to insert default currency: %v", err)
			}
			fmt.Println("Seeded default currency: USD")
		}

		fmt.Println("Seeding completed")
	},
}

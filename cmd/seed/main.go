// Command seed populates the database with the four canonical roles and a
// set of demo accounts. It is idempotent: roles and users that already
// exist are left untouched, so it is safe to run against a live database.
// The schema must already exist; the server applies migrations on startup.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spars/crm-backend/internal/adapter/postgres"
	rolerepo "github.com/spars/crm-backend/internal/adapter/postgres/role"
	userrepo "github.com/spars/crm-backend/internal/adapter/postgres/user"
	"github.com/spars/crm-backend/internal/app"
	"github.com/spars/crm-backend/internal/config"
	"github.com/spars/crm-backend/internal/domain"
)

type seedRole struct {
	name        string
	description string
	level       int
	permissions domain.Permissions
}

type seedUser struct {
	name     string
	email    string
	password string
	role     string
	manager  string // email of the manager, empty for top-level accounts
}

var seedRoles = []seedRole{
	{
		name:        domain.RoleNameAdmin,
		description: "Full access to every module",
		level:       0,
		permissions: domain.Permissions{
			domain.PermAll:              true,
			domain.PermSubmissions:      true,
			domain.PermLeads:            true,
			domain.PermLeadAssignment:   true,
			domain.PermLeadStatusUpdate: true,
			domain.PermLeadComments:     true,
			domain.PermReminders:        true,
			domain.PermReports:          true,
			domain.PermUsers:            true,
			domain.PermDeleteSubmission: true,
		},
	},
	{
		name:        domain.RoleNameSalesManager,
		description: "Manages a team of sales executives",
		level:       1,
		permissions: domain.Permissions{
			domain.PermSubmissions:      true,
			domain.PermLeads:            true,
			domain.PermLeadAssignment:   true,
			domain.PermLeadStatusUpdate: true,
			domain.PermLeadComments:     true,
			domain.PermReminders:        true,
			domain.PermReports:          true,
			domain.PermConvertLead:      true,
		},
	},
	{
		name:        domain.RoleNameSalesExecutive,
		description: "Works assigned leads",
		level:       2,
		permissions: domain.Permissions{
			domain.PermLeads:            true,
			domain.PermLeadStatusUpdate: true,
			domain.PermLeadComments:     true,
			domain.PermReminders:        true,
			domain.PermConvertLead:      true,
		},
	},
	{
		name:        domain.RoleNameMarketing,
		description: "Handles inbound form submissions",
		level:       3,
		permissions: domain.Permissions{
			domain.PermSubmissions: true,
			domain.PermConvertLead: true,
			domain.PermReports:     true,
		},
	},
}

var seedUsers = []seedUser{
	{name: "Admin User", email: "admin@spars.com", password: "admin123", role: domain.RoleNameAdmin},

	{name: "Sales Manager X", email: "managerx@spars.com", password: "manager123", role: domain.RoleNameSalesManager},
	{name: "Sales Manager Y", email: "managery@spars.com", password: "manager123", role: domain.RoleNameSalesManager},
	{name: "Sales Manager Z", email: "managerz@spars.com", password: "manager123", role: domain.RoleNameSalesManager},

	{name: "Sales Executive A1", email: "execa1@spars.com", password: "exec123", role: domain.RoleNameSalesExecutive, manager: "managerx@spars.com"},
	{name: "Sales Executive A2", email: "execa2@spars.com", password: "exec123", role: domain.RoleNameSalesExecutive, manager: "managerx@spars.com"},
	{name: "Sales Executive A3", email: "execa3@spars.com", password: "exec123", role: domain.RoleNameSalesExecutive, manager: "managerx@spars.com"},
	{name: "Sales Executive B1", email: "execb1@spars.com", password: "exec123", role: domain.RoleNameSalesExecutive, manager: "managery@spars.com"},
	{name: "Sales Executive B2", email: "execb2@spars.com", password: "exec123", role: domain.RoleNameSalesExecutive, manager: "managery@spars.com"},
	{name: "Sales Executive C1", email: "execc1@spars.com", password: "exec123", role: domain.RoleNameSalesExecutive, manager: "managerz@spars.com"},
	{name: "Sales Executive C2", email: "execc2@spars.com", password: "exec123", role: domain.RoleNameSalesExecutive, manager: "managerz@spars.com"},
	{name: "Sales Executive C3", email: "execc3@spars.com", password: "exec123", role: domain.RoleNameSalesExecutive, manager: "managerz@spars.com"},

	{name: "Marketing User 1", email: "marketing1@spars.com", password: "marketing123", role: domain.RoleNameMarketing},
	{name: "Marketing User 2", email: "marketing2@spars.com", password: "marketing123", role: domain.RoleNameMarketing},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	roles := rolerepo.New(pool)
	users := userrepo.New(pool)

	roleIDs, err := ensureRoles(ctx, logger, roles)
	if err != nil {
		logger.Error("seed roles", slog.String("error", err.Error()))
		os.Exit(1)
	}

	created, err := ensureUsers(ctx, logger, users, roleIDs, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Error("seed users", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed completed",
		slog.Int("roles", len(roleIDs)),
		slog.Int("users_created", created),
	)
}

func ensureRoles(ctx context.Context, logger *slog.Logger, roles *rolerepo.Repo) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(seedRoles))

	for _, sr := range seedRoles {
		existing, err := roles.GetByName(ctx, sr.name)
		if err == nil {
			ids[sr.name] = existing.ID
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		now := time.Now().UTC()
		desc := sr.description
		role := &domain.Role{
			ID:             uuid.New(),
			Name:           sr.name,
			Description:    &desc,
			Permissions:    sr.permissions,
			HierarchyLevel: sr.level,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := roles.Create(ctx, role); err != nil {
			return nil, err
		}
		ids[sr.name] = role.ID
		logger.Info("created role", slog.String("role", sr.name))
	}

	return ids, nil
}

func ensureUsers(ctx context.Context, logger *slog.Logger, users *userrepo.Repo, roleIDs map[string]uuid.UUID, bcryptCost int) (int, error) {
	// Managers must exist before the executives that report to them, which
	// the seed list order already guarantees.
	byEmail := make(map[string]uuid.UUID, len(seedUsers))
	created := 0

	for _, su := range seedUsers {
		existing, err := users.GetByEmail(ctx, su.email)
		if err == nil {
			byEmail[su.email] = existing.ID
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return created, err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), bcryptCost)
		if err != nil {
			return created, err
		}

		var managerID *uuid.UUID
		if su.manager != "" {
			id, ok := byEmail[su.manager]
			if !ok {
				return created, errors.New("manager not seeded: " + su.manager)
			}
			managerID = &id
		}

		now := time.Now().UTC()
		u := &domain.User{
			ID:             uuid.New(),
			Name:           su.name,
			Email:          su.email,
			HashedPassword: string(hashed),
			RoleID:         roleIDs[su.role],
			ManagerID:      managerID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := users.Create(ctx, u); err != nil {
			return created, err
		}
		byEmail[su.email] = u.ID
		created++
		logger.Info("created user",
			slog.String("email", su.email),
			slog.String("role", su.role),
		)
	}

	return created, nil
}

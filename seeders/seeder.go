package seeders

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"cleaning-console/internal/entities"
	"cleaning-console/pkg/utils"
)

// SeedAccounts builds the dev backend's user directory with hashed passwords.
func SeedAccounts(v *validator.Validate, logger *zap.Logger) ([]entities.Account, error) {
	roles := make(map[string]roleData, len(rolesData))
	for _, r := range rolesData {
		roles[r.Code] = r
	}

	accounts := make([]entities.Account, 0, len(accountsData))
	for _, a := range accountsData {
		role, ok := roles[a.RoleCode]
		if !ok {
			return nil, fmt.Errorf("account %q references unknown role %q", a.Username, a.RoleCode)
		}
		hash, err := utils.HashPassword(a.Password)
		if err != nil {
			return nil, err
		}

		acc := entities.Account{
			ID:           a.ID,
			Username:     a.Username,
			PasswordHash: hash,
			Email:        a.Email,
			Phone:        a.Phone,
			RoleID:       role.ID,
			RoleCode:     role.Code,
			RoleName:     role.Name,
			UserType:     a.UserType,
			Permissions:  append([]string(nil), role.Permissions...),
		}
		if err := v.Struct(acc); err != nil {
			return nil, fmt.Errorf("invalid seed account %q: %w", a.Username, err)
		}
		accounts = append(accounts, acc)
	}

	logger.Info("seeded dev accounts", zap.Int("accounts", len(accounts)), zap.Int("roles", len(rolesData)))
	return accounts, nil
}

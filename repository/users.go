package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/fliply-api/models"
)

// Users holds the profiles used to show who created a set.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Upsert creates the profile for user.ID or refreshes its username. An
// empty username never overwrites a stored one.
func (u *Users) Upsert(ctx context.Context, user *models.User) error {
	if strings.TrimSpace(user.ID) == "" {
		return invalid("User ID is required")
	}

	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}
	if user.Username != "" {
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
		}
	}

	if err := u.db.WithContext(ctx).Clauses(onConflict).Create(user).Error; err != nil {
		return internal("upsert user", err)
	}
	return nil
}

func (u *Users) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, internal("get user", err)
	}
	return &user, nil
}

// DisplayNames resolves the name to show for each user id that has a
// profile: its username, else its display name. Ids without either are
// absent from the result.
func (u *Users) DisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := u.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, internal("lookup display names", err)
	}
	for _, user := range users {
		switch {
		case user.Username != "":
			names[user.ID] = user.Username
		case user.DisplayName != "":
			names[user.ID] = user.DisplayName
		}
	}
	return names, nil
}

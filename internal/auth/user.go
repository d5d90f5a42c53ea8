package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User mirrors the identity provider's profile. ID is the token subject.
type User struct {
	ID        string    `gorm:"primaryKey"`
	Email     string    `gorm:"index"`
	FirstName string   
	LastName  string   
	Name      string   
	AvatarURL string   
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// UserFromClaims builds the profile row from verified token claims.
func UserFromClaims(c *Claims) User {
	u := User{
		ID:        c.Subject,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		AvatarURL: c.AvatarURL,
	}
	if u.FirstName != "" && u.LastName != "" {
		u.Name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	} else {
		u.Name = u.Email
	}
	return u
}

// UserSync upserts the profile on login so the local copy tracks the
// identity provider.
type UserSync struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func (s *UserSync) Sync(ctx context.Context, u User) error {
	u.UpdatedAt = time.Now()
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(
				[]string{"email", "first_name", "last_name", "name", "avatar_url", "updated_at"},
			),
		}).
		Create(&u).Error
	if err != nil {
		s.Log.WarnContext(ctx, "user sync failed", "user_id", u.ID, "error", err)
	}
	return err
}

package entry

import (
	"context"
	"errors"

	"thisday/internal/calendar"

	"gorm.io/gorm"
)

// ReadRepository is the filtered-scan surface the recall engine needs from
// the store. Grouping and ranking happen in-process on the returned rows, so
// any backend that can filter by owner, date range and day-month key works.
type ReadRepository interface {
	// FindByDateRange returns the user's entries with from <= LocalDate <= to.
	FindByDateRange(ctx context.Context, userID string, from, to calendar.Date) ([]Entry, error)
	// FindByDayMonthBefore returns the user's entries whose DayMonth equals
	// dayMonth and whose LocalDate is strictly before the reference date.
	FindByDayMonthBefore(ctx context.Context, userID, dayMonth string, before calendar.Date) ([]Entry, error)
}

// Repository is the write-side surface.
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	FindByID(ctx context.Context, id, userID string) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id, userID string) error
}

// PostgresRepository backs both surfaces with gorm over Postgres.
type PostgresRepository struct {
	DB *gorm.DB
}

func (r *PostgresRepository) FindByDateRange(ctx context.Context, userID string, from, to calendar.Date) ([]Entry, error) {
	var rows []Entry
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND local_date >= ? AND local_date <= ?", userID, dateValue(from), dateValue(to)).
		Order("created_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) FindByDayMonthBefore(ctx context.Context, userID, dayMonth string, before calendar.Date) ([]Entry, error) {
	var rows []Entry
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND day_month = ? AND local_date < ?", userID, dayMonth, dateValue(before)).
		Order("created_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, e *Entry) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *PostgresRepository) FindByID(ctx context.Context, id, userID string) (*Entry, error) {
	var e Entry
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *Entry) error {
	res := r.DB.WithContext(ctx).
		Model(&Entry{}).
		Where("id = ? AND user_id = ?", e.ID, e.UserID).
		Updates(map[string]any{
			"caption":         e.Caption,
			"media_asset_ids": e.MediaAssetIDs,
			"updated_at":      e.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

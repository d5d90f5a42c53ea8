package entry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"thisday/internal/calendar"

	"github.com/google/uuid"
)

// Uploader is the slice of the media collaborator the write path needs.
type Uploader interface {
	UploadAsset(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// Upload is one media file attached to a create/update request.
type Upload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// Service is the write path: create (today or backfilled), edit, delete.
type Service struct {
	repo  Repository
	media Uploader
	cal   calendar.Calendar
	log   *slog.Logger

	now func() time.Time
}

func NewService(repo Repository, media Uploader, cal calendar.Calendar, log *slog.Logger) *Service {
	return &Service{repo: repo, media: media, cal: cal, log: log, now: time.Now}
}

// Create files a new entry under today in the service zone.
func (s *Service) Create(ctx context.Context, userID, caption string, uploads []Upload) (*Entry, error) {
	return s.create(ctx, userID, s.cal.ToLocalDate(s.now()), caption, uploads)
}

// CreateBackfill files a new entry under an explicit past local date.
func (s *Service) CreateBackfill(ctx context.Context, userID string, date calendar.Date, caption string, uploads []Upload) (*Entry, error) {
	if err := calendar.ValidateDate(date.Year, date.Month, date.Day); err != nil {
		return nil, err
	}
	if s.cal.ToLocalDate(s.now()).Before(date) {
		return nil, ErrFutureDate
	}
	return s.create(ctx, userID, date, caption, uploads)
}

func (s *Service) create(ctx context.Context, userID string, date calendar.Date, caption string, uploads []Upload) (*Entry, error) {
	assetIDs, err := s.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	now := s.now()
	e := &Entry{
		ID:            uuid.NewString(),
		UserID:        userID,
		Caption:       caption,
		MediaAssetIDs: assetIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	e.SetDate(date)

	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	s.log.InfoContext(ctx, "entry created", "entry_id", e.ID, "date", date.String(), "assets", len(assetIDs))
	return e, nil
}

// UpdateInput describes an edit. A nil Caption leaves the caption alone; a
// non-nil one replaces it wholesale. Uploads are appended after existing
// assets, RemoveAssetIDs are dropped.
type UpdateInput struct {
	Caption        *string
	Uploads        []Upload
	RemoveAssetIDs []string
}

func (s *Service) Update(ctx context.Context, entryID, userID string, in UpdateInput) (*Entry, error) {
	e, err := s.repo.FindByID(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}

	added, err := s.uploadAll(ctx, in.Uploads)
	if err != nil {
		return nil, err
	}

	if in.Caption != nil {
		e.Caption = *in.Caption
	}
	e.MediaAssetIDs = append(e.MediaAssetIDs, added...)
	if len(in.RemoveAssetIDs) > 0 {
		remove := map[string]bool{}
		for _, id := range in.RemoveAssetIDs {
			remove[id] = true
		}
		kept := e.MediaAssetIDs[:0]
		for _, id := range e.MediaAssetIDs {
			if !remove[id] {
				kept = append(kept, id)
			}
		}
		e.MediaAssetIDs = kept
	}
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, entryID, userID string) error {
	if _, err := s.repo.FindByID(ctx, entryID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, entryID, userID)
}

// uploadAll pushes media to the asset store one by one so the stored order
// stays the upload order.
func (s *Service) uploadAll(ctx context.Context, uploads []Upload) ([]string, error) {
	assetIDs := make([]string, 0, len(uploads))
	for _, u := range uploads {
		id, err := s.media.UploadAsset(ctx, u.Filename, u.ContentType, u.Data)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", u.Filename, err)
		}
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("upload %s: empty asset id", u.Filename)
		}
		assetIDs = append(assetIDs, id)
	}
	return assetIDs, nil
}

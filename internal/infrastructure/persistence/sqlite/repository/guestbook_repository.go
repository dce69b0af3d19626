package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domainguestbook "seichi/internal/domain/guestbook"
	"seichi/internal/errs"
	"seichi/internal/infrastructure/persistence/sqlite/model"
	"seichi/internal/ports"
)

type GuestbookRepository struct {
	db *gorm.DB
}

var _ ports.GuestbookRepository = (*GuestbookRepository)(nil)

func NewGuestbookRepository(db *gorm.DB) *GuestbookRepository {
	return &GuestbookRepository{db: db}
}

func (r *GuestbookRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *GuestbookRepository) GetEntry(ctx context.Context, entryID uint64) (ports.GuestbookEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.GuestbookEntry{}, err
	}

	var row model.GuestbookEntry
	if err := db.Where("entry_id = ?", entryID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.GuestbookEntry{}, domainguestbook.ErrEntryNotFound
		}
		return ports.GuestbookEntry{}, errs.Wrap(err, "query guestbook entry")
	}
	return mapEntry(row), nil
}

func (r *GuestbookRepository) ListHashtags(ctx context.Context, entryID uint64) ([]string, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.HashTag
	if err := db.
		Where("entry_id = ?", entryID).
		Order("tag asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query hashtags")
	}

	tags := make([]string, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, row.Tag)
	}
	return tags, nil
}

func (r *GuestbookRepository) ListImages(ctx context.Context, entryID uint64) ([]ports.GuestbookImage, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Image
	if err := db.
		Where("entry_id = ?", entryID).
		Order("image_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query images")
	}

	images := make([]ports.GuestbookImage, 0, len(rows))
	for _, row := range rows {
		images = append(images, ports.GuestbookImage{
			ImageID:    row.ImageID,
			EntryID:    row.EntryID,
			StorageRef: row.StorageRef,
			URL:        row.URL,
		})
	}
	return images, nil
}

func (r *GuestbookRepository) ListEntriesByUser(ctx context.Context, userID uint64, page ports.GuestbookEntryPage) ([]ports.GuestbookEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.GuestbookEntry{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("entry_id desc")
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}

	var rows []model.GuestbookEntry
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query entries by user")
	}
	return mapEntries(rows), nil
}

func (r *GuestbookRepository) ListTrendingSince(ctx context.Context, since string, limit int) ([]ports.GuestbookEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.GuestbookEntry{}).
		Where("created_at >= ?", since).
		Order("like_count desc").
		Order("entry_id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.GuestbookEntry
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query trending entries")
	}
	return mapEntries(rows), nil
}

func (r *GuestbookRepository) HasLike(ctx context.Context, entryID uint64, userID uint64) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.LikedEntry{}).
		Where("entry_id = ? AND user_id = ?", entryID, userID).
		Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "count like")
	}
	return count > 0, nil
}

func (r *GuestbookRepository) CreateEntry(ctx context.Context, entry ports.GuestbookEntry, hashtags []string, images []ports.GuestbookImage) (ports.GuestbookEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.GuestbookEntry{}, err
	}

	row := model.GuestbookEntry{
		UserID:       entry.UserID,
		PilgrimageID: entry.PilgrimageID,
		Title:        entry.Title,
		Body:         entry.Body,
		ViewCount:    entry.ViewCount,
		LikeCount:    entry.LikeCount,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.GuestbookEntry{}, errs.Wrap(err, "insert guestbook entry")
	}

	for _, tag := range hashtags {
		if err := db.Create(&model.HashTag{EntryID: row.EntryID, Tag: tag}).Error; err != nil {
			return ports.GuestbookEntry{}, errs.Wrap(err, "insert hashtag")
		}
	}

	for _, image := range images {
		if err := db.Create(&model.Image{
			EntryID:    row.EntryID,
			StorageRef: image.StorageRef,
			URL:        image.URL,
		}).Error; err != nil {
			return ports.GuestbookEntry{}, errs.Wrap(err, "insert image")
		}
	}

	return mapEntry(row), nil
}

func (r *GuestbookRepository) UpdateEntryText(ctx context.Context, entryID uint64, title *string, body *string, updatedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	updates := map[string]any{"updated_at": updatedAt}
	if title != nil {
		updates["title"] = *title
	}
	if body != nil {
		updates["body"] = *body
	}

	result := db.Model(&model.GuestbookEntry{}).
		Where("entry_id = ?", entryID).
		Updates(updates)
	if result.Error != nil {
		return errs.Wrap(result.Error, "update entry text")
	}
	if result.RowsAffected == 0 {
		return domainguestbook.ErrEntryNotFound
	}
	return nil
}

func (r *GuestbookRepository) ReplaceHashtags(ctx context.Context, entryID uint64, tags []string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Where("entry_id = ?", entryID).Delete(&model.HashTag{}).Error; err != nil {
		return errs.Wrap(err, "clear hashtags")
	}
	for _, tag := range tags {
		if err := db.Create(&model.HashTag{EntryID: entryID, Tag: tag}).Error; err != nil {
			return errs.Wrap(err, "insert hashtag")
		}
	}
	return nil
}

func (r *GuestbookRepository) ReplaceImages(ctx context.Context, entryID uint64, images []ports.GuestbookImage) ([]string, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var existing []model.Image
	if err := db.Where("entry_id = ?", entryID).Find(&existing).Error; err != nil {
		return nil, errs.Wrap(err, "query existing images")
	}

	if err := db.Where("entry_id = ?", entryID).Delete(&model.Image{}).Error; err != nil {
		return nil, errs.Wrap(err, "clear images")
	}
	for _, image := range images {
		if err := db.Create(&model.Image{
			EntryID:    entryID,
			StorageRef: image.StorageRef,
			URL:        image.URL,
		}).Error; err != nil {
			return nil, errs.Wrap(err, "insert image")
		}
	}

	removedRefs := make([]string, 0, len(existing))
	for _, row := range existing {
		removedRefs = append(removedRefs, row.StorageRef)
	}
	return removedRefs, nil
}

func (r *GuestbookRepository) DeleteEntry(ctx context.Context, entryID uint64) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Where("entry_id = ?", entryID).Delete(&model.HashTag{}).Error; err != nil {
		return errs.Wrap(err, "delete hashtags")
	}
	if err := db.Where("entry_id = ?", entryID).Delete(&model.Image{}).Error; err != nil {
		return errs.Wrap(err, "delete images")
	}
	if err := db.Where("entry_id = ?", entryID).Delete(&model.LikedEntry{}).Error; err != nil {
		return errs.Wrap(err, "delete likes")
	}

	result := db.Where("entry_id = ?", entryID).Delete(&model.GuestbookEntry{})
	if result.Error != nil {
		return errs.Wrap(result.Error, "delete guestbook entry")
	}
	if result.RowsAffected == 0 {
		return domainguestbook.ErrEntryNotFound
	}
	return nil
}

func (r *GuestbookRepository) DeleteLike(ctx context.Context, entryID uint64, userID uint64) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.
		Where("entry_id = ? AND user_id = ?", entryID, userID).
		Delete(&model.LikedEntry{}).Error; err != nil {
		return errs.Wrap(err, "delete like")
	}
	return nil
}

func (r *GuestbookRepository) IncrementView(ctx context.Context, entryID uint64) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.GuestbookEntry{}).
		Where("entry_id = ?", entryID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return errs.Wrap(result.Error, "increment view count")
	}
	if result.RowsAffected == 0 {
		return domainguestbook.ErrEntryNotFound
	}
	return nil
}

func mapEntry(row model.GuestbookEntry) ports.GuestbookEntry {
	return ports.GuestbookEntry{
		EntryID:      row.EntryID,
		UserID:       row.UserID,
		PilgrimageID: row.PilgrimageID,
		Title:        row.Title,
		Body:         row.Body,
		ViewCount:    row.ViewCount,
		LikeCount:    row.LikeCount,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapEntries(rows []model.GuestbookEntry) []ports.GuestbookEntry {
	items := make([]ports.GuestbookEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapEntry(row))
	}
	return items
}

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

type PointRepository struct {
	db *gorm.DB
}

var _ ports.PointRepository = (*PointRepository)(nil)

func NewPointRepository(db *gorm.DB) *PointRepository {
	return &PointRepository{db: db}
}

func (r *PointRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
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

func (r *PointRepository) GetUser(ctx context.Context, userID uint64) (ports.User, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.User{}, err
	}

	var row model.User
	if err := db.Where("user_id = ?", userID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, domainguestbook.ErrUserNotFound
		}
		return ports.User{}, errs.Wrap(err, "query user")
	}
	return mapUser(row), nil
}

func (r *PointRepository) FindUserByNickname(ctx context.Context, nickname string) (ports.User, bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.User{}, false, err
	}

	var row model.User
	if err := db.Where("nickname = ?", nickname).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, false, nil
		}
		return ports.User{}, false, errs.Wrap(err, "query user by nickname")
	}
	return mapUser(row), true, nil
}

func (r *PointRepository) CreateUser(ctx context.Context, nickname string) (ports.User, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.User{}, err
	}

	row := model.User{Nickname: nickname}
	if err := db.Create(&row).Error; err != nil {
		return ports.User{}, errs.Wrap(err, "insert user")
	}
	return mapUser(row), nil
}

func (r *PointRepository) Award(ctx context.Context, award ports.PointAward) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Create(&model.PointAward{
		UserID:    award.UserID,
		Amount:    award.Amount,
		Reason:    award.Reason,
		CreatedAt: award.CreatedAt,
	}).Error; err != nil {
		return errs.Wrap(err, "append point award")
	}

	// Increment pushed to the store so concurrent awards cannot lose updates.
	result := db.Model(&model.User{}).
		Where("user_id = ?", award.UserID).
		UpdateColumn("points", gorm.Expr("points + ?", award.Amount))
	if result.Error != nil {
		return errs.Wrap(result.Error, "update point balance")
	}
	if result.RowsAffected == 0 {
		return domainguestbook.ErrUserNotFound
	}
	return nil
}

func (r *PointRepository) ListAwards(ctx context.Context, userID uint64) ([]ports.PointAward, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.PointAward
	if err := db.
		Where("user_id = ?", userID).
		Order("award_id desc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query point awards")
	}

	items := make([]ports.PointAward, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.PointAward{
			AwardID:   row.AwardID,
			UserID:    row.UserID,
			Amount:    row.Amount,
			Reason:    row.Reason,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func mapUser(row model.User) ports.User {
	return ports.User{
		UserID:   row.UserID,
		Nickname: row.Nickname,
		Points:   row.Points,
	}
}

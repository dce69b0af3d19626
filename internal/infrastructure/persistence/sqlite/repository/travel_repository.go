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

type TravelRepository struct {
	db *gorm.DB
}

var _ ports.TravelRepository = (*TravelRepository)(nil)

func NewTravelRepository(db *gorm.DB) *TravelRepository {
	return &TravelRepository{db: db}
}

func (r *TravelRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
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

func (r *TravelRepository) GetPilgrimage(ctx context.Context, pilgrimageID uint64) (ports.Pilgrimage, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Pilgrimage{}, err
	}

	var row model.Pilgrimage
	if err := db.Where("pilgrimage_id = ?", pilgrimageID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Pilgrimage{}, domainguestbook.ErrPilgrimageNotFound
		}
		return ports.Pilgrimage{}, errs.Wrap(err, "query pilgrimage")
	}
	return mapPilgrimage(row), nil
}

func (r *TravelRepository) GetRally(ctx context.Context, rallyID uint64) (ports.Rally, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Rally{}, err
	}

	var row model.Rally
	if err := db.Where("rally_id = ?", rallyID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Rally{}, fmt.Errorf("rally %d not found", rallyID)
		}
		return ports.Rally{}, errs.Wrap(err, "query rally")
	}
	return mapRally(row), nil
}

func (r *TravelRepository) ListPilgrimages(ctx context.Context) ([]ports.Pilgrimage, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Pilgrimage
	if err := db.Order("pilgrimage_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query pilgrimages")
	}

	items := make([]ports.Pilgrimage, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapPilgrimage(row))
	}
	return items, nil
}

func (r *TravelRepository) FindRallyByName(ctx context.Context, name string) (ports.Rally, bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Rally{}, false, err
	}

	var row model.Rally
	if err := db.Where("name = ?", name).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Rally{}, false, nil
		}
		return ports.Rally{}, false, errs.Wrap(err, "query rally by name")
	}
	return mapRally(row), true, nil
}

func (r *TravelRepository) FindPilgrimageByName(ctx context.Context, rallyID uint64, name string) (ports.Pilgrimage, bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Pilgrimage{}, false, err
	}

	var row model.Pilgrimage
	if err := db.Where("rally_id = ? AND name = ?", rallyID, name).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Pilgrimage{}, false, nil
		}
		return ports.Pilgrimage{}, false, errs.Wrap(err, "query pilgrimage by name")
	}
	return mapPilgrimage(row), true, nil
}

func (r *TravelRepository) CreateRally(ctx context.Context, rally ports.Rally) (ports.Rally, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Rally{}, err
	}

	row := model.Rally{
		Name:            rally.Name,
		Description:     rally.Description,
		AchieveCount:    rally.AchieveCount,
		PilgrimageCount: rally.PilgrimageCount,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Rally{}, errs.Wrap(err, "insert rally")
	}
	return mapRally(row), nil
}

func (r *TravelRepository) CreatePilgrimage(ctx context.Context, pilgrimage ports.Pilgrimage) (ports.Pilgrimage, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Pilgrimage{}, err
	}

	row := model.Pilgrimage{
		RallyID:    pilgrimage.RallyID,
		Name:       pilgrimage.Name,
		Address:    pilgrimage.Address,
		VisitCount: pilgrimage.VisitCount,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Pilgrimage{}, errs.Wrap(err, "insert pilgrimage")
	}

	if err := db.Model(&model.Rally{}).
		Where("rally_id = ?", row.RallyID).
		UpdateColumn("pilgrimage_count", gorm.Expr("pilgrimage_count + 1")).Error; err != nil {
		return ports.Pilgrimage{}, errs.Wrap(err, "advance rally pilgrimage count")
	}

	return mapPilgrimage(row), nil
}

func (r *TravelRepository) HasVisited(ctx context.Context, userID uint64, pilgrimageID uint64) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	var row model.VisitedPilgrimage
	err = db.
		Where("user_id = ? AND pilgrimage_id = ?", userID, pilgrimageID).
		Order("created_at desc").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errs.Wrap(err, "query visit history")
	}
	return true, nil
}

func (r *TravelRepository) ListVisits(ctx context.Context, userID uint64, pilgrimageID uint64) ([]ports.VisitRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.VisitedPilgrimage
	if err := db.
		Where("user_id = ? AND pilgrimage_id = ?", userID, pilgrimageID).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query visits")
	}

	items := make([]ports.VisitRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.VisitRecord{
			VisitID:      row.VisitID,
			UserID:       row.UserID,
			PilgrimageID: row.PilgrimageID,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *TravelRepository) AppendVisit(ctx context.Context, userID uint64, pilgrimageID uint64, createdAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Create(&model.VisitedPilgrimage{
		UserID:       userID,
		PilgrimageID: pilgrimageID,
		CreatedAt:    createdAt,
	}).Error; err != nil {
		return errs.Wrap(err, "append visit")
	}
	return nil
}

func (r *TravelRepository) IncrementVisitCounters(ctx context.Context, pilgrimageID uint64) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	var row model.Pilgrimage
	if err := db.Where("pilgrimage_id = ?", pilgrimageID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainguestbook.ErrPilgrimageNotFound
		}
		return errs.Wrap(err, "query pilgrimage for counters")
	}

	if err := db.Model(&model.Pilgrimage{}).
		Where("pilgrimage_id = ?", pilgrimageID).
		UpdateColumn("visit_count", gorm.Expr("visit_count + 1")).Error; err != nil {
		return errs.Wrap(err, "advance pilgrimage visit count")
	}

	if err := db.Model(&model.Rally{}).
		Where("rally_id = ?", row.RallyID).
		UpdateColumn("achieve_count", gorm.Expr("achieve_count + 1")).Error; err != nil {
		return errs.Wrap(err, "advance rally achieve count")
	}
	return nil
}

func mapRally(row model.Rally) ports.Rally {
	return ports.Rally{
		RallyID:         row.RallyID,
		Name:            row.Name,
		Description:     row.Description,
		AchieveCount:    row.AchieveCount,
		PilgrimageCount: row.PilgrimageCount,
	}
}

func mapPilgrimage(row model.Pilgrimage) ports.Pilgrimage {
	return ports.Pilgrimage{
		PilgrimageID: row.PilgrimageID,
		RallyID:      row.RallyID,
		Name:         row.Name,
		Address:      row.Address,
		VisitCount:   row.VisitCount,
	}
}

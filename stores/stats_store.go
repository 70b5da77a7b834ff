package stores

import (
	"context"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"gorm.io/gorm"
)

type StatsStore interface {
	// Counts reads entity totals and report counts by status. When inspectorID is
	// non-zero the inspector's own reports are counted as well.
	Counts(ctx context.Context, inspectorID uint) (types.Counts, error)
}

type GormStatsStore struct{ DB *gorm.DB }

type statusCount struct {
	Status models.ReportStatus
	Count  int64
}

func (s *GormStatsStore) Counts(ctx context.Context, inspectorID uint) (types.Counts, error) {
	db := s.DB.WithContext(ctx)
	var c types.Counts

	if err := db.Model(&models.User{}).Count(&c.Users).Error; err != nil {
		return c, classify(err, "User")
	}
	if err := db.Model(&models.Guideline{}).Count(&c.Guidelines).Error; err != nil {
		return c, classify(err, "Guideline")
	}
	if err := db.Model(&models.InspectionForm{}).Count(&c.Forms).Error; err != nil {
		return c, classify(err, "Form")
	}

	var err error
	if c.Reports, err = countByStatus(db.Model(&models.InspectionReport{})); err != nil {
		return c, err
	}
	if inspectorID != 0 {
		mine := db.Model(&models.InspectionReport{}).Where("inspector_id = ?", inspectorID)
		if c.Mine, err = countByStatus(mine); err != nil {
			return c, err
		}
	}
	return c, nil
}

func countByStatus(q *gorm.DB) (map[models.ReportStatus]int64, error) {
	var rows []statusCount
	if err := q.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, classify(err, "Report")
	}
	counts := make(map[models.ReportStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

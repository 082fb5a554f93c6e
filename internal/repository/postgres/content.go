package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
)

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) ListContent(ctx context.Context, filter *model.ContentFilter) ([]*model.InfoContent, error) {
	query := `SELECT * FROM info_contents WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter != nil {
		if filter.Category != "" {
			query += fmt.Sprintf(" AND category = $%d", idx)
			args = append(args, filter.Category)
			idx++
		}
		if filter.TargetAudience != "" {
			query += fmt.Sprintf(" AND target_audience IN ($%d, 'both')", idx)
			args = append(args, filter.TargetAudience)
			idx++
		}
		if filter.Trimester != "" {
			query += fmt.Sprintf(" AND trimester IN ($%d, 'all')", idx)
			args = append(args, filter.Trimester)
			idx++
		}
		if filter.PostpartumStage != "" {
			query += fmt.Sprintf(" AND postpartum_stage IN ($%d, 'all')", idx)
			args = append(args, filter.PostpartumStage)
			idx++
		}
	}
	query += " ORDER BY created_at DESC"

	var contents []*model.InfoContent
	if err := r.db.SelectContext(ctx, &contents, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	// Week relevance is a range check over two nullable columns; simpler to
	// filter here than in SQL.
	if filter != nil && filter.Week != nil {
		filtered := contents[:0]
		for _, c := range contents {
			if c.RelevantForWeek(*filter.Week) {
				filtered = append(filtered, c)
			}
		}
		contents = filtered
	}

	return contents, nil
}

func (r *contentRepository) ListTips(ctx context.Context, week int) ([]*model.PregnancyTip, error) {
	query := `
		SELECT * FROM pregnancy_tips
		WHERE is_active = true AND week_start <= $1 AND week_end >= $1
		ORDER BY week_start, created_at
	`
	var tips []*model.PregnancyTip
	if err := r.db.SelectContext(ctx, &tips, query, week); err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	return tips, nil
}

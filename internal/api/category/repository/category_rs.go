package categoryRepository

import (
	"SmartBudget/database"
	"SmartBudget/internal/api/category"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CategoryDB struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	Name        sql.NullString `db:"name"`
	Description sql.NullString `db:"description"`
	ColorHex    sql.NullString `db:"color_hex"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

func (r *categoryRepository) CreateCategory(c context.Context, category entity.Category) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          category.ID,
		"user_id":     category.UserID,
		"name":        category.Name,
		"description": nullString(category.Description),
		"color_hex":   category.ColorHex,
		"created_at":  category.CreatedAt.UTC(),
	}

	query, args, err := sqlx.Named(queryCreateCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCategory")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating category")
		return err
	}

	return nil
}

func (r *categoryRepository) GetCategoryByID(c context.Context, id string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(c)
	var row CategoryDB

	query, args, err := sqlx.Named(queryGetCategoryByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryByID named query preparation err")
		return entity.Category{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": id,
			}).Debug("GetCategoryByID no rows found")
			return entity.Category{}, category.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryByID execution err")
		return entity.Category{}, err
	}

	return r.makeCategory(row), nil
}

func (r *categoryRepository) GetCategoriesByUserID(c context.Context, userID string) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []CategoryDB

	query, args, err := sqlx.Named(queryGetCategoriesByUserID, map[string]interface{}{"user_id": userID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoriesByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoriesByUserID execution err")
		return nil, err
	}

	result := make([]entity.Category, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeCategory(row))
	}

	return result, nil
}

func (r *categoryRepository) UpdateCategory(c context.Context, category entity.Category) error {
	requestID := contextPkg.GetRequestID(c)

	var updatedAt interface{}
	if category.UpdatedAt != nil {
		updatedAt = category.UpdatedAt.UTC()
	}

	argsKV := map[string]interface{}{
		"id":          category.ID,
		"name":        category.Name,
		"description": nullString(category.Description),
		"color_hex":   category.ColorHex,
		"updated_at":  updatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateCategory")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating category")
		return err
	}

	return nil
}

func (r *categoryRepository) DeleteCategory(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteCategory, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteCategory")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": id,
			}).Warn("Category still referenced")
			return category.ErrCategoryInUse
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting category")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) makeCategory(row CategoryDB) entity.Category {
	c := entity.Category{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		Name:      row.Name.String,
		ColorHex:  row.ColorHex.String,
		CreatedAt: row.CreatedAt.UTC(),
	}

	if row.Description.Valid {
		description := row.Description.String
		c.Description = &description
	}

	if row.UpdatedAt.Valid {
		updatedAt := row.UpdatedAt.Time.UTC()
		c.UpdatedAt = &updatedAt
	}

	return c
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

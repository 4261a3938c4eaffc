package categoryRepository

const (
	queryCreateCategory = `
		INSERT INTO categories (id, user_id, name, description, color_hex, created_at)
		VALUES (:id, :user_id, :name, :description, :color_hex, :created_at)
	`

	queryGetCategoryByID = `
		SELECT id, user_id, name, description, color_hex, created_at, updated_at
		FROM categories
		WHERE id = :id
	`

	queryGetCategoriesByUserID = `
		SELECT id, user_id, name, description, color_hex, created_at, updated_at
		FROM categories
		WHERE user_id = :user_id
		ORDER BY name ASC, id ASC
	`

	queryUpdateCategory = `
		UPDATE categories
		SET name = :name, description = :description, color_hex = :color_hex, updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteCategory = `
		DELETE FROM categories
		WHERE id = :id
	`
)

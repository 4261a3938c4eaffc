package budgetRepository

const (
	queryCreateBudget = `
		INSERT INTO budgets (id, user_id, category_id, limit_amount, month, year, created_at)
		VALUES (:id, :user_id, :category_id, :limit_amount, :month, :year, :created_at)
	`

	queryGetBudgetByID = `
		SELECT id, user_id, category_id, limit_amount, month, year, created_at, updated_at
		FROM budgets
		WHERE id = :id
	`

	queryGetBudgetsByUserID = `
		SELECT id, user_id, category_id, limit_amount, month, year, created_at, updated_at
		FROM budgets
		WHERE user_id = :user_id
	`

	queryFilterPeriod  = ` AND month = :month AND year = :year`
	queryOrderByPeriod = ` ORDER BY year DESC, month DESC, id ASC`

	queryUpdateBudget = `
		UPDATE budgets
		SET category_id = :category_id, limit_amount = :limit_amount, month = :month,
			year = :year, updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteBudget = `
		DELETE FROM budgets
		WHERE id = :id
	`

	queryGetCategoryOwner = `
		SELECT user_id
		FROM categories
		WHERE id = :id
	`

	queryGetSpentAmounts = `
		SELECT amount
		FROM expenses
		WHERE user_id = :user_id AND category_id = :category_id
			AND transaction_date >= :date_from AND transaction_date < :date_to
	`
)

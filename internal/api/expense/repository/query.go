package expenseRepository

const (
	queryCreateExpense = `
		INSERT INTO expenses (id, user_id, category_id, amount, description, transaction_date, receipt_key, created_at)
		VALUES (:id, :user_id, :category_id, :amount, :description, :transaction_date, :receipt_key, :created_at)
	`

	queryGetExpenseByID = `
		SELECT id, user_id, category_id, amount, description, transaction_date, receipt_key, created_at, updated_at
		FROM expenses
		WHERE id = :id
	`

	queryGetExpensesByUserID = `
		SELECT id, user_id, category_id, amount, description, transaction_date, receipt_key, created_at, updated_at
		FROM expenses
		WHERE user_id = :user_id
	`

	queryFilterDateFrom = ` AND transaction_date >= :date_from`
	queryFilterDateTo   = ` AND transaction_date < :date_to`
	queryOrderByDate    = ` ORDER BY transaction_date DESC, created_at DESC, id DESC`

	queryUpdateExpense = `
		UPDATE expenses
		SET category_id = :category_id, amount = :amount, description = :description,
			transaction_date = :transaction_date, receipt_key = :receipt_key, updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteExpense = `
		DELETE FROM expenses
		WHERE id = :id
	`

	queryGetCategoryOwner = `
		SELECT user_id
		FROM categories
		WHERE id = :id
	`
)

package incomeRepository

const (
	queryCreateIncome = `
		INSERT INTO incomes (id, user_id, amount, description, source, transaction_date, created_at)
		VALUES (:id, :user_id, :amount, :description, :source, :transaction_date, :created_at)
	`

	queryGetIncomeByID = `
		SELECT id, user_id, amount, description, source, transaction_date, created_at, updated_at
		FROM incomes
		WHERE id = :id
	`

	queryGetIncomesByUserID = `
		SELECT id, user_id, amount, description, source, transaction_date, created_at, updated_at
		FROM incomes
		WHERE user_id = :user_id
	`

	queryFilterDateFrom = ` AND transaction_date >= :date_from`
	queryFilterDateTo   = ` AND transaction_date < :date_to`
	queryOrderByDate    = ` ORDER BY transaction_date DESC, created_at DESC, id DESC`

	queryUpdateIncome = `
		UPDATE incomes
		SET amount = :amount, description = :description, source = :source,
			transaction_date = :transaction_date, updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteIncome = `
		DELETE FROM incomes
		WHERE id = :id
	`
)

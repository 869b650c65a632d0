package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
)

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) model.OrderRepository {
	return &orderRepository{db: db}
}

type orderRow struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Total     decimal.Decimal `db:"total"`
	CreatedAt time.Time       `db:"created_at"`
}

type orderLineRow struct {
	ID        uuid.UUID       `db:"id"`
	OrderID   uuid.UUID       `db:"order_id"`
	ProductID uuid.UUID       `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}

func (r *orderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

// Create inserts the order with its lines and decrements stock for every
// line with a conditional update. A decrement that matches no row means a
// concurrent checkout consumed the stock first; the whole transaction is
// rolled back.
func (r *orderRepository) Create(order *model.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO orders (id, user_id, total, created_at) VALUES (?, ?, ?, ?)`,
		order.ID, order.UserID, order.Total, order.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	for _, line := range order.Lines {
		_, err = tx.Exec(
			`INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price, subtotal)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal,
		)
		if err != nil {
			return errors.Wrap(err, "insert order line")
		}

		res, err := tx.Exec(
			`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`,
			line.Quantity, line.ProductID, line.Quantity,
		)
		if err != nil {
			return errors.Wrap(err, "decrement stock")
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "decrement stock")
		}
		if affected == 0 {
			return r.insufficientStock(tx, line)
		}
	}

	return errors.Wrap(tx.Commit(), "commit transaction")
}

func (r *orderRepository) insufficientStock(tx *sqlx.Tx, line model.OrderLine) error {
	var snapshot struct {
		Name  string `db:"name"`
		Stock int    `db:"stock"`
	}
	err := tx.Get(&snapshot, `SELECT name, stock FROM products WHERE id = ?`, line.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrProductNotFound
	}
	if err != nil {
		return errors.Wrap(err, "select product snapshot")
	}
	return &model.InsufficientStockError{
		ProductName: snapshot.Name,
		Available:   snapshot.Stock,
		Requested:   line.Quantity,
	}
}

func (r *orderRepository) Find(id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT id, user_id, total, created_at FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select order")
	}

	order := model.Order{ID: row.ID, UserID: row.UserID, Total: row.Total, CreatedAt: row.CreatedAt}
	if order.Lines, err = r.lines(order.ID); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	return r.selectMany(
		`SELECT id, user_id, total, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	return r.selectMany(`SELECT id, user_id, total, created_at FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) HasLinesForProduct(productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM order_lines WHERE product_id = ?)`, productID)
	return exists, errors.Wrap(err, "check order lines for product")
}

func (r *orderRepository) selectMany(query string, args ...interface{}) ([]model.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select orders")
	}

	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		order := model.Order{ID: row.ID, UserID: row.UserID, Total: row.Total, CreatedAt: row.CreatedAt}
		lines, err := r.lines(order.ID)
		if err != nil {
			return nil, err
		}
		order.Lines = lines
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *orderRepository) lines(orderID uuid.UUID) ([]model.OrderLine, error) {
	var rows []orderLineRow
	err := r.db.Select(&rows,
		`SELECT id, order_id, product_id, quantity, unit_price, subtotal
		 FROM order_lines WHERE order_id = ?`, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "select order lines")
	}

	lines := make([]model.OrderLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, model.OrderLine{
			ID:        row.ID,
			OrderID:   row.OrderID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			Subtotal:  row.Subtotal,
		})
	}
	return lines, nil
}

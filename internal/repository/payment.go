package repository

import (
	"context" // Request scoped cancellation
	"strings" // Search normalization

	"booking_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// PaymentSortColumns maps the sortable JSON field names to columns
var PaymentSortColumns = map[string]string{
	"createdAt":    "created_at",
	"amount":       "amount",
	"customerName": "customer_name",
	"status":       "status",
	"orderNumber":  "order_number",
}

// PaymentFilter narrows payment reads; the zero value matches every payment
type PaymentFilter struct {
	Status domain.PaymentStatus // Exact status match
	Search string               // Case-insensitive match on customer, email, order number, product
}

// PaymentQuery is a filtered, ordered and optionally paginated read
type PaymentQuery struct {
	PaymentFilter
	SortField string // Key of PaymentSortColumns, defaults to createdAt
	Ascending bool   // Default order is descending
	Page      int    // 1-based, 0 disables pagination
	PageSize  int
}

// PaymentRepository persists payments through GORM
type PaymentRepository struct {
	DB *gorm.DB
}

// NewPaymentRepository creates a PaymentRepository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Create inserts a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return translate(r.DB.WithContext(ctx).Create(payment).Error)
}

func (r *PaymentRepository) filtered(ctx context.Context, f PaymentFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&domain.Payment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(order_number) LIKE ? OR LOWER(product) LIKE ?", like, like, like, like)
	}
	return q
}

// List returns payments matching the query, newest first unless told otherwise
func (r *PaymentRepository) List(ctx context.Context, pq PaymentQuery) ([]domain.Payment, error) {
	column, ok := PaymentSortColumns[pq.SortField]
	if !ok {
		column = "created_at"
	}
	dir := " DESC"
	if pq.Ascending {
		dir = " ASC"
	}
	q := r.filtered(ctx, pq.PaymentFilter).Order(column + dir).Order("id" + dir)
	if pq.Page > 0 && pq.PageSize > 0 {
		q = q.Offset((pq.Page - 1) * pq.PageSize).Limit(pq.PageSize)
	}
	payments := []domain.Payment{}
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Count returns the number of payments matching the filter
func (r *PaymentRepository) Count(ctx context.Context, f PaymentFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, err
}

// AmountSummary holds SUM and AVG of amount over a status
type AmountSummary struct {
	Total   float64
	Average float64
}

// SumAmounts aggregates the amount column for one status; both values are 0 when nothing matches
func (r *PaymentRepository) SumAmounts(ctx context.Context, status domain.PaymentStatus) (AmountSummary, error) {
	var s AmountSummary
	err := r.filtered(ctx, PaymentFilter{Status: status}).
		Select("COALESCE(SUM(amount), 0) AS total, COALESCE(AVG(amount), 0) AS average").
		Scan(&s).Error
	return s, err
}

// FindByID loads a single payment
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (domain.Payment, error) {
	var p domain.Payment
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return domain.Payment{}, translate(err)
	}
	return p, nil
}

// FindByOrderNumber loads the payment owning an order number
func (r *PaymentRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (domain.Payment, error) {
	var p domain.Payment
	if err := r.DB.WithContext(ctx).Where("order_number = ?", orderNumber).First(&p).Error; err != nil {
		return domain.Payment{}, translate(err)
	}
	return p, nil
}

// Update applies the given column values and returns the stored result
func (r *PaymentRepository) Update(ctx context.Context, id string, fields map[string]any) (domain.Payment, error) {
	var p domain.Payment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&p).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).First(&p).Error
	})
	if err != nil {
		return domain.Payment{}, translate(err)
	}
	return p, nil
}

// Delete removes a payment
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Payment{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

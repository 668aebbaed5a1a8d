package service

import (
	"context"       // Request scoped cancellation
	"encoding/json" // Numeric fields sent as numbers or strings
	"errors"        // Error inspection
	"strings"       // Input normalization
	"time"          // Stay dates

	"booking_system/internal/domain"     // Importing domain models
	"booking_system/internal/metrics"    // Prometheus collectors
	"booking_system/internal/repository" // Storage layer

	"github.com/go-playground/validator/v10" // Struct validation
	"github.com/sirupsen/logrus"             // Logrus for structured logging
)

// PaymentRepository is the storage contract of PaymentService
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	List(ctx context.Context, q repository.PaymentQuery) ([]domain.Payment, error)
	Count(ctx context.Context, f repository.PaymentFilter) (int64, error)
	SumAmounts(ctx context.Context, status domain.PaymentStatus) (repository.AmountSummary, error)
	FindByID(ctx context.Context, id string) (domain.Payment, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (domain.Payment, error)
	Update(ctx context.Context, id string, fields map[string]any) (domain.Payment, error)
	Delete(ctx context.Context, id string) error
}

// PaymentInput is used for both create and partial update; nil fields are absent
type PaymentInput struct {
	OrderNumber              *string      `json:"orderNumber" validate:"omitnil,min=1,nohtml"`
	CustomerName             *string      `json:"customerName" validate:"omitnil,min=1,nohtml"`
	CustomerEmail            *string      `json:"customerEmail" validate:"omitnil,email"`
	CustomerPhone            *string      `json:"customerPhone" validate:"omitnil,min=1,nohtml"`
	Product                  *string      `json:"product" validate:"omitnil,min=1,nohtml"`
	Amount                   *json.Number `json:"amount" validate:"omitnil,numeric"`
	Currency                 *string      `json:"currency" validate:"omitnil,min=1,max=8,nohtml"`
	PaymentMethod            *string      `json:"paymentMethod" validate:"omitnil,min=1,nohtml"`
	CardType                 *string      `json:"cardType" validate:"omitnil,nohtml"`
	Last4Digits              *string      `json:"last4Digits" validate:"omitnil,max=4,nohtml"`
	Status                   *string      `json:"status" validate:"omitnil,oneof=pending completed failed refunded"`
	ExternalPaymentReference *string      `json:"stripePaymentId" validate:"omitnil,nohtml"`
	CheckInDate              *string      `json:"checkInDate"`
	CheckOutDate             *string      `json:"checkOutDate"`
	NumberOfGuests           *json.Number `json:"numberOfGuests" validate:"omitnil,number"`
	RoomType                 *string      `json:"roomType" validate:"omitnil,nohtml"`
	SpecialRequests          *string      `json:"specialRequests" validate:"omitnil,nohtml"`
	Notes                    *string      `json:"notes" validate:"omitnil,nohtml"`
}

// ListPaymentsQuery carries the optional list parameters
type ListPaymentsQuery struct {
	Status   string
	Search   string
	Sort     string
	Order    string
	Page     int
	PageSize int
}

// PaymentPage is a list result; Total is set only when paginated
type PaymentPage struct {
	Payments  []domain.Payment
	Total     int64
	Page      int
	PageSize  int
	Paginated bool
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PaymentService implements CRUD and statistics for payment records
type PaymentService struct {
	repo     PaymentRepository
	validate *validator.Validate
}

// NewPaymentService creates a PaymentService
func NewPaymentService(repo PaymentRepository, validate *validator.Validate) *PaymentService {
	return &PaymentService{repo: repo, validate: validate}
}

// Create validates, applies defaults and stores a payment
func (s *PaymentService) Create(ctx context.Context, in PaymentInput) (domain.Payment, error) {
	var p problems
	requireField(&p, "orderNumber", in.OrderNumber)
	requireField(&p, "customerName", in.CustomerName)
	requireField(&p, "customerEmail", in.CustomerEmail)
	requireField(&p, "customerPhone", in.CustomerPhone)
	requireField(&p, "product", in.Product)
	if in.Amount == nil || *in.Amount == "" {
		p.add("amount is required")
	}
	requireField(&p, "paymentMethod", in.PaymentMethod)

	payment := domain.Payment{
		Currency:       domain.DefaultCurrency,
		Status:         domain.PaymentPending,
		NumberOfGuests: 1,
	}
	fields := s.collect(in, &p)
	if err := p.err(); err != nil {
		return domain.Payment{}, err
	}
	applyFields(&payment, fields)

	if _, err := s.repo.FindByOrderNumber(ctx, payment.OrderNumber); err == nil {
		return domain.Payment{}, newError(KindConflict, msgPaymentExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.Payment{}, internal(err)
	}

	if err := s.repo.Create(ctx, &payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Payment{}, newError(KindConflict, msgPaymentExists)
		}
		logrus.WithFields(logrus.Fields{"order_number": payment.OrderNumber, "error": err.Error()}).Error("Create payment failed")
		return domain.Payment{}, internal(err)
	}

	metrics.PaymentsCreated.WithLabelValues(string(payment.Status)).Inc()
	logrus.WithFields(logrus.Fields{
		"payment_id":   payment.ID,
		"order_number": payment.OrderNumber,
		"amount":       payment.Amount,
		"status":       payment.Status,
	}).Info("Payment created")
	return payment, nil
}

// List returns payments newest first unless the query asks otherwise
func (s *PaymentService) List(ctx context.Context, lq ListPaymentsQuery) (PaymentPage, error) {
	var p problems
	q := repository.PaymentQuery{
		PaymentFilter: repository.PaymentFilter{
			Status: domain.PaymentStatus(lq.Status),
			Search: lq.Search,
		},
		SortField: lq.Sort,
	}
	if lq.Status != "" && !q.Status.Valid() {
		p.add("status must be one of [pending completed failed refunded]")
	}
	if q.SortField == "" {
		q.SortField = "createdAt"
	} else if _, ok := repository.PaymentSortColumns[q.SortField]; !ok {
		p.add("sort must be one of [createdAt amount customerName status orderNumber]")
	}
	switch strings.ToLower(lq.Order) {
	case "", "desc":
	case "asc":
		q.Ascending = true
	default:
		p.add("order must be asc or desc")
	}
	if err := p.err(); err != nil {
		return PaymentPage{}, err
	}

	page := PaymentPage{}
	if lq.Page > 0 {
		page.Paginated = true
		page.Page = lq.Page
		page.PageSize = lq.PageSize
		if page.PageSize <= 0 {
			page.PageSize = defaultPageSize
		}
		if page.PageSize > maxPageSize {
			page.PageSize = maxPageSize
		}
		q.Page, q.PageSize = page.Page, page.PageSize
	}

	payments, err := s.repo.List(ctx, q)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("List payments failed")
		return PaymentPage{}, internal(err)
	}
	page.Payments = payments
	if page.Paginated {
		if page.Total, err = s.repo.Count(ctx, q.PaymentFilter); err != nil {
			return PaymentPage{}, internal(err)
		}
	}
	return page, nil
}

// GetByID returns one payment
func (s *PaymentService) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Payment{}, s.lookupError(err)
	}
	return payment, nil
}

// Update merges the supplied fields into the stored payment
func (s *PaymentService) Update(ctx context.Context, id string, in PaymentInput) (domain.Payment, error) {
	var p problems
	fields := s.collect(in, &p)
	if err := p.err(); err != nil {
		return domain.Payment{}, err
	}

	if err := s.checkStayAgainstStored(ctx, id, fields); err != nil {
		return domain.Payment{}, err
	}

	if v, ok := fields["order_number"]; ok {
		owner, err := s.repo.FindByOrderNumber(ctx, v.(string))
		switch {
		case err == nil && owner.ID != id:
			return domain.Payment{}, newError(KindConflict, msgPaymentExists)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return domain.Payment{}, internal(err)
		}
	}

	payment, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Payment{}, newError(KindConflict, msgPaymentExists)
		}
		return domain.Payment{}, s.lookupError(err)
	}
	logrus.WithFields(logrus.Fields{"payment_id": id, "status": payment.Status}).Info("Payment updated")
	return payment, nil
}

// Delete removes a payment
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.lookupError(err)
	}
	logrus.WithField("payment_id", id).Info("Payment deleted")
	return nil
}

// Stats runs the aggregate reads behind the dashboard counters
func (s *PaymentService) Stats(ctx context.Context) (domain.PaymentStats, error) {
	var stats domain.PaymentStats
	counts := []struct {
		status domain.PaymentStatus
		dst    *int64
	}{
		{"", &stats.TotalPayments},
		{domain.PaymentCompleted, &stats.CompletedPayments},
		{domain.PaymentPending, &stats.PendingPayments},
		{domain.PaymentFailed, &stats.FailedPayments},
	}
	for _, c := range counts {
		n, err := s.repo.Count(ctx, repository.PaymentFilter{Status: c.status})
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Count payments failed")
			return domain.PaymentStats{}, internal(err)
		}
		*c.dst = n
	}
	sum, err := s.repo.SumAmounts(ctx, domain.PaymentCompleted)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Sum payments failed")
		return domain.PaymentStats{}, internal(err)
	}
	stats.TotalAmount = sum.Total
	stats.AverageAmount = sum.Average
	return stats, nil
}

// collect validates the present fields and returns them keyed by column
func (s *PaymentService) collect(in PaymentInput, p *problems) map[string]any {
	p.merge(s.validate.Struct(&in))

	fields := map[string]any{}
	setString(fields, "order_number", trimmed(in.OrderNumber))
	setString(fields, "customer_name", in.CustomerName)
	setString(fields, "customer_email", trimmed(in.CustomerEmail))
	setString(fields, "customer_phone", in.CustomerPhone)
	setString(fields, "product", in.Product)
	setString(fields, "currency", in.Currency)
	setString(fields, "payment_method", in.PaymentMethod)
	setString(fields, "card_type", in.CardType)
	setString(fields, "last4_digits", in.Last4Digits)
	setString(fields, "external_payment_reference", in.ExternalPaymentReference)
	setString(fields, "room_type", in.RoomType)
	setString(fields, "special_requests", in.SpecialRequests)
	setString(fields, "notes", in.Notes)
	if in.Status != nil {
		fields["status"] = domain.PaymentStatus(*in.Status)
	}

	if in.Amount != nil && *in.Amount != "" {
		if v, ok := parseFloat("amount", *in.Amount, p); ok {
			if v < 0 {
				p.add("amount must not be negative")
			}
			fields["amount"] = v
		}
	}
	if in.NumberOfGuests != nil && *in.NumberOfGuests != "" {
		if v, ok := parseInt("numberOfGuests", *in.NumberOfGuests, p); ok {
			if v < 1 {
				p.add("numberOfGuests must be at least 1")
			}
			fields["number_of_guests"] = v
		}
	}

	var checkIn, checkOut *time.Time
	if in.CheckInDate != nil {
		if t, ok := parseDate("checkInDate", *in.CheckInDate, p); ok {
			checkIn = t
			fields["check_in_date"] = t
		}
	}
	if in.CheckOutDate != nil {
		if t, ok := parseDate("checkOutDate", *in.CheckOutDate, p); ok {
			checkOut = t
			fields["check_out_date"] = t
		}
	}
	if checkIn != nil && checkOut != nil && checkOut.Before(*checkIn) {
		p.add(msgStayDates)
	}
	return fields
}

// checkStayAgainstStored validates an update that moves only one end of the stay
func (s *PaymentService) checkStayAgainstStored(ctx context.Context, id string, fields map[string]any) error {
	newIn, hasIn := fields["check_in_date"]
	newOut, hasOut := fields["check_out_date"]
	if hasIn == hasOut {
		return nil // Neither or both given; collect already compared them
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.lookupError(err)
	}
	checkIn, checkOut := current.CheckInDate, current.CheckOutDate
	if hasIn {
		checkIn = newIn.(*time.Time)
	}
	if hasOut {
		checkOut = newOut.(*time.Time)
	}
	if checkIn != nil && checkOut != nil && checkOut.Before(*checkIn) {
		return newError(KindValidation, msgStayDates)
	}
	return nil
}

func (s *PaymentService) lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newError(KindNotFound, msgPaymentNotFound)
	}
	logrus.WithField("error", err.Error()).Error("Payment store failure")
	return internal(err)
}

// applyFields copies collected column values onto a new payment
func applyFields(p *domain.Payment, fields map[string]any) {
	for column, v := range fields {
		switch column {
		case "order_number":
			p.OrderNumber = v.(string)
		case "customer_name":
			p.CustomerName = v.(string)
		case "customer_email":
			p.CustomerEmail = v.(string)
		case "customer_phone":
			p.CustomerPhone = v.(string)
		case "product":
			p.Product = v.(string)
		case "amount":
			p.Amount = v.(float64)
		case "currency":
			p.Currency = v.(string)
		case "payment_method":
			p.PaymentMethod = v.(string)
		case "card_type":
			p.CardType = v.(string)
		case "last4_digits":
			p.Last4Digits = v.(string)
		case "status":
			p.Status = v.(domain.PaymentStatus)
		case "external_payment_reference":
			p.ExternalPaymentReference = v.(string)
		case "check_in_date":
			p.CheckInDate = v.(*time.Time)
		case "check_out_date":
			p.CheckOutDate = v.(*time.Time)
		case "number_of_guests":
			p.NumberOfGuests = v.(int)
		case "room_type":
			p.RoomType = v.(string)
		case "special_requests":
			p.SpecialRequests = v.(string)
		case "notes":
			p.Notes = v.(string)
		}
	}
}

func requireField(p *problems, name string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		p.add("%s is required", name)
	}
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

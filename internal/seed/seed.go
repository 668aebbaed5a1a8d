// Package seed loads sample users and payments through the services, so
// passwords are hashed and payment defaults applied exactly as over HTTP.
package seed

import (
	"context"       // Request scoped cancellation
	"encoding/json" // Numeric inputs

	"booking_system/internal/service" // Business logic

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Result counts what a run created and what already existed
type Result struct {
	UsersCreated    int
	UsersSkipped    int
	PaymentsCreated int
	PaymentsSkipped int
}

// Run inserts the sample data; records that already exist are skipped
func Run(ctx context.Context, users *service.UserService, payments *service.PaymentService) (Result, error) {
	var res Result
	for _, in := range sampleUsers() {
		user, err := users.Register(ctx, in)
		switch {
		case err == nil:
			res.UsersCreated++
			logrus.WithFields(logrus.Fields{"name": user.Name, "gmail": user.Gmail}).Info("Seeded user")
		case service.KindOf(err) == service.KindConflict:
			res.UsersSkipped++
		default:
			return res, err
		}
	}
	for _, in := range samplePayments() {
		p, err := payments.Create(ctx, in)
		switch {
		case err == nil:
			res.PaymentsCreated++
			logrus.WithFields(logrus.Fields{
				"order_number": p.OrderNumber,
				"customer":     p.CustomerName,
				"amount":       p.Amount,
				"status":       p.Status,
			}).Info("Seeded payment")
		case service.KindOf(err) == service.KindConflict:
			res.PaymentsSkipped++
		default:
			return res, err
		}
	}
	return res, nil
}

// SamplePassword is the password of every seeded user
const SamplePassword = "password123"

func sampleUsers() []service.RegisterInput {
	user := func(name, gmail, age, gender, address, phone string) service.RegisterInput {
		return service.RegisterInput{
			Name:        name,
			Gmail:       gmail,
			Password:    SamplePassword,
			Age:         json.Number(age),
			Gender:      gender,
			Address:     address,
			PhoneNumber: phone,
		}
	}
	return []service.RegisterInput{
		user("John Doe", "john.doe@example.com", "28", "Male", "123 Main Street, New York, NY 10001", "+1-555-0123"),
		user("Jane Smith", "jane.smith@example.com", "32", "Female", "456 Oak Avenue, Los Angeles, CA 90210", "+1-555-0456"),
		user("Mike Johnson", "mike.johnson@example.com", "25", "Male", "789 Pine Road, Chicago, IL 60601", "+1-555-0789"),
		user("Sarah Wilson", "sarah.wilson@example.com", "29", "Female", "321 Elm Street, Houston, TX 77001", "+1-555-0321"),
		user("David Brown", "david.brown@example.com", "35", "Male", "654 Maple Drive, Phoenix, AZ 85001", "+1-555-0654"),
		user("Emily Davis", "emily.davis@example.com", "27", "Female", "987 Cedar Lane, Philadelphia, PA 19101", "+1-555-0987"),
		user("Robert Miller", "robert.miller@example.com", "41", "Male", "147 Birch Court, San Antonio, TX 78201", "+1-555-0147"),
		user("Lisa Garcia", "lisa.garcia@example.com", "31", "Female", "258 Spruce Way, San Diego, CA 92101", "+1-555-0258"),
	}
}

type samplePayment struct {
	order, name, email, phone, product, amount, card, last4, status, ref, checkIn, checkOut, guests, requests, notes string
}

func samplePayments() []service.PaymentInput {
	rows := []samplePayment{
		{"ORD001", "John Smith", "john.smith@email.com", "+1-555-0123", "Deluxe Suite", "299.99", "Visa", "1234", "completed", "pi_1234567890", "2024-01-15", "2024-01-17", "2", "Late check-in preferred", "Customer requested early check-in"},
		{"ORD002", "Sarah Johnson", "sarah.j@email.com", "+1-555-0456", "Standard Room", "149.99", "Mastercard", "5678", "pending", "pi_0987654321", "2024-01-20", "2024-01-22", "1", "High floor preferred", "First-time guest"},
		{"ORD003", "Michael Brown", "mike.brown@email.com", "+1-555-0789", "Executive Suite", "449.99", "American Express", "9012", "completed", "pi_1122334455", "2024-01-25", "2024-01-28", "3", "Extra towels and pillows", "Business traveler"},
		{"ORD004", "Emily Davis", "emily.davis@email.com", "+1-555-0321", "Family Room", "199.99", "Discover", "3456", "failed", "pi_5566778899", "2024-02-01", "2024-02-03", "4", "Connecting rooms if available", "Payment declined - insufficient funds"},
		{"ORD005", "David Wilson", "david.wilson@email.com", "+1-555-0654", "Presidential Suite", "799.99", "Visa", "7890", "completed", "pi_9988776655", "2024-02-05", "2024-02-07", "2", "Champagne on arrival", "VIP guest - anniversary celebration"},
		{"ORD006", "Lisa Anderson", "lisa.anderson@email.com", "+1-555-0987", "Standard Room", "129.99", "Mastercard", "2345", "refunded", "pi_4433221100", "2024-02-10", "2024-02-12", "1", "Quiet room", "Refunded due to cancellation"},
	}
	out := make([]service.PaymentInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, service.PaymentInput{
			OrderNumber:              ptr(r.order),
			CustomerName:             ptr(r.name),
			CustomerEmail:            ptr(r.email),
			CustomerPhone:            ptr(r.phone),
			Product:                  ptr(r.product),
			Amount:                   number(r.amount),
			Currency:                 ptr("USD"),
			PaymentMethod:            ptr("Credit Card"),
			CardType:                 ptr(r.card),
			Last4Digits:              ptr(r.last4),
			Status:                   ptr(r.status),
			ExternalPaymentReference: ptr(r.ref),
			CheckInDate:              ptr(r.checkIn),
			CheckOutDate:             ptr(r.checkOut),
			NumberOfGuests:           number(r.guests),
			RoomType:                 ptr(r.product),
			SpecialRequests:          ptr(r.requests),
			Notes:                    ptr(r.notes),
		})
	}
	return out
}

func ptr(s string) *string { return &s }

func number(s string) *json.Number {
	n := json.Number(s)
	return &n
}

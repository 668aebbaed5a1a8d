package service

import (
	"context"       // Request scoped cancellation
	"encoding/json" // Numeric fields sent as numbers or strings
	"errors"        // Error inspection
	"strings"       // Input normalization
	"sync"          // Lazy dummy hash
	"time"          // Token lifetime

	"booking_system/internal/domain"     // Importing domain models
	"booking_system/internal/metrics"    // Prometheus collectors
	"booking_system/internal/repository" // Storage layer
	"booking_system/internal/utils"      // JWT and password helpers

	"github.com/go-playground/validator/v10" // Struct validation
	"github.com/sirupsen/logrus"             // Logrus for structured logging
)

// UserRepository is the storage contract of UserService
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindAll(ctx context.Context, f repository.UserFilter) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByGmail(ctx context.Context, gmail string) (domain.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

// AttemptStore counts failed logins per gmail
type AttemptStore interface {
	Failures(ctx context.Context, gmail string) (int, error)
	RecordFailure(ctx context.Context, gmail string, window time.Duration) error
	Reset(ctx context.Context, gmail string) error
}

// LoginThrottle locks a gmail out after MaxAttempts failures within Window
type LoginThrottle struct {
	Store       AttemptStore
	MaxAttempts int
	Window      time.Duration
}

// TokenConfig controls session token issuance
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// RegisterInput is the registration payload
type RegisterInput struct {
	Name        string      `json:"name" validate:"required,nohtml"`
	Gmail       string      `json:"gmail" validate:"required,email"`
	Password    string      `json:"password" validate:"required"`
	Age         json.Number `json:"age" validate:"required,number"`
	Gender      string      `json:"gender" validate:"required,nohtml"`
	Address     string      `json:"address" validate:"required,nohtml"`
	PhoneNumber string      `json:"phoneNumber" validate:"required,nohtml"`
}

// UserUpdateInput carries the fields to change; nil fields are left alone
type UserUpdateInput struct {
	Name        *string      `json:"name" validate:"omitnil,min=1,nohtml"`
	Gmail       *string      `json:"gmail" validate:"omitnil,email"`
	Password    *string      `json:"password" validate:"omitnil,min=1"`
	Age         *json.Number `json:"age" validate:"omitnil,number"`
	Gender      *string      `json:"gender" validate:"omitnil,min=1,nohtml"`
	Address     *string      `json:"address" validate:"omitnil,min=1,nohtml"`
	PhoneNumber *string      `json:"phoneNumber" validate:"omitnil,min=1,nohtml"`
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	Token string
	User  domain.UserPublic
}

// UserService implements registration, CRUD and login for users
type UserService struct {
	repo     UserRepository
	validate *validator.Validate
	tokens   TokenConfig
	throttle *LoginThrottle
}

// NewUserService creates a UserService; throttle may be nil
func NewUserService(repo UserRepository, validate *validator.Validate, tokens TokenConfig, throttle *LoginThrottle) *UserService {
	return &UserService{
		repo:     repo,
		validate: validate,
		tokens:   tokens,
		throttle: throttle,
	}
}

// Register creates a user and returns its public projection
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.UserPublic, error) {
	in.Gmail = strings.TrimSpace(in.Gmail)

	var p problems
	p.merge(s.validate.Struct(&in))
	age := 0
	if in.Age != "" {
		if v, ok := parseInt("age", in.Age, &p); ok {
			age = v
		}
	}
	if err := p.err(); err != nil {
		return domain.UserPublic{}, err
	}

	if _, err := s.repo.FindByGmail(ctx, in.Gmail); err == nil {
		return domain.UserPublic{}, newError(KindConflict, msgUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.UserPublic{}, internal(err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return domain.UserPublic{}, internal(err)
	}

	user := domain.User{
		Name:        in.Name,
		Gmail:       in.Gmail,
		Password:    hash,
		Age:         age,
		Gender:      in.Gender,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a concurrent registration race
			return domain.UserPublic{}, newError(KindConflict, msgUserExists)
		}
		logrus.WithFields(logrus.Fields{"gmail": in.Gmail, "error": err.Error()}).Error("Create user failed")
		return domain.UserPublic{}, internal(err)
	}

	metrics.UsersRegistered.Inc()
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "gmail": user.Gmail}).Info("User registered")
	return user.Public(), nil
}

// ListUsersQuery carries the optional list parameters
type ListUsersQuery struct {
	Search string
	Gender string
	MinAge int
	MaxAge int
	Sort   string
	Order  string
}

// List returns users matching the query; without a sort field they come in store order
func (s *UserService) List(ctx context.Context, lq ListUsersQuery) ([]domain.User, error) {
	var p problems
	f := repository.UserFilter{
		Search:    lq.Search,
		Gender:    lq.Gender,
		MinAge:    lq.MinAge,
		MaxAge:    lq.MaxAge,
		SortField: lq.Sort,
	}
	if f.SortField != "" {
		if _, ok := repository.UserSortColumns[f.SortField]; !ok {
			p.add("sort must be one of [name gmail age gender createdAt]")
		}
	}
	switch strings.ToLower(lq.Order) {
	case "", "asc":
		f.Ascending = true
	case "desc":
	default:
		p.add("order must be asc or desc")
	}
	if err := p.err(); err != nil {
		return nil, err
	}

	users, err := s.repo.FindAll(ctx, f)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("List users failed")
		return nil, internal(err)
	}
	return users, nil
}

// GetByID returns one user
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, s.lookupError(err)
	}
	return user, nil
}

// Update merges the supplied fields into the stored user
func (s *UserService) Update(ctx context.Context, id string, in UserUpdateInput) (domain.User, error) {
	var p problems
	p.merge(s.validate.Struct(&in))

	fields := map[string]any{}
	setString(fields, "name", in.Name)
	setString(fields, "gender", in.Gender)
	setString(fields, "address", in.Address)
	setString(fields, "phone_number", in.PhoneNumber)
	if in.Age != nil {
		if v, ok := parseInt("age", *in.Age, &p); ok {
			fields["age"] = v
		}
	}
	if err := p.err(); err != nil {
		return domain.User{}, err
	}

	if in.Gmail != nil {
		gmail := strings.TrimSpace(*in.Gmail)
		owner, err := s.repo.FindByGmail(ctx, gmail)
		switch {
		case err == nil && owner.ID != id:
			return domain.User{}, newError(KindConflict, msgUserExists)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return domain.User{}, internal(err)
		}
		fields["gmail"] = gmail
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return domain.User{}, internal(err)
		}
		fields["password"] = hash
	}

	user, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, newError(KindConflict, msgUserExists)
		}
		return domain.User{}, s.lookupError(err)
	}
	logrus.WithFields(logrus.Fields{"user_id": id, "fields": len(fields)}).Info("User updated")
	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.lookupError(err)
	}
	logrus.WithField("user_id", id).Info("User deleted")
	return nil
}

// Login checks credentials and issues a session token.
// Unknown gmail and wrong password fail with the same message.
func (s *UserService) Login(ctx context.Context, gmail, password string) (LoginResult, error) {
	gmail = strings.TrimSpace(gmail)

	if s.locked(ctx, gmail) {
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		return LoginResult{}, newError(KindTooManyAttempts, msgTooManyAttempts)
	}

	user, err := s.repo.FindByGmail(ctx, gmail)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logrus.WithFields(logrus.Fields{"gmail": gmail, "error": err.Error()}).Error("Login lookup failed")
		return LoginResult{}, internal(err)
	}
	if err != nil || gmail == "" {
		// spend the same bcrypt time as a real comparison
		utils.CheckPassword(password, dummyHash())
		return LoginResult{}, s.rejectLogin(ctx, gmail)
	}
	if !utils.CheckPassword(password, user.Password) {
		return LoginResult{}, s.rejectLogin(ctx, gmail)
	}

	token, err := utils.GenerateJWT(user.ID, user.Gmail, user.Name, s.tokens.Secret, s.tokens.TTL)
	if err != nil {
		return LoginResult{}, internal(err)
	}
	if s.throttle != nil {
		if err := s.throttle.Store.Reset(ctx, gmail); err != nil {
			logrus.WithField("error", err.Error()).Warn("Reset login attempts failed")
		}
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logrus.WithField("user_id", user.ID).Info("User logged in")
	return LoginResult{Token: token, User: user.Public()}, nil
}

// Me returns the user behind an authenticated session.
// A token whose user has since been deleted is treated as invalid.
func (s *UserService) Me(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, newError(KindUnauthorized, msgInvalidToken)
		}
		return domain.User{}, internal(err)
	}
	return user, nil
}

func (s *UserService) locked(ctx context.Context, gmail string) bool {
	if s.throttle == nil || gmail == "" {
		return false
	}
	n, err := s.throttle.Store.Failures(ctx, gmail)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Read login attempts failed")
		return false
	}
	return n >= s.throttle.MaxAttempts
}

func (s *UserService) rejectLogin(ctx context.Context, gmail string) error {
	metrics.LoginAttempts.WithLabelValues("invalid").Inc()
	if s.throttle != nil && gmail != "" {
		if err := s.throttle.Store.RecordFailure(ctx, gmail, s.throttle.Window); err != nil {
			logrus.WithField("error", err.Error()).Warn("Record login attempt failed")
		}
	}
	return newError(KindUnauthorized, msgInvalidCredentials)
}

func (s *UserService) lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newError(KindNotFound, msgUserNotFound)
	}
	logrus.WithField("error", err.Error()).Error("User store failure")
	return internal(err)
}

var (
	dummyOnce sync.Once
	dummy     string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = utils.HashPassword("placeholder-password")
	})
	return dummy
}

func setString(fields map[string]any, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}

package users

import (
	"context"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/logger"
	"github.com/Domenick1991/staybooking/internal/metrics"
	"github.com/Domenick1991/staybooking/internal/repository"
)

type UserUseCase interface {
	RegisterUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserService passes registrations through to the ledger.
type UserService struct {
	ledger  repository.LedgerStore
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewUserService(ledger repository.LedgerStore, log *logger.Logger, m *metrics.Metrics) *UserService {
	return &UserService{ledger: ledger, log: log, metrics: m}
}

func (s *UserService) RegisterUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	u, err := s.ledger.RegisterUser(ctx, draft)
	if err != nil {
		if apperrors.Is(err, apperrors.CodePersistence) {
			s.metrics.LedgerErrors.WithLabelValues("register_user").Inc()
			s.log.Error("user not recorded", "error", err)
		}
		return nil, err
	}
	s.metrics.UsersRegistered.Inc()
	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.ledger.ListUsers(ctx)
	if err != nil && apperrors.Is(err, apperrors.CodePersistence) {
		s.metrics.LedgerErrors.WithLabelValues("list_users").Inc()
	}
	return users, err
}

var _ UserUseCase = (*UserService)(nil)

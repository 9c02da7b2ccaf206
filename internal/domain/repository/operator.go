package repository

import (
	"context"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// OperatorRepository persists dashboard operators.
type OperatorRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.Operator, error)
	GetByLogin(ctx context.Context, login string) (*model.Operator, error)
	GetByID(ctx context.Context, id int64) (*model.Operator, error)
}

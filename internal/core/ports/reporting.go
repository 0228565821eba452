package ports

import (
	"context"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, results []domain.ReconcileResult) error
}

package ports

import (
	"context"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
)

type Reconciler interface {
	Reconcile(ctx context.Context, req domain.ReconcileRequest) (domain.ReconcileResult, error)
}

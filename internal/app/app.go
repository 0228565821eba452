package app

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/erjac77/f5-reconciler/internal/config"
	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/errors"
	"github.com/erjac77/f5-reconciler/internal/identity"
	"github.com/erjac77/f5-reconciler/internal/normalize"
	"github.com/erjac77/f5-reconciler/pkg/convert"
)

type Application struct {
	Engine   ports.Reconciler
	Reporter ports.Reporter
	Logger   ports.Logger
	Config   *config.Config
}

// Run reconciles every declared resource and reports the outcome. Resources
// are independent, so one failure does not stop the others; the first error
// still fails the run after the report is written.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting reconciliation of %d resources...", len(a.Config.Resources))

	requests := make([]domain.ReconcileRequest, 0, len(a.Config.Resources))
	results := make([]domain.ReconcileResult, 0, len(a.Config.Resources))
	var firstErr error

	for _, rc := range a.Config.Resources {
		req, err := a.buildRequest(rc)
		if err != nil {
			results = append(results, domain.ReconcileResult{
				Kind:      rc.Kind,
				Singleton: rc.Singleton,
				Action:    domain.ActionNone,
				Error:     err,
			})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		requests = append(requests, req)
	}

	concurrency := a.Config.Settings.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, req := range requests {
		req := req
		g.Go(func() error {
			result, err := a.Engine.Reconcile(gctx, req)
			mu.Lock()
			results = append(results, result)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			// Only cancellation aborts the remaining resources.
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		a.Logger.Warnf(ctx, "Reconciliation cancelled: %v", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	if err := a.Reporter.Report(ctx, results); err != nil {
		a.Logger.Errorf(ctx, err, "Failed to generate report")
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		a.Logger.Errorf(ctx, firstErr, "Reconciliation finished with errors")
		return firstErr
	}
	a.Logger.Infof(ctx, "Reconciliation completed successfully")
	return nil
}

// buildRequest turns a declared resource into an engine request: resolve
// the identity, then strip control params and convert the rest to the
// remote naming.
func (a *Application) buildRequest(rc config.ResourceConfig) (domain.ReconcileRequest, error) {
	target := rc.TargetState()

	var id domain.ResourceIdentity
	if !rc.Singleton {
		var err error
		if rc.Path != "" {
			id, err = identity.ResolveFromPath(rc.Path, ambientPartition(rc.Params))
		} else {
			id, err = identity.Resolve(rc.Params)
		}
		if err != nil {
			return domain.ReconcileRequest{}, errors.Wrapf(err, errors.CodeInvalidIdentity,
				"failed to resolve identity for %s", rc.Kind)
		}
	}

	// The translate table arrives as free-form YAML; only string values
	// name a remote field.
	translate, err := convert.ToStringMap(rc.Translate)
	if err != nil {
		return domain.ReconcileRequest{}, errors.Wrapf(err, errors.CodeConfigValidation,
			"invalid translate table for %s", rc.Kind)
	}

	return domain.ReconcileRequest{
		Kind:      rc.Kind,
		Identity:  id,
		Singleton: rc.Singleton,
		Desired: domain.DesiredState{
			Fields: normalize.Fields(rc.Params, translate),
			Target: target,
		},
		DryRun: a.Config.Settings.DryRun,
	}, nil
}

func ambientPartition(params map[string]any) string {
	if v, ok := params[domain.KeyPartition].(string); ok && v != "" {
		return v
	}
	return domain.DefaultPartition
}

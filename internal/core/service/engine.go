package service

import (
	"context"
	"sort"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

// Engine is the declarative reconciliation engine. One Reconcile call runs
// start to finish with no internal concurrency and no internal retries:
// remote primitives are issued sequentially and transient remote failures
// propagate to the caller.
type Engine struct {
	registry *BindingRegistry
	logger   ports.Logger
}

func NewEngine(registry *BindingRegistry, logger ports.Logger) (*Engine, error) {
	if registry == nil {
		return nil, errors.New(errors.CodeInternal, "binding registry cannot be nil")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeInternal, "logger cannot be nil")
	}
	return &Engine{registry: registry, logger: logger}, nil
}

func (e *Engine) Reconcile(ctx context.Context, req domain.ReconcileRequest) (domain.ReconcileResult, error) {
	result := domain.ReconcileResult{
		Kind:      req.Kind,
		Identity:  req.Identity,
		Singleton: req.Singleton,
		Action:    domain.ActionNone,
		DryRun:    req.DryRun,
	}

	if !req.Desired.Target.Valid() {
		err := errors.Newf(errors.CodeConfigValidation, "invalid target state '%s'", req.Desired.Target)
		result.Error = err
		return result, err
	}

	log := e.logger.WithFields(map[string]any{
		"kind":     req.Kind,
		"resource": e.resourceLabel(req),
	})

	var err error
	if req.Singleton {
		err = e.reconcileSingleton(ctx, log, req, &result)
	} else {
		err = e.reconcileNamed(ctx, log, req, &result)
	}
	if err != nil {
		result.Error = err
		return result, err
	}

	log.Debugf(ctx, "Reconciliation finished (action: %s, changed: %t)", result.Action, result.Changed)
	return result, nil
}

func (e *Engine) reconcileNamed(ctx context.Context, log ports.Logger, req domain.ReconcileRequest, result *domain.ReconcileResult) error {
	binding, spec, err := e.registry.Named(req.Kind)
	if err != nil {
		return err
	}

	exists, err := e.probeExistence(ctx, log, binding, req.Identity)
	if err != nil {
		return err
	}

	switch req.Desired.Target {
	case domain.StatePresent:
		if exists {
			return e.updateExisting(ctx, log, binding, spec, req, result)
		}
		return e.createMissing(ctx, log, binding, spec, req, result)
	default:
		if !exists {
			log.Debugf(ctx, "Resource already absent")
			return nil
		}
		return e.deleteExisting(ctx, log, binding, req, result)
	}
}

// reconcileSingleton handles unnamed resources: there is always exactly one
// instance, so both lifecycle targets reduce to the update flow.
func (e *Engine) reconcileSingleton(ctx context.Context, log ports.Logger, req domain.ReconcileRequest, result *domain.ReconcileResult) error {
	binding, spec, err := e.registry.Singleton(req.Kind)
	if err != nil {
		return err
	}

	current, err := binding.Read(ctx)
	if err != nil {
		return errors.Wrapf(err, errors.CodeRemoteOperation, "failed to read singleton %s", req.Kind)
	}

	if missing := missingRequired(spec.RequiredForUpdate, req.Desired.Fields, false); len(missing) > 0 {
		return missingParamsError("update", missing)
	}

	cs := BuildChangeSet(req.Desired, current, spec)
	if cs.IsEmpty() {
		log.Debugf(ctx, "Singleton already in desired state")
		return nil
	}

	result.Action = domain.ActionUpdate
	result.Changed = true
	result.ChangeSet = cs

	if req.DryRun {
		log.Infof(ctx, "Dry run: would update fields %v", cs.FieldNames())
		return nil
	}

	if _, err := binding.Update(ctx, cs); err != nil {
		return errors.Wrapf(err, errors.CodeRemoteOperation, "failed to update singleton %s", req.Kind)
	}
	log.Infof(ctx, "Updated fields %v", cs.FieldNames())
	return nil
}

func (e *Engine) createMissing(ctx context.Context, log ports.Logger, binding ports.ResourceBinding, spec domain.ResourceSpec, req domain.ReconcileRequest, result *domain.ReconcileResult) error {
	fields := compactFields(req.Desired.Fields)

	if missing := missingRequired(spec.RequiredForCreate, fields, true); len(missing) > 0 {
		return missingParamsError("create", missing)
	}

	result.Action = domain.ActionCreate
	result.Changed = true
	result.ChangeSet = domain.ChangeSet(fields)

	if req.DryRun {
		log.Infof(ctx, "Dry run: would create resource")
		return nil
	}

	if _, err := binding.Create(ctx, req.Identity, fields); err != nil {
		return errors.Wrapf(err, errors.CodeRemoteOperation, "failed to create %s %s", req.Kind, req.Identity)
	}

	// The remote system accepted the call; confirm the object landed.
	exists, err := e.probeExistence(ctx, log, binding, req.Identity)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Newf(errors.CodeCreateVerificationFailed,
			"created %s %s but its existence could not be confirmed", req.Kind, req.Identity)
	}
	log.Infof(ctx, "Created resource")
	return nil
}

func (e *Engine) updateExisting(ctx context.Context, log ports.Logger, binding ports.ResourceBinding, spec domain.ResourceSpec, req domain.ReconcileRequest, result *domain.ReconcileResult) error {
	current, err := binding.Read(ctx, req.Identity)
	if err != nil {
		return errors.Wrapf(err, errors.CodeRemoteOperation, "failed to read %s %s", req.Kind, req.Identity)
	}

	if missing := missingRequired(spec.RequiredForUpdate, req.Desired.Fields, true); len(missing) > 0 {
		return missingParamsError("update", missing)
	}

	cs := BuildChangeSet(req.Desired, current, spec)
	if cs.IsEmpty() {
		log.Debugf(ctx, "Resource already in desired state")
		return nil
	}

	result.Action = domain.ActionUpdate
	result.Changed = true
	result.ChangeSet = cs

	if req.DryRun {
		log.Infof(ctx, "Dry run: would update fields %v", cs.FieldNames())
		return nil
	}

	// Update returns the refreshed object; the changeset already records the
	// applied fields, so the refreshed view is not kept.
	if _, err := binding.Update(ctx, req.Identity, cs); err != nil {
		return errors.Wrapf(err, errors.CodeRemoteOperation, "failed to update %s %s", req.Kind, req.Identity)
	}
	log.Infof(ctx, "Updated fields %v", cs.FieldNames())
	return nil
}

func (e *Engine) deleteExisting(ctx context.Context, log ports.Logger, binding ports.ResourceBinding, req domain.ReconcileRequest, result *domain.ReconcileResult) error {
	// Read first: confirms the remote-side identity before destroying it.
	if _, err := binding.Read(ctx, req.Identity); err != nil {
		return errors.Wrapf(err, errors.CodeRemoteOperation, "failed to read %s %s", req.Kind, req.Identity)
	}

	result.Action = domain.ActionDelete
	result.Changed = true

	if req.DryRun {
		log.Infof(ctx, "Dry run: would delete resource")
		return nil
	}

	if err := binding.Delete(ctx, req.Identity); err != nil {
		return errors.Wrapf(err, errors.CodeRemoteOperation, "failed to delete %s %s", req.Kind, req.Identity)
	}

	exists, err := e.probeExistence(ctx, log, binding, req.Identity)
	if err != nil {
		return err
	}
	if exists {
		return errors.Newf(errors.CodeDeleteVerificationFailed,
			"deleted %s %s but it is still present", req.Kind, req.Identity)
	}
	log.Infof(ctx, "Deleted resource")
	return nil
}

// probeExistence asks the binding whether the object exists. An HTTP-class
// API error is treated as "does not exist": a spurious create attempt
// re-verifies itself, which is cheaper than silently skipping
// reconciliation. Transport failures still propagate.
func (e *Engine) probeExistence(ctx context.Context, log ports.Logger, binding ports.ResourceBinding, id domain.ResourceIdentity) (bool, error) {
	exists, err := binding.Exists(ctx, id)
	if err != nil {
		if errors.IsHTTPClass(err) {
			log.Debugf(ctx, "Existence probe returned an API error, treating resource as absent: %v", err)
			return false, nil
		}
		return false, errors.Wrap(err, errors.CodeRemoteOperation, "existence check failed")
	}
	return exists, nil
}

func (e *Engine) resourceLabel(req domain.ReconcileRequest) string {
	if req.Singleton {
		return "singleton"
	}
	return req.Identity.FullPath()
}

// compactFields drops nil-valued params before a create call; nil means the
// caller never set the field.
func compactFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// missingRequired lists every required field absent from fields, sorted.
// Identity fields are injected by the binding for named resources, so they
// count as satisfied there.
func missingRequired(required []string, fields map[string]any, identitySatisfied bool) []string {
	var missing []string
	for _, key := range required {
		if identitySatisfied && (key == "name" || key == "partition" || key == "subPath") {
			continue
		}
		if _, found := fields[key]; !found {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func missingParamsError(action string, missing []string) error {
	return errors.Newf(errors.CodeMissingRequiredParams, "missing required %s params: %v", action, missing)
}

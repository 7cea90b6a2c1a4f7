package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/stepwise/internal/adapters/ipc"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Resolver finds a method on a named capability.
type Resolver interface {
	Lookup(capability, method string) (ports.Action, error)
}

// Run opens the worker side of the channel described by inv and serves
// one call.
func Run(ctx context.Context, inv Invocation, resolver Resolver, logger ports.Logger) error {
	if err := inv.Validate(); err != nil {
		return fmt.Errorf("invalid worker invocation: %w", err)
	}

	channel, err := ipc.NewChannel(ipc.Config{
		InputPath:    inv.InputPath,
		OutputPath:   inv.OutputPath,
		PollInterval: inv.PollInterval,
		ReadTimeout:  inv.ReadTimeout,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	if logger != nil {
		ctx = ports.ContextWithLogger(ctx, logger)
	}
	return Serve(ctx, channel, resolver, inv.Capability, inv.Method)
}

// Serve reads the params message from queue, invokes capability.method
// and writes exactly one result message. Failures of the method are
// reported to the controller and are not returned; protocol failures are
// reported when possible and returned.
func Serve(ctx context.Context, queue ports.MessageQueue, resolver Resolver, capability, method string) error {
	var env ipc.Envelope
	if err := queue.ReadInto(ctx, &env); err != nil {
		return err
	}

	if env.Name != ipc.MessageParams {
		err := &ipc.ProtocolError{Op: "serve", Err: fmt.Errorf("%w: want %q, got %q", ErrUnexpectedMessage, ipc.MessageParams, env.Name)}
		return errors.Join(err, reply(ctx, queue, env.RequestID, nil, err))
	}
	if err := ipc.CheckProtocol(env.Protocol); err != nil {
		return errors.Join(err, reply(ctx, queue, env.RequestID, nil, err))
	}

	var req Request
	if err := env.Decode(&req); err != nil {
		return errors.Join(err, reply(ctx, queue, env.RequestID, nil, err))
	}
	if req.Capability != capability || req.Method != method {
		err := &ipc.ProtocolError{Op: "serve", Err: fmt.Errorf("%w: params for %s.%s sent to worker for %s.%s",
			ErrUnexpectedMessage, req.Capability, req.Method, capability, method)}
		return errors.Join(err, reply(ctx, queue, env.RequestID, nil, err))
	}

	fn, err := resolver.Lookup(capability, method)
	if err != nil {
		return errors.Join(err, reply(ctx, queue, env.RequestID, nil, err))
	}

	value, callErr := fn(ctx, req.Args...)
	if logger := ports.LoggerFromContext(ctx); logger != nil {
		logger.Debug(ctx, "worker call finished",
			ports.F("method", capability+"."+method),
			ports.F("failed", callErr != nil))
	}
	return reply(ctx, queue, env.RequestID, value, callErr)
}

func reply(ctx context.Context, queue ports.MessageQueue, requestID string, value any, callErr error) error {
	if callErr != nil {
		value = nil
	}

	env, err := ipc.NewEnvelope(ipc.MessageResult, requestID, value)
	if err != nil {
		env, _ = ipc.NewEnvelope(ipc.MessageResult, requestID, nil)
		callErr = fmt.Errorf("result is not encodable: %w", err)
	}

	if callErr != nil {
		env.Error = callErr.Error()
		env.ErrorKind = errorKind(callErr)
	}

	if err := queue.Write(ctx, env); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// errorKind classifies err so the controller can rebuild its recovery rules.
func errorKind(err error) ipc.ErrorKind {
	switch {
	case errors.Is(err, ports.ErrCapabilityNotAvailable):
		return ipc.ErrorKindUnavailable
	case ipc.IsProtocolError(err):
		return ipc.ErrorKindProtocol
	case step.IsAssertion(err):
		return ipc.ErrorKindAssertion
	default:
		return ipc.ErrorKindError
	}
}

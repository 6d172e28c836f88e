package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/lsp/methods/workspace"
	"bennypowers.dev/wgslfmt/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps an LSP handler that returns (result, error) with middleware.
// Returns the underlying function type so it's compatible with
// protocol.Handler field types.
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(types.ServerContext, *glsp.Context, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		// Panic recovery - prevents LSP server crashes
		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
				var zero R
				result = zero
			}
		}()

		log.Debug("%s started", methodName)
		result, err = handler(s, ctx, params)

		if err != nil {
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return result, fmt.Errorf("%s: %w", methodName, err)
		}

		log.Debug("%s completed", methodName)
		return result, nil
	}
}

// notify wraps an LSP notification handler that returns only error
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(types.ServerContext, *glsp.Context, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
			}
		}()

		log.Debug("%s started", methodName)
		err = handler(s, ctx, params)

		if err != nil {
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}

		log.Debug("%s completed", methodName)
		return nil
	}
}

// noParam wraps an LSP handler that takes no params (like Shutdown)
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(types.ServerContext, *glsp.Context) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
			}
		}()

		log.Debug("%s started", methodName)
		err = handler(s, ctx)

		if err != nil {
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}

		log.Debug("%s completed", methodName)
		return nil
	}
}

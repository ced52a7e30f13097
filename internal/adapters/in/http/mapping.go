package http

import (
	"errors"
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/generated/servers"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// statusOf maps errs sentinels to HTTP status codes. Anything else is a server error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func problem(ctx echo.Context, err error, message string) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		ctx.Logger().Errorf("%s: %v", message, err)
	} else {
		message += ": " + err.Error()
	}

	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}

func toLocation(l kernel.Location) servers.Location {
	return servers.Location{X: l.X(), Y: l.Y()}
}

func toUUIDs(ids []kernel.UUID) []openapi_types.UUID {
	out := make([]openapi_types.UUID, len(ids))
	for i, id := range ids {
		out[i] = id.Bytes()
	}
	return out
}

func toBatch(b *batch.Batch) servers.Batch {
	out := servers.Batch{
		Id:       b.ID().Bytes(),
		Rule:     servers.BatchRule(b.Rule().String()),
		OrderIds: toUUIDs(b.OrderIDs()),
	}
	if dest, ok := b.Destination(); ok {
		loc := toLocation(dest)
		out.Destination = &loc
	}
	return out
}

func toDispatchResult(result commands.DispatchResult) servers.DispatchResult {
	couriers := make([]servers.CourierBatches, len(result.Couriers))
	for i, entry := range result.Couriers {
		batches := make([]servers.Batch, len(entry.Batches))
		for seq, b := range entry.Batches {
			batches[seq] = toBatch(b)
			sequence := seq
			batches[seq].Sequence = &sequence
		}
		couriers[i] = servers.CourierBatches{
			CourierId: entry.CourierID.Bytes(),
			Batches:   batches,
		}
	}

	return servers.DispatchResult{
		DispatchId: result.DispatchID.Bytes(),
		Candidates: result.Candidates,
		Assigned:   result.Assigned,
		Unassigned: result.Unassigned,
		Couriers:   couriers,
	}
}

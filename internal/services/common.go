package services

import (
	"fmt"

	"github.com/google/uuid"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

// Page is one page of a list result.
type Page[T any] struct {
	Data  []T
	Page  int
	Limit int
	Total int64
}

func newPage[T any](data []T, params utils.PaginationParams, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Page: params.Page, Limit: params.Limit, Total: total}
}

func emptyPage[T any](params utils.PaginationParams) Page[T] {
	return newPage[T](nil, params, 0)
}

// requireID fails with BadRequest unless id is a well-formed identifier.
func requireID(id, label string) error {
	if id == "" {
		return apierrors.BadRequest(label+" id is empty", fmt.Sprintf("%s ID is required", label))
	}
	if _, err := uuid.Parse(id); err != nil {
		return apierrors.BadRequest(fmt.Sprintf("malformed %s id %q", label, id),
			fmt.Sprintf("Invalid %s ID format", label))
	}
	return nil
}

// Package paging нормализует параметры limit/offset списочных запросов.
package paging

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Границы размера страницы.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize подставляет размер страницы по умолчанию и обрезает слишком большой.
func Normalize(limit, offset int) (int, int, error) {
	if offset < 0 {
		return 0, 0, fmt.Errorf("%w: offset must not be negative", models.ErrValidation)
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return limit, offset, nil
}

// FromQuery читает limit и offset из query string. Отсутствующие параметры равны нулю.
func FromQuery(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	var limit, offset int
	var err error
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			return 0, 0, fmt.Errorf("%w: invalid limit %q", models.ErrValidation, v)
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			return 0, 0, fmt.Errorf("%w: invalid offset %q", models.ErrValidation, v)
		}
	}
	return limit, offset, nil
}

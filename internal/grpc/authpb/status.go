package authpb

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

var codeErrors = []struct {
	code codes.Code
	err  error
}{
	{codes.AlreadyExists, models.ErrUsernameTaken},
	{codes.Unauthenticated, models.ErrInvalidCredentials},
	{codes.Unauthenticated, models.ErrInvalidToken},
	{codes.NotFound, models.ErrNotFound},
	{codes.InvalidArgument, models.ErrValidation},
	{codes.Unavailable, models.ErrServiceUnavailable},
}

// ToStatus переводит доменную ошибку в gRPC статус.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	for _, ce := range codeErrors {
		if errors.Is(err, ce.err) {
			// текст сентинела нужен клиенту, чтобы различить ошибки с одним кодом
			return status.Error(ce.code, ce.err.Error())
		}
	}
	return status.Error(codes.Internal, "internal error")
}

// FromStatus восстанавливает доменную ошибку из gRPC статуса.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, ce := range codeErrors {
		if st.Code() == ce.code && st.Message() == ce.err.Error() {
			return ce.err
		}
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return models.ErrInvalidToken
	case codes.Unavailable, codes.DeadlineExceeded:
		return errors.Join(models.ErrServiceUnavailable, err)
	}
	return err
}

package server

import (
	"errors"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/livedreligion/wheresreligion/internal/config"
	"github.com/livedreligion/wheresreligion/internal/notify"
)

const errorDomain = "wheresreligion"

func (s *Server) validate(msg any) *connect.Error {
	err := s.validator.Struct(msg)
	if err == nil {
		return nil
	}
	return invalidArgument(err)
}

func invalidArgument(err error) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	var validationErr *config.ValidationError
	if errors.As(err, &validationErr) {
		var fieldViolations []*errdetails.BadRequest_FieldViolation
		for field, description := range validationErr.Fields {
			fieldViolations = append(fieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       field,
				Description: description,
			})
		}
		if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
			FieldViolations: fieldViolations,
		}); detailErr == nil {
			connectErr.AddDetail(detail)
		}
	}
	return connectErr
}

// notificationError carries the notification the client should show for a
// failed call as an ErrorInfo detail.
func notificationError(code connect.Code, reason string, err error, n notify.Notification) *connect.Error {
	connectErr := connect.NewError(code, err)
	if detail, detailErr := connect.NewErrorDetail(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: errorDomain,
		Metadata: map[string]string{
			"title":       n.Title,
			"description": n.Description,
			"level":       string(n.Level),
		},
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

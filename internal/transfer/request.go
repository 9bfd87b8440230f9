package transfer

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Request asks to move an amount between two accounts. Amount is an
// unscaled count of minor currency units; its sign is deliberately not
// validated, matching the service's observed behaviour.
type Request struct {
	FromAccount string `json:"fromAccount" validate:"required,notblank"`
	ToAccount   string `json:"toAccount" validate:"required,notblank,nefield=FromAccount"`
	Amount      int64  `json:"amount"`
}

// ErrNilRequest is returned by Validate for an absent request.
var ErrNilRequest = errors.New("request is nil")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// required alone accepts whitespace-only ids
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate reports whether the request is well formed: present, both ids
// non-blank and distinct. Amount and account existence are checked later by
// the processor.
func Validate(req *Request) error {
	if req == nil {
		return ErrNilRequest
	}
	return validate.Struct(req)
}

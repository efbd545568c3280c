package domain

import "errors"

// LimitExceededError indica que guardar un documento violaría una cuota del
// plan SaaS del tenant. Title y Message son textos para el usuario final; el
// transporte HTTP los mapea a 403.
type LimitExceededError struct {
	Resource string // "users", "customers", "suppliers", "companies", "invoices"
	Limit    int
	Current  int
	Title    string
	Message  string
}

func (e *LimitExceededError) Error() string {
	return e.Message
}

// IsLimitExceeded informa si err (o su cadena) es una violación de cuota.
func IsLimitExceeded(err error) bool {
	var le *LimitExceededError
	return errors.As(err, &le)
}

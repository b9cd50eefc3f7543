package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hance08/findash/internal/config"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldRecipient   = "recipient"

	MsgRequiredField = "this field is required"
	MsgInvalidEmail  = "invalid email format"
	MsgInvalidAmount = "enter a valid amount greater than 0"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rules holds the transaction input bounds. All predicates return nil for valid input.
type Rules struct {
	MinAmount            decimal.Decimal
	MaxAmount            decimal.Decimal
	MaxDescriptionLength int
	AllowedDomains       []string
}

func NewRules(cfg config.ValidationConfig) *Rules {
	domains := make([]string, 0, len(cfg.AllowedDomains))
	for _, d := range cfg.AllowedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if !strings.HasPrefix(d, "@") {
			d = "@" + d
		}
		domains = append(domains, d)
	}

	return &Rules{
		MinAmount:            decimal.NewFromFloat(cfg.MinAmount),
		MaxAmount:            decimal.NewFromFloat(cfg.MaxAmount),
		MaxDescriptionLength: cfg.MaxDescriptionLength,
		AllowedDomains:       domains,
	}
}

// ValidateAmount checks raw form input.
func (r *Rules) ValidateAmount(raw string) error {
	amount, err := utils.ParseAmount(raw)
	if err != nil {
		return errs.NewValidationError(FieldAmount, MsgInvalidAmount)
	}
	return r.CheckAmount(amount)
}

func (r *Rules) CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValidationError(FieldAmount, MsgInvalidAmount)
	}
	if amount.LessThan(r.MinAmount) {
		return errs.NewValidationError(FieldAmount,
			fmt.Sprintf("amount must be at least %s", utils.FormatMoney(r.MinAmount)))
	}
	if amount.GreaterThan(r.MaxAmount) {
		return errs.NewValidationError(FieldAmount,
			fmt.Sprintf("amount can't be greater than %s", utils.FormatMoney(r.MaxAmount)))
	}
	return nil
}

// ValidateDescription accepts an empty description; it is optional.
func (r *Rules) ValidateDescription(raw string) error {
	if r.MaxDescriptionLength > 0 && utf8.RuneCountInString(raw) > r.MaxDescriptionLength {
		return errs.NewValidationError(FieldDescription,
			fmt.Sprintf("description can't exceed %d characters", r.MaxDescriptionLength))
	}
	return nil
}

// ValidateRecipientEmail checks, in order: presence, email shape, allowed domain.
func (r *Rules) ValidateRecipientEmail(raw string) error {
	email := strings.TrimSpace(raw)
	if email == "" {
		return errs.NewValidationError(FieldRecipient, MsgRequiredField)
	}

	if !emailPattern.MatchString(email) {
		return errs.NewValidationError(FieldRecipient, MsgInvalidEmail)
	}

	if !r.isAllowedDomain(email) {
		return errs.NewValidationError(FieldRecipient,
			fmt.Sprintf("only emails from allowed domains are accepted (%s)", strings.Join(r.AllowedDomains, ", ")))
	}
	return nil
}

func (r *Rules) isAllowedDomain(email string) bool {
	lower := strings.ToLower(email)
	for _, domain := range r.AllowedDomains {
		if strings.HasSuffix(lower, domain) {
			return true
		}
	}
	return false
}

// ValidateCreate runs every field check and joins the failures.
func (r *Rules) ValidateCreate(recipient, amount, description string) error {
	return errors.Join(
		r.ValidateRecipientEmail(recipient),
		r.ValidateAmount(amount),
		r.ValidateDescription(description),
	)
}

// ValidateUpdate covers the fields an edit can change.
func (r *Rules) ValidateUpdate(amount string) error {
	return r.ValidateAmount(amount)
}

// FieldErrors flattens an error produced by ValidateCreate into field -> message.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}

	failures := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		failures = joined.Unwrap()
	}

	for _, e := range failures {
		var v *errs.ValidationError
		if errors.As(e, &v) {
			out[v.Field] = v.Message
		}
	}
	return out
}

package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marcus/shelf/internal/models"
)

// Input field ids. They double as labels in user-facing messages.
const (
	FieldName        = "name"
	FieldMinPlayers  = "min players"
	FieldMaxPlayers  = "max players"
	FieldPlayTime    = "play time"
	FieldDescription = "description"
	FieldSearch      = "search"
)

// FormFields lists the record form inputs in tab order
var FormFields = []string{FieldName, FieldMinPlayers, FieldMaxPlayers, FieldPlayTime, FieldDescription}

var (
	errEmptyNumber  = errors.New("cannot parse integer from empty string")
	errInvalidDigit = errors.New("invalid digit found in string")
	errTooLarge     = errors.New("number too large to fit in target type")
	errTooSmall     = errors.New("number too small to fit in target type")
)

// parseCount parses a whole number typed into a form field
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyNumber
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			if strings.HasPrefix(s, "-") {
				return 0, errTooSmall
			}
			return 0, errTooLarge
		}
		return 0, errInvalidDigit
	}
	return int(n), nil
}

// fieldError is a user input error tied to one field
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("Bad value for '%s': %v", e.field, e.err)
}

func (e *fieldError) Unwrap() error { return e.err }

// recordFromBuffers builds a record from the form buffers. Numeric fields are
// parsed in form order and the first failure is returned. An empty play time
// means unknown (0).
func recordFromBuffers(f *Focus) (*models.Boardgame, error) {
	b := &models.Boardgame{
		Name:        strings.TrimSpace(f.Buffer(FieldName)),
		Description: strings.TrimSpace(f.Buffer(FieldDescription)),
	}
	if b.Name == "" {
		return nil, &fieldError{field: FieldName, err: errors.New("must not be empty")}
	}

	numbers := []struct {
		field    string
		dst      *int
		optional bool
	}{
		{FieldMinPlayers, &b.MinPlayers, false},
		{FieldMaxPlayers, &b.MaxPlayers, false},
		{FieldPlayTime, &b.PlayTimeMinutes, true},
	}
	for _, n := range numbers {
		text := f.Buffer(n.field)
		if n.optional && strings.TrimSpace(text) == "" {
			continue
		}
		v, err := parseCount(text)
		if err != nil {
			return nil, &fieldError{field: n.field, err: err}
		}
		*n.dst = v
	}
	return b, nil
}

// seedBuffers fills the form buffers from an existing record
func seedBuffers(f *Focus, b *models.Boardgame) {
	f.SetBuffer(FieldName, b.Name)
	f.SetBuffer(FieldMinPlayers, strconv.Itoa(b.MinPlayers))
	f.SetBuffer(FieldMaxPlayers, strconv.Itoa(b.MaxPlayers))
	if b.PlayTimeMinutes > 0 {
		f.SetBuffer(FieldPlayTime, strconv.Itoa(b.PlayTimeMinutes))
	} else {
		f.SetBuffer(FieldPlayTime, "")
	}
	f.SetBuffer(FieldDescription, b.Description)
}

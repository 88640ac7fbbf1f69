package helpers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/thedevsaddam/govalidator"
)

// ValidateInput runs rules against input, a pointer to a struct whose json
// tags name the ruled fields. Failed fields are joined into one error.
func ValidateInput(input interface{}, rules govalidator.MapData) error {
	body, err := json.Marshal(input)
	if err != nil {
		return errors.Wrap(err, "could not encode input")
	}
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "could not build input request")
	}
	r.Header.Set("Content-Type", "application/json")

	v := govalidator.New(govalidator.Options{Request: r, Rules: rules, Data: input})
	failed := v.ValidateJSON()
	if len(failed) == 0 {
		return nil
	}
	fields := make([]string, 0, len(failed))
	for field := range failed {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, strings.Join(failed[field], ", "))
	}
	return errors.Errorf("invalid input: %s", strings.Join(messages, "; "))
}

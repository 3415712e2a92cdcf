package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Minimal internal validator to avoid an external dependency. Supports:
// - required (blank string or zero numeric)
// - maxlen=N (string length cap)
// - nameok (letters, numbers, space, hyphen, apostrophe, 1-100 chars)
// - code6 (6-char upper-case alphanumeric squad invite code)

var (
	reNameOK = regexp.MustCompile(`^[A-Za-z0-9 \-']{1,100}$`)
	reCode6  = regexp.MustCompile(`^[A-Z0-9]{6}$`)
)

// ValidateStruct inspects struct tags `validate:"..."` and returns the first
// error encountered.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		parts := strings.Split(tag, ",")
		fv := v.Field(i)
		var sval string
		if fv.IsValid() && fv.Kind() == reflect.String {
			sval = fv.String()
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "required" {
				switch fv.Kind() {
				case reflect.String:
					if strings.TrimSpace(sval) == "" {
						return errors.New(field.Name + " is required")
					}
				case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
					if fv.Int() == 0 {
						return errors.New(field.Name + " is required")
					}
				case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
					if fv.Uint() == 0 {
						return errors.New(field.Name + " is required")
					}
				}
			} else if strings.HasPrefix(p, "maxlen=") {
				max, err := strconv.Atoi(strings.TrimPrefix(p, "maxlen="))
				if err == nil && len(sval) > max {
					return fmt.Errorf("%s must be at most %d characters", field.Name, max)
				}
			} else if p == "nameok" {
				if sval != "" && !reNameOK.MatchString(sval) {
					return errors.New(field.Name + " contains invalid characters")
				}
			} else if p == "code6" {
				if !reCode6.MatchString(sval) {
					return errors.New(field.Name + " must be a 6-character invite code")
				}
			}
		}
	}
	return nil
}

package roster

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"roster-lookup-go/models"
)

var validate = validator.New()

// LookupQuery is a validated (Class, ClassNo) pair. ClassNo is already trimmed.
type LookupQuery struct {
	Class   string `validate:"required"`
	ClassNo string `validate:"required"`
}

// NewLookupQuery trims classNo and checks that both values are present.
// Class is used as given.
func NewLookupQuery(class, classNo string) (LookupQuery, error) {
	q := LookupQuery{Class: class, ClassNo: strings.TrimSpace(classNo)}
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return q, &ValidationError{Fields: fields}
		}
		return q, err
	}
	return q, nil
}

// BuildClassIndex returns the distinct non-empty Class values of records in
// ascending byte order.
func BuildClassIndex(records []models.StudentRecord) []string {
	seen := make(map[string]struct{})
	classes := []string{}
	for _, r := range records {
		if r.Class == "" {
			continue
		}
		if _, ok := seen[r.Class]; ok {
			continue
		}
		seen[r.Class] = struct{}{}
		classes = append(classes, r.Class)
	}
	sort.Strings(classes)
	return classes
}

// FilterByDay returns the records whose Day equals day exactly.
// An empty day matches nothing.
func FilterByDay(records []models.StudentRecord, day string) []models.StudentRecord {
	out := []models.StudentRecord{}
	if day == "" {
		return out
	}
	for _, r := range records {
		if r.Day == day {
			out = append(out, r)
		}
	}
	return out
}

// FilterByClass returns the records matching both q.Class and q.ClassNo.
func FilterByClass(records []models.StudentRecord, q LookupQuery) []models.StudentRecord {
	out := []models.StudentRecord{}
	for _, r := range records {
		if r.Class == q.Class && r.ClassNo == q.ClassNo {
			out = append(out, r)
		}
	}
	return out
}

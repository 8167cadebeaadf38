package dataset

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"bankmetrics/pkg/contracts/domain"
)

// ErrInvalidDataset wraps every problem reported by Validate.
var ErrInvalidDataset = errors.New("invalid dataset")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report yaml/json field names rather than Go names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the structural invariants the query operations rely on:
// non-empty titles and names, finite values, one value per year, unique bank
// names within a metric, and an identical bank roster across all metrics.
// All problems are reported together.
func Validate(ds *domain.Dataset) error {
	if ds.Len() == 0 {
		return fmt.Errorf("%w: no metrics", ErrInvalidDataset)
	}

	var problems []error
	var roster []string
	var rosterID string

	for _, entry := range ds.Entries() {
		if err := structValidator().Struct(entry); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					problems = append(problems, fmt.Errorf("metric %q: field %s failed %q", entry.ID, fe.Namespace(), fe.Tag()))
				}
			} else {
				problems = append(problems, fmt.Errorf("metric %q: %w", entry.ID, err))
			}
		}

		m := entry.Metric
		seen := make(map[string]bool, len(m.Banks))
		names := make([]string, 0, len(m.Banks))
		for _, b := range m.Banks {
			if len(b.Values) != len(m.Years) {
				problems = append(problems, fmt.Errorf("metric %q: bank %q has %d values for %d years",
					entry.ID, b.Name, len(b.Values), len(m.Years)))
			}
			for i, v := range b.Values {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					problems = append(problems, fmt.Errorf("metric %q: bank %q value %d is not finite", entry.ID, b.Name, i))
				}
			}
			key := strings.ToLower(b.Name)
			if seen[key] {
				problems = append(problems, fmt.Errorf("metric %q: duplicate bank %q", entry.ID, b.Name))
			}
			seen[key] = true
			names = append(names, key)
		}

		sort.Strings(names)
		if roster == nil {
			roster, rosterID = names, entry.ID
		} else if !equalStrings(roster, names) {
			problems = append(problems, fmt.Errorf("metric %q: bank roster differs from %q", entry.ID, rosterID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(problems...))
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

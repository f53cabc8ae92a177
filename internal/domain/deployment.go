package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// KindHelm is the kind tag of deployments owned by this controller.
const KindHelm = "helm"

var deploymentIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_ = validate.RegisterValidation("deploymentid", func(fl validator.FieldLevel) bool {
		return deploymentIDPattern.MatchString(fl.Field().String())
	})
}

// Deployment is a desired-state record read from the configuration store.
type Deployment struct {
	ID   string         `json:"id"   validate:"required,max=63,deploymentid"`
	Kind string         `json:"kind" validate:"required"`
	Args DeploymentArgs `json:"args"`
}

// DeploymentArgs holds the chart reference and optional value overrides.
// A nil Values map means no values file is passed to helm.
type DeploymentArgs struct {
	Chart  string         `json:"chart"            validate:"required"`
	Values map[string]any `json:"values,omitempty"`
}

// IsHelm reports whether the deployment is release-managed by this controller.
func (d *Deployment) IsHelm() bool {
	return d.Kind == KindHelm
}

// Validate checks the record against its schema.
func (d *Deployment) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: deployment %q: %w", ErrValidation, d.ID, err)
	}

	return nil
}

// ParseDeployment decodes and validates a deployment record.
func ParseDeployment(data []byte) (*Deployment, error) {
	var dpl Deployment

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(&dpl); err != nil {
		return nil, fmt.Errorf("%w: decode deployment: %w", ErrValidation, err)
	}

	if dpl.Args.Values != nil {
		dpl.Args.Values = normalizeNumbers(dpl.Args.Values).(map[string]any)
	}

	if err := dpl.Validate(); err != nil {
		return nil, err
	}

	return &dpl, nil
}

// normalizeNumbers replaces decoded JSON numbers with int64 when they are
// integers that fit, and float64 otherwise, so that integers reach helm
// values files without an exponent.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}

		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}

		return val
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}

		if f, err := val.Float64(); err == nil {
			return f
		}

		return val.String()
	default:
		return v
	}
}

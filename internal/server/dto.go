package server

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/lvpart/internal/dataset"
	"github.com/katalvlaran/lvpart/internal/jobs"
	"github.com/katalvlaran/lvpart/partition"
)

// PartitionRequest is the body of POST /partitions and POST /jobs.
// A null weight is a missing value and is rejected by the search.
type PartitionRequest struct {
	Weights  []*float64 `json:"weights" validate:"required,min=1"`
	Labels   []string   `json:"labels,omitempty" validate:"omitempty,dive,max=256"`
	K        int        `json:"k" validate:"required"`
	Epsilon  *float64   `json:"epsilon,omitempty" validate:"omitempty,gte=0"`
	Variance string     `json:"variance,omitempty" validate:"omitempty,oneof=sample population"`
	Workers  *int       `json:"workers,omitempty" validate:"omitempty,gte=0,lte=256"`
}

// options converts the per-request overrides into partition options.
func (r PartitionRequest) options() ([]partition.Option, error) {
	var opts []partition.Option
	if r.Epsilon != nil {
		opts = append(opts, partition.WithEpsilon(*r.Epsilon))
	}
	if r.Variance != "" {
		kind, err := partition.ParseVarianceKind(r.Variance)
		if err != nil {
			return nil, err
		}
		opts = append(opts, partition.WithVarianceKind(kind))
	}
	if r.Workers != nil {
		opts = append(opts, partition.WithWorkers(*r.Workers))
	}

	return opts, nil
}

// jobRequest converts the body into a jobs.Request.
func (r PartitionRequest) jobRequest() (jobs.Request, error) {
	opts, err := r.options()
	if err != nil {
		return jobs.Request{}, err
	}

	return jobs.Request{
		Weights: dataset.Weights(r.Weights),
		Labels:  dataset.DefaultLabels(r.Labels, len(r.Weights)),
		K:       r.K,
		Options: opts,
	}, nil
}

// PartitionResponse is the body of a successful POST /partitions.
type PartitionResponse struct {
	RequestID  string                   `json:"request_id"`
	DurationMS int64                    `json:"duration_ms"`
	Result     partition.Result[string] `json:"result"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Jobs   int    `json:"jobs"`
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// fieldErrors flattens validator errors into field -> failed tag.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}

	return out
}

package checks

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Kind names a checker in configuration.
type Kind string

const (
	KindScoreCount      Kind = "score-count"
	KindScoreRange      Kind = "score-range"
	KindAggregateMean   Kind = "aggregate-mean"
	KindEfficiencyRatio Kind = "efficiency-ratio"
)

// Create builds a checker of the given kind. params holds kind-specific
// settings decoded from configuration; nil params select the defaults.
func Create(kind Kind, params map[string]any) (Checker, error) {
	switch kind {
	case KindScoreCount:
		return &ScoreCountChecker{}, nil
	case KindScoreRange:
		return &ScoreRangeChecker{}, nil
	case KindAggregateMean:
		tol, err := decodeTolerance(params, DefaultAggregateTolerance)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		return &AggregateChecker{Tolerance: tol}, nil
	case KindEfficiencyRatio:
		tol, err := decodeTolerance(params, DefaultRatioTolerance)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		return &EfficiencyRatioChecker{Tolerance: tol}, nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid check kind", kind)
	}
}

func decodeTolerance(params map[string]any, def float64) (float64, error) {
	v := struct {
		Tolerance *float64 `mapstructure:"tolerance"`
	}{}

	cfg := &mapstructure.DecoderConfig{
		Result:           &v,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return 0, err
	}
	if err := dec.Decode(params); err != nil {
		return 0, err
	}

	if v.Tolerance == nil {
		return def, nil
	}
	if *v.Tolerance < 0 {
		return 0, fmt.Errorf("tolerance must not be negative, got %g", *v.Tolerance)
	}
	return *v.Tolerance, nil
}

package scoring

import (
	"fmt"
	"math"
)

// Classifier turns a feature vector into one binary score per amenity label.
type Classifier interface {
	Predict(features []float64) []int
	Labels() int
	InputDimension() int
}

// LinearModel is a single binary linear decision function, as produced by a
// logistic regression or a linear SVM.
type LinearModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// LinearClassifier predicts label i when w_i·x + b_i exceeds the threshold.
type LinearClassifier struct {
	models    []LinearModel
	threshold float64
	dimension int
}

func NewLinearClassifier(models []LinearModel, threshold float64) (*LinearClassifier, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: linear classifier has no labels", ErrModelConfig)
	}
	dimension := len(models[0].Weights)
	for i, m := range models {
		if len(m.Weights) != dimension || dimension == 0 {
			return nil, fmt.Errorf("%w: linear label %d has %d weights, expected %d", ErrModelConfig, i, len(m.Weights), dimension)
		}
	}
	return &LinearClassifier{models: models, threshold: threshold, dimension: dimension}, nil
}

func (c *LinearClassifier) Labels() int         { return len(c.models) }
func (c *LinearClassifier) InputDimension() int { return c.dimension }

func (c *LinearClassifier) Predict(features []float64) []int {
	out := make([]int, len(c.models))
	for i, m := range c.models {
		score := m.Bias
		for j, w := range m.Weights {
			score += w * features[j]
		}
		if score > c.threshold {
			out[i] = 1
		}
	}
	return out
}

// GaussianNBModel holds the fitted parameters of one binary Gaussian naive
// Bayes label. Index 0 of each slice is the negative class.
type GaussianNBModel struct {
	Priors    [2]float64   `json:"priors"`
	Means     [2][]float64 `json:"means"`
	Variances [2][]float64 `json:"variances"`
}

type GaussianNBClassifier struct {
	models    []GaussianNBModel
	dimension int
}

func NewGaussianNBClassifier(models []GaussianNBModel) (*GaussianNBClassifier, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: gaussian_nb classifier has no labels", ErrModelConfig)
	}
	dimension := len(models[0].Means[0])
	if dimension == 0 {
		return nil, fmt.Errorf("%w: gaussian_nb label 0 has no features", ErrModelConfig)
	}
	for i, m := range models {
		for class := 0; class < 2; class++ {
			if m.Priors[class] <= 0 {
				return nil, fmt.Errorf("%w: gaussian_nb label %d class %d has non-positive prior", ErrModelConfig, i, class)
			}
			if len(m.Means[class]) != dimension || len(m.Variances[class]) != dimension {
				return nil, fmt.Errorf("%w: gaussian_nb label %d class %d has wrong dimension", ErrModelConfig, i, class)
			}
			for _, v := range m.Variances[class] {
				if v <= 0 {
					return nil, fmt.Errorf("%w: gaussian_nb label %d class %d has non-positive variance", ErrModelConfig, i, class)
				}
			}
		}
	}
	return &GaussianNBClassifier{models: models, dimension: dimension}, nil
}

func (c *GaussianNBClassifier) Labels() int         { return len(c.models) }
func (c *GaussianNBClassifier) InputDimension() int { return c.dimension }

// Predict picks the class with the larger joint log-likelihood; ties go to 0.
func (c *GaussianNBClassifier) Predict(features []float64) []int {
	out := make([]int, len(c.models))
	for i, m := range c.models {
		if m.logLikelihood(1, features) > m.logLikelihood(0, features) {
			out[i] = 1
		}
	}
	return out
}

func (m GaussianNBModel) logLikelihood(class int, x []float64) float64 {
	ll := math.Log(m.Priors[class])
	for j, xj := range x {
		mean, variance := m.Means[class][j], m.Variances[class][j]
		d := xj - mean
		ll -= 0.5*math.Log(2*math.Pi*variance) + d*d/(2*variance)
	}
	return ll
}

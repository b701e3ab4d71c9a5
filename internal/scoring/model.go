package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

// ErrModelConfig marks a model artifact that cannot be served. It is only
// ever returned while loading, never at request time.
var ErrModelConfig = errors.New("invalid model configuration")

const (
	VectorizerCount     = "count"
	VectorizerTFIDF     = "tfidf"
	VectorizerEmbedding = "embedding"

	ClassifierLinear     = "linear"
	ClassifierGaussianNB = "gaussian_nb"
)

// ModelArtifact is the on-disk JSON form of a trained model.
type ModelArtifact struct {
	Amenities  []string           `json:"amenities"`
	Stopwords  []string           `json:"stopwords,omitempty"`
	Vectorizer VectorizerArtifact `json:"vectorizer"`
	Classifier ClassifierArtifact `json:"classifier"`
}

type VectorizerArtifact struct {
	Kind        string               `json:"kind"`
	Vocabulary  map[string]int       `json:"vocabulary,omitempty"`
	IDF         []float64            `json:"idf,omitempty"`
	SublinearTF bool                 `json:"sublinear_tf,omitempty"`
	Norm        string               `json:"norm,omitempty"`
	Embeddings  map[string][]float64 `json:"embeddings,omitempty"`
}

type ClassifierArtifact struct {
	Kind       string            `json:"kind"`
	Threshold  float64           `json:"threshold,omitempty"`
	Linear     []LinearModel     `json:"linear,omitempty"`
	GaussianNB []GaussianNBModel `json:"gaussian_nb,omitempty"`
}

// Model is the immutable inference state shared by every request.
type Model struct {
	amenities  []string
	normalizer *Normalizer
	vectorizer Vectorizer
	classifier Classifier

	parkMatcher    *KeywordMatcher
	amenityMatcher *KeywordMatcher
	amenityIndex   map[string][]int
}

func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

func ParseModel(data []byte) (*Model, error) {
	var artifact ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelConfig, err)
	}
	return artifact.Build()
}

// Build constructs the vectorizer and classifier named by the artifact.
func (a ModelArtifact) Build() (*Model, error) {
	var (
		vectorizer Vectorizer
		classifier Classifier
		err        error
	)

	switch a.Vectorizer.Kind {
	case VectorizerCount:
		vectorizer, err = NewCountVectorizer(a.Vectorizer.Vocabulary)
	case VectorizerTFIDF:
		vectorizer, err = NewTFIDFVectorizer(a.Vectorizer.Vocabulary, a.Vectorizer.IDF, a.Vectorizer.SublinearTF, a.Vectorizer.Norm)
	case VectorizerEmbedding:
		vectorizer, err = NewEmbeddingVectorizer(a.Vectorizer.Embeddings)
	default:
		return nil, fmt.Errorf("%w: unknown vectorizer kind %q", ErrModelConfig, a.Vectorizer.Kind)
	}
	if err != nil {
		return nil, err
	}

	switch a.Classifier.Kind {
	case ClassifierLinear:
		classifier, err = NewLinearClassifier(a.Classifier.Linear, a.Classifier.Threshold)
	case ClassifierGaussianNB:
		classifier, err = NewGaussianNBClassifier(a.Classifier.GaussianNB)
	default:
		return nil, fmt.Errorf("%w: unknown classifier kind %q", ErrModelConfig, a.Classifier.Kind)
	}
	if err != nil {
		return nil, err
	}

	normalizer, err := NewNormalizer(a.Stopwords)
	if err != nil {
		return nil, err
	}
	return NewModel(a.Amenities, normalizer, vectorizer, classifier)
}

// NewModel checks that the pieces fit together: one classifier label per
// amenity, and a classifier input as wide as the vectorizer output.
func NewModel(amenities []string, normalizer *Normalizer, vectorizer Vectorizer, classifier Classifier) (*Model, error) {
	if len(amenities) == 0 {
		return nil, fmt.Errorf("%w: no amenities", ErrModelConfig)
	}
	if lo.ContainsBy(amenities, func(a string) bool { return strings.TrimSpace(a) == "" }) {
		return nil, fmt.Errorf("%w: empty amenity name", ErrModelConfig)
	}
	if classifier.Labels() != len(amenities) {
		return nil, fmt.Errorf("%w: classifier has %d labels for %d amenities", ErrModelConfig, classifier.Labels(), len(amenities))
	}
	if classifier.InputDimension() != vectorizer.Dimension() {
		return nil, fmt.Errorf("%w: classifier expects %d features, vectorizer produces %d", ErrModelConfig, classifier.InputDimension(), vectorizer.Dimension())
	}
	if normalizer == nil {
		var err error
		if normalizer, err = NewNormalizer(nil); err != nil {
			return nil, err
		}
	}

	parkMatcher, err := NewKeywordMatcher(ParkKeywords)
	if err != nil {
		return nil, fmt.Errorf("%w: park keywords: %v", ErrModelConfig, err)
	}

	amenityIndex := make(map[string][]int, len(amenities))
	for i, a := range amenities {
		key := strings.ToLower(strings.TrimSpace(a))
		amenityIndex[key] = append(amenityIndex[key], i)
	}
	amenityMatcher, err := NewKeywordMatcher(amenities)
	if err != nil {
		return nil, fmt.Errorf("%w: amenity names: %v", ErrModelConfig, err)
	}

	return &Model{
		amenities:      append([]string(nil), amenities...),
		normalizer:     normalizer,
		vectorizer:     vectorizer,
		classifier:     classifier,
		parkMatcher:    parkMatcher,
		amenityMatcher: amenityMatcher,
		amenityIndex:   amenityIndex,
	}, nil
}

// Amenities returns a copy of the amenity names in classifier label order.
func (m *Model) Amenities() []string {
	return append([]string(nil), m.amenities...)
}

func (m *Model) Normalizer() *Normalizer { return m.normalizer }

func (m *Model) FeatureDimension() int { return m.vectorizer.Dimension() }

// AmenityIndex returns the label index of an amenity name, ignoring case.
func (m *Model) AmenityIndex(name string) (int, bool) {
	idx, ok := m.amenityIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	return idx[0], true
}

// IsParkLike reports whether a place counts as a park for scoring.
func (m *Model) IsParkLike(name string, types []string) bool {
	return lo.Contains(types, "park") || m.parkMatcher.ContainsAny(name)
}

// NameMatches returns the label indices of every amenity whose name occurs in
// the place name.
func (m *Model) NameMatches(name string) []int {
	var out []int
	for _, kw := range m.amenityMatcher.Matches(name) {
		out = append(out, m.amenityIndex[kw]...)
	}
	return out
}

package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Vectorizer maps a normalized document to a fixed-length feature vector.
// Implementations never mutate their vocabulary after construction.
type Vectorizer interface {
	Vectorize(document string) []float64
	Dimension() int
}

// CountVectorizer is a bag-of-words term counter over a fixed vocabulary.
type CountVectorizer struct {
	vocabulary map[string]int
}

func NewCountVectorizer(vocabulary map[string]int) (*CountVectorizer, error) {
	if err := validateVocabulary(vocabulary); err != nil {
		return nil, err
	}
	return &CountVectorizer{vocabulary: vocabulary}, nil
}

func (v *CountVectorizer) Dimension() int { return len(v.vocabulary) }

func (v *CountVectorizer) Vectorize(document string) []float64 {
	out := make([]float64, len(v.vocabulary))
	for _, token := range strings.Fields(document) {
		if idx, ok := v.vocabulary[token]; ok {
			out[idx]++
		}
	}
	return out
}

// TFIDFVectorizer weights term counts by pre-fit inverse document frequencies.
type TFIDFVectorizer struct {
	counts      *CountVectorizer
	idf         []float64
	sublinearTF bool
	l2          bool
}

// NewTFIDFVectorizer builds a TF-IDF vectorizer. norm is "l2" or "none"; an
// empty norm means "l2".
func NewTFIDFVectorizer(vocabulary map[string]int, idf []float64, sublinearTF bool, norm string) (*TFIDFVectorizer, error) {
	counts, err := NewCountVectorizer(vocabulary)
	if err != nil {
		return nil, err
	}
	if len(idf) != len(vocabulary) {
		return nil, fmt.Errorf("%w: idf has %d weights for a vocabulary of %d", ErrModelConfig, len(idf), len(vocabulary))
	}

	var l2 bool
	switch strings.ToLower(norm) {
	case "", "l2":
		l2 = true
	case "none":
		l2 = false
	default:
		return nil, fmt.Errorf("%w: unsupported tfidf norm %q", ErrModelConfig, norm)
	}

	return &TFIDFVectorizer{counts: counts, idf: idf, sublinearTF: sublinearTF, l2: l2}, nil
}

func (v *TFIDFVectorizer) Dimension() int { return v.counts.Dimension() }

func (v *TFIDFVectorizer) Vectorize(document string) []float64 {
	out := v.counts.Vectorize(document)
	var sumSquares float64
	for i, tf := range out {
		if tf == 0 {
			continue
		}
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		out[i] = tf * v.idf[i]
		sumSquares += out[i] * out[i]
	}

	if v.l2 && sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for i := range out {
			out[i] /= norm
		}
	}
	return out
}

// EmbeddingVectorizer averages pre-trained word vectors.
type EmbeddingVectorizer struct {
	embeddings map[string][]float64
	dimension  int
}

func NewEmbeddingVectorizer(embeddings map[string][]float64) (*EmbeddingVectorizer, error) {
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: embedding table is empty", ErrModelConfig)
	}

	dimension := -1
	for word, vec := range embeddings {
		if dimension == -1 {
			dimension = len(vec)
		}
		if len(vec) != dimension || dimension == 0 {
			return nil, fmt.Errorf("%w: embedding for %q has dimension %d, expected %d", ErrModelConfig, word, len(vec), dimension)
		}
	}
	return &EmbeddingVectorizer{embeddings: embeddings, dimension: dimension}, nil
}

func (v *EmbeddingVectorizer) Dimension() int { return v.dimension }

// Vectorize returns the mean of the known token vectors, or a zero vector when
// no token is in the table.
func (v *EmbeddingVectorizer) Vectorize(document string) []float64 {
	out := make([]float64, v.dimension)
	var known int
	for _, token := range strings.Fields(document) {
		vec, ok := v.embeddings[token]
		if !ok {
			continue
		}
		for i, x := range vec {
			out[i] += x
		}
		known++
	}

	if known == 0 {
		return out
	}
	for i := range out {
		out[i] /= float64(known)
	}
	return out
}

// validateVocabulary checks that the indices form exactly 0..n-1.
func validateVocabulary(vocabulary map[string]int) error {
	if len(vocabulary) == 0 {
		return fmt.Errorf("%w: vocabulary is empty", ErrModelConfig)
	}
	seen := make([]bool, len(vocabulary))
	for word, idx := range vocabulary {
		if idx < 0 || idx >= len(vocabulary) || seen[idx] {
			return fmt.Errorf("%w: vocabulary index %d for %q is out of range or duplicated", ErrModelConfig, idx, word)
		}
		seen[idx] = true
	}
	return nil
}
